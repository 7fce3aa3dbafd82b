package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PortalRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "edupage", Name: "portal_requests_total", Help: "Requests sent to the EduPage portal",
	}, []string{"method", "code"})
	PortalLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "edupage", Name: "portal_request_seconds", Help: "EduPage portal request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
	Logins = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "edupage", Name: "logins_total", Help: "Login attempts by result",
	}, []string{"result"})
	BotUpdates = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "edupage", Name: "bot_updates_total", Help: "Processed telegram updates",
	})
	HandlerErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "edupage", Name: "handler_errors_total", Help: "Handler errors",
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "edupage", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(PortalRequests, PortalLatency, Logins, BotUpdates, HandlerErrors, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }

// ObservePortal: code=0 означает, что ответа не было (сеть, таймаут).
func ObservePortal(method, op string, code int, d time.Duration) {
	PortalRequests.WithLabelValues(method, strconv.Itoa(code)).Inc()
	PortalLatency.WithLabelValues(op).Observe(d.Seconds())
}

func ObserveLogin(result string) { Logins.WithLabelValues(result).Inc() }
