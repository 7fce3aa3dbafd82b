package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/Spok95/edupage-school-bot/internal/metrics"
)

type HTTPServer struct {
	srv *http.Server
}

// LoginState: часть сессии, нужная проверке здоровья.
type LoginState interface {
	IsLoggedIn() bool
}

// Handler: /healthz и /metrics. db может быть nil.
func Handler(sess LoginState, db *sql.DB) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if !sess.IsLoggedIn() {
			http.Error(w, "edupage session not logged in", http.StatusServiceUnavailable)
			return
		}
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 800*time.Millisecond)
			defer cancel()
			t0 := time.Now()
			if err := db.PingContext(ctx); err != nil {
				http.Error(w, "db not ok: "+err.Error(), http.StatusServiceUnavailable)
				return
			}
			metrics.ObserveDBPing(time.Since(t0))
		}
		_, _ = w.Write([]byte("ok"))
	})

	mux.Handle("/metrics", metrics.Handler())
	return mux
}

func StartHTTP(ctx context.Context, addr string, sess LoginState, db *sql.DB) *HTTPServer {
	srv := &http.Server{Addr: addr, Handler: Handler(sess, db), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		_ = srv.ListenAndServe() // закрываем аккуратно при Shutdown
	}()

	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
	}()

	return &HTTPServer{srv: srv}
}
