package portal

import (
	"context"
	"net/http"
	"net/url"
)

// Request: запрос к порталу в терминах HTTP-коллаборатора.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Response: ответ целиком; URL — итоговый адрес после редиректов.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	URL        *url.URL
}

// Transport выполняет запросы и хранит cookie между ними в пределах одной сессии.
// TLS, cookie и таймауты — его забота, не сессии.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

type TransportFunc func(ctx context.Context, req *Request) (*Response, error)

func (f TransportFunc) Do(ctx context.Context, req *Request) (*Response, error) { return f(ctx, req) }
