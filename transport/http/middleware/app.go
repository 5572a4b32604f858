package middleware

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"huddle/config"
	"huddle/infras/otel"
	"huddle/shared/cache"
	"huddle/shared/constant"
	"huddle/shared/failure"
	"huddle/transport/http/response"
)

const (
	otelHTTPScopeName = "http"
)

type App interface {
	Tracing(next http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
	APIKey(next http.Handler) http.Handler
}

type appMiddleware struct {
	otel   otel.Otel
	config *config.Config
	cache  cache.RedisCache
}

func NewAppMiddleware(otl otel.Otel, conf *config.Config, redisCache cache.RedisCache) App {
	return &appMiddleware{
		otel:   otl,
		config: conf,
		cache:  redisCache,
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		spanName := fmt.Sprintf("%s %s", r.Method, r.URL.Path)

		ctx, scope := a.otel.NewScope(r.Context(), otelHTTPScopeName, spanName)
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"app.name":        a.config.App.Name,
			"http.path":       r.URL.Path,
			"http.method":     r.Method,
			"http.user_agent": r.Header.Get(constant.RequestHeaderUserAgent),
			"http.host":       r.Host,
			"http.source":     r.RemoteAddr,
		})

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r.WithContext(ctx))

		scope.SetAttribute("http.status_code", recorder.status)
	})
}

// APIKey guards administrative endpoints with a static key.
func (a *appMiddleware) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		provided := r.Header.Get(constant.RequestHeaderAPIKey)

		if a.config.App.APIKey == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(a.config.App.APIKey)) != 1 {
			response.WithError(w, failure.Unauthorized("invalid api key"))

			return
		}

		next.ServeHTTP(w, r)
	})
}
