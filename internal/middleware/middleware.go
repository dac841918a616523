package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

type contextKey string

const organizationKey contextKey = "organization_id"

// HeaderOrganizationID - заголовок с идентификатором текущей организации
const HeaderOrganizationID = "X-Organization-ID"

// responseWriter обёртка для захвата статус-кода
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Organization middleware извлекает идентификатор организации из заголовка
// и кладёт его в контекст запроса. Нечисловое значение игнорируется:
// запрос выполняется без привязки к организации, а не падает.
func Organization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := r.Header.Get(HeaderOrganizationID); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
				ctx := context.WithValue(r.Context(), organizationKey, id)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// OrganizationFrom возвращает идентификатор организации из контекста
// или nil, если запрос не привязан к организации
func OrganizationFrom(ctx context.Context) *int64 {
	if id, ok := ctx.Value(organizationKey).(int64); ok {
		return &id
	}
	return nil
}

// Logger middleware для логирования HTTP запросов
func Logger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := newResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			attrs := []any{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("query", r.URL.RawQuery),
				slog.Int("status", wrapped.statusCode),
				slog.Duration("duration", time.Since(start)),
				slog.String("remote_addr", r.RemoteAddr),
			}
			if orgID := OrganizationFrom(r.Context()); orgID != nil {
				attrs = append(attrs, slog.Int64("organization_id", *orgID))
			}
			logger.Info("HTTP request", attrs...)
		})
	}
}

// Recoverer middleware для обработки паник
func Recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
					)
					http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// ContentType middleware устанавливает Content-Type для JSON ответов
func ContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
