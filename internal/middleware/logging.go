package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// ProcessingTimeHeader reports the time taken to produce the response headers in microseconds.
const ProcessingTimeHeader = "X-Processing-Time-Micros"

// Logging adds the X-Processing-Time-Micros header to all responses and
// logs one line per request.
func Logging(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &timingResponseWriter{
				ResponseWriter: w,
				start:          start,
			}

			next.ServeHTTP(wrapped, r)

			if !wrapped.wroteHeader {
				wrapped.status = http.StatusOK
			}
			level := slog.LevelInfo
			if wrapped.status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			log.LogAttrs(r.Context(), level, "request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", wrapped.status),
				slog.Int("bytes", wrapped.bytes),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type timingResponseWriter struct {
	http.ResponseWriter
	start       time.Time
	wroteHeader bool
	status      int
	bytes       int
}

func (w *timingResponseWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		micros := time.Since(w.start).Microseconds()
		w.Header().Set(ProcessingTimeHeader, strconv.FormatInt(micros, 10))
		w.wroteHeader = true
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *timingResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *timingResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
