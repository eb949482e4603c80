package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ctxKey int

const (
	ctxRequestID ctxKey = iota
	ctxUser
)

const requestIDHeader = "X-Request-Id"

// Middleware decorates a handler.
type Middleware func(http.Handler) http.Handler

// Chain applies mws so that mws[0] sees the request first.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// RequestID returns the id attached by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxRequestID).(string)
	return id
}

// WithRequestID reuses the caller's X-Request-Id or assigns a UUID, and echoes it back.
func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxRequestID, id)))
	})
}

// requestLog is one JSON line of the access or panic log.
type requestLog struct {
	At        string `json:"at"`
	Event     string `json:"event"`
	RequestID string `json:"req"`
	Method    string `json:"method"`
	Route     string `json:"route"`
	Status    int    `json:"status,omitempty"`
	Size      int    `json:"size,omitempty"`
	TookMS    int64  `json:"took_ms"`
	Client    string `json:"client,omitempty"`
	Panic     string `json:"panic,omitempty"`
	Stack     string `json:"stack,omitempty"`
}

func newRequestLog(event string, r *http.Request) requestLog {
	return requestLog{
		At:        time.Now().UTC().Format(time.RFC3339Nano),
		Event:     event,
		RequestID: RequestID(r.Context()),
		Method:    r.Method,
		Route:     r.URL.Path,
	}
}

func (l requestLog) write(logger *log.Logger) {
	b, err := json.Marshal(l)
	if err != nil {
		logger.Printf("encode request log: %v", err)
		return
	}
	logger.Println(string(b))
}

// WithRecover turns a handler panic into a 500 and logs the stack.
func WithRecover(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				entry := newRequestLog("panic", r)
				entry.Panic = fmt.Sprint(v)
				entry.Stack = string(debug.Stack())
				entry.write(logger)
				writeErr(w, http.StatusInternalServerError, "internal server error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// WithAccessLog writes one line per request after it completes.
func WithAccessLog(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &recordingWriter{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			entry := newRequestLog("request", r)
			entry.Status = rec.statusCode()
			entry.Size = rec.size
			entry.TookMS = time.Since(start).Milliseconds()
			entry.Client = clientIP(r)
			entry.write(logger)
		})
	}
}

// recordingWriter remembers the status and body size of a response.
type recordingWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (w *recordingWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(p)
	w.size += n
	return n, err
}

func (w *recordingWriter) statusCode() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// clientIP prefers the first X-Forwarded-For hop.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
