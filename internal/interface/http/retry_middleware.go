package http

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/vastr/panchanga/internal/infra/config"
)

const (
	retryBodyLimit     = 64 << 10
	retryAttemptHeader = "X-Retry-Attempts"
)

var errBodyTooLarge = errors.New("request body exceeds retry limit")

// withRetry replays POST requests whose response is a 5xx, with exponential
// backoff starting at cfg.BaseBackoff. Kept responses are buffered, so only
// the final attempt reaches the client.
func withRetry(handler http.Handler, cfg config.RetryConfig, logger *slog.Logger) http.Handler {
	if !cfg.Enabled || cfg.MaxAttempts <= 1 {
		return handler
	}
	exclusions := make(map[string]struct{}, len(cfg.Exclude))
	for _, path := range cfg.Exclude {
		exclusions[path] = struct{}{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, skip := exclusions[r.URL.Path]; skip || r.Method != http.MethodPost {
			handler.ServeHTTP(w, r)
			return
		}
		body, err := readRequestBody(r)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, errBodyTooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			http.Error(w, err.Error(), status)
			return
		}

		var (
			buf      *attemptBuffer
			attempts int
		)
		for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
			if attempt > 1 && !backoff(r, cfg.BaseBackoff<<(attempt-2)) {
				break
			}

			buf = newAttemptBuffer(w)
			attempts = attempt
			replay := r.Clone(r.Context())
			replay.Body = io.NopCloser(bytes.NewReader(body))
			replay.ContentLength = int64(len(body))

			handler.ServeHTTP(buf, replay)
			if !buf.retryable() || attempt == cfg.MaxAttempts {
				break
			}
			logger.Warn("transient failure, retrying request", "path", r.URL.Path, "status", buf.statusCode, "attempt", attempt)
		}
		buf.header.Set(retryAttemptHeader, strconv.Itoa(attempts))
		buf.Commit()
	})
}

// backoff sleeps for d unless the client goes away first.
func backoff(r *http.Request, d time.Duration) bool {
	if d <= 0 {
		return r.Context().Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-r.Context().Done():
		return false
	}
}

func readRequestBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()
	data, err := io.ReadAll(io.LimitReader(r.Body, retryBodyLimit+1))
	if err != nil {
		return nil, err
	}
	if len(data) > retryBodyLimit {
		return nil, errBodyTooLarge
	}
	return data, nil
}

// attemptBuffer buffers one attempt. Commit copies it to the client.
type attemptBuffer struct {
	dst        http.ResponseWriter
	header     http.Header
	body       bytes.Buffer
	statusCode int
	wroteHead  bool
}

func newAttemptBuffer(dst http.ResponseWriter) *attemptBuffer {
	return &attemptBuffer{
		dst:        dst,
		header:     make(http.Header),
		statusCode: http.StatusOK,
	}
}

func (b *attemptBuffer) Header() http.Header {
	return b.header
}

func (b *attemptBuffer) WriteHeader(status int) {
	if b.wroteHead {
		return
	}
	b.statusCode = status
	b.wroteHead = true
}

func (b *attemptBuffer) Write(p []byte) (int, error) {
	if !b.wroteHead {
		b.WriteHeader(http.StatusOK)
	}
	return b.body.Write(p)
}

func (b *attemptBuffer) Commit() {
	dst := b.dst.Header()
	for k, values := range b.header {
		dst[k] = append([]string(nil), values...)
	}
	b.dst.WriteHeader(b.statusCode)
	if b.body.Len() > 0 {
		_, _ = b.dst.Write(b.body.Bytes())
	}
}

func (b *attemptBuffer) retryable() bool {
	return b.statusCode >= http.StatusInternalServerError
}

func (b *attemptBuffer) Flush() {}
