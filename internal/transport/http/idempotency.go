package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
)

const (
	headerIdempotencyKey      = "Idempotency-Key"
	headerIdempotencyReplayed = "X-Idempotency-Replayed"
)

// IdempotencyStore is the minimal interface needed to replay keyed requests.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string) ([]byte, error)
	Complete(ctx context.Context, key string, response []byte) error
	Release(ctx context.Context, key string) error
}

type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Idempotency replays the stored response for a repeated Idempotency-Key
// and rejects a repeat that arrives while the first is still running.
// Requests without the header pass through. Server errors are not stored
// so the client may retry them.
func Idempotency(store IdempotencyStore, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodPatch {
				next.ServeHTTP(w, r)
				return
			}
			key := r.Header.Get(headerIdempotencyKey)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}
			scoped := r.Method + " " + r.URL.Path + " " + key
			ctx := r.Context()

			stored, err := store.Reserve(ctx, scoped)
			switch {
			case errors.Is(err, domain.ErrRequestInProgress):
				writeServiceError(w, err)
				return
			case err != nil:
				// Store unavailable: serve the request without replay protection.
				logger.Warn("idempotency store unavailable", "error", err)
				next.ServeHTTP(w, r)
				return
			case stored != nil:
				replay(w, stored, logger)
				return
			}

			// The request context may already be cancelled once the client
			// has its answer.
			bg := context.WithoutCancel(ctx)

			// A panicking handler never reaches Complete; free the key so a
			// retry is not rejected as in progress until the record expires.
			finished := false
			defer func() {
				if finished {
					return
				}
				if err := store.Release(bg, scoped); err != nil {
					logger.Warn("release idempotency key", "error", err)
				}
			}()

			rec := &responseCapture{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			finished = true

			if rec.status >= http.StatusInternalServerError {
				if err := store.Release(bg, scoped); err != nil {
					logger.Warn("release idempotency key", "error", err)
				}
				return
			}
			payload, err := json.Marshal(storedResponse{
				Status:      rec.status,
				ContentType: rec.Header().Get("Content-Type"),
				Body:        rec.body.Bytes(),
			})
			if err == nil {
				err = store.Complete(bg, scoped, payload)
			}
			if err != nil {
				logger.Warn("store idempotent response", "error", err)
			}
		})
	}
}

func replay(w http.ResponseWriter, stored []byte, logger *slog.Logger) {
	var resp storedResponse
	if err := json.Unmarshal(stored, &resp); err != nil {
		logger.Error("decode stored response", "error", err)
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		return
	}
	if resp.ContentType != "" {
		w.Header().Set("Content-Type", resp.ContentType)
	}
	w.Header().Set(headerIdempotencyReplayed, "true")
	w.WriteHeader(resp.Status)
	_, _ = w.Write(resp.Body)
}

// responseCapture forwards the response while keeping a copy of it.
type responseCapture struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (c *responseCapture) WriteHeader(code int) {
	c.status = code
	c.ResponseWriter.WriteHeader(code)
}

func (c *responseCapture) Write(b []byte) (int, error) {
	c.body.Write(b)
	return c.ResponseWriter.Write(b)
}
