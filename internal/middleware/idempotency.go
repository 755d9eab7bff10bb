package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// IdempotencyKeyHeader is the HTTP header carrying the client's key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the store.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
)

// IdempotencyConfig bounds the replay store.
type IdempotencyConfig struct {
	TTL        time.Duration
	MaxEntries int
}

// DefaultIdempotencyConfig keeps replays for ten minutes, long enough for a
// client to retry a rating that timed out on its side.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{TTL: 10 * time.Minute, MaxEntries: 1000}
}

type storedResponse struct {
	status    int
	header    http.Header
	body      []byte
	expiresAt time.Time
}

// IdempotencyStore keeps successful POST responses keyed by idempotency key,
// path and body.
type IdempotencyStore struct {
	mu         sync.Mutex
	items      map[string]*storedResponse
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	stopCh     chan struct{}
	stopOnce   sync.Once
}

// NewIdempotencyStore creates a store and starts its cleanup goroutine.
func NewIdempotencyStore(cfg IdempotencyConfig) *IdempotencyStore {
	defaults := DefaultIdempotencyConfig()
	if cfg.TTL <= 0 {
		cfg.TTL = defaults.TTL
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = defaults.MaxEntries
	}
	s := &IdempotencyStore{
		items:      make(map[string]*storedResponse),
		ttl:        cfg.TTL,
		maxEntries: cfg.MaxEntries,
		now:        time.Now,
		stopCh:     make(chan struct{}),
	}
	go s.cleanupLoop()
	return s
}

func (s *IdempotencyStore) get(key string) (*storedResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp, ok := s.items[key]
	if !ok {
		return nil, false
	}
	if !s.now().Before(resp.expiresAt) {
		delete(s.items, key)
		return nil, false
	}
	return resp, true
}

func (s *IdempotencyStore) set(key string, resp *storedResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[key]; !exists && len(s.items) >= s.maxEntries {
		s.evictOldestLocked()
	}
	resp.expiresAt = s.now().Add(s.ttl)
	s.items[key] = resp
}

func (s *IdempotencyStore) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	for k, v := range s.items {
		if oldestKey == "" || v.expiresAt.Before(oldest) {
			oldestKey, oldest = k, v.expiresAt
		}
	}
	delete(s.items, oldestKey)
}

// Len reports the number of stored responses, expired ones included.
func (s *IdempotencyStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *IdempotencyStore) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

func (s *IdempotencyStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, v := range s.items {
		if !now.Before(v.expiresAt) {
			delete(s.items, k)
		}
	}
}

// Stop ends the cleanup goroutine. Safe to call more than once.
func (s *IdempotencyStore) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

// Idempotency replays the stored response when a POST arrives again with the
// same Idempotency-Key, path and body. Only 2xx responses are stored, so a
// rejected or failed rating can be retried with the same key.
func Idempotency(store *IdempotencyStore) gin.HandlerFunc {
	if store == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		idemKey := c.GetHeader(IdempotencyKeyHeader)
		if c.Request.Method != http.MethodPost || idemKey == "" {
			c.Next()
			return
		}

		key, err := replayKey(idemKey, c.Request)
		if err != nil {
			c.Next()
			return
		}

		if resp, ok := store.get(key); ok {
			for k, values := range resp.header {
				for _, v := range values {
					c.Writer.Header().Add(k, v)
				}
			}
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(resp.status, resp.header.Get("Content-Type"), resp.body)
			c.Abort()
			return
		}

		capture := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = capture
		c.Next()

		status := capture.Status()
		if !capture.Written() || status < 200 || status >= 300 {
			return
		}
		store.set(key, &storedResponse{
			status: status,
			header: replayHeaders(capture.Header()),
			body:   capture.body.Bytes(),
		})
	}
}

// replayKey hashes the idempotency key with the path and body, restoring the
// body for the handler.
func replayKey(idemKey string, req *http.Request) (string, error) {
	hasher := sha256.New()
	hasher.Write([]byte(idemKey))
	hasher.Write([]byte{0})
	hasher.Write([]byte(req.URL.Path))
	hasher.Write([]byte{0})

	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return "", err
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
		hasher.Write(body)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// replayHeaders keeps the content headers. Request ids and rate limit
// counters belong to the live request.
func replayHeaders(h http.Header) http.Header {
	out := http.Header{}
	for _, name := range []string{"Content-Type", "Content-Language"} {
		if v := h.Values(name); len(v) > 0 {
			out[name] = append([]string(nil), v...)
		}
	}
	return out
}

type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
