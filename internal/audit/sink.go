// Package audit records append-only audit events without blocking callers.
//
// Events are handed to a Recorder. The AsyncSink buffers them and a small
// worker pool forwards them to a Writer (MongoDB, Kafka, RabbitMQ or the
// local log). A full buffer drops the event; a failed write becomes a local
// warning. Neither is ever reported back to the caller.
package audit

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"github.com/guttosm/fba-quote-service/internal/logger"
	"github.com/guttosm/fba-quote-service/internal/metrics"
)

// Writer persists or forwards one event.
type Writer interface {
	Write(ctx context.Context, event *model.AuditEvent) error
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(ctx context.Context, event *model.AuditEvent) error

// Write calls f.
func (f WriterFunc) Write(ctx context.Context, event *model.AuditEvent) error {
	return f(ctx, event)
}

// Recorder accepts events fire-and-forget.
type Recorder interface {
	Record(event *model.AuditEvent)
}

// Nop discards every event.
type Nop struct{}

// Record does nothing.
func (Nop) Record(*model.AuditEvent) {}

// Tee returns a Writer that writes to every writer and joins their errors.
func Tee(writers ...Writer) Writer {
	return WriterFunc(func(ctx context.Context, event *model.AuditEvent) error {
		var errs []error
		for _, w := range writers {
			if err := w.Write(ctx, event); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}

// SinkConfig tunes the async sink.
type SinkConfig struct {
	BufferSize   int
	Workers      int
	WriteTimeout time.Duration
}

// DefaultSinkConfig returns the defaults used when nothing is configured.
func DefaultSinkConfig() SinkConfig {
	return SinkConfig{
		BufferSize:   1000,
		Workers:      2,
		WriteTimeout: 5 * time.Second,
	}
}

// AsyncSink is a bounded Recorder backed by a worker pool.
type AsyncSink struct {
	writer       Writer
	eventCh      chan *model.AuditEvent
	stopCh       chan struct{}
	stopOnce     sync.Once
	stopMu       sync.RWMutex
	stopped      bool
	wg           sync.WaitGroup
	writeTimeout time.Duration

	enqueued int64
	dropped  int64
	written  int64
	failed   int64
}

// NewAsyncSink starts the workers. Stop must be called to drain the buffer.
func NewAsyncSink(writer Writer, cfg SinkConfig) *AsyncSink {
	def := DefaultSinkConfig()
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = def.BufferSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}

	s := &AsyncSink{
		writer:       writer,
		eventCh:      make(chan *model.AuditEvent, cfg.BufferSize),
		stopCh:       make(chan struct{}),
		writeTimeout: cfg.WriteTimeout,
	}
	for i := 0; i < cfg.Workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
	return s
}

func (s *AsyncSink) worker() {
	defer s.wg.Done()
	for {
		select {
		case event := <-s.eventCh:
			s.write(event)
		case <-s.stopCh:
			for {
				select {
				case event := <-s.eventCh:
					s.write(event)
				default:
					return
				}
			}
		}
	}
}

func (s *AsyncSink) write(event *model.AuditEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
	defer cancel()

	if err := s.writer.Write(ctx, event); err != nil {
		atomic.AddInt64(&s.failed, 1)
		metrics.RecordAuditEvent(event.Stream, "failed")
		log := logger.For("audit")
		log.Warn().Err(err).
			Str("stream", event.Stream).
			Str("event_id", event.EventID).
			Msg("Failed to write audit event")
		return
	}
	atomic.AddInt64(&s.written, 1)
	metrics.RecordAuditEvent(event.Stream, "written")
}

// Record stamps the event id and timestamp when missing and enqueues it.
// Events are dropped when the buffer is full or the sink is stopped.
func (s *AsyncSink) Record(event *model.AuditEvent) {
	if event == nil {
		return
	}
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	// Stop takes the write lock, so an accepted event is always seen by the drain.
	s.stopMu.RLock()
	defer s.stopMu.RUnlock()
	if s.stopped {
		s.drop(event)
		return
	}

	select {
	case s.eventCh <- event:
		atomic.AddInt64(&s.enqueued, 1)
		metrics.RecordAuditEvent(event.Stream, "enqueued")
	default:
		s.drop(event)
	}
}

func (s *AsyncSink) drop(event *model.AuditEvent) {
	atomic.AddInt64(&s.dropped, 1)
	metrics.RecordAuditEvent(event.Stream, "dropped")
}

// Stop waits for the workers to drain the buffer. It is safe to call twice.
func (s *AsyncSink) Stop() {
	s.stopOnce.Do(func() {
		s.stopMu.Lock()
		s.stopped = true
		close(s.stopCh)
		s.stopMu.Unlock()

		s.wg.Wait()
	})
}

// Stats is a snapshot of sink counters.
type Stats struct {
	Enqueued int64 `json:"enqueued"`
	Dropped  int64 `json:"dropped"`
	Written  int64 `json:"written"`
	Failed   int64 `json:"failed"`
}

// Stats returns the current counters.
func (s *AsyncSink) Stats() Stats {
	return Stats{
		Enqueued: atomic.LoadInt64(&s.enqueued),
		Dropped:  atomic.LoadInt64(&s.dropped),
		Written:  atomic.LoadInt64(&s.written),
		Failed:   atomic.LoadInt64(&s.failed),
	}
}
