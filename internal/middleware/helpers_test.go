//go:build !integration

package middleware

import (
	"sync"

	"github.com/guttosm/fba-quote-service/internal/domain/model"
)

// captureRecorder keeps every recorded audit event.
type captureRecorder struct {
	mu     sync.Mutex
	events []*model.AuditEvent
}

func (r *captureRecorder) Record(e *model.AuditEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *captureRecorder) all() []*model.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*model.AuditEvent(nil), r.events...)
}
