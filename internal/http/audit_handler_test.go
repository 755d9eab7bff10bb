//go:build !integration

package http

import (
	"net/http"
	"testing"

	"github.com/guttosm/fba-quote-service/internal/domain/dto"
	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"github.com/guttosm/fba-quote-service/internal/mocks"
	"github.com/guttosm/fba-quote-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAuditHandler_ListAuditEvents(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		setup          func(*mocks.MockAuditService)
		expectedStatus int
		wantLimit      int
		wantTotal      int64
	}{
		{
			name:  "filters and default page",
			query: "?stream=jbhunt&status=Error",
			setup: func(m *mocks.MockAuditService) {
				match := mock.MatchedBy(func(o model.AuditQueryOptions) bool {
					return o.Stream == model.StreamJBHunt && o.Status == model.AuditStatusError
				})
				m.On("QueryEvents", mock.Anything, match).
					Return([]*model.AuditEvent{model.NewAuditEvent(model.StreamJBHunt, model.AuditStatusError, "no rates")}, nil)
				m.On("CountEvents", mock.Anything, match).Return(int64(12), nil)
			},
			expectedStatus: http.StatusOK,
			wantLimit:      50,
			wantTotal:      12,
		},
		{
			name:  "explicit page and time window",
			query: "?limit=900&skip=10&start_time=2025-07-22T00:00:00Z&end_time=2025-07-23T00:00:00Z",
			setup: func(m *mocks.MockAuditService) {
				match := mock.MatchedBy(func(o model.AuditQueryOptions) bool {
					return o.StartTime != nil && o.EndTime != nil && o.Limit == 900 && o.Skip == 10
				})
				m.On("QueryEvents", mock.Anything, match).Return([]*model.AuditEvent{}, nil)
				m.On("CountEvents", mock.Anything, match).Return(int64(0), nil)
			},
			expectedStatus: http.StatusOK,
			wantLimit:      500,
		},
		{name: "bad time bound", query: "?start_time=yesterday", expectedStatus: http.StatusBadRequest},
		{name: "bad limit", query: "?limit=abc", expectedStatus: http.StatusBadRequest},
		{name: "negative skip", query: "?skip=-1", expectedStatus: http.StatusBadRequest},
		{
			name: "mongo disabled",
			setup: func(m *mocks.MockAuditService) {
				m.On("QueryEvents", mock.Anything, mock.Anything).Return(nil, service.ErrRepositoryNotConfigured)
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mocks.MockAuditService{}
			if tt.setup != nil {
				tt.setup(svc)
			}
			router := newTestRouter(Handlers{Audit: NewAuditHandler(svc)})

			w := do(router, http.MethodGet, "/api/audit-events"+tt.query, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
			if w.Code != http.StatusOK {
				return
			}
			var resp dto.AuditEventsResponse
			decodeData(t, w, &resp)
			assert.Equal(t, tt.wantLimit, resp.Limit)
			assert.Equal(t, tt.wantTotal, resp.Total)
			assert.NotNil(t, resp.Events)
		})
	}
}
