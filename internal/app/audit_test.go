//go:build !integration

package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/guttosm/fba-quote-service/config"
	"github.com/guttosm/fba-quote-service/internal/audit"
	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"github.com/guttosm/fba-quote-service/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sinkConfig(backend string) config.AuditConfig {
	return config.AuditConfig{Backend: backend, BufferSize: 10, Workers: 1, WriteTimeout: time.Second}
}

func TestInitializeAudit(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.AuditConfig
		wantNop bool
	}{
		{name: "none disables the trail", cfg: sinkConfig(AuditBackendNone), wantNop: true},
		{name: "log", cfg: sinkConfig(AuditBackendLog)},
		{name: "mongo without database logs instead", cfg: sinkConfig(AuditBackendMongo)},
		{name: "kafka without brokers logs instead", cfg: sinkConfig(AuditBackendKafka)},
		{name: "unknown backend logs", cfg: sinkConfig("carrier-pigeon")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := InitializeAudit(tt.cfg, nil)
			defer a.Close()

			require.NotNil(t, a.Recorder)
			_, isNop := a.Recorder.(audit.Nop)
			assert.Equal(t, tt.wantNop, isNop)
			assert.Equal(t, tt.wantNop, a.Sink == nil)
		})
	}
}

func TestInitializeAudit_KafkaWithBrokers(t *testing.T) {
	cfg := sinkConfig(AuditBackendKafka)
	cfg.KafkaBrokers = []string{"127.0.0.1:1"}
	cfg.KafkaTopic = "fba-audit-events"

	a := InitializeAudit(cfg, nil)
	require.NotNil(t, a.Sink)
	assert.Len(t, a.closers, 1)
	a.Close()
}

func TestInitializeAudit_DatabaseAlwaysReceivesEvents(t *testing.T) {
	repo := &mocks.MockAuditEventsRepositoryInterface{}
	var wg sync.WaitGroup
	wg.Add(1)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(e *model.AuditEvent) bool {
		return e.Stream == model.StreamBookings
	})).Run(func(mock.Arguments) { wg.Done() }).Return(nil).Once()

	a := InitializeAudit(sinkConfig(AuditBackendLog), &DatabaseComponents{AuditRepo: repo})
	a.Recorder.Record(model.NewAuditEvent(model.StreamBookings, model.AuditStatusSuccess, "quotation saved"))
	wg.Wait()
	a.Close()

	repo.AssertExpectations(t)
	assert.Equal(t, int64(1), a.Sink.Stats().Written)
}

func TestAuditComponents_CloseReportsTransportErrors(t *testing.T) {
	closed := 0
	a := &AuditComponents{
		Recorder: audit.Nop{},
		closers: []func() error{
			func() error { closed++; return nil },
			func() error { closed++; return context.Canceled },
		},
	}
	assert.NotPanics(t, a.Close)
	assert.Equal(t, 2, closed)
}
