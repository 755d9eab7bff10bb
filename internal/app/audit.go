// Package app provides audit sink initialization.
package app

import (
	"github.com/guttosm/fba-quote-service/config"
	"github.com/guttosm/fba-quote-service/internal/audit"
	"github.com/rs/zerolog/log"
)

// Audit backends accepted by AUDIT_BACKEND.
const (
	AuditBackendMongo    = "mongo"
	AuditBackendKafka    = "kafka"
	AuditBackendRabbitMQ = "rabbitmq"
	AuditBackendLog      = "log"
	AuditBackendNone     = "none"
)

// AuditComponents holds the recorder handed to services and the functions
// that release its transports.
type AuditComponents struct {
	Recorder audit.Recorder
	Sink     *audit.AsyncSink
	closers  []func() error
}

// Close drains the sink and closes the transports.
func (a *AuditComponents) Close() {
	if a.Sink != nil {
		a.Sink.Stop()
	}
	for _, c := range a.closers {
		if err := c(); err != nil {
			log.Warn().Err(err).Msg("Failed to close audit transport")
		}
	}
}

// InitializeAudit builds the audit recorder. When MongoDB is available its
// audit collection always receives events so that they can be queried;
// the backend adds a transport beside it.
//
// The "none" backend disables the trail entirely.
func InitializeAudit(cfg config.AuditConfig, db *DatabaseComponents) *AuditComponents {
	if cfg.Backend == AuditBackendNone {
		return &AuditComponents{Recorder: audit.Nop{}}
	}

	out := &AuditComponents{}
	var writers []audit.Writer
	if db != nil && db.AuditRepo != nil {
		writers = append(writers, audit.WriterFunc(db.AuditRepo.Create))
	}

	switch cfg.Backend {
	case AuditBackendMongo:
		if len(writers) == 0 {
			log.Warn().Msg("Audit backend is mongo but MongoDB is unavailable - logging audit events")
			writers = append(writers, audit.LogWriter{})
		}
	case AuditBackendKafka:
		if len(cfg.KafkaBrokers) == 0 {
			log.Warn().Msg("Audit backend is kafka but KAFKA_BROKERS is empty - logging audit events")
			writers = append(writers, audit.LogWriter{})
			break
		}
		kw := audit.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
		writers = append(writers, kw)
		out.closers = append(out.closers, kw.Close)
	case AuditBackendRabbitMQ:
		rw, err := audit.DialRabbitMQ(cfg.RabbitMQURL, cfg.RabbitMQExchange)
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ unavailable - logging audit events")
			writers = append(writers, audit.LogWriter{})
			break
		}
		writers = append(writers, rw)
		out.closers = append(out.closers, rw.Close)
	default:
		writers = append(writers, audit.LogWriter{})
	}

	out.Sink = audit.NewAsyncSink(audit.Tee(writers...), audit.SinkConfig{
		BufferSize:   cfg.BufferSize,
		Workers:      cfg.Workers,
		WriteTimeout: cfg.WriteTimeout,
	})
	out.Recorder = out.Sink
	log.Info().Str("backend", cfg.Backend).Int("writers", len(writers)).Msg("Audit sink started")
	return out
}
