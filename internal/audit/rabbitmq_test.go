//go:build !integration

package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/guttosm/fba-quote-service/internal/domain/model"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
}

func (f *fakePublisher) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func TestRabbitMQWriter_Write(t *testing.T) {
	p := &fakePublisher{}
	w := NewRabbitMQWriter(p, "fba.audit")

	e := model.NewAuditEvent(model.StreamExFreight, model.AuditStatusSuccess, "rated")
	e.EventID = "evt-9"
	require.NoError(t, w.Write(context.Background(), e))

	assert.Equal(t, "fba.audit", p.exchange)
	assert.Equal(t, "exfreight", p.key)
	assert.Equal(t, "application/json", p.msg.ContentType)
	assert.Equal(t, amqp.Persistent, p.msg.DeliveryMode)
	assert.Equal(t, "evt-9", p.msg.MessageId)
	assert.Contains(t, string(p.msg.Body), `"stream":"exfreight"`)
	assert.NoError(t, w.Close())
}

func TestRabbitMQWriter_PublishError(t *testing.T) {
	w := NewRabbitMQWriter(&fakePublisher{err: errors.New("channel closed")}, "fba.audit")
	err := w.Write(context.Background(), model.NewAuditEvent(model.StreamBookings, "", ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel closed")
}
