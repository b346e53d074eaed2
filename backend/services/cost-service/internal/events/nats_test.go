package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energytrack/backend/services/cost-service/internal/models"
)

type message struct {
	subject string
	data    []byte
}

type fakeConn struct {
	messages []message
	err      error
}

func (c *fakeConn) Publish(subject string, data []byte) error {
	if c.err != nil {
		return c.err
	}
	c.messages = append(c.messages, message{subject: subject, data: data})
	return nil
}

func TestPublishEncodesEvent(t *testing.T) {
	conn := &fakeConn{}
	p := newPublisher(conn, "  energy.cost. ")

	occurred := time.Date(2024, time.March, 14, 10, 0, 0, 0, time.UTC)
	err := p.Publish(context.Background(), models.CostEvent{
		Kind: models.EventCostDeleted,
		Record: models.CostRecord{
			ID:         "rec-1",
			UserID:     "u1",
			EnergyType: models.EnergyGas,
			TotalCost:  decimal.RequireFromString("9700.00"),
		},
		OccurredAt: occurred,
	})
	require.NoError(t, err)

	require.Len(t, conn.messages, 1)
	assert.Equal(t, "energy.cost.deleted", conn.messages[0].subject)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(conn.messages[0].data, &decoded))
	assert.Equal(t, "deleted", decoded["kind"])
	record := decoded["record"].(map[string]any)
	assert.Equal(t, "rec-1", record["id"])
	assert.Equal(t, "9700.00", record["total_cost"])
}

func TestDefaultPrefix(t *testing.T) {
	p := newPublisher(&fakeConn{}, "")
	assert.Equal(t, "energy.cost.created", p.Subject(models.EventCostCreated))
}

func TestPublishErrors(t *testing.T) {
	conn := &fakeConn{err: errors.New("nats: connection closed")}
	p := newPublisher(conn, "costs")

	err := p.Publish(context.Background(), models.CostEvent{Kind: models.EventCostCreated})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "costs.created")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Publish(ctx, models.CostEvent{Kind: models.EventCostCreated}), context.Canceled)
}

func TestCloseWithoutConnection(t *testing.T) {
	assert.NoError(t, newPublisher(&fakeConn{}, "").Close())
}
