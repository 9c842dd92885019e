package events

import (
	"context"
	"testing"

	"servicehub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NoBrokersIsNop(t *testing.T) {
	p := New(nil, "booking-events")
	_, ok := p.(NopPublisher)
	require.True(t, ok)

	assert.NoError(t, p.Publish(context.Background(), models.BookingEvent{BookingID: "b1"}))
	assert.NoError(t, p.Close())
}

func TestNew_WithBrokersIsKafka(t *testing.T) {
	p := New([]string{"localhost:9092"}, "booking-events")
	k, ok := p.(*KafkaPublisher)
	require.True(t, ok)
	assert.Equal(t, "booking-events", k.writer.Topic)
	assert.NoError(t, k.Close())
}
