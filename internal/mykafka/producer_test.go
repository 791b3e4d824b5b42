package mykafka

import (
	"context"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer_NoBrokers(t *testing.T) {
	_, err := NewProducer(nil)
	require.Error(t, err)
}

func TestNewWriter_FlushesQuickly(t *testing.T) {
	w := newWriter([]string{"k1:9092"})
	defer w.Close()

	assert.LessOrEqual(t, w.BatchTimeout, 10*time.Millisecond)
	assert.NotZero(t, w.BatchTimeout)
	assert.Equal(t, kafka.RequireOne, w.RequiredAcks)
	assert.False(t, w.Async)
}

func TestPublishEvent_RejectsUnencodable(t *testing.T) {
	p, err := NewProducer([]string{"127.0.0.1:1"})
	require.NoError(t, err)
	defer p.Close()

	err = p.PublishEvent(context.Background(), TopicOrders, "k", map[string]any{"bad": make(chan int)})
	require.ErrorContains(t, err, "json.Marshal")
}
