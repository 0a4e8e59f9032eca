package kafkawrapper

import (
	"context"
	"testing"
	"time"

	kafka "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducerDefaults(t *testing.T) {
	p := NewProducer(ProducerConfig{Brokers: []string{"localhost:9092"}})
	defer p.Close()

	assert.Equal(t, 100, p.w.BatchSize)
	assert.Equal(t, int64(1<<20), p.w.BatchBytes)
	assert.Equal(t, 10*time.Millisecond, p.w.BatchTimeout)
	assert.Equal(t, kafka.RequireOne, p.w.RequiredAcks)
	assert.IsType(t, &kafka.Hash{}, p.w.Balancer)
	assert.False(t, p.w.Async)
}

func TestNilProducer(t *testing.T) {
	var p *Producer
	err := p.Publish(context.Background(), "trades", nil, []byte("{}"), nil)
	assert.ErrorIs(t, err, ErrProducerClosed)
	require.NoError(t, p.Close())
}

func TestToHeaders(t *testing.T) {
	assert.Nil(t, toHeaders(nil))

	hs := toHeaders(map[string]string{"seq": "7"})
	require.Len(t, hs, 1)
	assert.Equal(t, "seq", hs[0].Key)
	assert.Equal(t, []byte("7"), hs[0].Value)
}
