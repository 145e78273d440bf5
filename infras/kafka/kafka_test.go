package kafka_test

import (
	"hotel/infras/kafka"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ID     string `json:"id"`
	Nights int    `json:"nights"`
}

func TestMessageRoundTrip(t *testing.T) {
	message := kafka.Message{Key: "b-1", Value: payload{ID: "b-1", Nights: 3}}

	kafkaMessage, err := message.ToKafkaMessage()
	require.NoError(t, err)

	assert.Equal(t, []byte("b-1"), kafkaMessage.Key)
	assert.JSONEq(t, `{"id":"b-1","nights":3}`, string(kafkaMessage.Value))

	decoded, err := kafka.Decode[payload](kafkaMessage)
	require.NoError(t, err)
	assert.Equal(t, payload{ID: "b-1", Nights: 3}, decoded)
}

func TestToKafkaMessageUnsupportedValue(t *testing.T) {
	message := kafka.Message{Key: "b-1", Value: make(chan int)}

	_, err := message.ToKafkaMessage()
	assert.Error(t, err)
}

func TestDecodeInvalidJSON(t *testing.T) {
	_, err := kafka.Decode[payload](kafkaGo.Message{Value: []byte("{")})
	assert.Error(t, err)
}
