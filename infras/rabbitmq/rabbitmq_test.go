package rabbitmq_test

import (
	"hotel/config"
	"hotel/infras/rabbitmq"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ID    string `json:"id"`
	Total int64  `json:"total"`
}

func TestDecode(t *testing.T) {
	value, err := rabbitmq.Decode[payload](amqp.Delivery{Body: []byte(`{"id":"b-1","total":500000}`)})
	require.NoError(t, err)

	assert.Equal(t, payload{ID: "b-1", Total: 500000}, value)

	_, err = rabbitmq.Decode[payload](amqp.Delivery{Body: []byte("not json")})
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	assert.NotNil(t, rabbitmq.New(&config.Config{}))
}
