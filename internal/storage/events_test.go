package storage_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"marketplace-client/internal/domain"
	"marketplace-client/internal/mocks"
	"marketplace-client/internal/storage"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleEvent() domain.Event {
	return domain.Event{
		Type:         domain.EventOrderPlaced,
		OrderID:      42,
		RestaurantID: 7,
		Status:       string(domain.OrderPending),
		Timestamp:    time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestKafkaPublisher_Publish(t *testing.T) {
	writer := mocks.NewMessageWriter(t)
	publisher := storage.NewKafkaPublisher(writer)

	writer.On("WriteMessages", mock.Anything, mock.MatchedBy(func(msg kafka.Message) bool {
		var event domain.Event
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return false
		}
		return string(msg.Key) == "42" && event.Type == domain.EventOrderPlaced && event.RestaurantID == 7
	})).Return(nil).Once()

	require.NoError(t, publisher.Publish(ctx, sampleEvent()))
}

func TestKafkaPublisher_PublishError(t *testing.T) {
	writer := mocks.NewMessageWriter(t)
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("leader not available")).Once()

	err := storage.NewKafkaPublisher(writer).Publish(ctx, sampleEvent())
	assert.EqualError(t, err, "leader not available")
}

func TestAMQPPublisher_Publish(t *testing.T) {
	ch := mocks.NewChannel(t)
	publisher := storage.NewAMQPPublisherWithChannel(ch, "marketplace.events")
	event := sampleEvent()

	ch.On("PublishWithContext", mock.Anything, "marketplace.events", domain.EventOrderPlaced, false, false,
		mock.MatchedBy(func(msg amqp.Publishing) bool {
			var decoded domain.Event
			if err := json.Unmarshal(msg.Body, &decoded); err != nil {
				return false
			}
			return msg.ContentType == "application/json" &&
				msg.DeliveryMode == amqp.Persistent &&
				msg.Timestamp.Equal(event.Timestamp) &&
				decoded.OrderID == 42
		})).Return(nil).Once()
	ch.On("Close").Return(nil).Once()

	require.NoError(t, publisher.Publish(ctx, event))
	require.NoError(t, publisher.Close())
}
