package pubsub

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// New connects to Google Cloud Pub/Sub. Topic names are the event types,
// optionally prefixed with topicPrefix.
func New(ctx context.Context, projectID, topicPrefix string) (PubSubClient, func(), error) {
	pubSubC, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}
	teardown := func() {
		pubSubC.Close()
	}

	return &client{
		client:   pubSubC,
		prefix:   topicPrefix,
		teardown: teardown,
	}, teardown, nil
}

func (c *client) SendMessage(topic EventType, data any) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msgpackData, err := Encode(topic, data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	message := &pubsub.Message{
		Data:       msgpackData,
		Attributes: map[string]string{"type": string(topic)},
	}
	topicName := c.prefix + string(topic)
	result := c.client.Topic(topicName).Publish(ctx, message)
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", topicName)
		return err
	}
	log.Debug("SendMessage", "serverID", serverID, "topic", topicName)
	return nil
}

func (c *client) ProcessMessage(data []byte, returnValue any) error {
	return Decode(data, returnValue)
}

// Encode wraps data in an Envelope and marshals both with MessagePack.
func Encode(topic EventType, data any) ([]byte, error) {
	payload, err := msgpack.Marshal(data)
	if err != nil {
		return nil, err
	}
	return msgpack.Marshal(Envelope{
		ID:      uuid.NewString(),
		Type:    topic,
		SentAt:  time.Now().UTC(),
		Payload: payload,
	})
}

// Decode unwraps an Envelope produced by Encode into returnValue.
func Decode(data []byte, returnValue any) error {
	var env Envelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		log.Error("MessagePack unmarshal error", "error", err)
		return err
	}
	if err := msgpack.Unmarshal(env.Payload, returnValue); err != nil {
		log.Error("MessagePack unmarshal error", "error", err, "type", env.Type)
		return err
	}
	return nil
}
