package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	kafkaGo "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Rafa37412/CeFoods/internal/messaging"
)

type kafkaBroker struct {
	brokers []string
	writer  *kafkaGo.Writer
	log     *zap.SugaredLogger
}

// NewKafkaBroker creates a Kafka publisher and subscriber sharing one writer.
func NewKafkaBroker(brokers []string, log *zap.SugaredLogger) (messaging.Publisher, messaging.Subscriber) {
	kb := &kafkaBroker{
		brokers: brokers,
		writer: &kafkaGo.Writer{
			Addr:                   kafkaGo.TCP(brokers...),
			Balancer:               &kafkaGo.Hash{},
			AllowAutoTopicCreation: true,
		},
		log: log,
	}
	return kb, kb
}

func (k *kafkaBroker) PublishEvent(ctx context.Context, topic string, key string, event any) error {
	msg, err := encode(topic, key, event)
	if err != nil {
		return err
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write to %s: %w", topic, err)
	}
	return nil
}

func encode(topic, key string, event any) (kafkaGo.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return kafkaGo.Message{}, fmt.Errorf("failed to marshal event: %w", err)
	}
	return kafkaGo.Message{Topic: topic, Key: []byte(key), Value: payload}, nil
}

func (k *kafkaBroker) Close() error {
	return k.writer.Close()
}

func (k *kafkaBroker) Consume(ctx context.Context, topic string, groupID string, handler func(ctx context.Context, payload []byte) error) {
	reader := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers: k.brokers,
		Topic:   topic,
		GroupID: groupID,
	})
	defer reader.Close()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				k.log.Infow("Consumer shutting down", "topic", topic)
				return
			}
			k.log.Errorw("Error reading message", "topic", topic, "err", err)
			continue
		}

		if err := handler(ctx, msg.Value); err != nil {
			k.log.Errorw("Error handling message", "topic", topic, "offset", msg.Offset, "err", err)
		}
	}
}
