package outbox

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"

	"example.com/exerciselog/internal/events"
)

// KafkaProducer holds one writer per event topic. The topic set is fixed at
// construction; an outbox row naming an unknown topic is a bug.
type KafkaProducer struct {
	writers map[string]*kafka.Writer
}

// NewKafkaProducer creates writers for every topic the service publishes to.
func NewKafkaProducer(brokers []string) *KafkaProducer {
	writers := make(map[string]*kafka.Writer)
	for _, topic := range []string{events.TopicUserEvents, events.TopicExerciseEvents} {
		writers[topic] = &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireAll,
			Compression:  kafka.Snappy,
			Async:        false,
		}
	}
	return &KafkaProducer{writers: writers}
}

// WriteMessages writes messages to the given topic.
func (p *KafkaProducer) WriteMessages(ctx context.Context, topic string, msgs ...kafka.Message) error {
	writer, ok := p.writers[topic]
	if !ok {
		return fmt.Errorf("no writer for topic %s", topic)
	}
	return writer.WriteMessages(ctx, msgs...)
}

// Close releases all writers.
func (p *KafkaProducer) Close() error {
	var firstErr error
	for _, writer := range p.writers {
		if err := writer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
