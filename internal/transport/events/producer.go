// Package events publishes entity lifecycle events to Kafka so
// downstream consumers can follow what happens to companies and
// transports without polling storage.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var jsonMarshal = json.Marshal

type EventType string

const (
	CompanyCreated   EventType = "company_created"
	CompanyUpdated   EventType = "company_updated"
	CompanyDeleted   EventType = "company_deleted"
	TransportCreated EventType = "transport_created"
	TransportUpdated EventType = "transport_updated"
	TransportDeleted EventType = "transport_deleted"
	TransportPaid    EventType = "transport_paid"
)

// Event is the envelope written to the topic for every lifecycle change.
type Event struct {
	ID         string
	Type       EventType
	Entity     string
	EntityID   uint
	OccurredAt time.Time
}

type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer    KafkaWriter
	events    chan Event
	logger    *zap.Logger
	closeChan chan struct{}
}

func NewProducer(brokers []string, logger *zap.Logger, topic string) (*Producer, error) {
	// Create topic if it doesn't exist
	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	topicConfigs := []kafka.TopicConfig{
		{
			Topic:             topic,
			NumPartitions:     3,
			ReplicationFactor: 1,
		},
	}

	err = conn.CreateTopics(topicConfigs...)
	if err != nil {
		logger.Warn("failed to create topic (may already exist)", zap.Error(err))
	}
	p := &Producer{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
			Topic:    topic,
		},
		events:    make(chan Event, 1000),
		logger:    logger.Named("event_producer"),
		closeChan: make(chan struct{}),
	}

	go p.eventLoop()
	return p, nil
}

// Produce enqueues a lifecycle event without blocking. Events are
// dropped with a warning when the queue is full.
func (p *Producer) Produce(eventType EventType, entity string, entityID uint) {
	event := Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Entity:     entity,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
	}
	select {
	case p.events <- event:
	default:
		p.logger.Warn("event queue full, dropping event",
			zap.String("event_type", string(eventType)),
			zap.String("entity", entity),
			zap.Uint("entity_id", entityID),
		)
	}
}

func (p *Producer) eventLoop() {
	for {
		select {
		case event := <-p.events:
			p.sendEvent(context.Background(), event)
		case <-p.closeChan:
			return
		}
	}
}

func (p *Producer) sendEvent(ctx context.Context, event Event) {
	value, err := jsonMarshal(event)
	if err != nil {
		p.logger.Error("failed to serialize event",
			zap.Error(err),
			zap.String("event_id", event.ID),
		)
		return
	}
	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("%s-%d", event.Entity, event.EntityID)),
		Value: value,
	}
	err = backoff.Retry(func() error {
		return p.writer.WriteMessages(ctx, msg)
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5))
	if err != nil {
		p.logger.Error("failed to produce event",
			zap.Error(err),
			zap.String("event_type", string(event.Type)),
			zap.String("entity", event.Entity),
			zap.Uint("entity_id", event.EntityID),
		)
	}
}

func (p *Producer) Close() {
	close(p.closeChan)
	if err := p.writer.Close(); err != nil {
		p.logger.Error("failed to close Kafka writer", zap.Error(err))
	}
}
