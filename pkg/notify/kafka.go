package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"agromonitor/pkg/logger"
	"agromonitor/pkg/metrics"
)

var ErrPublisherClosed = errors.New("publisher is closed")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events keyed by firm so one firm's events stay ordered
// on a single partition.
type KafkaPublisher struct {
	w      messageWriter
	topic  string
	closed atomic.Bool
}

func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("at least one broker is required")
	}
	if topic == "" {
		return nil, errors.New("topic is required")
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		WriteTimeout: 5 * time.Second,
		RequiredAcks: kafka.RequireOne,
		MaxAttempts:  3,
	}
	return &KafkaPublisher{w: w, topic: topic}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev Event) error {
	if p.closed.Load() {
		return ErrPublisherClosed
	}
	data, err := json.Marshal(ev)
	if err != nil {
		metrics.NotifyPublishTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("serialize event: %w", err)
	}

	var firm, rule string
	if ev.Alert != nil {
		firm = strconv.FormatUint(uint64(ev.Alert.FirmID), 10)
		rule = ev.Alert.RuleID
	}
	msg := kafka.Message{
		Key:   []byte(firm),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(ev.ID)},
			{Key: "event_type", Value: []byte(ev.Type)},
			{Key: "firm_id", Value: []byte(firm)},
			{Key: "rule_id", Value: []byte(rule)},
		},
		Time: ev.OccurredAt,
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		metrics.NotifyPublishTotal.WithLabelValues("failed").Inc()
		log := logger.WithComponent("notify")
		log.Warn().
			Err(err).
			Str("event_id", ev.ID).
			Str("topic", p.topic).
			Msg("kafka publish failed")
		return err
	}
	metrics.NotifyPublishTotal.WithLabelValues("success").Inc()
	return nil
}

func (p *KafkaPublisher) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	return p.w.Close()
}
