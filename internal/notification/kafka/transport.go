// Package kafka publishes notification events to a Kafka topic. Records are
// keyed by pack ID so a pack's events stay ordered within a partition.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"proofpack/internal/notification"
	"proofpack/internal/platform/config"
)

const defaultTopic = "proofpack.notifications"

type Transport struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// New connects a producer to cfg.Brokers. The connection is lazy; call
// EnsureTopic to fail fast on an unreachable cluster.
func New(cfg config.KafkaConfig, logger *slog.Logger) (*Transport, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	topic := cfg.Topic
	if topic == "" {
		topic = defaultTopic
	}
	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	}
	if cfg.ClientID != "" {
		opts = append(opts, kgo.ClientID(cfg.ClientID))
	}
	if cfg.WriteTimeout > 0 {
		opts = append(opts, kgo.ProduceRequestTimeout(cfg.WriteTimeout))
	}
	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("kafka: create client: %w", err)
	}
	return &Transport{client: client, topic: topic, logger: logger}, nil
}

// EnsureTopic creates the notification topic when it does not exist yet.
func (t *Transport) EnsureTopic(ctx context.Context, partitions int32, replicationFactor int16) error {
	admin := kadm.NewClient(t.client)
	resp, err := admin.CreateTopics(ctx, partitions, replicationFactor, nil, t.topic)
	if err != nil {
		return fmt.Errorf("kafka: create topic %s: %w", t.topic, err)
	}
	for _, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("kafka: create topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

func (t *Transport) Send(ctx context.Context, event notification.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: encode event: %w", err)
	}
	record := &kgo.Record{
		Topic: t.topic,
		Key:   []byte(event.PackID.String()),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "kind", Value: []byte(event.Kind)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
		Timestamp: event.OccurredAt,
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	if err := t.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("kafka: produce %s: %w", event.Kind, err)
	}
	return nil
}

// Ping checks that at least one broker answers.
func (t *Transport) Ping(ctx context.Context) error {
	return t.client.Ping(ctx)
}

func (t *Transport) Close() {
	t.client.Close()
}
