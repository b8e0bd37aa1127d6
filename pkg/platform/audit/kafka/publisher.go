// Package kafka publishes audit events to a Kafka topic. Kafka is the durable
// transport for compliance events; the consumer side materializes them for
// querying.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "github.com/sunsetmark/palyingwithedgar-sub001/pkg/platform/audit"
)

// Store publishes events to Kafka. It satisfies audit.Store so it can sit
// behind the ordinary publisher; ListBySession is not supported on the
// producer side.
type Store struct {
	client *kgo.Client
	topic  string
}

// New connects to the brokers and ensures the topic exists. Topic creation is
// idempotent: an already-exists response is ignored.
func New(ctx context.Context, brokers []string, topic string) (*Store, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	adm := kadm.NewClient(client)
	resp, err := adm.CreateTopic(ctx, 1, 1, nil, topic)
	if err != nil && !errors.Is(err, kerr.TopicAlreadyExists) {
		client.Close()
		return nil, fmt.Errorf("create audit topic: %w", err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		client.Close()
		return nil, fmt.Errorf("create audit topic: %w", resp.Err)
	}

	return &Store{client: client, topic: topic}, nil
}

// Append produces one event, keyed by session so per-session ordering holds
// within a partition.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.SessionID.String()),
		Value: payload,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

// ListBySession is unsupported on the producer side; query the materialized
// store instead.
func (s *Store) ListBySession(context.Context, uuid.UUID) ([]audit.Event, error) {
	return nil, errors.New("kafka audit store is write-only")
}

// Close flushes and closes the Kafka client.
func (s *Store) Close() {
	s.client.Close()
}
