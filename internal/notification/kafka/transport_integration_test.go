//go:build integration

package kafka

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"proofpack/internal/notification"
	"proofpack/internal/platform/config"
	id "proofpack/pkg/domain"
	"proofpack/pkg/testutil/containers"
)

func TestTransportPublishesKeyedRecords(t *testing.T) {
	broker := containers.NewRedpandaContainer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	transport, err := New(config.KafkaConfig{
		Brokers:  broker.Brokers,
		Topic:    "proofpack.notifications.test",
		ClientID: "proofpack-test",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer transport.Close()

	require.NoError(t, transport.EnsureTopic(ctx, 1, 1))
	require.NoError(t, transport.EnsureTopic(ctx, 1, 1), "second create must tolerate an existing topic")

	packID := id.PackID(uuid.New())
	event := notification.Event{
		ID:         uuid.NewString(),
		Kind:       notification.KindReviewCompleted,
		PackID:     packID,
		Attributes: map[string]string{"decision": "approved"},
		OccurredAt: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, transport.Send(ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker.Brokers...),
		kgo.ConsumeTopics("proofpack.notifications.test"),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	require.Empty(t, fetches.Errors())
	records := fetches.Records()
	require.Len(t, records, 1)

	assert.Equal(t, packID.String(), string(records[0].Key))
	var got notification.Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	assert.Equal(t, event.ID, got.ID)
	assert.Equal(t, notification.KindReviewCompleted, got.Kind)
	assert.Equal(t, "approved", got.Attributes["decision"])
}
