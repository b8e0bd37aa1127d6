//go:build integration

package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "github.com/sunsetmark/palyingwithedgar-sub001/pkg/platform/audit"
	"github.com/sunsetmark/palyingwithedgar-sub001/pkg/testutil/containers"
)

func TestKafkaStore_Integration(t *testing.T) {
	rp := containers.NewRedpandaContainer(t)
	ctx := context.Background()

	const topic = "filing.audit.test"
	store, err := New(ctx, rp.Brokers, topic)
	require.NoError(t, err)
	defer store.Close()

	// Creating the same topic again must not fail.
	again, err := New(ctx, rp.Brokers, topic)
	require.NoError(t, err)
	again.Close()

	sessionID := uuid.New()
	event := audit.Event{
		ID:        uuid.New(),
		Category:  audit.CategoryCompliance,
		Timestamp: time.Now().UTC().Truncate(time.Millisecond),
		SessionID: sessionID,
		FormType:  "4",
		Action:    string(audit.EventFilingSubmitted),
	}
	require.NoError(t, store.Append(ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(rp.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	fetches := consumer.PollFetches(fetchCtx)
	require.NoError(t, fetches.Err())

	records := fetches.Records()
	require.NotEmpty(t, records)
	assert.Equal(t, sessionID.String(), string(records[0].Key))

	var got audit.Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	assert.Equal(t, event.ID, got.ID)
	assert.Equal(t, event.Action, got.Action)
	assert.Equal(t, event.Category, got.Category)

	_, err = store.ListBySession(ctx, sessionID)
	assert.Error(t, err, "producer side is write-only")
}
