//go:build integration

package draft

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/models"
	"github.com/sunsetmark/palyingwithedgar-sub001/pkg/platform/sentinel"
	"github.com/sunsetmark/palyingwithedgar-sub001/pkg/testutil/containers"
)

func TestRedisStore_Integration(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		store, err := NewRedisStore(rc.Client, time.Hour)
		require.NoError(t, err)

		record := models.NewFilingRecord(models.FormType5)
		record.Remarks = "late holdings to follow"
		record.Submission.NoSecuritiesOwned = true

		id, err := store.Save(ctx, record)
		require.NoError(t, err)

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, models.FormType5, loaded.FormType)
		assert.Equal(t, "late holdings to follow", loaded.Remarks)
		assert.True(t, loaded.Submission.NoSecuritiesOwned)
	})

	t.Run("unknown id", func(t *testing.T) {
		store, err := NewRedisStore(rc.Client, time.Hour)
		require.NoError(t, err)
		_, err = store.Load(ctx, uuid.New())
		require.Error(t, err)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("expired draft is gone", func(t *testing.T) {
		store, err := NewRedisStore(rc.Client, 50*time.Millisecond)
		require.NoError(t, err)
		id, err := store.Save(ctx, models.NewFilingRecord(models.FormType3))
		require.NoError(t, err)

		time.Sleep(200 * time.Millisecond)

		_, err = store.Load(ctx, id)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("encrypted round trip", func(t *testing.T) {
		store, err := NewRedisStore(rc.Client, time.Hour, WithEncryptionKey(testKey(t)))
		require.NoError(t, err)

		record := models.NewFilingRecord(models.FormType4)
		record.ReportingOwners = append(record.ReportingOwners, models.ReportingOwner{
			CIK: "0007654321",
			CCC: "hunter2abc",
		})

		id, err := store.Save(ctx, record)
		require.NoError(t, err)

		raw, err := rc.Client.Get(ctx, draftKeyPrefix+id.String()).Bytes()
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "hunter2abc")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		require.Len(t, loaded.ReportingOwners, 1)
		assert.Equal(t, "hunter2abc", loaded.ReportingOwners[0].CCC)
	})
}
