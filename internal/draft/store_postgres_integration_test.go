//go:build integration

package draft

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/models"
	"github.com/sunsetmark/palyingwithedgar-sub001/pkg/platform/sentinel"
	"github.com/sunsetmark/palyingwithedgar-sub001/pkg/testutil/containers"
)

const draftSchema = `
CREATE TABLE IF NOT EXISTS filing_drafts (
    id         UUID PRIMARY KEY,
    form_type  TEXT NOT NULL,
    payload    JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
)`

func TestPostgresStore_Integration(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	pg.Exec(t, draftSchema)
	store, err := NewPostgresStore(pg.DB)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		price := 12.34
		record := models.NewFilingRecord(models.FormType4)
		record.Issuer = models.Issuer{CIK: "0000320193", Name: "Example Corp"}
		record.NonDerivativeTransactions = append(record.NonDerivativeTransactions, models.Transaction{
			SecurityTitle:   "Common Stock",
			TransactionCode: "P",
			Shares:          100,
			PricePerShare:   &price,
		})

		id, err := store.Save(ctx, record)
		require.NoError(t, err)

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, record.Issuer, loaded.Issuer)
		require.Len(t, loaded.NonDerivativeTransactions, 1)
		assert.Equal(t, 12.34, *loaded.NonDerivativeTransactions[0].PricePerShare)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := store.Load(ctx, uuid.New())
		require.Error(t, err)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("encrypted round trip", func(t *testing.T) {
		sealed, err := NewPostgresStore(pg.DB, WithEncryptionKey(testKey(t)))
		require.NoError(t, err)

		record := models.NewFilingRecord(models.FormType3)
		record.ReportingOwners = append(record.ReportingOwners, models.ReportingOwner{
			CIK: "0001234567",
			CCC: "hunter2abc",
		})

		id, err := sealed.Save(ctx, record)
		require.NoError(t, err)

		// The credential is not readable straight from the column.
		var payload []byte
		require.NoError(t, pg.DB.QueryRow(
			`SELECT payload FROM filing_drafts WHERE id = $1`, id,
		).Scan(&payload))
		assert.NotContains(t, string(payload), "hunter2abc")

		loaded, err := sealed.Load(ctx, id)
		require.NoError(t, err)
		require.Len(t, loaded.ReportingOwners, 1)
		assert.Equal(t, "hunter2abc", loaded.ReportingOwners[0].CCC)
	})
}
