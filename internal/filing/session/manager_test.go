package session

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/models"
	"github.com/sunsetmark/palyingwithedgar-sub001/pkg/platform/sentinel"
)

func TestManager_CreateAndDo(t *testing.T) {
	m := NewManager()
	id := m.Create(models.FormType4)

	err := m.Do(id, func(store *Store) error {
		assert.Equal(t, models.FormType4, store.Snapshot().FormType)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())
}

func TestManager_UnknownSession(t *testing.T) {
	m := NewManager()

	err := m.Do(uuid.New(), func(*Store) error { return nil })
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestManager_Delete(t *testing.T) {
	m := NewManager()
	id := m.Create(models.FormType3)

	m.Delete(id)
	assert.Equal(t, 0, m.Len())
	assert.ErrorIs(t, m.Do(id, func(*Store) error { return nil }), sentinel.ErrNotFound)

	// Deleting again is a no-op.
	m.Delete(id)
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	m := NewManager()
	a := m.Create(models.FormType3)
	b := m.Create(models.FormType4)

	require.NoError(t, m.Do(a, func(store *Store) error {
		return store.AddReportingOwner(models.ReportingOwner{Name: "Only In A"})
	}))

	require.NoError(t, m.Do(b, func(store *Store) error {
		assert.Empty(t, store.Snapshot().ReportingOwners)
		return nil
	}))
}

func TestManager_SerializesMutations(t *testing.T) {
	m := NewManager()
	id := m.Create(models.FormType4)

	var wg sync.WaitGroup
	const writers = 8
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Do(id, func(store *Store) error {
				store.NextStep()
				store.PrevStep()
				return store.UpdateRemarks("concurrent writer")
			})
		}()
	}
	wg.Wait()

	require.NoError(t, m.Do(id, func(store *Store) error {
		record := store.Snapshot()
		assert.Equal(t, 0, record.CurrentStepIndex)
		assert.Equal(t, "concurrent writer", record.Remarks)
		return nil
	}))
}
