package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSelection() Selection {
	return Selection{
		Tier:     "business",
		Cycle:    "annual",
		Price:    decimal.NewFromInt(2990),
		Features: []string{"unlimited listings", "priority support"},
	}
}

func TestLocalSelectionStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selection.json")
	store := NewLocalSelectionStore(path)

	_, found, err := store.Load()
	require.NoError(t, err)
	assert.False(t, found, "empty store has no selection")

	sel := testSelection()
	require.NoError(t, store.Save(sel))

	loaded, found, err := store.Load()
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, sel.Tier, loaded.Tier)
	assert.Equal(t, sel.Cycle, loaded.Cycle)
	assert.True(t, sel.Price.Equal(loaded.Price))
	assert.Equal(t, sel.Features, loaded.Features)
}

func TestLocalSelectionStoreSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selection.json")

	require.NoError(t, NewLocalSelectionStore(path).Save(testSelection()))

	// A new store over the same file sees the parked selection
	reopened := NewLocalSelectionStore(path)
	loaded, found, err := reopened.Load()
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "business", loaded.Tier)
}

func TestLocalSelectionStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selection.json")
	store := NewLocalSelectionStore(path)

	require.NoError(t, store.Save(testSelection()))
	require.NoError(t, store.Clear())

	_, found, err := store.Load()
	require.NoError(t, err)
	assert.False(t, found)

	// Clearing an already empty slot is fine
	require.NoError(t, store.Clear())
}

func TestLocalSelectionStoreOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selection.json")
	store := NewLocalSelectionStore(path)

	require.NoError(t, store.Save(testSelection()))

	replacement := Selection{Tier: "starter", Cycle: "monthly", Price: decimal.NewFromInt(49)}
	require.NoError(t, store.Save(replacement))

	loaded, found, err := store.Load()
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "starter", loaded.Tier)
	assert.Equal(t, "monthly", loaded.Cycle)
}

func TestLocalSelectionStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selection.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewLocalSelectionStore(path)
	_, found, err := store.Load()
	require.NoError(t, err)
	assert.False(t, found, "corrupt file reads as an empty slot")

	// The store recovers on the next save
	require.NoError(t, store.Save(testSelection()))
	_, found, err = store.Load()
	require.NoError(t, err)
	assert.True(t, found)
}
