package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/searchlite/searchlite/pkg/domain"
	"github.com/searchlite/searchlite/pkg/entity"
)

func TestIngestEmptyBatch(t *testing.T) {
	store := entity.NewStore("user")
	require.NoError(t, store.Ingest([]domain.Record{}))

	assert.Equal(t, 0, store.Count())
	assert.Equal(t, []string{"_id"}, store.SearchableFields())
}

func TestMissingPrimaryKey(t *testing.T) {
	batches := [][]domain.Record{
		{{}},
		{{"url": "https://test.com"}},
		{{"_id": float64(1)}, {"url": "https://test.com"}},
		{{"_id": nil}},
	}

	for _, batch := range batches {
		store := entity.NewStore("ticket")
		err := store.Ingest(batch)

		var missing *entity.PrimaryKeyMissingError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "_id", missing.PrimaryKey)
		assert.Contains(t, err.Error(), `cannot find "_id"`)
	}
}

func TestDuplicatePrimaryKey(t *testing.T) {
	store := entity.NewStore("user")
	err := store.Ingest([]domain.Record{
		{"_id": float64(1)},
		{"_id": float64(1)},
	})

	var dup *entity.DuplicatePrimaryKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "1", dup.Key)
}

func TestDuplicatePrimaryKeyOnCanonicalForm(t *testing.T) {
	// Uniqueness is enforced on the canonical string form, so values that
	// stringify identically collide even across value types.
	store := entity.NewStore("user")
	err := store.Ingest([]domain.Record{
		{"_id": float64(1)},
		{"_id": "1"},
	})

	var dup *entity.DuplicatePrimaryKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "1", dup.Key)
}

func TestUnhashableFieldValue(t *testing.T) {
	batches := [][]domain.Record{
		{{"_id": float64(1), "unhash": map[string]interface{}{"a": float64(1)}}},
		{{"_id": float64(1), "tags": map[string]interface{}{}}},
	}

	for _, batch := range batches {
		store := entity.NewStore("ticket")
		err := store.Ingest(batch)

		var unhashable *entity.UnhashableValueError
		require.ErrorAs(t, err, &unhashable)
		assert.Contains(t, err.Error(), "unindexable value")
	}
}

func TestUnhashableListElement(t *testing.T) {
	store := entity.NewStore("ticket")
	err := store.Ingest([]domain.Record{
		{"_id": float64(1), "tags": []interface{}{map[string]interface{}{"a": float64(1)}}},
	})

	var unhashable *entity.UnhashableValueError
	require.ErrorAs(t, err, &unhashable)
	assert.Equal(t, "tags", unhashable.Field)
}

func TestUnhashablePrimaryKeyIsStringified(t *testing.T) {
	// The primary index stringifies its keys, so values that could never be
	// secondary index keys are still fine as primary keys.
	store := entity.NewStore("ticket")
	err := store.Ingest([]domain.Record{
		{"_id": []interface{}{float64(1)}},
	})
	require.NoError(t, err)

	results := drain(store.GetByPrimaryKeys("[1]"))
	require.Len(t, results, 1)
}

func TestBlankPrimaryKeyValues(t *testing.T) {
	store := entity.NewStore("organization")
	err := store.Ingest([]domain.Record{
		{"_id": " "},
	})
	require.NoError(t, err)

	results := drain(store.GetByPrimaryKeys(" "))
	require.Len(t, results, 1)
	assert.Equal(t, " ", results[0]["_id"])
}

func TestIntegralFloatCanonicalizesWithoutDecimal(t *testing.T) {
	store := entity.NewStore("user")
	err := store.Ingest([]domain.Record{
		{"_id": float64(1), "name": "one"},
		{"_id": 1.01, "name": "four"},
	})
	require.NoError(t, err)

	results := drain(store.GetByPrimaryKeys("1"))
	require.Len(t, results, 1)
	assert.Equal(t, "one", results[0]["name"])

	results = drain(store.GetByPrimaryKeys(1.01))
	require.Len(t, results, 1)
	assert.Equal(t, "four", results[0]["name"])
}

func TestListValueProducesOneEntryPerElement(t *testing.T) {
	store := entity.NewStore("ticket")
	err := store.Ingest([]domain.Record{
		{"_id": float64(1), "tags": []interface{}{"a", "b", "c"}},
		{"_id": float64(2), "tags": []interface{}{"b"}},
	})
	require.NoError(t, err)

	results := drain(store.Search("tags", "b"))
	require.Len(t, results, 2)
	assert.Equal(t, float64(1), results[0]["_id"])
	assert.Equal(t, float64(2), results[1]["_id"])

	require.Len(t, drain(store.Search("tags", "a")), 1)
	require.Len(t, drain(store.Search("tags", "c")), 1)
}

func TestFailedIngestionLeavesStoreUnusable(t *testing.T) {
	store := entity.NewStore("user")
	err := store.Ingest([]domain.Record{
		{"_id": float64(1), "name": "one"},
		{"_id": float64(1), "name": "dup"},
	})
	require.Error(t, err)

	// Indexes mutated before the failure are not rolled back; callers must
	// discard the store and build a fresh one.
	fresh := entity.NewStore("user")
	require.NoError(t, fresh.Ingest([]domain.Record{{"_id": float64(1), "name": "one"}}))
	assert.Equal(t, 1, fresh.Count())
}
