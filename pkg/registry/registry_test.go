package registry_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/searchlite/searchlite/pkg/config"
	"github.com/searchlite/searchlite/pkg/domain"
	"github.com/searchlite/searchlite/pkg/entity"
	"github.com/searchlite/searchlite/pkg/registry"
)

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	users := entity.NewStore("users")
	require.NoError(t, users.Ingest([]domain.Record{
		{"_id": float64(1), "name": "Alice", "organization_id": float64(101)},
		{"_id": float64(2), "name": "Bob", "organization_id": float64(102)},
	}))

	orgs := entity.NewStore("organizations")
	require.NoError(t, orgs.Ingest([]domain.Record{
		{"_id": float64(101), "name": "Initech"},
		{"_id": float64(102), "name": "Globex"},
	}))

	reg := registry.New()
	require.NoError(t, reg.Add(users))
	require.NoError(t, reg.Add(orgs))
	require.NoError(t, reg.AddRelation(registry.Relation{
		From: "users", Via: "organization_id", To: "organizations",
	}))
	return reg
}

func TestRegistrySearch(t *testing.T) {
	reg := newTestRegistry(t)

	results, err := reg.Search("users", "name", "Alice")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, float64(1), results[0]["_id"])

	results, err = reg.Search("users", "name", "nobody")
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = reg.Search("ghosts", "name", "Alice")
	require.Error(t, err)
}

func TestRegistryRelated(t *testing.T) {
	reg := newTestRegistry(t)

	results, err := reg.Search("users", "name", "Alice")
	require.NoError(t, err)
	require.Len(t, results, 1)

	sets := reg.Related("users", results[0])
	require.Len(t, sets, 1)
	assert.Equal(t, "organizations", sets[0].Relation.To)
	require.Len(t, sets[0].Records, 1)
	assert.Equal(t, "Initech", sets[0].Records[0]["name"])

	// No relations depart from organizations.
	assert.Empty(t, reg.Related("organizations", results[0]))
}

func TestRegistryRelatedMissingViaField(t *testing.T) {
	reg := newTestRegistry(t)

	sets := reg.Related("users", domain.Record{"_id": float64(9)})
	require.Len(t, sets, 1)
	assert.Empty(t, sets[0].Records)
}

func TestRegistryDuplicateEntity(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Add(entity.NewStore("users")))
	require.Error(t, reg.Add(entity.NewStore("users")))
}

func TestRegistryRelationValidation(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Add(entity.NewStore("users")))

	err := reg.AddRelation(registry.Relation{From: "users", Via: "org_id", To: "organizations"})
	require.Error(t, err)
}

func TestLoadFromConfig(t *testing.T) {
	dir := t.TempDir()
	usersFile := filepath.Join(dir, "users.json")
	orgsFile := filepath.Join(dir, "organizations.json")
	require.NoError(t, os.WriteFile(usersFile, []byte(`[{"_id": 1, "name": "Alice", "organization_id": 101}]`), 0o644))
	require.NoError(t, os.WriteFile(orgsFile, []byte(`[{"_id": 101, "name": "Initech"}]`), 0o644))

	cfg := &config.Config{
		Entities: []config.EntityConfig{
			{Name: "users", File: usersFile},
			{Name: "organizations", File: orgsFile},
		},
		Relations: []config.RelationConfig{
			{FromEntity: "users", ViaField: "organization_id", ToEntity: "organizations"},
		},
	}

	reg, err := registry.LoadFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"users", "organizations"}, reg.Entities())

	results, err := reg.Search("users", "name", "Alice")
	require.NoError(t, err)
	require.Len(t, results, 1)

	sets := reg.Related("users", results[0])
	require.Len(t, sets, 1)
	require.Len(t, sets[0].Records, 1)
	assert.Equal(t, "Initech", sets[0].Records[0]["name"])
}

func TestRegistrySearchableFields(t *testing.T) {
	reg := newTestRegistry(t)

	fields := reg.SearchableFields()
	assert.Equal(t, []string{"_id", "name", "organization_id"}, fields["users"])
	assert.Equal(t, []string{"_id", "name"}, fields["organizations"])
}

func TestCoerceQueryTerm(t *testing.T) {
	assert.Equal(t, float64(1), registry.CoerceQueryTerm("1"))
	assert.Equal(t, true, registry.CoerceQueryTerm("true"))
	assert.Nil(t, registry.CoerceQueryTerm("null"))
	assert.Equal(t, "Alice", registry.CoerceQueryTerm("Alice"))
	assert.Equal(t, "", registry.CoerceQueryTerm(""))
	assert.Equal(t, "[1]", registry.CoerceQueryTerm("[1]"))
}

func TestLoadFromConfigMissingDataFile(t *testing.T) {
	cfg := &config.Config{
		Entities: []config.EntityConfig{
			{Name: "users", File: filepath.Join(t.TempDir(), "missing.json")},
		},
	}

	_, err := registry.LoadFromConfig(cfg)
	require.Error(t, err)

	var notFound *entity.NotFoundError
	require.ErrorAs(t, err, &notFound)
}
