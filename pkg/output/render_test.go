package output_test

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/searchlite/searchlite/pkg/domain"
	"github.com/searchlite/searchlite/pkg/output"
	"github.com/searchlite/searchlite/pkg/registry"
)

func TestRenderResultsGolden(t *testing.T) {
	records := []domain.Record{
		{
			"_id":     float64(1),
			"subject": "Printer on fire",
			"tags":    []interface{}{"urgent", "hardware"},
			"open":    true,
		},
		{
			"_id":         float64(2),
			"subject":     "Password reset",
			"assignee_id": nil,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, output.RenderResults(&buf, "tickets", records))

	g := goldie.New(t)
	g.Assert(t, "ticket_results", buf.Bytes())
}

func TestRenderEmptyResultsGolden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.RenderResults(&buf, "users", nil))

	g := goldie.New(t)
	g.Assert(t, "empty_results", buf.Bytes())
}

func TestRenderRelatedGolden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.RenderResults(&buf, "users", []domain.Record{
		{"_id": float64(1), "name": "Alice"},
	}))
	require.NoError(t, output.RenderRelated(&buf, []registry.RelatedSet{
		{
			Relation: registry.Relation{From: "users", Via: "organization_id", To: "organizations"},
			Records:  []domain.Record{{"_id": float64(101), "name": "Initech"}},
		},
		{
			Relation: registry.Relation{From: "users", Via: "manager_id", To: "users"},
			Records:  nil,
		},
	}))

	g := goldie.New(t)
	g.Assert(t, "related_records", buf.Bytes())
}
