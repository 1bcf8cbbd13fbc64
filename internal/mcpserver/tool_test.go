package mcpserver

import (
	"strings"
	"testing"
)

func TestBuildDescription_EmbedsSourceListingAsJSON(t *testing.T) {
	t.Parallel()

	desc, err := buildDescription(map[string][]string{
		"github": {"issues"},
	})
	if err != nil {
		t.Fatalf("buildDescription failed: %v", err)
	}
	if !strings.Contains(desc, `{"github":["issues"]}`) {
		t.Errorf("expected JSON source listing, got %q", desc)
	}
	if !strings.HasPrefix(desc, toolGuidance) {
		t.Error("expected guidance text to lead the description")
	}
}

func TestBuildDescription_NoSources_StillValid(t *testing.T) {
	t.Parallel()

	desc, err := buildDescription(map[string][]string{})
	if err != nil {
		t.Fatalf("buildDescription failed: %v", err)
	}
	if !strings.Contains(desc, "{}") {
		t.Errorf("expected empty listing, got %q", desc)
	}
}

func TestQueryInputSchema_RequiresQueryAndForbidsExtras(t *testing.T) {
	t.Parallel()

	schema := queryInputSchema()
	if schema.Type != "object" {
		t.Errorf("expected object schema, got %q", schema.Type)
	}
	if len(schema.Required) != 1 || schema.Required[0] != "query" {
		t.Errorf("expected required [query], got %v", schema.Required)
	}
	prop, ok := schema.Properties["query"]
	if !ok || prop.Type != "string" {
		t.Errorf("expected string query property, got %+v", prop)
	}
	if schema.AdditionalProperties == nil || schema.AdditionalProperties.Not == nil {
		t.Error("expected additionalProperties to be the false schema")
	}
}
