package mcpserver

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// ToolName is the single tool this server advertises.
const ToolName = "get_context"

// toolGuidance is the fixed portion of the tool description. It instructs the
// calling model how to phrase queries; it carries no runtime behavior.
const toolGuidance = `Retrieve personal context about the user from their connected sources. ` +
	`Phrase the query in the first person, as if the user were asking about their own data ` +
	`(for example "my latest github issue", not "the user's latest github issue"). ` +
	`Use plain natural language only; do not send technical or structured query syntax. ` +
	`The response includes a confidence level (certain, optimistic, tentative or doubtful), ` +
	`the answer data, and sometimes a user_message — always show user_message to the user when it is present.`

// buildDescription appends the current source listing, serialized as JSON,
// to the fixed guidance text.
func buildDescription(sources map[string][]string) (string, error) {
	listing, err := json.Marshal(sources)
	if err != nil {
		return "", fmt.Errorf("serialize source listing: %w", err)
	}
	return fmt.Sprintf("%s\n\nThe user has connected the following sources: %s", toolGuidance, listing), nil
}

// queryInputSchema is the input contract: a single required string property
// "query", no additional properties.
func queryInputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:     "object",
		Required: []string{"query"},
		Properties: map[string]*jsonschema.Schema{
			"query": {
				Type:        "string",
				Description: "Natural-language, first-person question about the user's context.",
			},
		},
		// &Schema{Not: &Schema{}} is the jsonschema-go spelling of `false`.
		AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
	}
}
