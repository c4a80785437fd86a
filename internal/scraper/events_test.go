package scraper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, e Event) map[string]any {
	t.Helper()
	data, err := Encode(e)
	require.NoError(t, err)
	payload := map[string]any{}
	require.NoError(t, json.Unmarshal(data, &payload))
	return payload
}

func TestEncode_AddsEventType(t *testing.T) {
	payload := decode(t, Start{SourceName: "simplify"})
	assert.Equal(t, "start", payload["event_type"])
	assert.Equal(t, "simplify", payload["source_name"])
}

func TestEncode_JobFoundFlattensRecord(t *testing.T) {
	jf := JobFound{Job: Job{
		Title:    "New Grad SWE",
		Company:  "Acme",
		ApplyURL: "https://acme.example.com/1",
		Tags:     []string{"new-grad"},
		NewGrad:  true,
	}}
	payload := decode(t, jf)

	assert.Equal(t, "job", payload["event_type"])
	assert.Equal(t, "New Grad SWE", payload["title"], "record fields sit at the envelope's top level")
	assert.Equal(t, "https://acme.example.com/1", payload["apply_url"])
	assert.Equal(t, true, payload["new_grad"])
	_, nested := payload["Job"]
	assert.False(t, nested)
}

func TestEncode_CompleteCarriesErrors(t *testing.T) {
	payload := decode(t, Complete{TotalScraped: 3, Errors: []string{"missing apply url"}})
	assert.Equal(t, "complete", payload["event_type"])
	assert.Equal(t, float64(3), payload["total_scraped"])
	assert.Equal(t, []any{"missing apply url"}, payload["errors"])
}
