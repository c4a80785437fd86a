package dedup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaDevFox/job-track/internal/scraper"
)

func job(title, url string) scraper.Job {
	return scraper.Job{Title: title, Company: "Acme", ApplyURL: url}
}

func TestReconcile_NewAndKnown(t *testing.T) {
	known := mapset.NewThreadUnsafeSet("https://acme.example.com/1")
	jobs := []scraper.Job{
		job("SWE I", "https://acme.example.com/1"),
		job("SWE II", "https://acme.example.com/2"),
	}

	res := Reconcile(jobs, known, false)
	require.Len(t, res.Decisions, 2)
	assert.Equal(t, ActionSkip, res.Decisions[0].Action)
	assert.Equal(t, ActionInsert, res.Decisions[1].Action)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, []string{"https://acme.example.com/2"}, res.InsertedURLs())
}

func TestReconcile_RefreshUpdatesKnown(t *testing.T) {
	known := mapset.NewThreadUnsafeSet("https://acme.example.com/1")
	res := Reconcile([]scraper.Job{job("SWE I", "https://acme.example.com/1")}, known, true)

	require.Len(t, res.Decisions, 1)
	assert.Equal(t, ActionUpdate, res.Decisions[0].Action)
	assert.Equal(t, 1, res.Updated)
	assert.Zero(t, res.Skipped)
	assert.Empty(t, res.InsertedURLs())
}

func TestReconcile_IdentityMissing(t *testing.T) {
	res := Reconcile([]scraper.Job{{Title: "Orphan", Company: "Acme"}}, mapset.NewThreadUnsafeSet[string](), false)

	assert.Empty(t, res.Decisions)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Orphan")
}

func TestReconcile_BatchDuplicateCollapses(t *testing.T) {
	jobs := []scraper.Job{
		job("SWE I", "https://acme.example.com/1"),
		job("SWE I reposted", "https://acme.example.com/1"),
	}
	res := Reconcile(jobs, mapset.NewThreadUnsafeSet[string](), true)

	require.Len(t, res.Decisions, 2)
	assert.Equal(t, ActionInsert, res.Decisions[0].Action)
	assert.Equal(t, ActionSkip, res.Decisions[1].Action, "in-batch duplicate is never an update")
	assert.Equal(t, 1, res.Inserted)
}

func TestReconcile_Idempotent(t *testing.T) {
	jobs := []scraper.Job{
		job("SWE I", "https://acme.example.com/1"),
		job("SWE II", "https://acme.example.com/2"),
	}
	known := mapset.NewThreadUnsafeSet[string]()

	first := Reconcile(jobs, known, false)
	assert.Equal(t, 2, first.Inserted)
	for _, url := range first.InsertedURLs() {
		known.Add(url)
	}

	second := Reconcile(jobs, known, false)
	assert.Zero(t, second.Inserted)
	assert.Equal(t, 2, second.Skipped)
}

func TestSeenCache_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	cache := OpenSeenCache(dir)
	assert.False(t, cache.Contains("https://acme.example.com/1"))

	cache.MarkInserted([]string{"https://acme.example.com/1", "https://acme.example.com/2"})
	assert.True(t, cache.Contains("https://acme.example.com/1"))

	reopened := OpenSeenCache(dir)
	known := reopened.KnownURLs()
	assert.True(t, known.Contains("https://acme.example.com/1"))
	assert.True(t, known.Contains("https://acme.example.com/2"))
	assert.Equal(t, 2, known.Cardinality())
}

func TestSeenCache_ExpiresOldEntries(t *testing.T) {
	dir := t.TempDir()
	old := time.Now().UnixMilli() - thirtyDaysMs - 1000
	entries := []seenEntry{
		{URL: "https://acme.example.com/stale", Timestamp: old},
		{URL: "https://acme.example.com/fresh", Timestamp: time.Now().UnixMilli()},
	}
	data, err := json.Marshal(entries)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "seen_jobs.json"), data, 0644))

	cache := OpenSeenCache(dir)
	assert.False(t, cache.Contains("https://acme.example.com/stale"))
	assert.True(t, cache.Contains("https://acme.example.com/fresh"))
}
