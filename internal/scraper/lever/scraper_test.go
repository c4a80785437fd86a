package lever

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaDevFox/job-track/internal/scraper"
)

const boardFixture = `
<html><body>
<div class="posting">
  <a class="posting-title" href="/hooli/abc-123"><h5>Software Engineer, New Grad</h5></a>
  <span class="sort-by-location">New York, NY</span>
  <div class="posting-categories"><span>Engineering</span><span>Full-time</span></div>
</div>
<div class="posting">
  <a class="posting-title" href="https://jobs.lever.co/hooli/def-456"><h5>Principal Architect</h5></a>
  <span class="sort-by-location">Remote</span>
  <div class="posting-categories"><span>Engineering</span></div>
</div>
<div class="posting">
  <span>posting without a title link</span>
</div>
</body></html>
`

func TestParse_Board(t *testing.T) {
	cfg := scraper.SearchConfig{
		URL:        "https://jobs.lever.co/hooli",
		Company:    "Hooli",
		MaxResults: 10,
	}
	jobs, err := Parse(boardFixture, cfg, nil)
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	first := jobs[0]
	assert.Equal(t, "Software Engineer, New Grad", first.Title)
	assert.Equal(t, "Hooli", first.Company)
	assert.Equal(t, "New York, NY", first.Location)
	assert.Equal(t, "https://jobs.lever.co/hooli/abc-123", first.ApplyURL)
	assert.Equal(t, "Engineering | Full-time", first.Description)
	assert.True(t, first.NewGrad)
	assert.ElementsMatch(t, []string{"Engineering", "Full-time", "new-grad"}, first.Tags)

	assert.False(t, jobs[1].NewGrad)
}

func TestParse_NewGradOnly(t *testing.T) {
	cfg := scraper.SearchConfig{
		URL:         "https://jobs.lever.co/hooli",
		Company:     "Hooli",
		MaxResults:  10,
		NewGradOnly: true,
	}
	jobs, err := Parse(boardFixture, cfg, nil)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Software Engineer, New Grad", jobs[0].Title)
}

func TestParse_EmitsJobFound(t *testing.T) {
	var events []scraper.Event
	sink := scraper.EventSink(func(e scraper.Event) { events = append(events, e) })

	cfg := scraper.SearchConfig{URL: "https://jobs.lever.co/hooli", Company: "Hooli", MaxResults: 10}
	jobs, err := Parse(boardFixture, cfg, sink)
	require.NoError(t, err)

	found := 0
	for _, e := range events {
		if _, ok := e.(scraper.JobFound); ok {
			found++
		}
	}
	assert.Equal(t, len(jobs), found)
}
