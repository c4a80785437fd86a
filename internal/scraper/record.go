// Canonical job record shared by every source adapter.
// Identity is the apply URL; everything else is refreshable metadata.

package scraper

import (
	"strings"
	"unicode/utf8"

	mapset "github.com/deckarep/golang-set/v2"
)

// MaxDescriptionLen bounds descriptions before they are handed to storage.
const MaxDescriptionLen = 5000

// DefaultMaxResults is used when a config does not set a cap.
const DefaultMaxResults = 100

type Job struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location,omitempty"`
	Description string   `json:"description,omitempty"`
	ApplyURL    string   `json:"apply_url"`
	SourceURL   string   `json:"source_url"`
	Tags        []string `json:"tags"`
	NewGrad     bool     `json:"new_grad"`
}

// AddTags merges tags with set semantics; output stays sorted so two records
// built from the same inputs compare equal.
func (j *Job) AddTags(tags ...string) {
	set := mapset.NewThreadUnsafeSet(j.Tags...)
	for _, t := range tags {
		if t != "" {
			set.Add(t)
		}
	}
	j.Tags = mapset.Sorted(set)
}

// HasTag reports whether the record carries the given tag.
func (j *Job) HasTag(tag string) bool {
	for _, t := range j.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Normalize trims user-visible fields and clamps the description.
func (j *Job) Normalize() {
	j.Title = strings.TrimSpace(j.Title)
	j.Company = strings.TrimSpace(j.Company)
	j.Location = strings.TrimSpace(j.Location)
	j.ApplyURL = strings.TrimSpace(j.ApplyURL)
	j.Description = truncateRunes(strings.TrimSpace(j.Description), MaxDescriptionLen)
	if j.Tags == nil {
		j.Tags = []string{}
	}
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

// SearchConfig is the per-run adapter configuration. It is immutable for the
// duration of one scrape; not every adapter reads every field.
type SearchConfig struct {
	Query            string   `yaml:"query"`
	Department       string   `yaml:"department"`
	ExperienceLevels []string `yaml:"experience_levels"`
	Location         string   `yaml:"location"`
	//URL and Company point the DOM adapters at a specific career page
	URL     string `yaml:"url"`
	Company string `yaml:"company"`
	//Categories narrows the curated table source to named sections
	Categories      []string `yaml:"categories"`
	MaxResults      int      `yaml:"max_results"`
	StalenessDays   int      `yaml:"staleness_days"`
	NewGradOnly     bool     `yaml:"new_grad_only"`
	IncludeInactive bool     `yaml:"include_inactive"`
}

// Limit returns the effective result cap.
func (c SearchConfig) Limit() int {
	if c.MaxResults < 1 {
		return DefaultMaxResults
	}
	return c.MaxResults
}
