// Event variants emitted while a scrape runs. A run produces Start first,
// any number of Progress/JobFound, and exactly one terminal Complete or Error.

package scraper

import "encoding/json"

type Event interface {
	EventType() string
}

type Start struct {
	SourceName string `json:"source_name"`
}

func (Start) EventType() string { return "start" }

// Progress reports phase advancement. TotalSteps of 100 means Step is already
// a percentage; otherwise Step/TotalSteps is a coarse phase counter.
type Progress struct {
	Step       int    `json:"step"`
	TotalSteps int    `json:"total_steps"`
	Message    string `json:"message"`
	JobsFound  int    `json:"jobs_found"`
}

func (Progress) EventType() string { return "progress" }

// PercentSteps marks Progress.Step as a direct 0-100 value.
const PercentSteps = 100

type JobFound struct {
	Job
}

func (JobFound) EventType() string { return "job" }

type Complete struct {
	TotalScraped int      `json:"total_scraped"`
	Errors       []string `json:"errors"`
}

func (Complete) EventType() string { return "complete" }

type Error struct {
	Message string `json:"message"`
}

func (Error) EventType() string { return "error" }

// Encode serializes an event as a named envelope: the payload fields plus an
// event_type discriminator. Transports relay this verbatim.
func Encode(e Event) ([]byte, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	payload := map[string]any{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	payload["event_type"] = e.EventType()
	return json.Marshal(payload)
}
