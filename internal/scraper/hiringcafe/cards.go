// Card-text heuristics for the hiring.cafe aggregator. The site renders job
// cards as unstructured visible text, so extraction works line-by-line: drop
// navigation phrases, then run an ordered list of (predicate, assign) passes
// where the first matching field wins each line. The pass order is the
// tie-break contract; upstream layout changes can shift it silently.

package hiringcafe

import (
	"strings"

	"github.com/DaDevFox/job-track/internal/filter"
	"github.com/DaDevFox/job-track/internal/scraper"
)

// card is one job link plus the surrounding text extracted in-page.
type card struct {
	URL      string
	LinkText string
	CardText string
}

// skipPhrases marks navigation/UI lines that never carry posting data.
var skipPhrases = []string{
	"relevance",
	"view all",
	"see views",
	"job posting",
	"save search",
	"clear filters",
	"talent network",
	"3 months",
	"easy or lengthy",
	"show all jobs",
}

// metaMarkers flag lines that are clearly not a job title.
var metaMarkers = []string{"$", "yoe", "remote", "hybrid", "onsite", "full time", "part time"}

var workModeLines = map[string]bool{
	"remote":    true,
	"hybrid":    true,
	"onsite":    true,
	"full time": true,
	"part time": true,
}

type cardFields struct {
	title      string
	company    string
	location   string
	salary     string
	experience string
	workMode   string
}

type lineMatcher struct {
	match  func(f *cardFields, line string, idx int) bool
	assign func(f *cardFields, line string)
}

// lineMatchers runs in order; the first matcher claiming a line consumes it.
var lineMatchers = []lineMatcher{
	{ //title: first substantive line without metadata markers
		match: func(f *cardFields, line string, idx int) bool {
			if f.title != "" {
				return false
			}
			lower := strings.ToLower(line)
			for _, m := range metaMarkers {
				if strings.Contains(lower, m) {
					return false
				}
			}
			//colon lines past the top of the card read as "Company: blurb"
			if strings.Contains(line, ":") && idx > 0 {
				return false
			}
			return true
		},
		assign: func(f *cardFields, line string) { f.title = line },
	},
	{ //salary: currency plus a rate marker
		match: func(f *cardFields, line string, _ int) bool {
			if f.salary != "" || !strings.Contains(line, "$") {
				return false
			}
			lower := strings.ToLower(line)
			return strings.Contains(line, "/") || strings.Contains(lower, "k") || strings.Contains(lower, "yr")
		},
		assign: func(f *cardFields, line string) { f.salary = line },
	},
	{ //experience: years-of-experience callouts
		match: func(f *cardFields, line string, _ int) bool {
			if f.experience != "" {
				return false
			}
			lower := strings.ToLower(line)
			return strings.Contains(lower, "yoe") || strings.Contains(lower, "years")
		},
		assign: func(f *cardFields, line string) { f.experience = line },
	},
	{ //work mode: a bare arrangement keyword
		match: func(f *cardFields, line string, _ int) bool {
			return f.workMode == "" && workModeLines[strings.ToLower(line)]
		},
		assign: func(f *cardFields, line string) { f.workMode = line },
	},
	{ //company: "Name: what they do" label
		match: func(f *cardFields, line string, _ int) bool {
			if f.company != "" || !strings.Contains(line, ":") || len(line) >= 200 {
				return false
			}
			name := strings.TrimSpace(line[:strings.Index(line, ":")])
			return len(name) > 2 && len(name) < 50
		},
		assign: func(f *cardFields, line string) {
			f.company = strings.TrimSpace(line[:strings.Index(line, ":")])
		},
	},
	{ //location: city/state pair or a short arrangement-qualified line
		match: func(f *cardFields, line string, _ int) bool {
			if f.location != "" {
				return false
			}
			lower := strings.ToLower(line)
			for _, mode := range []string{"remote", "hybrid", "onsite"} {
				if strings.Contains(lower, mode) && len(line) < 50 {
					return true
				}
			}
			if strings.Contains(lower, "united states") && len(line) < 100 {
				return true
			}
			return strings.Contains(line, ", ") && len(line) < 100
		},
		assign: func(f *cardFields, line string) { f.location = line },
	},
}

// filterLines splits card text into trimmed lines with UI noise removed.
func filterLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 2 || isSkippable(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

func isSkippable(line string) bool {
	lower := strings.ToLower(line)
	for _, phrase := range skipPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// parseCard turns one extracted card into a record. Returns false when no
// usable title survives filtering; such cards are dropped and tallied.
func parseCard(c card, searchURL string) (scraper.Job, bool) {
	lines := filterLines(c.CardText)

	f := cardFields{}
	for idx, line := range lines {
		if len(line) < 3 {
			continue
		}
		for i := range lineMatchers {
			m := &lineMatchers[i]
			if m.match(&f, line, idx) {
				m.assign(&f, line)
				break
			}
		}
	}

	//fall back to the link's own text for a title
	if len(f.title) < 3 {
		for _, line := range filterLines(c.LinkText) {
			if len(line) > 3 {
				f.title = line
				break
			}
		}
	}
	if len(f.title) < 3 {
		return scraper.Job{}, false
	}

	var parts []string
	if f.salary != "" {
		parts = append(parts, "Salary: "+f.salary)
	}
	if f.experience != "" {
		parts = append(parts, "Experience: "+f.experience)
	}
	if f.workMode != "" {
		parts = append(parts, "Work Type: "+f.workMode)
	}

	company := f.company
	if company == "" {
		company = "Unknown Company"
	}

	newGrad := filter.IsNewGrad(f.title, c.CardText)
	job := scraper.Job{
		Title:       f.title,
		Company:     company,
		Location:    f.location,
		Description: strings.Join(parts, " | "),
		SourceURL:   searchURL,
		NewGrad:     newGrad,
	}
	if newGrad {
		job.AddTags("new-grad")
	}
	job.AddTags(filter.WorkModeTags(c.CardText)...)
	return job, true
}
