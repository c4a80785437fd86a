// Adapter for the curated new-grad positions table maintained in the
// SimplifyJobs GitHub README. The README embeds HTML tables in markdown;
// rows carry glyph markers for closed roles, continuation rows and
// sponsorship restrictions.

package simplify

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/DaDevFox/job-track/internal/fetch"
	"github.com/DaDevFox/job-track/internal/scraper"
)

const (
	rawReadmeURL = "https://raw.githubusercontent.com/SimplifyJobs/New-Grad-Positions/dev/README.md"
	repoURL      = "https://github.com/SimplifyJobs/New-Grad-Positions"

	lockGlyph         = "🔒"
	continuationGlyph = "↳"
	notableGlyph      = "🔥"
	sponsorshipGlyph  = "🛂"
	citizenshipGlyph  = "🇺🇸"
	degreeGlyph       = "🎓"
)

// categoryHeaders maps config category keys to README section headings.
var categoryHeaders = map[string]string{
	"software-engineering": "💻 Software Engineering New Grad Roles",
	"product-management":   "📱 Product Management New Grad Roles",
	"data-science":         "🤖 Data Science, AI & Machine Learning New Grad Roles",
	"quantitative-finance": "📈 Quantitative Finance New Grad Roles",
	"hardware-engineering": "🔧 Hardware Engineering New Grad Roles",
	"other":                "💼 Other New Grad Roles",
}

var (
	dayAgeRegex   = regexp.MustCompile(`^(\d+)d$`)
	monthAgeRegex = regexp.MustCompile(`^(\d+)mo$`)
)

type Scraper struct {
	client    *fetch.Client
	readmeURL string
}

func New() *Scraper {
	return &Scraper{
		client:    fetch.NewClient(),
		readmeURL: rawReadmeURL,
	}
}

// NewWithSource points the adapter at an alternate README URL, used by tests
// and by forks of the upstream list.
func NewWithSource(url string) *Scraper {
	s := New()
	s.readmeURL = url
	return s
}

func (s *Scraper) Name() string {
	return "simplify"
}

func (s *Scraper) Scrape(ctx context.Context, cfg scraper.SearchConfig, sink scraper.EventSink) ([]scraper.Job, error) {
	sink.Emit(scraper.Progress{Step: 1, TotalSteps: 2, Message: "fetching curated listing table"})

	content, err := s.client.Get(ctx, s.readmeURL)
	if err != nil {
		return nil, fmt.Errorf("fetch listing table: %w", err)
	}

	sink.Emit(scraper.Progress{Step: 2, TotalSteps: 2, Message: "parsing listing table"})

	jobs, err := Parse(content, cfg, sink)
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// Parse extracts postings from README content. Exposed separately from
// Scrape so the table heuristics are testable against fixture strings.
func Parse(content string, cfg scraper.SearchConfig, sink scraper.EventSink) ([]scraper.Job, error) {
	content = selectCategories(content, cfg.Categories)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse listing table: %w", err)
	}

	var jobs []scraper.Job
	limit := cfg.Limit()
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		jobs = parseTable(table, cfg, sink, jobs, limit)
		return len(jobs) < limit
	})
	return jobs, nil
}

// selectCategories narrows the raw markdown to the sections named by the
// config. An empty category list keeps the whole document.
func selectCategories(content string, categories []string) string {
	if len(categories) == 0 {
		return content
	}
	var sections []string
	for _, cat := range categories {
		header, ok := categoryHeaders[cat]
		if !ok {
			continue
		}
		idx := strings.Index(content, header)
		if idx < 0 {
			continue
		}
		rest := content[idx+len(header):]
		if end := strings.Index(rest, "\n## "); end >= 0 {
			rest = rest[:end]
		}
		sections = append(sections, rest)
	}
	if len(sections) == 0 {
		return content
	}
	return strings.Join(sections, "\n")
}

// rowCarry threads the company of the preceding row into continuation rows.
type rowCarry struct {
	company string
	notable bool
}

func parseTable(table *goquery.Selection, cfg scraper.SearchConfig, sink scraper.EventSink, jobs []scraper.Job, limit int) []scraper.Job {
	carry := rowCarry{}

	table.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < 5 {
			//header or malformed row; never aborts the table
			return true
		}

		company, notable, continuation := parseCompanyCell(cells.Eq(0))
		if continuation || company == "" {
			company, notable = carry.company, carry.notable
		} else {
			carry = rowCarry{company: company, notable: notable}
		}

		title, roleTags := parseRoleCell(cells.Eq(1))
		if title == "" || company == "" {
			return true
		}

		location := parseLocationCell(cells.Eq(2))
		applyURL, closed := parseApplyCell(cells.Eq(3))
		ageDays, ageKnown := ParseAge(cells.Eq(4).Text())

		if closed && !cfg.IncludeInactive {
			return true
		}
		if cfg.StalenessDays > 0 && ageKnown && ageDays > cfg.StalenessDays {
			return true
		}
		if cfg.Location != "" && !strings.Contains(strings.ToLower(location), strings.ToLower(cfg.Location)) {
			return true
		}

		job := scraper.Job{
			Title:     title,
			Company:   company,
			Location:  location,
			ApplyURL:  applyURL,
			SourceURL: repoURL,
			NewGrad:   true, //everything in this source is a new-grad role
		}
		job.AddTags("new-grad")
		job.AddTags(roleTags...)
		if notable {
			job.AddTags("notable-employer")
		}
		if closed {
			job.AddTags("closed")
		}

		jobs = append(jobs, job)
		sink.Emit(scraper.JobFound{Job: job})
		return len(jobs) < limit
	})

	return jobs
}

func parseCompanyCell(cell *goquery.Selection) (company string, notable, continuation bool) {
	text := strings.TrimSpace(cell.Text())
	notable = strings.Contains(text, notableGlyph)
	continuation = strings.HasPrefix(text, continuationGlyph)

	//an anchor holds the cleanest company name when present
	if link := cell.Find("a").First(); link.Length() > 0 {
		text = link.Text()
	}
	company = stripGlyphs(text, notableGlyph, continuationGlyph)
	return company, notable, continuation
}

func parseRoleCell(cell *goquery.Selection) (string, []string) {
	text := strings.TrimSpace(cell.Text())

	var tags []string
	for glyph, tag := range map[string]string{
		sponsorshipGlyph: "no-sponsorship",
		citizenshipGlyph: "citizenship-required",
		degreeGlyph:      "advanced-degree",
	} {
		if strings.Contains(text, glyph) {
			tags = append(tags, tag)
			text = strings.ReplaceAll(text, glyph, "")
		}
	}
	return strings.TrimSpace(text), tags
}

func parseLocationCell(cell *goquery.Selection) string {
	//multi-location rows hide the full list behind a details element
	if details := cell.Find("details"); details.Length() > 0 {
		return collapseSpace(details.Text())
	}
	return collapseSpace(cell.Text())
}

// parseApplyCell returns the apply link and whether the row is closed. A lock
// glyph or a missing anchor both mean there is no public application.
func parseApplyCell(cell *goquery.Selection) (string, bool) {
	if strings.Contains(cell.Text(), lockGlyph) {
		return "", true
	}

	var direct, fallback string
	cell.Find("a").Each(func(_ int, link *goquery.Selection) {
		href, ok := link.Attr("href")
		if !ok || !strings.HasPrefix(href, "http") {
			return
		}
		//prefer direct employer links over the aggregator's redirect
		if !strings.Contains(href, "simplify.jobs/p/") {
			if direct == "" {
				direct = href
			}
		} else if fallback == "" {
			fallback = href
		}
	})

	if direct != "" {
		return direct, false
	}
	if fallback != "" {
		return fallback, false
	}
	return "", true
}

// ParseAge converts table age strings like "5d" or "2mo" to a day count.
// A month is approximated as 30 days.
func ParseAge(age string) (int, bool) {
	age = strings.ToLower(strings.TrimSpace(age))
	if m := dayAgeRegex.FindStringSubmatch(age); m != nil {
		days, _ := strconv.Atoi(m[1])
		return days, true
	}
	if m := monthAgeRegex.FindStringSubmatch(age); m != nil {
		months, _ := strconv.Atoi(m[1])
		return months * 30, true
	}
	return 0, false
}

func stripGlyphs(text string, glyphs ...string) string {
	for _, g := range glyphs {
		text = strings.ReplaceAll(text, g, "")
	}
	return strings.TrimSpace(text)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
