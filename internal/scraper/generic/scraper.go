// Heuristic adapter for ad-hoc career pages. Tries a fixed priority list of
// listing-container selectors; when none yields multiple matches the page is
// treated as a single posting and parsed with title/description fallbacks.

package generic

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/DaDevFox/job-track/internal/fetch"
	"github.com/DaDevFox/job-track/internal/filter"
	"github.com/DaDevFox/job-track/internal/scraper"
)

const (
	maxTitleLen    = 200
	maxLocationLen = 200
	minDescription = 100
)

// containerSelectors is tried in order; the first selector matching more than
// one element marks the page as a listing page.
var containerSelectors = []string{
	"[class*='job-card']",
	"[class*='JobCard']",
	"[class*='job-listing']",
	"[class*='JobListing']",
	"[class*='job-row']",
	"[class*='posting']",
	"[data-job-id]",
	"li[class*='job']",
	"article[class*='job']",
}

var titleSelectors = "h2, h3, h4, [class*='title'], [class*='Title']"

var singleTitleSelectors = []string{
	"h1[class*='title']",
	"h1[class*='Title']",
	"[class*='job-title']",
	"[class*='JobTitle']",
	"h1",
}

var singleDescriptionSelectors = []string{
	"[class*='description']",
	"[class*='Description']",
	"[class*='job-details']",
	"article",
	"main",
}

var applySelectors = []string{
	"a[class*='apply']",
	"a[class*='Apply']",
	"a[href*='apply']",
}

var hostPrefixRegex = regexp.MustCompile(`^(www\.|jobs\.|careers\.)`)

type Scraper struct {
	client *fetch.Client
}

func New() *Scraper {
	return &Scraper{client: fetch.NewClient()}
}

func (s *Scraper) Name() string {
	return "generic"
}

func (s *Scraper) Scrape(ctx context.Context, cfg scraper.SearchConfig, sink scraper.EventSink) ([]scraper.Job, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("generic adapter needs a target url")
	}

	sink.Emit(scraper.Progress{Step: 1, TotalSteps: 2, Message: "fetching career page"})
	html, err := s.client.Get(ctx, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch career page: %w", err)
	}

	sink.Emit(scraper.Progress{Step: 2, TotalSteps: 2, Message: "parsing career page"})
	jobs, err := Parse(html, cfg, sink)
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// Parse runs the layout heuristics over raw HTML. Exposed for tests and for
// callers that already hold page content.
func Parse(html string, cfg scraper.SearchConfig, sink scraper.EventSink) ([]scraper.Job, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse career page: %w", err)
	}

	base, _ := url.Parse(cfg.URL)
	company := cfg.Company
	if company == "" {
		company = companyFromURL(cfg.URL)
	}

	var jobs []scraper.Job
	dropped := 0
	seen := mapset.NewThreadUnsafeSet[string]()
	limit := cfg.Limit()

	for _, selector := range containerSelectors {
		containers := doc.Find(selector)
		if containers.Length() <= 1 {
			continue
		}
		containers.EachWithBreak(func(_ int, container *goquery.Selection) bool {
			job, ok := parseContainer(container, base, cfg, company)
			if !ok {
				dropped++
				return true
			}
			if seen.Contains(job.ApplyURL) {
				//first occurrence of a link wins within one pass
				return true
			}
			if cfg.NewGradOnly && !job.NewGrad {
				return true
			}
			seen.Add(job.ApplyURL)
			jobs = append(jobs, job)
			sink.Emit(scraper.JobFound{Job: job})
			return len(jobs) < limit
		})
		break
	}

	//no listing containers matched: treat the page as one posting
	if len(jobs) == 0 {
		if job, ok := parseSinglePage(doc, cfg, company); ok {
			if !cfg.NewGradOnly || job.NewGrad {
				jobs = append(jobs, job)
				sink.Emit(scraper.JobFound{Job: job})
			}
		}
	}

	if dropped > 0 {
		log.Printf("generic: dropped %d cards without a usable title (%s)", dropped, cfg.URL)
	}
	return jobs, nil
}

func parseContainer(container *goquery.Selection, base *url.URL, cfg scraper.SearchConfig, company string) (scraper.Job, bool) {
	title := cleanText(container.Find(titleSelectors).First().Text())
	if title == "" || len(title) > maxTitleLen {
		return scraper.Job{}, false
	}

	applyURL := cfg.URL
	if href, ok := container.Find("a[href]").First().Attr("href"); ok && href != "" && !strings.HasPrefix(href, "#") {
		applyURL = resolveLink(base, href)
	}

	location := cleanText(container.Find("[class*='location'], [class*='Location']").First().Text())
	description := cleanText(container.Find("[class*='description'], [class*='Description'], [class*='snippet']").First().Text())

	newGrad := filter.IsNewGrad(title, description)
	job := scraper.Job{
		Title:       title,
		Company:     company,
		Location:    location,
		Description: description,
		ApplyURL:    applyURL,
		SourceURL:   cfg.URL,
		NewGrad:     newGrad,
	}
	if newGrad {
		job.AddTags("new-grad")
	}
	return job, true
}

func parseSinglePage(doc *goquery.Document, cfg scraper.SearchConfig, company string) (scraper.Job, bool) {
	var title string
	for _, selector := range singleTitleSelectors {
		candidate := cleanText(doc.Find(selector).First().Text())
		if candidate != "" && len(candidate) <= maxTitleLen {
			title = candidate
			break
		}
	}
	if title == "" {
		return scraper.Job{}, false
	}

	var description string
	for _, selector := range singleDescriptionSelectors {
		candidate := cleanText(doc.Find(selector).First().Text())
		if len(candidate) >= minDescription {
			description = candidate
			break
		}
	}

	location := ""
	doc.Find("[class*='location'], [class*='Location'], [data-testid*='location']").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		candidate := cleanText(el.Text())
		if candidate != "" && len(candidate) < maxLocationLen {
			location = candidate
			return false
		}
		return true
	})

	base, _ := url.Parse(cfg.URL)
	applyURL := cfg.URL
	for _, selector := range applySelectors {
		if href, ok := doc.Find(selector).First().Attr("href"); ok && href != "" {
			applyURL = resolveLink(base, href)
			break
		}
	}

	newGrad := filter.IsNewGrad(title, description)
	job := scraper.Job{
		Title:       title,
		Company:     company,
		Location:    location,
		Description: description,
		ApplyURL:    applyURL,
		SourceURL:   cfg.URL,
		NewGrad:     newGrad,
	}
	if newGrad {
		job.AddTags("new-grad")
	}
	return job, true
}

// companyFromURL derives a readable company name from the page host when the
// config does not name one.
func companyFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return "Unknown Company"
	}
	host := hostPrefixRegex.ReplaceAllString(strings.ToLower(u.Hostname()), "")
	if dot := strings.Index(host, "."); dot > 0 {
		host = host[:dot]
	}
	if host == "" {
		return "Unknown Company"
	}
	return cases.Title(language.English).String(strings.ReplaceAll(host, "-", " "))
}

func resolveLink(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
