// Adapter for the hiring.cafe aggregator. The site is fully
// JavaScript-rendered, so a headless browser navigates the search page,
// extracts job links plus surrounding card text via an in-page script, and
// scrolls until the result cap is hit or the feed stops producing new links.

package hiringcafe

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/playwright-community/playwright-go"

	"github.com/DaDevFox/job-track/internal/browser"
	"github.com/DaDevFox/job-track/internal/scraper"
)

const (
	baseURL         = "https://hiring.cafe"
	searchURL       = baseURL + "/search"
	jobLinkSelector = "a[href*='/viewjob/']"

	//stop after this many consecutive scrolls with no new distinct links
	maxIdleScrolls = 15
	scrollStep     = 800
)

// extractScript collects every job link with a bounded window of surrounding
// card text. Walking ten parents up reaches the card container reliably
// enough; the innerText cap keeps payloads bounded.
const extractScript = `() => {
	const out = [];
	document.querySelectorAll('a[href*="/viewjob/"]').forEach(link => {
		const href = link.getAttribute('href');
		if (!href || href.includes('undefined')) return;
		let container = link;
		for (let i = 0; i < 10; i++) {
			if (container.parentElement) container = container.parentElement;
		}
		out.push({
			url: href,
			linkText: (link.innerText || '').trim(),
			cardText: (container.innerText || '').substring(0, 2000),
		});
	});
	return out;
}`

type Scraper struct {
	headless bool
}

func New(headless bool) *Scraper {
	return &Scraper{headless: headless}
}

func (s *Scraper) Name() string {
	return "hiringcafe"
}

func buildSearchURL(cfg scraper.SearchConfig) string {
	params := url.Values{}
	if cfg.Query != "" {
		params.Set("q", cfg.Query)
	}
	if cfg.Department != "" {
		params.Set("departments", cfg.Department)
	}
	if len(cfg.ExperienceLevels) > 0 {
		params.Set("experience", strings.Join(cfg.ExperienceLevels, ","))
	}
	if cfg.Location != "" {
		params.Set("location", cfg.Location)
	}
	if len(params) == 0 {
		return searchURL
	}
	return searchURL + "?" + params.Encode()
}

func (s *Scraper) Scrape(ctx context.Context, cfg scraper.SearchConfig, sink scraper.EventSink) ([]scraper.Job, error) {
	session, err := browser.Launch(s.headless)
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	defer session.Close()

	page, err := session.NewPage()
	if err != nil {
		return nil, err
	}

	target := buildSearchURL(cfg)
	log.Printf("🔍 Navigating to %s", target)
	if _, err := page.Goto(target, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(60000),
	}); err != nil {
		return nil, fmt.Errorf("load search page: %w", err)
	}

	if _, err := page.WaitForSelector(jobLinkSelector, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(30000),
	}); err != nil {
		//no links after the wait is an empty result, not a failure: the
		//query may genuinely match nothing, or the layout changed
		log.Printf("⚠️ No job links appeared for %s", target)
		_ = browser.CaptureDebug(page, "hiringcafe", "Capturing page state for selector debugging")
		sink.Emit(scraper.Progress{
			Step:       100,
			TotalSteps: scraper.PercentSteps,
			Message:    "no job links appeared; empty result or layout change",
		})
		return nil, nil
	}

	//give the first band of cards time to finish rendering
	browser.Pace(1500, 2500)

	return s.collect(ctx, page, cfg, sink, target)
}

func (s *Scraper) collect(ctx context.Context, page playwright.Page, cfg scraper.SearchConfig, sink scraper.EventSink, target string) ([]scraper.Job, error) {
	seen := mapset.NewThreadUnsafeSet[string]()
	var jobs []scraper.Job
	limit := cfg.Limit()
	idle := 0
	dropped := 0

	for len(jobs) < limit && idle < maxIdleScrolls {
		if err := ctx.Err(); err != nil {
			return jobs, err
		}

		cards, err := extractCards(page)
		if err != nil {
			return jobs, fmt.Errorf("extract job cards: %w", err)
		}

		newLinks := 0
		for _, c := range cards {
			if len(jobs) >= limit {
				break
			}
			jobURL := absoluteURL(c.URL)
			if jobURL == "" || seen.Contains(jobURL) {
				continue
			}
			seen.Add(jobURL)
			newLinks++

			job, ok := parseCard(c, target)
			if !ok {
				dropped++
				continue
			}
			job.ApplyURL = jobURL
			if cfg.NewGradOnly && !job.NewGrad {
				continue
			}
			jobs = append(jobs, job)
			sink.Emit(scraper.JobFound{Job: job})
		}

		if newLinks == 0 {
			idle++
		} else {
			idle = 0
			sink.Emit(scraper.Progress{
				Step:       percent(len(jobs), limit),
				TotalSteps: scraper.PercentSteps,
				Message:    fmt.Sprintf("scraped %d postings", len(jobs)),
				JobsFound:  len(jobs),
			})
		}

		if len(jobs) >= limit {
			break
		}
		if err := browser.ScrollBy(page, scrollStep); err != nil {
			return jobs, fmt.Errorf("scroll feed: %w", err)
		}
		browser.Pace(1200, 1800)
	}

	if dropped > 0 {
		log.Printf("⚠️ Dropped %d cards without a usable title", dropped)
	}
	return jobs, nil
}

func extractCards(page playwright.Page) ([]card, error) {
	result, err := page.Evaluate(extractScript)
	if err != nil {
		return nil, err
	}
	items, ok := result.([]interface{})
	if !ok {
		return nil, nil
	}

	cards := make([]card, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		c := card{
			URL:      asString(m["url"]),
			LinkText: asString(m["linkText"]),
			CardText: asString(m["cardText"]),
		}
		if c.URL != "" {
			cards = append(cards, c)
		}
	}
	return cards, nil
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func absoluteURL(href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	base, _ := url.Parse(baseURL)
	return base.ResolveReference(ref).String()
}

func percent(n, limit int) int {
	if limit <= 0 {
		return 0
	}
	p := n * 100 / limit
	if p > 100 {
		return 100
	}
	return p
}
