// Adapter for Lever-hosted job boards, which share a stable listing layout:
// postings live in div.posting with a title link, a location span and a row
// of category chips.

package lever

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/DaDevFox/job-track/internal/fetch"
	"github.com/DaDevFox/job-track/internal/filter"
	"github.com/DaDevFox/job-track/internal/scraper"
)

const categorySeparator = " | "

type Scraper struct {
	client *fetch.Client
}

func New() *Scraper {
	return &Scraper{client: fetch.NewClient()}
}

func (s *Scraper) Name() string {
	return "lever"
}

func (s *Scraper) Scrape(ctx context.Context, cfg scraper.SearchConfig, sink scraper.EventSink) ([]scraper.Job, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("lever adapter needs a board url")
	}

	sink.Emit(scraper.Progress{Step: 1, TotalSteps: 2, Message: "fetching lever board"})
	html, err := s.client.Get(ctx, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch lever board: %w", err)
	}

	sink.Emit(scraper.Progress{Step: 2, TotalSteps: 2, Message: "parsing lever board"})
	return Parse(html, cfg, sink)
}

// Parse extracts postings from a Lever board page.
func Parse(html string, cfg scraper.SearchConfig, sink scraper.EventSink) ([]scraper.Job, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse lever board: %w", err)
	}

	base, _ := url.Parse(cfg.URL)
	seen := mapset.NewThreadUnsafeSet[string]()
	limit := cfg.Limit()

	var jobs []scraper.Job
	doc.Find("div.posting").EachWithBreak(func(_ int, posting *goquery.Selection) bool {
		link := posting.Find("a.posting-title").First()
		if link.Length() == 0 {
			return true
		}

		title := cleanText(link.Find("h5").First().Text())
		if title == "" {
			title = cleanText(link.Text())
		}
		if title == "" {
			return true
		}

		href, _ := link.Attr("href")
		applyURL := resolveLink(base, href)
		if applyURL == "" || seen.Contains(applyURL) {
			return true
		}

		location := cleanText(posting.Find("span.sort-by-location").First().Text())

		var categories []string
		posting.Find("div.posting-categories span").Each(func(_ int, span *goquery.Selection) {
			if text := cleanText(span.Text()); text != "" {
				categories = append(categories, text)
			}
		})
		description := strings.Join(categories, categorySeparator)

		newGrad := filter.IsNewGrad(title, description)
		if cfg.NewGradOnly && !newGrad {
			return true
		}

		job := scraper.Job{
			Title:       title,
			Company:     cfg.Company,
			Location:    location,
			Description: description,
			ApplyURL:    applyURL,
			SourceURL:   cfg.URL,
			NewGrad:     newGrad,
		}
		job.AddTags(categories...)
		if newGrad {
			job.AddTags("new-grad")
		}

		seen.Add(applyURL)
		jobs = append(jobs, job)
		sink.Emit(scraper.JobFound{Job: job})
		return len(jobs) < limit
	})

	return jobs, nil
}

func resolveLink(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
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
