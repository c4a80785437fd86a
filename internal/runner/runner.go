// Registry and orchestration for scrape runs. The runner maps source ids to
// adapters (unknown ids fall back to the generic DOM adapter) and is the only
// component that emits Start and terminal events, so every run carries
// exactly one Complete or Error regardless of how the adapter behaves.

package runner

import (
	"context"
	"fmt"
	"log"

	"github.com/DaDevFox/job-track/internal/scraper"
	"github.com/DaDevFox/job-track/internal/scraper/generic"
	"github.com/DaDevFox/job-track/internal/scraper/hiringcafe"
	"github.com/DaDevFox/job-track/internal/scraper/lever"
	"github.com/DaDevFox/job-track/internal/scraper/simplify"
)

const eventBuffer = 64

type Runner struct {
	scrapers map[string]scraper.Scraper
	fallback scraper.Scraper
}

// New wires the closed set of known sources. headless controls the rendered
// page adapter's browser.
func New(headless bool) *Runner {
	gen := generic.New()
	return &Runner{
		scrapers: map[string]scraper.Scraper{
			"generic":    gen,
			"simplify":   simplify.New(),
			"lever":      lever.New(),
			"hiringcafe": hiringcafe.New(headless),
		},
		fallback: gen,
	}
}

// Register installs or replaces an adapter under the given source id.
func (r *Runner) Register(source string, s scraper.Scraper) {
	r.scrapers[source] = s
}

// Resolve maps a source id to its adapter; unknown ids get the generic
// fallback so callers never special-case unsupported sources.
func (r *Runner) Resolve(source string) scraper.Scraper {
	if s, ok := r.scrapers[source]; ok {
		return s
	}
	return r.fallback
}

// Run drives one adapter to completion in batch mode. Records missing an
// apply URL are dropped here and logged; they can never reach storage.
func (r *Runner) Run(ctx context.Context, source string, cfg scraper.SearchConfig) ([]scraper.Job, error) {
	s := r.Resolve(source)
	jobs, err := s.Scrape(ctx, cfg, nil)
	if err != nil {
		return nil, fmt.Errorf("scrape %s: %w", s.Name(), err)
	}

	kept := make([]scraper.Job, 0, len(jobs))
	for _, job := range jobs {
		job.Normalize()
		if job.ApplyURL == "" {
			log.Printf("⚠️ %s: missing apply url for %q at %q", s.Name(), job.Title, job.Company)
			continue
		}
		kept = append(kept, job)
	}
	return kept, nil
}

// Stream drives one adapter and delivers its events in production order:
// Start first, then Progress/JobFound as they happen, then exactly one
// terminal Complete or Error. The channel closes after the terminal event.
// Cancelling ctx stops delivery; the adapter's own ctx handling releases its
// resources within its shutdown path.
func (r *Runner) Stream(ctx context.Context, source string, cfg scraper.SearchConfig) <-chan scraper.Event {
	events := make(chan scraper.Event, eventBuffer)
	s := r.Resolve(source)

	go func() {
		defer close(events)

		send := func(e scraper.Event) bool {
			select {
			case events <- e:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !send(scraper.Start{SourceName: s.Name()}) {
			return
		}

		found := 0
		var runErrors []string
		sink := scraper.EventSink(func(e scraper.Event) {
			switch ev := e.(type) {
			case scraper.JobFound:
				ev.Job.Normalize()
				if ev.Job.ApplyURL == "" {
					//unstorable record: surfaced in the terminal event
					//instead of being passed downstream
					runErrors = append(runErrors, fmt.Sprintf("missing apply url for %q at %q", ev.Title, ev.Company))
					return
				}
				found++
				send(scraper.JobFound{Job: ev.Job})
			case scraper.Progress:
				send(e)
			}
		})

		_, err := s.Scrape(ctx, cfg, sink)
		if ctx.Err() != nil {
			//consumer abandoned the run; no terminal event to deliver
			return
		}
		if err != nil {
			send(scraper.Error{Message: fmt.Sprintf("%s: %v", s.Name(), err)})
			return
		}
		if runErrors == nil {
			runErrors = []string{}
		}
		send(scraper.Complete{TotalScraped: found, Errors: runErrors})
	}()

	return events
}
