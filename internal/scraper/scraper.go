// Define an interface for all scrapers
// Ensure consistency

package scraper

import "context"

// EventSink receives Progress and JobFound events while a scrape is running.
// A nil sink is valid and turns emission into a no-op (batch mode).
type EventSink func(Event)

// Emit sends an event through the sink if one is attached.
func (s EventSink) Emit(e Event) {
	if s != nil {
		s(e)
	}
}

//Scraper defines the interface that all source adapters must implement
type Scraper interface {
	//Scrape extracts postings for one run. Adapters emit Progress and
	//JobFound through the sink; Start and the terminal event belong to
	//the orchestrator. The returned slice holds the same records in
	//discovery order. Network and browser resources are released on
	//every exit path.
	Scrape(ctx context.Context, cfg SearchConfig, sink EventSink) ([]Job, error)

	//Name is the source name ("simplify", "hiringcafe", ...)
	Name() string
}
