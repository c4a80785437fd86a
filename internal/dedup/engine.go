// Reconciliation of scraped postings against already-stored ones. Identity is
// the apply URL: a posting with a known URL is skipped (or updated when a
// refresh was requested), an unknown one is inserted, and a posting with no
// URL can never be stored and is reported as an error instead.

package dedup

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/DaDevFox/job-track/internal/scraper"
)

type Action string

const (
	ActionInsert Action = "insert"
	ActionSkip   Action = "skip"
	ActionUpdate Action = "update"
)

// Decision records what should happen to one scraped posting.
type Decision struct {
	Job    scraper.Job
	Action Action
}

type Result struct {
	Decisions []Decision
	Inserted  int
	Skipped   int
	Updated   int
	Errors    []string
}

// InsertedURLs lists the apply URLs of postings the caller should persist and
// mark as seen.
func (r *Result) InsertedURLs() []string {
	urls := make([]string, 0, r.Inserted)
	for _, d := range r.Decisions {
		if d.Action == ActionInsert {
			urls = append(urls, d.Job.ApplyURL)
		}
	}
	return urls
}

// Reconcile folds one scrape batch into decisions against the known URL set.
// Duplicates within the batch itself collapse to a single insert; re-running
// the same batch against the resulting set yields skips only.
func Reconcile(jobs []scraper.Job, known mapset.Set[string], refresh bool) Result {
	var res Result
	batch := mapset.NewThreadUnsafeSet[string]()

	for _, job := range jobs {
		if job.ApplyURL == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("missing apply url for %q at %q", job.Title, job.Company))
			continue
		}

		switch {
		case batch.Contains(job.ApplyURL):
			res.Decisions = append(res.Decisions, Decision{Job: job, Action: ActionSkip})
			res.Skipped++
		case known != nil && known.Contains(job.ApplyURL):
			action := ActionSkip
			if refresh {
				action = ActionUpdate
				res.Updated++
			} else {
				res.Skipped++
			}
			res.Decisions = append(res.Decisions, Decision{Job: job, Action: action})
		default:
			res.Decisions = append(res.Decisions, Decision{Job: job, Action: ActionInsert})
			res.Inserted++
		}
		batch.Add(job.ApplyURL)
	}
	return res
}
