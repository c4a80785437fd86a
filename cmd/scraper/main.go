package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/DaDevFox/job-track/internal/config"
	"github.com/DaDevFox/job-track/internal/dedup"
	"github.com/DaDevFox/job-track/internal/notify"
	"github.com/DaDevFox/job-track/internal/runner"
	"github.com/DaDevFox/job-track/internal/scraper"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the YAML config")
	flag.Parse()

	//load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	log.Printf("🔧 Config loaded. Sources: %d", len(cfg.Sources))

	//telegram is optional; runs without a token just skip notifications
	var bot *notify.Notifier
	if cfg.TelegramToken != "" {
		bot, err = notify.New(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("⚠️ Failed to init Telegram Bot: %v. Continuing without notifications.", err)
			bot = nil
		} else {
			log.Println("🤖 Telegram Bot initialized.")
		}
	}

	//setup context with timeout = 10 mins
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	log.Println("🚀 Starting job tracker...")

	run := runner.New(!cfg.Headful)
	cache := dedup.OpenSeenCache(cfg.CachePath)

	var inserted []scraper.Job
	for _, src := range cfg.Sources {
		log.Printf("\n▶️ Starting source: %s", src.Source)

		jobs, errs := consume(run.Stream(ctx, src.Source, src.SearchConfig))
		for _, msg := range errs {
			log.Printf("⚠️ %s: %s", src.Source, msg)
		}

		res := dedup.Reconcile(jobs, cache.KnownURLs(), cfg.Refresh)
		log.Printf("🔍 Reconciled %s: %d new, %d skipped, %d updated", src.Source, res.Inserted, res.Skipped, res.Updated)
		cache.MarkInserted(res.InsertedURLs())

		for _, d := range res.Decisions {
			if d.Action != dedup.ActionInsert {
				continue
			}
			inserted = append(inserted, d.Job)
			if bot != nil {
				if err := bot.SendJob(d.Job); err != nil {
					log.Printf("⚠️ Failed to send job to Telegram: %v", err)
				}
				//1 second delay to avoid 429
				time.Sleep(1 * time.Second)
			}
		}
	}

	log.Printf("\n📦 Total new jobs: %d", len(inserted))

	if bot != nil && len(inserted) > 0 {
		statusMsg := fmt.Sprintf("✅ Stored %d new postings across %d sources.", len(inserted), len(cfg.Sources))
		if err := bot.SendStatus(statusMsg); err != nil {
			log.Printf("⚠️ Failed to send status to Telegram: %v", err)
		}
	}

	saveJobs(cfg.OutputPath, inserted)

	log.Println("🏁 Execution finished.")
}

// consume drains one run's event stream, logging progress as it happens.
// Returns the found jobs plus any non-fatal errors the run surfaced.
func consume(events <-chan scraper.Event) ([]scraper.Job, []string) {
	var jobs []scraper.Job
	var errs []string
	for e := range events {
		switch ev := e.(type) {
		case scraper.Start:
			log.Printf("🔍 Scraping %s...", ev.SourceName)
		case scraper.Progress:
			log.Printf("  ⏳ %s", ev.Message)
		case scraper.JobFound:
			jobs = append(jobs, ev.Job)
		case scraper.Complete:
			log.Printf("✅ Finished: %d jobs found.", ev.TotalScraped)
			errs = append(errs, ev.Errors...)
		case scraper.Error:
			log.Printf("❌ Scrape failed: %s", ev.Message)
			errs = append(errs, ev.Message)
		}
	}
	return jobs, errs
}

func saveJobs(dir string, jobs []scraper.Job) {
	if len(jobs) == 0 {
		log.Println("ℹ️ No jobs to save.")
		return
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("⚠️ Failed to create output directory: %v", err)
		return
	}

	//gen filename: job-search-YYYY-MM-DD.json
	filename := fmt.Sprintf("job-search-%s.json", time.Now().Format("2006-01-02"))
	filePath := filepath.Join(dir, filename)

	data, err := json.MarshalIndent(jobs, "", " ")
	if err != nil {
		log.Printf("⚠️ Failed to marshal jobs to JSON: %v", err)
		return
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		log.Printf("⚠️ Failed to write results file: %v", err)
		return
	}

	log.Printf("📁 Results saved to %s", filePath)
}
