package dedup

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
)

type seenEntry struct {
	URL       string `json:"url"`
	Timestamp int64  `json:"timestamp"`
}

// SeenCache is the file-backed record of apply URLs already stored. Entries
// older than thirty days are dropped on load so long-dead postings can
// resurface.
type SeenCache struct {
	mu       sync.Mutex
	filePath string
	seen     map[string]int64
}

const thirtyDaysMs = int64(30 * 24 * 60 * 60 * 1000)

// OpenSeenCache creates or loads the cache under cacheDir.
func OpenSeenCache(cacheDir string) *SeenCache {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		log.Printf("⚠️ Failed to create cache directory: %v", err)
	}
	cache := &SeenCache{
		filePath: filepath.Join(cacheDir, "seen_jobs.json"),
		seen:     make(map[string]int64),
	}
	cache.load()
	return cache
}

// KnownURLs snapshots the cache as a set for reconciliation.
func (sc *SeenCache) KnownURLs() mapset.Set[string] {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	known := mapset.NewThreadUnsafeSet[string]()
	for url := range sc.seen {
		known.Add(url)
	}
	return known
}

// Contains reports whether a URL has already been stored.
func (sc *SeenCache) Contains(url string) bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	_, exists := sc.seen[url]
	return exists
}

// MarkInserted records newly stored URLs and persists the cache.
func (sc *SeenCache) MarkInserted(urls []string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	now := time.Now().UnixMilli()
	changed := false
	for _, url := range urls {
		if _, exists := sc.seen[url]; !exists {
			sc.seen[url] = now
			changed = true
		}
	}

	if changed {
		sc.save()
	}
}

func (sc *SeenCache) load() {
	data, err := os.ReadFile(sc.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ Failed to read seen_jobs.json: %v", err)
		}
		return
	}

	var entries []seenEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("⚠️ Failed to parse seen_jobs.json: %v", err)
		return
	}

	cutoff := time.Now().UnixMilli() - thirtyDaysMs
	loaded := 0
	for _, e := range entries {
		if e.Timestamp > cutoff {
			sc.seen[e.URL] = e.Timestamp
			loaded++
		}
	}
	log.Printf("📋 Loaded %d previously seen jobs (%d expired and removed)", loaded, len(entries)-loaded)
}

func (sc *SeenCache) save() {
	entries := make([]seenEntry, 0, len(sc.seen))
	for url, ts := range sc.seen {
		entries = append(entries, seenEntry{URL: url, Timestamp: ts})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		log.Printf("⚠️ Failed to marshal seen jobs: %v", err)
		return
	}
	if err := os.WriteFile(sc.filePath, data, 0644); err != nil {
		log.Printf("⚠️ Failed to write seen_jobs.json: %v", err)
	}
}
