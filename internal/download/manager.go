// Package download implements the installer's download engine contract:
// single and batch transfers with optional size/SHA-1 verification and an
// HTTP cache mode backed by a sidecar file.
package download

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/quasar/mcinstall/internal/integrity"
)

// Mode selects how an entry is fetched.
type Mode int

const (
	// Force always re-downloads regardless of any cached copy.
	Force Mode = iota
	// Cache consults/updates the `<dest>.cache` sidecar and sends
	// conditional request headers.
	Cache
)

// Entry is one file to fetch.
type Entry struct {
	URL  string
	Dest string
	Size int64  // 0 means unknown
	SHA1 string // empty means unchecked
	Mode Mode
}

// sidecar is the `<dest>.cache` JSON document.
type sidecar struct {
	URL          string `json:"url"`
	Size         int64  `json:"size"`
	SHA1         string `json:"sha1"`
	ETag         string `json:"etag,omitempty"`
	LastModified string `json:"last_modified,omitempty"`
}

func sidecarPath(dest string) string { return dest + ".cache" }

func readSidecar(dest string) *sidecar {
	data, err := os.ReadFile(sidecarPath(dest))
	if err != nil {
		return nil
	}
	var s sidecar
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	return &s
}

func writeSidecar(dest string, s sidecar) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(sidecarPath(dest), data, 0o644)
}

// InvalidSizeError reports a downloaded file whose size didn't match Entry.Size.
type InvalidSizeError struct {
	Entry    Entry
	Got      int64
	Expected int64
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("download: %s: invalid size: got %d, want %d", e.Entry.URL, e.Got, e.Expected)
}

// InvalidSha1Error reports a downloaded file whose digest didn't match Entry.SHA1.
type InvalidSha1Error struct {
	Entry    Entry
	Got      string
	Expected string
}

func (e *InvalidSha1Error) Error() string {
	return fmt.Sprintf("download: %s: invalid sha1: got %s, want %s", e.Entry.URL, e.Got, e.Expected)
}

// InvalidStatusError reports an HTTP response outside {200, 304}.
type InvalidStatusError struct {
	Entry Entry
	Code  int
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("download: %s: unexpected HTTP status %d", e.Entry.URL, e.Code)
}

// Failure pairs an Entry with the error that fetching it produced.
type Failure struct {
	Entry Entry
	Err   error
}

// AggregateError is returned when one or more entries of a batch failed.
// Per this is never flattened into a single message — callers
// decide how to present the per-entry failures.
type AggregateError struct {
	Failures []Failure
}

func (e *AggregateError) Error() string {
	return fmt.Sprintf("download: %d of the batch's entries failed", len(e.Failures))
}

// Progress is the (done_count, total_count, done_bytes, total_bytes) tuple
// emitted during a batch. TotalBytes grows monotonically
// when entries without a declared size are still in flight.
type Progress struct {
	DoneCount  int
	TotalCount int
	DoneBytes  int64
	TotalBytes int64
}

// Manager runs single and batch downloads over a shared HTTP client.
type Manager struct {
	httpClient  *http.Client
	concurrency int
}

// DefaultConcurrency is the batch's default bounded parallelism.
const DefaultConcurrency = 40

// NewManager builds a Manager. concurrency <= 0 uses DefaultConcurrency.
func NewManager(concurrency int) *Manager {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0 // a retry is not required; failures propagate
	retryClient.Logger = nil
	retryClient.HTTPClient.Transport = &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: concurrency,
		IdleConnTimeout:     90 * time.Second,
	}
	retryClient.HTTPClient.Timeout = 5 * time.Minute

	return &Manager{httpClient: retryClient.StandardClient(), concurrency: concurrency}
}

// Single runs one blocking download.
func (m *Manager) Single(ctx context.Context, e Entry, onProgress func(Progress)) error {
	return m.Batch(ctx, []Entry{e}, onProgress)
}

// Batch runs a bounded-parallel set of downloads. Entries are sorted
// largest-first before dispatch to maximize parallel utilization. Returns nil if every entry succeeded, or an *AggregateError
// otherwise.
func (m *Manager) Batch(ctx context.Context, entries []Entry, onProgress func(Progress)) error {
	if len(entries) == 0 {
		return nil
	}

	ordered := make([]Entry, len(entries))
	copy(ordered, entries)
	sortLargestFirst(ordered)

	var totalBytes int64
	for _, e := range ordered {
		totalBytes += e.Size
	}

	var doneCount int64
	var doneBytes int64
	var runningTotalBytes = totalBytes
	var mu sync.Mutex // guards runningTotalBytes growth and progress emission threshold
	lastEmitted := int64(0)

	emit := func() {
		mu.Lock()
		tb := runningTotalBytes
		mu.Unlock()
		if onProgress != nil {
			onProgress(Progress{
				DoneCount:  int(atomic.LoadInt64(&doneCount)),
				TotalCount: len(ordered),
				DoneBytes:  atomic.LoadInt64(&doneBytes),
				TotalBytes: tb,
			})
		}
	}

	onChunk := func(n int64) {
		newDone := atomic.AddInt64(&doneBytes, n)
		mu.Lock()
		threshold := runningTotalBytes / 1000
		if threshold < 1 {
			threshold = 1
		}
		shouldEmit := newDone-lastEmitted >= threshold
		if shouldEmit {
			lastEmitted = newDone
		}
		mu.Unlock()
		if shouldEmit {
			emit()
		}
	}

	growTotal := func(extra int64) {
		mu.Lock()
		runningTotalBytes += extra
		mu.Unlock()
	}

	work := make(chan Entry, len(ordered))
	for _, e := range ordered {
		work <- e
	}
	close(work)

	var failMu sync.Mutex
	var failures []Failure

	var wg sync.WaitGroup
	workers := m.concurrency
	if workers > len(ordered) {
		workers = len(ordered)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for e := range work {
				select {
				case <-ctx.Done():
					failMu.Lock()
					failures = append(failures, Failure{Entry: e, Err: ctx.Err()})
					failMu.Unlock()
					continue
				default:
				}
				if err := m.downloadEntry(ctx, e, onChunk, growTotal); err != nil {
					failMu.Lock()
					failures = append(failures, Failure{Entry: e, Err: err})
					failMu.Unlock()
				}
				atomic.AddInt64(&doneCount, 1)
				emit()
			}
		}()
	}
	wg.Wait()

	if len(failures) > 0 {
		return &AggregateError{Failures: failures}
	}
	return nil
}

func (m *Manager) downloadEntry(ctx context.Context, e Entry, onChunk func(int64), growTotal func(int64)) error {
	var cached *sidecar
	if e.Mode == Cache {
		cached = readSidecar(e.Dest)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.URL, nil)
	if err != nil {
		return fmt.Errorf("download: building request for %s: %w", e.URL, err)
	}
	sentConditional := false
	if cached != nil && cached.URL == e.URL {
		if cached.ETag != "" {
			req.Header.Set("If-None-Match", cached.ETag)
			sentConditional = true
		}
		if cached.LastModified != "" {
			req.Header.Set("If-Modified-Since", cached.LastModified)
			sentConditional = true
		}
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		if sentConditional {
			// Network failure after a conditional header was sent: trust
			// the existing cached copy rather than failing the run.
			if ok, verr := integrity.Verify(e.Dest, integrity.Expectation{Size: e.Size, Sha1: e.SHA1}); verr == nil && ok {
				return nil
			}
		}
		return fmt.Errorf("download: fetching %s: %w", e.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return &InvalidStatusError{Entry: e, Code: resp.StatusCode}
	}

	if e.Size == 0 && resp.ContentLength > 0 {
		growTotal(resp.ContentLength)
	}

	if err := os.MkdirAll(filepath.Dir(e.Dest), 0o755); err != nil {
		return fmt.Errorf("download: creating directory for %s: %w", e.Dest, err)
	}

	tmp := e.Dest + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("download: creating %s: %w", tmp, err)
	}

	written, sum, err := streamTo(f, resp.Body, onChunk)
	f.Close()
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("download: writing %s: %w", e.Dest, err)
	}

	if e.Size != 0 && written != e.Size {
		os.Remove(tmp)
		return &InvalidSizeError{Entry: e, Got: written, Expected: e.Size}
	}
	if e.SHA1 != "" && sum != e.SHA1 {
		os.Remove(tmp)
		return &InvalidSha1Error{Entry: e, Got: sum, Expected: e.SHA1}
	}

	if err := os.Rename(tmp, e.Dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("download: renaming %s: %w", tmp, err)
	}

	if e.Mode == Cache {
		_ = writeSidecar(e.Dest, sidecar{
			URL:          e.URL,
			Size:         written,
			SHA1:         sum,
			ETag:         resp.Header.Get("ETag"),
			LastModified: resp.Header.Get("Last-Modified"),
		})
	}
	return nil
}

// sortLargestFirst orders entries by descending expected size so the
// batch dispatches its biggest transfers first.
func sortLargestFirst(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Size > entries[j].Size })
}

// FormatSpeed renders a bytes/sec rate for progress logging.
func FormatSpeed(bytesPerSec float64) string {
	return humanize.Bytes(uint64(bytesPerSec)) + "/s"
}
