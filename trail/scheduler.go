package trail

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// progressInterval throttles FileProgress emission so a fast folder
// does not flood the consumer.
const progressInterval = 100 * time.Millisecond

// Scheduler fans one folder's frame indices out over a bounded worker
// pool. It is built once per run from validated configuration.
type Scheduler struct {
	Workers int
	Events  chan<- ProgressUpdate
}

// NewScheduler returns a scheduler with the given pool size; workers
// <= 0 means all available execution units.
func NewScheduler(workers int, events chan<- ProgressUpdate) *Scheduler {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Scheduler{Workers: workers, Events: events}
}

// OutputDir derives the trail output directory for a folder: a sibling
// of the input named <input>_trail_<historyLength>.
func OutputDir(folderPath string, historyLength int) string {
	name := fmt.Sprintf("%s_trail_%d", filepath.Base(folderPath), historyLength)
	return filepath.Join(filepath.Dir(folderPath), name)
}

// Run composites and writes every frame of one folder. It emits
// throttled FileProgress events while working and exactly one of
// FolderCompleted or FolderError when the pool has drained. The
// returned error is non-nil when the folder failed as a whole or any
// frame failed.
//
// Cancellation is cooperative: each task polls ctx before doing any
// work and exits without producing output if it is already cancelled;
// tasks that have started are never interrupted.
func (s *Scheduler) Run(ctx context.Context, folderIndex int, folderPath string, cache *FrameCache, params Params) error {
	outputDir := OutputDir(folderPath, params.HistoryLength)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		msg := fmt.Sprintf("failed to create output directory: %v", err)
		s.Events <- FolderError{FolderIndex: folderIndex, Message: msg}
		return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	total := cache.Len()
	jobs := make(chan int, total)
	results := make(chan error, total)

	var done atomic.Int64
	start := time.Now()
	var emitMu sync.Mutex
	lastEmit := time.Now()

	var wg sync.WaitGroup
	for w := 0; w < s.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				// Skip deterministically if cancellation arrived
				// before this task body began.
				if ctx.Err() != nil {
					continue
				}

				canvas := Composite(idx, cache, params)
				name := filepath.Base(cache.Paths[idx])
				if err := EncodeCanvas(canvas, filepath.Join(outputDir, name)); err != nil {
					results <- err
					continue
				}

				n := int(done.Add(1))

				emitMu.Lock()
				emit := n == total || time.Since(lastEmit) >= progressInterval
				if emit {
					lastEmit = time.Now()
				}
				emitMu.Unlock()

				if emit {
					rate := 0.0
					if elapsed := time.Since(start).Seconds(); elapsed > 0 {
						rate = float64(n) / elapsed
					}
					s.Events <- FileProgress{
						FolderIndex:    folderIndex,
						FilesDone:      n,
						FilesTotal:     total,
						CurrentFile:    name,
						FilesPerSecond: rate,
					}
				}
			}
		}()
	}

	for idx := 0; idx < total; idx++ {
		jobs <- idx
	}
	close(jobs)

	wg.Wait()
	close(results)

	failed := 0
	var firstErr error
	for err := range results {
		if firstErr == nil {
			firstErr = err
		}
		failed++
	}

	if failed > 0 {
		s.Events <- FolderError{
			FolderIndex: folderIndex,
			Message:     fmt.Sprintf("%d files failed to process", failed),
		}
		return fmt.Errorf("%d files failed to process: first error: %w", failed, firstErr)
	}

	s.Events <- FolderCompleted{FolderIndex: folderIndex}
	return nil
}
