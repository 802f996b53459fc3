package bulkfilehash

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
)

// ErrInterrupted is returned by operations cut short by a shutdown signal
var ErrInterrupted = errors.New("operation interrupted by shutdown")

// hashTask is one unit of work for the hash workers
type hashTask struct {
	index int
	path  string
}

// HashResult carries the outcome of hashing a single file. Exactly one of
// Digest and Err is meaningful.
type HashResult struct {
	Index  int    `json:"index"`
	Path   string `json:"path"`
	Digest string `json:"digest,omitempty"`
	Err    error  `json:"-"`
}

// FormatResultLine renders a result as an output line: the file's base name,
// a tab, then the uppercase hex digest or an ERROR marker with the reason
func FormatResultLine(result HashResult) string {
	if result.Err != nil {
		return fmt.Sprintf("%s\tERROR: %v", filepath.Base(result.Path), result.Err)
	}
	return fmt.Sprintf("%s\t%s", filepath.Base(result.Path), result.Digest)
}

// HashEngine runs a fixed pool of hash workers over a list of files and
// delivers results in submission order. An engine is single-use: construct,
// call Run once, discard.
type HashEngine struct {
	taskChan     chan hashTask
	resultChan   chan HashResult
	wg           sync.WaitGroup
	shutdownChan <-chan struct{}
	closed       bool
	closeMutex   sync.Mutex
	workers      int
	algorithm    *HashAlgorithm
	bufferSize   int
}

// NewHashEngine creates an engine and starts its worker pool. The caller is
// expected to have resolved the worker count through ResolveWorkerCount. A
// nil shutdownChan disables interruption.
func NewHashEngine(workers int, algorithm *HashAlgorithm, bufferSize int, shutdownChan <-chan struct{}) *HashEngine {
	engine := &HashEngine{
		taskChan:     make(chan hashTask, 100),
		resultChan:   make(chan HashResult, 100),
		shutdownChan: shutdownChan,
		workers:      workers,
		algorithm:    algorithm,
		bufferSize:   bufferSize,
	}

	for i := 0; i < workers; i++ {
		engine.wg.Add(1)
		go engine.hashWorker()
	}

	return engine
}

// hashWorker pulls tasks until the task channel closes, hashing each file and
// sending the outcome to the collector. Per-file failures are results, not
// worker errors.
func (he *HashEngine) hashWorker() {
	defer he.wg.Done()

	for {
		select {
		case task, ok := <-he.taskChan:
			if !ok {
				return
			}

			sum, err := HashFile(task.path, he.algorithm, he.bufferSize, he.shutdownChan)
			if errors.Is(err, ErrInterrupted) {
				return
			}

			result := HashResult{Index: task.index, Path: task.path, Err: err}
			if err == nil {
				result.Digest = HexDigest(sum)
			}

			if IsDebugEnabled("engine") {
				VerboseLog(3, "worker hashed index %d: %s", task.index, task.path)
			}

			select {
			case he.resultChan <- result:
			case <-he.shutdownChan:
				return
			}
		case <-he.shutdownChan:
			return
		}
	}
}

// finishSubmitting closes the task channel exactly once
func (he *HashEngine) finishSubmitting() {
	he.closeMutex.Lock()
	defer he.closeMutex.Unlock()

	if !he.closed {
		close(he.taskChan)
		he.closed = true
	}
}

// Run hashes every file in the given slice and calls emit exactly once per
// file, in slice order, as soon as each contiguous run of results is
// complete. Per-file failures arrive through HashResult.Err; Run itself only
// fails on shutdown or a broken ordering invariant.
func (he *HashEngine) Run(files []string, emit func(HashResult)) error {
	defer VerboseEnter()()

	total := len(files)
	if total == 0 {
		he.finishSubmitting()
		he.wg.Wait()
		return nil
	}

	VerboseLog(2, "hashing %d files with %d workers (%s, %s buffer)",
		total, he.workers, he.algorithm.Name, FormatHumanSize(he.bufferSize))

	// Producer feeds the task queue; closing the channel is the only
	// completion signal the workers need
	go func() {
		defer he.finishSubmitting()
		for i, path := range files {
			select {
			case he.taskChan <- hashTask{index: i, path: path}:
			case <-he.shutdownChan:
				return
			}
		}
	}()

	// The collector is the sole owner of the result table. Each slot is
	// written at most once, and emission only ever advances the contiguous
	// prefix cursor.
	table := make([]*HashResult, total)
	next := 0

	for next < total {
		select {
		case result := <-he.resultChan:
			if table[result.Index] != nil {
				return fmt.Errorf("duplicate result for index %d (%s)", result.Index, result.Path)
			}
			held := result
			table[result.Index] = &held

			for next < total && table[next] != nil {
				if IsDebugEnabled("engine") {
					VerboseLog(3, "emitting index %d: %s", next, table[next].Path)
				}
				emit(*table[next])
				next++
			}
		case <-he.shutdownChan:
			he.wg.Wait()
			return ErrInterrupted
		}
	}

	he.wg.Wait()
	return nil
}

// ResolveWorkerCount applies the configured floor to a requested worker
// count. A request of zero or less falls back to the configured default, and
// anything below the floor is raised to it without complaint.
func ResolveWorkerCount(requested int, config *Config) int {
	floor := DefaultWorkerFloor
	workers := DefaultHashWorkers
	if config != nil {
		perf := config.GetPerformanceConfig()
		floor = perf.WorkerFloor
		workers = perf.Workers
	}

	if requested <= 0 {
		requested = workers
	}
	if requested < floor {
		VerboseLog(2, "raising worker count %d to floor %d", requested, floor)
		requested = floor
	}

	return requested
}
