package bulkfilehash

// Verification statuses
const (
	CheckStatusOK      = "ok"      // file hashes to the recorded digest
	CheckStatusFailed  = "failed"  // file read fine but the digest changed
	CheckStatusMissing = "missing" // file could not be read
)

// CheckResult records the verification outcome for one manifest entry
type CheckResult struct {
	Path     string `json:"path"`
	Status   string `json:"status"`
	Expected string `json:"expected"`
	Actual   string `json:"actual,omitempty"`
}

// CheckSummary aggregates a verification run
type CheckSummary struct {
	Checked int           `json:"checked"`
	OK      int           `json:"ok"`
	Failed  int           `json:"failed"`
	Missing int           `json:"missing"`
	Results []CheckResult `json:"results"`
}

// AllOK returns true when every checked file verified
func (cs *CheckSummary) AllOK() bool {
	return cs.Failed == 0 && cs.Missing == 0
}

// CheckManifest re-hashes every file named in the index with the manifest's
// own algorithm and compares digests. Files that cannot be read count as
// missing. Results are delivered through emit (when non-nil) and collected in
// the summary, in manifest path order.
func CheckManifest(index *ManifestIndex, workers int, bufferSize int, shutdownChan <-chan struct{}, emit func(CheckResult)) (*CheckSummary, error) {
	defer VerboseEnter()()

	summary := &CheckSummary{}

	engine := NewHashEngine(workers, index.Algorithm(), bufferSize, shutdownChan)
	err := engine.Run(index.Paths(), func(result HashResult) {
		// Every path came out of the index, so the lookup cannot miss
		expected, _ := index.Find(result.Path)

		check := CheckResult{
			Path:     result.Path,
			Expected: expected.Digest,
		}

		switch {
		case result.Err != nil:
			check.Status = CheckStatusMissing
			summary.Missing++
		case result.Digest != expected.Digest:
			check.Status = CheckStatusFailed
			check.Actual = result.Digest
			summary.Failed++
		default:
			check.Status = CheckStatusOK
			summary.OK++
		}

		summary.Checked++
		summary.Results = append(summary.Results, check)

		if emit != nil {
			emit(check)
		}
	})
	if err != nil {
		return summary, err
	}

	return summary, nil
}
