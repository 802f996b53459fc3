package bulkfilehash

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/google/vectorio"
	zcsl "github.com/mattkeenan/zerocopyskiplist"
)

// A manifest is a text file holding the digests of one hashing run: a
// "# bulkfilehash v1 <algorithm>" header line followed by one
// "<DIGEST>\t<path>" line per successfully hashed file, in path order.

const (
	// ManifestVersion is the current manifest format version
	ManifestVersion = 1

	// maxManifestIovecs bounds each writev batch; 1024 is the conservative
	// IOV_MAX lower bound
	maxManifestIovecs = 1024

	manifestContext = "manifest"
)

// ManifestEntry is one digest record in a manifest
type ManifestEntry struct {
	Path   string `json:"path"`
	Digest string `json:"digest"`
}

// WriteManifest writes the successful results to outputPath as a manifest.
// Results carrying errors are skipped; the remaining lines are written with a
// single gathered writev per chunk.
func WriteManifest(outputPath string, algorithm *HashAlgorithm, results []HashResult) error {
	defer VerboseEnter()()

	// Build every line up front so the iovecs can point straight at them
	lines := make([][]byte, 0, len(results)+1)
	lines = append(lines, []byte(fmt.Sprintf("# bulkfilehash v%d %s\n", ManifestVersion, algorithm.Name)))

	entryCount := 0
	for _, result := range results {
		if result.Err != nil {
			continue
		}
		lines = append(lines, []byte(fmt.Sprintf("%s\t%s\n", result.Digest, result.Path)))
		entryCount++
	}

	iovecs := make([]syscall.Iovec, len(lines))
	totalSize := 0
	for i, line := range lines {
		iovecs[i] = syscall.Iovec{
			Base: &line[0],
			Len:  uint64(len(line)),
		}
		totalSize += len(line)
	}

	file, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create manifest file %s: %w", outputPath, err)
	}
	defer file.Close()

	// Write with vectorio, chunked to respect IOV_MAX
	totalWritten := 0
	for offset := 0; offset < len(iovecs); offset += maxManifestIovecs {
		end := offset + maxManifestIovecs
		if end > len(iovecs) {
			end = len(iovecs)
		}

		chunk := iovecs[offset:end]

		if nw, err := vectorio.WritevRaw(uintptr(file.Fd()), chunk); err != nil {
			return fmt.Errorf("failed to write manifest chunk with vectorio: %w", err)
		} else {
			totalWritten += nw
		}
	}

	if totalWritten != totalSize {
		return fmt.Errorf("manifest write incomplete: wrote %d bytes, expected %d", totalWritten, totalSize)
	}

	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync manifest: %w", err)
	}

	VerboseLog(1, "wrote manifest %s: %d entries (%s)", outputPath, entryCount, algorithm.Name)

	return nil
}

// ManifestIndex holds a loaded manifest as a skiplist keyed by path, so
// lookups and in-order walks need no further sorting
type ManifestIndex struct {
	skiplist  *zcsl.ZeroCopySkiplist[ManifestEntry, string, string]
	algorithm *HashAlgorithm
	path      string
}

// newManifestIndex creates an empty index for the given manifest file
func newManifestIndex(path string, algorithm *HashAlgorithm) *ManifestIndex {
	getKeyFromItem := func(entry *ManifestEntry) string {
		return entry.Path
	}

	getItemSize := func(entry *ManifestEntry) int {
		return len(entry.Path) + len(entry.Digest)
	}

	cmpKey := func(a, b string) int {
		return strings.Compare(a, b)
	}

	return &ManifestIndex{
		skiplist:  zcsl.MakeZeroCopySkiplist[ManifestEntry, string, string](16, getKeyFromItem, getItemSize, cmpKey),
		algorithm: algorithm,
		path:      path,
	}
}

// LoadManifest parses a manifest file into a sorted index. Duplicate paths
// keep their first entry.
func LoadManifest(manifestPath string) (*ManifestIndex, error) {
	defer VerboseEnter()()

	file, err := os.Open(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest %s: %w", manifestPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read manifest %s: %w", manifestPath, err)
		}
		return nil, fmt.Errorf("manifest %s is empty", manifestPath)
	}

	algorithm, err := parseManifestHeader(scanner.Text())
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", manifestPath, err)
	}

	index := newManifestIndex(manifestPath, algorithm)

	lineNum := 1
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}

		digest, path, found := strings.Cut(line, "\t")
		if !found || path == "" || len(digest) != algorithm.Size*2 {
			return nil, fmt.Errorf("manifest %s: malformed entry at line %d", manifestPath, lineNum)
		}
		if _, err := hex.DecodeString(digest); err != nil {
			return nil, fmt.Errorf("manifest %s: malformed digest at line %d", manifestPath, lineNum)
		}

		entry := ManifestEntry{Path: path, Digest: strings.ToUpper(digest)}
		if !index.skiplist.Insert(&entry, manifestContext) {
			VerboseLog(2, "duplicate manifest entry ignored: %s", path)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", manifestPath, err)
	}

	VerboseLog(1, "loaded manifest %s: %d entries (%s)", manifestPath, index.Length(), algorithm.Name)

	return index, nil
}

// parseManifestHeader validates a "# bulkfilehash v<N> <algorithm>" line
func parseManifestHeader(line string) (*HashAlgorithm, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 || fields[0] != "#" || fields[1] != "bulkfilehash" {
		return nil, fmt.Errorf("invalid manifest header: %s", line)
	}

	if fields[2] != fmt.Sprintf("v%d", ManifestVersion) {
		return nil, fmt.Errorf("unsupported manifest version: %s", fields[2])
	}

	algorithm, err := GetHashAlgorithm(fields[3])
	if err != nil {
		return nil, fmt.Errorf("invalid manifest header: %w", err)
	}

	return algorithm, nil
}

// Length returns the number of entries in the index
func (mi *ManifestIndex) Length() int {
	return mi.skiplist.Length()
}

// IsEmpty returns true if the index has no entries
func (mi *ManifestIndex) IsEmpty() bool {
	return mi.skiplist.IsEmpty()
}

// Algorithm returns the digest algorithm the manifest was written with
func (mi *ManifestIndex) Algorithm() *HashAlgorithm {
	return mi.algorithm
}

// Path returns the manifest file path
func (mi *ManifestIndex) Path() string {
	return mi.path
}

// Find returns the entry for a path
func (mi *ManifestIndex) Find(path string) (ManifestEntry, bool) {
	node, _ := mi.skiplist.Find(path)
	if node == nil {
		return ManifestEntry{}, false
	}
	return *node.Item(), true
}

// ForEach iterates entries in path order while the callback returns true
func (mi *ManifestIndex) ForEach(callback func(ManifestEntry) bool) {
	for current := mi.skiplist.First(); current != nil; current = current.Next() {
		if !callback(*current.Item()) {
			break
		}
	}
}

// Paths returns all entry paths in sorted order
func (mi *ManifestIndex) Paths() []string {
	paths := make([]string, 0, mi.skiplist.Length())
	mi.ForEach(func(entry ManifestEntry) bool {
		paths = append(paths, entry.Path)
		return true
	})
	return paths
}
