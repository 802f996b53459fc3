// Package bulkfilehash provides concurrent bulk file hashing with ordered
// output, manifest writing and verification, and duplicate detection.
//
// # Core API
//
// The main entry point is HashEngine, which hashes a list of files with a
// fixed worker pool and delivers results in list order:
//
//	files := bulkfilehash.EnumerateFiles(paths, nil, os.Stderr)
//	algorithm, _ := bulkfilehash.GetHashAlgorithm("md5")
//	engine := bulkfilehash.NewHashEngine(8, algorithm, 1<<20, nil)
//	err := engine.Run(files, func(r bulkfilehash.HashResult) {
//		fmt.Println(bulkfilehash.FormatResultLine(r))
//	})
//
// # Manifests
//
// A run can be recorded as a manifest and verified later:
//
//	err := bulkfilehash.WriteManifest("files.bfh", algorithm, results)
//	index, err := bulkfilehash.LoadManifest("files.bfh")
//	summary, err := bulkfilehash.CheckManifest(index, 8, 1<<20, nil, nil)
//
// # Configuration
//
// Enable debug output:
//
//	bulkfilehash.SetDebugFlags("engine,scan")
//	bulkfilehash.SetVerboseLevel(2)
//
// # Note on Internal API
//
// External consumers should primarily use:
//   - HashEngine, EnumerateFiles and the result types HashResult,
//     CheckSummary, DuplicateGroup
//   - Manifest functions: WriteManifest, LoadManifest, CheckManifest
//   - Configuration functions: LoadConfig, SetDebugFlags, SetVerboseLevel
//
// Types like hashTask and the skiplist internals of ManifestIndex are
// implementation details and may change in future versions.
package bulkfilehash
