package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	bulkfilehash "github.com/mattkeenan/bulkfilehash/pkg"
)

func main() {
	if len(os.Args) < 2 {
		showUsage()
		os.Exit(1)
	}

	// Handle help and version early
	if os.Args[1] == "--help" || os.Args[1] == "-h" || os.Args[1] == "help" {
		showHelp()
		return
	}

	if os.Args[1] == "--version" {
		fmt.Printf("bfhdupes %s\n", getVersionString())
		return
	}

	args, err := parseArguments(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "bfhdupes: %v\n", err)
		os.Exit(1)
	}

	bulkfilehash.SetVerboseLevel(args.Verbose)

	if err := runDupes(args); err != nil {
		fmt.Fprintf(os.Stderr, "bfhdupes: %v\n", err)
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Fprintf(os.Stderr, "Usage: bfhdupes [options] <directory/file> [more directories/files]\n")
	fmt.Fprintf(os.Stderr, "Try 'bfhdupes --help' for more information.\n")
}

func showHelp() {
	fmt.Printf("bfhdupes - find files with identical content\n\n")
	fmt.Printf("Usage: bfhdupes [options] <directory/file> [more directories/files]\n\n")

	fmt.Printf("OPTIONS:\n")
	fmt.Printf("  -t, --threads N      Number of hash worker threads\n")
	fmt.Printf("  -a, --algorithm ALG  Hash algorithm (md5, sha1, sha256, sha512, xxh64)\n")
	fmt.Printf("  --json               Emit duplicate groups as JSON\n")
	fmt.Printf("  -v, -vv, -vvv        Increase verbosity\n")
	fmt.Printf("  --version            Show version information\n")
	fmt.Printf("  -h, --help           Show this help message\n\n")

	fmt.Printf("NOTES:\n")
	fmt.Printf("  xxh64 is fast but not collision-resistant; prefer a cryptographic\n")
	fmt.Printf("  algorithm when the results drive deletions.\n\n")

	fmt.Printf("EXAMPLES:\n")
	fmt.Printf("  bfhdupes ~/photos                     # Scan one tree\n")
	fmt.Printf("  bfhdupes -a xxh64 /data /backup       # Fast scan of two trees\n")
	fmt.Printf("  bfhdupes --json ~/music > dupes.json\n")
}

// Arguments represents parsed command line arguments
type Arguments struct {
	Paths     []string
	Threads   int
	Algorithm string
	JSON      bool
	Verbose   int
}

func parseArguments(args []string) (*Arguments, error) {
	result := &Arguments{}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--threads" || arg == "-t":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("%s requires an argument", arg)
			}
			i++
			threads, err := strconv.Atoi(args[i])
			if err != nil {
				return nil, fmt.Errorf("invalid thread count: %s", args[i])
			}
			result.Threads = threads
		case arg == "--algorithm" || arg == "-a":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("%s requires an argument", arg)
			}
			i++
			result.Algorithm = args[i]
		case arg == "--json":
			result.JSON = true
		case arg == "-v" || arg == "-vv" || arg == "-vvv":
			result.Verbose = len(arg) - 1
		case strings.HasPrefix(arg, "-"):
			return nil, fmt.Errorf("unknown option: %s", arg)
		default:
			result.Paths = append(result.Paths, arg)
		}
	}

	if len(result.Paths) == 0 {
		return nil, fmt.Errorf("missing input paths")
	}

	return result, nil
}

func runDupes(args *Arguments) error {
	shutdownChan := bulkfilehash.SetupSignalHandler()

	config, err := bulkfilehash.LoadConfig()
	if err != nil {
		return err
	}

	algorithmName := config.GetHashConfig().DefaultAlgorithm
	if args.Algorithm != "" {
		algorithmName = args.Algorithm
	}
	algorithm, err := bulkfilehash.GetHashAlgorithm(algorithmName)
	if err != nil {
		return err
	}

	bufferValue := config.GetHashConfig().Buffer
	if err := bulkfilehash.ValidateHashBuffer(bufferValue); err != nil {
		return err
	}
	bufferSize, err := bulkfilehash.ParseHumanSize(bufferValue)
	if err != nil {
		return err
	}

	workers := bulkfilehash.ResolveWorkerCount(args.Threads, config)

	// The configured exclusion globs apply here too
	filter := bulkfilehash.NewPathFilter()
	if excludeList := config.GetScanConfig().Exclude; excludeList != "" {
		if err := filter.AddPatterns(bulkfilehash.ParseGlobList(excludeList)); err != nil {
			return err
		}
	}

	files := bulkfilehash.EnumerateFiles(args.Paths, filter, os.Stderr)
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "No files found.\n")
		os.Exit(1)
	}

	engine := bulkfilehash.NewHashEngine(workers, algorithm, bufferSize, shutdownChan)

	var results []bulkfilehash.HashResult
	runErr := engine.Run(files, func(result bulkfilehash.HashResult) {
		if result.Err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot hash %s: %v\n", result.Path, result.Err)
			return
		}
		results = append(results, result)
	})
	if runErr != nil {
		return runErr
	}

	groups := bulkfilehash.FindDuplicates(results)

	if args.JSON {
		if groups == nil {
			groups = []bulkfilehash.DuplicateGroup{}
		}
		data, err := json.MarshalIndent(groups, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode duplicate groups: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(groups) == 0 {
		fmt.Println("No duplicate files found.")
		return nil
	}

	fmt.Printf("Found %d groups of duplicate files\n\n", len(groups))
	for _, group := range groups {
		fmt.Printf("%s (%d files):\n", group.Hash, group.Count)
		for _, file := range group.Files {
			fmt.Printf("  %s\n", file)
		}
		fmt.Println()
	}

	return nil
}
