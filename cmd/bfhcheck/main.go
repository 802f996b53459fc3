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
		fmt.Printf("bfhcheck %s\n", getVersionString())
		return
	}

	args, err := parseArguments(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "bfhcheck: %v\n", err)
		os.Exit(1)
	}

	bulkfilehash.SetVerboseLevel(args.Verbose)

	if err := runCheck(args); err != nil {
		fmt.Fprintf(os.Stderr, "bfhcheck: %v\n", err)
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Fprintf(os.Stderr, "Usage: bfhcheck [options] <manifest>\n")
	fmt.Fprintf(os.Stderr, "Try 'bfhcheck --help' for more information.\n")
}

func showHelp() {
	fmt.Printf("bfhcheck - verify files against a bulkfilehash manifest\n\n")
	fmt.Printf("Usage: bfhcheck [options] <manifest>\n\n")

	fmt.Printf("OPTIONS:\n")
	fmt.Printf("  -t, --threads N   Number of hash worker threads\n")
	fmt.Printf("  -q, --quiet       Only report files that fail to verify\n")
	fmt.Printf("  --json            Emit the summary as JSON\n")
	fmt.Printf("  -v, -vv, -vvv     Increase verbosity\n")
	fmt.Printf("  --version         Show version information\n")
	fmt.Printf("  -h, --help        Show this help message\n\n")

	fmt.Printf("EXIT STATUS:\n")
	fmt.Printf("  0  every file verified\n")
	fmt.Printf("  1  a file failed or went missing, or the check could not run\n\n")

	fmt.Printf("EXAMPLES:\n")
	fmt.Printf("  bfhcheck files.bfh                    # Verify every entry\n")
	fmt.Printf("  bfhcheck --quiet files.bfh            # Only print problems\n")
	fmt.Printf("  bfhcheck --json files.bfh > report.json\n")
}

// Arguments represents parsed command line arguments
type Arguments struct {
	ManifestPath string
	Threads      int
	Quiet        bool
	JSON         bool
	Verbose      int
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
		case arg == "--quiet" || arg == "-q":
			result.Quiet = true
		case arg == "--json":
			result.JSON = true
		case arg == "-v" || arg == "-vv" || arg == "-vvv":
			result.Verbose = len(arg) - 1
		case strings.HasPrefix(arg, "-"):
			return nil, fmt.Errorf("unknown option: %s", arg)
		default:
			if result.ManifestPath != "" {
				return nil, fmt.Errorf("only one manifest may be given")
			}
			result.ManifestPath = arg
		}
	}

	if result.ManifestPath == "" {
		return nil, fmt.Errorf("missing manifest path")
	}

	return result, nil
}

func runCheck(args *Arguments) error {
	shutdownChan := bulkfilehash.SetupSignalHandler()

	config, err := bulkfilehash.LoadConfig()
	if err != nil {
		return err
	}

	index, err := bulkfilehash.LoadManifest(args.ManifestPath)
	if err != nil {
		return err
	}
	if index.IsEmpty() {
		return fmt.Errorf("manifest %s has no entries", args.ManifestPath)
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

	emit := func(result bulkfilehash.CheckResult) {
		if args.JSON {
			return
		}
		if args.Quiet && result.Status == bulkfilehash.CheckStatusOK {
			return
		}
		fmt.Printf("%s: %s\n", result.Path, strings.ToUpper(result.Status))
	}

	summary, err := bulkfilehash.CheckManifest(index, workers, bufferSize, shutdownChan, emit)
	if err != nil {
		return err
	}

	if args.JSON {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode summary: %w", err)
		}
		fmt.Println(string(data))
	}

	if !summary.AllOK() {
		fmt.Fprintf(os.Stderr, "bfhcheck: WARNING: %d of %d files did not verify\n",
			summary.Failed+summary.Missing, summary.Checked)
		os.Exit(1)
	}

	return nil
}
