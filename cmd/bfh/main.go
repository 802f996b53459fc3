package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	bulkfilehash "github.com/mattkeenan/bulkfilehash/pkg"
)

func main() {
	// Bare invocation prints the short usage line on stdout
	if len(os.Args) < 2 {
		fmt.Printf("USAGE: bfh <directory/file> [more directories/files] [--threads N]\n")
		os.Exit(1)
	}

	options := defineOptions()

	if err := options.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "bfh: %v\n", err)
		fmt.Fprintf(os.Stderr, "Try 'bfh --help' for more information.\n")
		os.Exit(1)
	}

	// Handle version first (before help)
	if options.GetBool("version") {
		fmt.Printf("bfh %s\n", getVersionString())
		os.Exit(0)
	}

	if options.GetBool("help") {
		options.ShowUsage("bfh")
		os.Exit(0)
	}

	bulkfilehash.SetVerboseLevel(options.GetInt("verbose"))
	bulkfilehash.SetDebugFlags(options.GetString("debug"))

	paths := options.GetArgs()
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no input paths provided\n")
		os.Exit(1)
	}

	if err := run(options, paths); err != nil {
		fmt.Fprintf(os.Stderr, "bfh: %v\n", err)
		os.Exit(1)
	}
}

// defineOptions declares the bfh command line
func defineOptions() *ParsedOptions {
	options := NewParsedOptions()
	options.DefineOption("help", "h", OptionTypeBool, "false", "Show this help message")
	options.DefineOption("version", "", OptionTypeBool, "false", "Show version information")
	options.DefineOption("verbose", "v", OptionTypeInt, "0", "Enable verbose output (can be repeated for more verbosity)")
	options.DefineOption("threads", "t", OptionTypeInt, "0", "Number of hash worker threads")
	options.DefineOption("algorithm", "a", OptionTypeString, "", "Hash algorithm (md5, sha1, sha256, sha512, xxh64)")
	options.DefineOption("manifest", "m", OptionTypeString, "", "Write a manifest of the results to the given file")
	options.DefineOption("exclude", "x", OptionTypeString, "", "Comma-separated exclusion globs")
	options.DefineOption("ignore-file", "", OptionTypeString, "", "File with one exclusion glob per line")
	options.DefineOption("override", "o", OptionTypeString, "", "Config overrides, e.g. algorithm:sha256,buffer:2M")
	options.DefineOption("debug", "", OptionTypeString, "", "Debug flags (engine, scan, manifest, config)")
	return options
}

// run hashes the files named by paths and prints one result line per file.
// Per-file failures appear as ERROR lines and do not affect the exit status;
// only configuration and discovery problems return an error.
func run(options *ParsedOptions, paths []string) error {
	shutdownChan := bulkfilehash.SetupSignalHandler()

	config, err := bulkfilehash.LoadConfig()
	if err != nil {
		return err
	}

	if options.IsSet("override") {
		var overrides []string
		for _, override := range strings.Split(options.GetString("override"), ",") {
			if override = strings.TrimSpace(override); override != "" {
				overrides = append(overrides, override)
			}
		}
		if err := config.ApplyOverrides(overrides); err != nil {
			return err
		}
	}

	// Command line beats config for the algorithm
	algorithmName := config.GetHashConfig().DefaultAlgorithm
	if options.IsSet("algorithm") {
		algorithmName = options.GetString("algorithm")
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

	workers := bulkfilehash.ResolveWorkerCount(options.GetInt("threads"), config)

	filter, err := buildFilter(options, config)
	if err != nil {
		return err
	}

	files := bulkfilehash.EnumerateFiles(paths, filter, os.Stderr)
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "No files found.\n")
		os.Exit(1)
	}

	manifestPath := options.GetString("manifest")
	var collected []bulkfilehash.HashResult

	out := bufio.NewWriter(os.Stdout)
	engine := bulkfilehash.NewHashEngine(workers, algorithm, bufferSize, shutdownChan)

	runErr := engine.Run(files, func(result bulkfilehash.HashResult) {
		fmt.Fprintln(out, bulkfilehash.FormatResultLine(result))
		if manifestPath != "" {
			collected = append(collected, result)
		}
	})

	// Flush whatever was emitted even when the run was interrupted
	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	if runErr != nil {
		return runErr
	}

	if manifestPath != "" {
		if err := bulkfilehash.WriteManifest(manifestPath, algorithm, collected); err != nil {
			return err
		}
	}

	return nil
}

// buildFilter combines the exclusion sources into one filter. A command-line
// --exclude replaces the configured globs, and --ignore-file replaces the
// configured ignore file; the two sources themselves are combined.
func buildFilter(options *ParsedOptions, config *bulkfilehash.Config) (*bulkfilehash.PathFilter, error) {
	filter := bulkfilehash.NewPathFilter()

	excludeList := config.GetScanConfig().Exclude
	if options.IsSet("exclude") {
		excludeList = options.GetString("exclude")
	}
	if excludeList != "" {
		if err := filter.AddPatterns(bulkfilehash.ParseGlobList(excludeList)); err != nil {
			return nil, err
		}
	}

	ignorePath := config.GetScanConfig().IgnoreFile
	if options.IsSet("ignore-file") {
		ignorePath = options.GetString("ignore-file")
	}
	if ignorePath != "" {
		ignoreManager := bulkfilehash.NewIgnoreManager(ignorePath)
		if err := ignoreManager.LoadIgnorePatterns(); err != nil {
			return nil, err
		}
		if err := filter.AddPatterns(ignoreManager.Patterns()); err != nil {
			return nil, err
		}
	}

	return filter, nil
}
