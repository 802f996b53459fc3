package bulkfilehash

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-ini/ini"
)

// Config represents the bulkfilehash configuration
type Config struct {
	configPath string
	ini        *ini.File
}

// HashConfig represents hash algorithm configuration
type HashConfig struct {
	DefaultAlgorithm string // Default hash algorithm
	Buffer           string // Hash buffer size for interruptible hashing (default: "1M")
}

// PerformanceConfig represents worker pool configuration
type PerformanceConfig struct {
	Workers     int // Number of concurrent hash workers (default: 8)
	WorkerFloor int // Minimum worker count; lower requests are raised (default: 8)
}

// ScanConfig represents file enumeration configuration
type ScanConfig struct {
	Exclude    string // Comma-separated exclusion globs
	IgnoreFile string // Path to an ignore file with one glob per line
}

// DefaultConfigPath returns the per-user config file location
func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine user config directory: %w", err)
	}
	return filepath.Join(configDir, "bulkfilehash", "config.ini"), nil
}

// LoadConfig loads configuration from the per-user config file
func LoadConfig() (*Config, error) {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFrom(configPath)
}

// LoadConfigFrom loads configuration from the given path, creating a default
// config file there when none exists
func LoadConfigFrom(configPath string) (*Config, error) {
	cfg := &Config{
		configPath: configPath,
	}

	// Load existing config or create default
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Create default config
		cfg.ini = ini.Empty()
		if err := cfg.setDefaults(); err != nil {
			return nil, fmt.Errorf("failed to set default config: %w", err)
		}
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
		VerboseLog(1, "created default config at %s", configPath)
	} else {
		// Load existing config
		iniFile, err := ini.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		cfg.ini = iniFile
	}

	return cfg, nil
}

// setDefaults sets default configuration values
func (c *Config) setDefaults() error {
	// Set default hash settings
	hashSection, err := c.ini.NewSection("hash")
	if err != nil {
		return fmt.Errorf("failed to create hash section: %w", err)
	}
	_, err = hashSection.NewKey("default_algorithm", DefaultAlgorithm)
	if err != nil {
		return fmt.Errorf("failed to set default hash algorithm: %w", err)
	}
	_, err = hashSection.NewKey("buffer", DefaultHashBuffer)
	if err != nil {
		return fmt.Errorf("failed to set default hash buffer: %w", err)
	}

	// Set default performance settings
	performanceSection, err := c.ini.NewSection("performance")
	if err != nil {
		return fmt.Errorf("failed to create performance section: %w", err)
	}
	_, err = performanceSection.NewKey("workers", strconv.Itoa(DefaultHashWorkers))
	if err != nil {
		return fmt.Errorf("failed to set default workers: %w", err)
	}
	_, err = performanceSection.NewKey("worker_floor", strconv.Itoa(DefaultWorkerFloor))
	if err != nil {
		return fmt.Errorf("failed to set default worker floor: %w", err)
	}

	// Set default scan settings
	scanSection, err := c.ini.NewSection("scan")
	if err != nil {
		return fmt.Errorf("failed to create scan section: %w", err)
	}
	_, err = scanSection.NewKey("exclude", "")
	if err != nil {
		return fmt.Errorf("failed to set default exclude patterns: %w", err)
	}
	_, err = scanSection.NewKey("ignore_file", "")
	if err != nil {
		return fmt.Errorf("failed to set default ignore file: %w", err)
	}

	return nil
}

// GetHashConfig returns the hash configuration
func (c *Config) GetHashConfig() *HashConfig {
	hashConfig := &HashConfig{
		DefaultAlgorithm: DefaultAlgorithm,  // fallback default
		Buffer:           DefaultHashBuffer, // fallback default
	}

	if c.ini.HasSection("hash") {
		section := c.ini.Section("hash")
		if section.HasKey("default_algorithm") {
			hashConfig.DefaultAlgorithm = section.Key("default_algorithm").String()
		}
		if section.HasKey("buffer") {
			if buffer := section.Key("buffer").String(); buffer != "" {
				hashConfig.Buffer = buffer
			}
		}
	}

	return hashConfig
}

// GetPerformanceConfig returns the performance configuration
func (c *Config) GetPerformanceConfig() *PerformanceConfig {
	performanceConfig := &PerformanceConfig{
		Workers:     DefaultHashWorkers, // fallback default
		WorkerFloor: DefaultWorkerFloor, // fallback default
	}

	if c.ini.HasSection("performance") {
		section := c.ini.Section("performance")
		if section.HasKey("workers") {
			if workers, err := section.Key("workers").Int(); err == nil {
				performanceConfig.Workers = workers
			}
		}
		if section.HasKey("worker_floor") {
			if floor, err := section.Key("worker_floor").Int(); err == nil {
				performanceConfig.WorkerFloor = floor
			}
		}
	}

	return performanceConfig
}

// GetScanConfig returns the scan configuration
func (c *Config) GetScanConfig() *ScanConfig {
	scanConfig := &ScanConfig{}

	if c.ini.HasSection("scan") {
		section := c.ini.Section("scan")
		if section.HasKey("exclude") {
			scanConfig.Exclude = section.Key("exclude").String()
		}
		if section.HasKey("ignore_file") {
			scanConfig.IgnoreFile = section.Key("ignore_file").String()
		}
	}

	return scanConfig
}

// SetDefaultAlgorithm sets the default hash algorithm
func (c *Config) SetDefaultAlgorithm(algorithm string) error {
	if err := ValidateHashAlgorithm(algorithm); err != nil {
		return err
	}
	section := c.ini.Section("hash")
	section.Key("default_algorithm").SetValue(strings.ToLower(algorithm))
	return c.Save()
}

// SetWorkers sets the number of hash workers
func (c *Config) SetWorkers(workers int) error {
	if err := ValidateWorkers(workers); err != nil {
		return err
	}
	section := c.ini.Section("performance")
	section.Key("workers").SetValue(strconv.Itoa(workers))
	return c.Save()
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	dir := filepath.Dir(c.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}
	return c.ini.SaveTo(c.configPath)
}

// ConfigPath returns the backing file path
func (c *Config) ConfigPath() string {
	return c.configPath
}

// ApplyOverrides applies command-line overrides to the in-memory configuration
// Accepts strings like "algorithm:sha256", "buffer:2M", "workers:16"
func (c *Config) ApplyOverrides(overrides []string) error {
	for _, override := range overrides {
		parts := strings.SplitN(override, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid override format '%s', expected 'key:value'", override)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "algorithm":
			// hash.default_algorithm override
			if err := ValidateHashAlgorithm(value); err != nil {
				return err
			}
			c.ini.Section("hash").Key("default_algorithm").SetValue(value)
		case "buffer":
			// hash.buffer override
			if err := ValidateHashBuffer(value); err != nil {
				return err
			}
			c.ini.Section("hash").Key("buffer").SetValue(value)
		case "workers":
			// performance.workers override
			workers, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid workers value '%s', expected an integer", value)
			}
			if err := ValidateWorkers(workers); err != nil {
				return err
			}
			c.ini.Section("performance").Key("workers").SetValue(value)
		case "worker_floor":
			// performance.worker_floor override
			floor, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid worker_floor value '%s', expected an integer", value)
			}
			if err := ValidateWorkerFloor(floor); err != nil {
				return err
			}
			c.ini.Section("performance").Key("worker_floor").SetValue(value)
		case "exclude":
			// scan.exclude override
			c.ini.Section("scan").Key("exclude").SetValue(value)
		case "ignore_file":
			// scan.ignore_file override
			c.ini.Section("scan").Key("ignore_file").SetValue(value)
		default:
			return fmt.Errorf("unsupported override key '%s' (supported: algorithm, buffer, workers, worker_floor, exclude, ignore_file)", key)
		}

		VerboseLog(2, "applied config override %s:%s", key, value)
	}

	return nil
}

// ValidateHashAlgorithm validates that a hash algorithm is supported
func ValidateHashAlgorithm(algorithm string) error {
	if _, err := GetHashAlgorithm(algorithm); err != nil {
		return fmt.Errorf("unsupported hash algorithm: %s (supported: md5, sha1, sha256, sha512, xxh64)", algorithm)
	}
	return nil
}

// ValidateWorkers validates that a worker count is reasonable
func ValidateWorkers(workers int) error {
	if workers < 1 {
		return fmt.Errorf("workers must be at least 1, got: %d", workers)
	}
	if workers > 512 {
		return fmt.Errorf("workers should not exceed 512, got: %d", workers)
	}
	return nil
}

// ValidateWorkerFloor validates that a worker floor is reasonable
func ValidateWorkerFloor(floor int) error {
	if floor < 1 {
		return fmt.Errorf("worker floor must be at least 1, got: %d", floor)
	}
	if floor > 512 {
		return fmt.Errorf("worker floor should not exceed 512, got: %d", floor)
	}
	return nil
}

// ValidateHashBuffer validates a hash buffer size setting
func ValidateHashBuffer(value string) error {
	size, err := ParseHumanSize(value)
	if err != nil {
		return fmt.Errorf("invalid hash buffer size: %w", err)
	}
	if size < MinHashBuffer {
		return fmt.Errorf("hash buffer must be at least %s, got: %s", FormatHumanSize(MinHashBuffer), value)
	}
	return nil
}
