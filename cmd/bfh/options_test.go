package main

import (
	"testing"
)

// Test basic option definition and parsing
func TestOptionDefinition(t *testing.T) {
	options := NewParsedOptions()

	// Test defining options
	options.DefineOption("test-string", "s", OptionTypeString, "default", "Test string option")
	options.DefineOption("test-bool", "b", OptionTypeBool, "false", "Test bool option")
	options.DefineOption("test-int", "i", OptionTypeInt, "0", "Test int option")

	// Test parsing simple options
	args := []string{"--test-string=value", "--test-bool", "--test-int=42"}
	err := options.Parse(args)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// Test values
	if options.GetString("test-string") != "value" {
		t.Errorf("Expected string 'value', got %s", options.GetString("test-string"))
	}
	if !options.GetBool("test-bool") {
		t.Errorf("Expected bool true, got %v", options.GetBool("test-bool"))
	}
	if options.GetInt("test-int") != 42 {
		t.Errorf("Expected int 42, got %d", options.GetInt("test-int"))
	}
}

// Test long options taking their value from the following argument
func TestLongOptionValueForms(t *testing.T) {
	options := NewParsedOptions()

	options.DefineOption("threads", "t", OptionTypeInt, "0", "Worker threads")
	options.DefineOption("algorithm", "a", OptionTypeString, "", "Hash algorithm")

	args := []string{"--threads", "16", "--algorithm", "sha256", "photos"}
	err := options.Parse(args)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if options.GetInt("threads") != 16 {
		t.Errorf("Expected threads 16, got %d", options.GetInt("threads"))
	}
	if options.GetString("algorithm") != "sha256" {
		t.Errorf("Expected algorithm 'sha256', got %s", options.GetString("algorithm"))
	}

	// The consumed values must not appear as arguments
	args2 := options.GetArgs()
	if len(args2) != 1 || args2[0] != "photos" {
		t.Errorf("Expected args [photos], got %v", args2)
	}
}

// Test short option parsing
func TestShortOptions(t *testing.T) {
	options := NewParsedOptions()

	options.DefineOption("verbose", "v", OptionTypeInt, "0", "Verbose level")
	options.DefineOption("help", "h", OptionTypeBool, "false", "Show help")
	options.DefineOption("quiet", "q", OptionTypeBool, "false", "Quiet mode")

	// Test combined short options
	args := []string{"-vvv", "-hq"}
	err := options.Parse(args)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// Verbose should be 3 (repeated 3 times)
	if options.GetInt("verbose") != 3 {
		t.Errorf("Expected verbose level 3, got %d", options.GetInt("verbose"))
	}

	// Help and quiet should be true
	if !options.GetBool("help") {
		t.Errorf("Expected help true, got %v", options.GetBool("help"))
	}
	if !options.GetBool("quiet") {
		t.Errorf("Expected quiet true, got %v", options.GetBool("quiet"))
	}
}

// Test short integer options with and without a following value
func TestShortIntValues(t *testing.T) {
	t.Run("With integer argument", func(t *testing.T) {
		options := NewParsedOptions()
		options.DefineOption("threads", "t", OptionTypeInt, "0", "Worker threads")

		err := options.Parse([]string{"-t", "12", "photos"})
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}

		if options.GetInt("threads") != 12 {
			t.Errorf("Expected threads 12, got %d", options.GetInt("threads"))
		}
		args := options.GetArgs()
		if len(args) != 1 || args[0] != "photos" {
			t.Errorf("Expected args [photos], got %v", args)
		}
	})

	t.Run("Without integer argument", func(t *testing.T) {
		options := NewParsedOptions()
		options.DefineOption("threads", "t", OptionTypeInt, "0", "Worker threads")

		// No integer follows, so the option falls back to 1 and the path
		// stays an argument
		err := options.Parse([]string{"-t", "photos"})
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}

		if options.GetInt("threads") != 1 {
			t.Errorf("Expected threads 1, got %d", options.GetInt("threads"))
		}
		args := options.GetArgs()
		if len(args) != 1 || args[0] != "photos" {
			t.Errorf("Expected args [photos], got %v", args)
		}
	})
}

// Test argument collection
func TestArgumentCollection(t *testing.T) {
	options := NewParsedOptions()

	options.DefineOption("algorithm", "a", OptionTypeString, "", "Hash algorithm")
	options.DefineOption("verbose", "v", OptionTypeBool, "false", "Verbose mode")

	args := []string{"--algorithm=sha1", "photos", "documents", "--verbose", "backups"}
	err := options.Parse(args)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// Check options
	if options.GetString("algorithm") != "sha1" {
		t.Errorf("Expected algorithm 'sha1', got %s", options.GetString("algorithm"))
	}
	if !options.GetBool("verbose") {
		t.Errorf("Expected verbose true, got %v", options.GetBool("verbose"))
	}

	// Check non-option arguments
	expectedArgs := []string{"photos", "documents", "backups"}
	actualArgs := options.GetArgs()

	if len(actualArgs) != len(expectedArgs) {
		t.Fatalf("Expected %d args, got %d", len(expectedArgs), len(actualArgs))
	}

	for i, expected := range expectedArgs {
		if actualArgs[i] != expected {
			t.Errorf("Expected arg[%d] = %s, got %s", i, expected, actualArgs[i])
		}
	}
}

// Test boolean option variations
func TestBooleanOptions(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected bool
	}{
		{
			name:     "Boolean flag present",
			args:     []string{"--test-bool"},
			expected: true,
		},
		{
			name:     "Boolean flag absent",
			args:     []string{},
			expected: false,
		},
		{
			name:     "Boolean with explicit true",
			args:     []string{"--test-bool=true"},
			expected: true,
		},
		{
			name:     "Boolean with explicit false",
			args:     []string{"--test-bool=false"},
			expected: false,
		},
		{
			name:     "Boolean with 1",
			args:     []string{"--test-bool=1"},
			expected: true,
		},
		{
			name:     "Boolean with 0",
			args:     []string{"--test-bool=0"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := NewParsedOptions()
			options.DefineOption("test-bool", "t", OptionTypeBool, "false", "Test boolean")

			err := options.Parse(tt.args)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			if options.GetBool("test-bool") != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, options.GetBool("test-bool"))
			}
		})
	}
}

// Test error conditions
func TestOptionErrors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*ParsedOptions)
		args    []string
		wantErr bool
	}{
		{
			name: "Unknown long option",
			setup: func(o *ParsedOptions) {
				o.DefineOption("known", "k", OptionTypeBool, "false", "Known option")
			},
			args:    []string{"--unknown"},
			wantErr: true,
		},
		{
			name: "Unknown short option",
			setup: func(o *ParsedOptions) {
				o.DefineOption("known", "k", OptionTypeBool, "false", "Known option")
			},
			args:    []string{"-u"},
			wantErr: true,
		},
		{
			name: "Invalid boolean value",
			setup: func(o *ParsedOptions) {
				o.DefineOption("test", "t", OptionTypeBool, "false", "Test option")
			},
			args:    []string{"--test=invalid"},
			wantErr: true,
		},
		{
			name: "Invalid integer value",
			setup: func(o *ParsedOptions) {
				o.DefineOption("test", "t", OptionTypeInt, "0", "Test option")
			},
			args:    []string{"--test=notanumber"},
			wantErr: true,
		},
		{
			name: "Invalid integer as following argument",
			setup: func(o *ParsedOptions) {
				o.DefineOption("test", "t", OptionTypeInt, "0", "Test option")
			},
			args:    []string{"--test", "notanumber"},
			wantErr: true,
		},
		{
			name: "String option requires value",
			setup: func(o *ParsedOptions) {
				o.DefineOption("test", "t", OptionTypeString, "", "Test option")
			},
			args:    []string{"--test"},
			wantErr: true,
		},
		{
			name: "Integer option requires value",
			setup: func(o *ParsedOptions) {
				o.DefineOption("test", "t", OptionTypeInt, "0", "Test option")
			},
			args:    []string{"--test"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := NewParsedOptions()
			tt.setup(options)

			err := options.Parse(tt.args)
			if tt.wantErr && err == nil {
				t.Errorf("Expected error but got none")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

// Test default values
func TestDefaultValues(t *testing.T) {
	options := NewParsedOptions()

	options.DefineOption("string-opt", "s", OptionTypeString, "default-string", "String option")
	options.DefineOption("bool-opt", "b", OptionTypeBool, "true", "Bool option")
	options.DefineOption("int-opt", "i", OptionTypeInt, "42", "Int option")

	// Parse empty args
	err := options.Parse([]string{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// Check defaults
	if options.GetString("string-opt") != "default-string" {
		t.Errorf("Expected default string 'default-string', got %s", options.GetString("string-opt"))
	}
	if !options.GetBool("bool-opt") {
		t.Errorf("Expected default bool true, got %v", options.GetBool("bool-opt"))
	}
	if options.GetInt("int-opt") != 42 {
		t.Errorf("Expected default int 42, got %d", options.GetInt("int-opt"))
	}
}

// Test IsSet functionality
func TestIsSet(t *testing.T) {
	options := NewParsedOptions()

	options.DefineOption("set-option", "s", OptionTypeString, "default", "Set option")
	options.DefineOption("unset-option", "u", OptionTypeString, "default", "Unset option")

	args := []string{"--set-option=value"}
	err := options.Parse(args)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !options.IsSet("set-option") {
		t.Errorf("Expected set-option to be set")
	}
	if options.IsSet("unset-option") {
		t.Errorf("Expected unset-option to not be set")
	}
}

// Test the real bfh option set against typical invocations
func TestBfhOptionSet(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		check   func(*testing.T, *ParsedOptions)
	}{
		{
			name: "Plain directory",
			args: []string{"photos"},
			check: func(t *testing.T, o *ParsedOptions) {
				if args := o.GetArgs(); len(args) != 1 || args[0] != "photos" {
					t.Errorf("Expected args [photos], got %v", args)
				}
			},
		},
		{
			name: "Threads with paths",
			args: []string{"photos", "documents", "--threads", "16"},
			check: func(t *testing.T, o *ParsedOptions) {
				if o.GetInt("threads") != 16 {
					t.Errorf("Expected threads 16, got %d", o.GetInt("threads"))
				}
				if args := o.GetArgs(); len(args) != 2 {
					t.Errorf("Expected 2 args, got %v", args)
				}
			},
		},
		{
			name: "Algorithm and manifest",
			args: []string{"-a", "sha256", "--manifest=run.manifest", "data"},
			check: func(t *testing.T, o *ParsedOptions) {
				if o.GetString("algorithm") != "sha256" {
					t.Errorf("Expected algorithm sha256, got %s", o.GetString("algorithm"))
				}
				if o.GetString("manifest") != "run.manifest" {
					t.Errorf("Expected manifest run.manifest, got %s", o.GetString("manifest"))
				}
			},
		},
		{
			name: "Repeated verbose",
			args: []string{"-vv", "data"},
			check: func(t *testing.T, o *ParsedOptions) {
				if o.GetInt("verbose") != 2 {
					t.Errorf("Expected verbose 2, got %d", o.GetInt("verbose"))
				}
			},
		},
		{
			name:    "Non-numeric thread count",
			args:    []string{"--threads=abc", "data"},
			wantErr: true,
		},
		{
			name:    "Unknown option",
			args:    []string{"--frobnicate", "data"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := defineOptions()

			err := options.Parse(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if tt.check != nil {
				tt.check(t, options)
			}
		})
	}
}
