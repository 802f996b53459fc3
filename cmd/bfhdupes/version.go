package main

// version is overridden at release time via -ldflags "-X main.version=..."
var version = "0.1.0"

// getVersionString returns the version for display
func getVersionString() string {
	return version
}
