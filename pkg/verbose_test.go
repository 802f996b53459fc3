package bulkfilehash

import (
	"testing"
)

func TestVerboseLevel(t *testing.T) {
	defer SetVerboseLevel(0)

	SetVerboseLevel(2)
	if GetVerboseLevel() != 2 {
		t.Errorf("Expected verbose level 2, got %d", GetVerboseLevel())
	}

	SetVerboseLevel(0)
	if GetVerboseLevel() != 0 {
		t.Errorf("Expected verbose level 0, got %d", GetVerboseLevel())
	}

	// At level 0 VerboseEnter is a no-op but must still return a callable
	exit := VerboseEnter()
	exit()
}

func TestSetDebugFlags(t *testing.T) {
	defer SetDebugFlags("")

	SetDebugFlags("engine,scan")
	if !IsDebugEnabled("engine") {
		t.Error("Expected engine flag to be enabled")
	}
	if !IsDebugEnabled("scan") {
		t.Error("Expected scan flag to be enabled")
	}
	if IsDebugEnabled("manifest") {
		t.Error("Expected manifest flag to be disabled")
	}
}

func TestSetDebugFlagsKeyValue(t *testing.T) {
	defer SetDebugFlags("")

	SetDebugFlags("engine:off,scan:1,manifest:false,config:yes")
	if IsDebugEnabled("engine") {
		t.Error("Expected engine:off to disable the flag")
	}
	if !IsDebugEnabled("scan") {
		t.Error("Expected scan:1 to enable the flag")
	}
	if IsDebugEnabled("manifest") {
		t.Error("Expected manifest:false to disable the flag")
	}

	// Unknown values enable the flag
	if !IsDebugEnabled("config") {
		t.Error("Expected config:yes to enable the flag")
	}
}

func TestDebugFlagsCaseInsensitive(t *testing.T) {
	defer SetDebugFlags("")

	SetDebugFlags("Engine")
	if !IsDebugEnabled("ENGINE") {
		t.Error("Expected flag lookup to ignore case")
	}
	if !IsDebugEnabled("engine") {
		t.Error("Expected flag storage to ignore case")
	}
}

func TestDebugFlagsReset(t *testing.T) {
	SetDebugFlags("engine")
	if !IsDebugEnabled("engine") {
		t.Fatal("Expected engine flag to be enabled")
	}

	// An empty string clears every flag
	SetDebugFlags("")
	if IsDebugEnabled("engine") {
		t.Error("Expected engine flag to be cleared")
	}
}

func TestIsDebugEnabledWithoutSetup(t *testing.T) {
	debugFlags = nil
	if IsDebugEnabled("engine") {
		t.Error("Expected false before SetDebugFlags is called")
	}
}
