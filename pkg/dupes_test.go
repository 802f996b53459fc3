package bulkfilehash

import (
	"errors"
	"testing"
)

func TestFindDuplicates(t *testing.T) {
	results := []HashResult{
		{Index: 0, Path: "/data/one.txt", Digest: "AAAA"},
		{Index: 1, Path: "/data/two.txt", Digest: "BBBB"},
		{Index: 2, Path: "/data/three.txt", Digest: "AAAA"},
		{Index: 3, Path: "/data/four.txt", Digest: "CCCC"},
		{Index: 4, Path: "/data/five.txt", Digest: "AAAA"},
	}

	groups := FindDuplicates(results)

	if len(groups) != 1 {
		t.Fatalf("Expected 1 duplicate group, got %d", len(groups))
	}

	group := groups[0]
	if group.Hash != "AAAA" {
		t.Errorf("Expected group hash AAAA, got %s", group.Hash)
	}
	if group.Count != 3 {
		t.Errorf("Expected group count 3, got %d", group.Count)
	}

	// Files keep result order within the group
	expected := []string{"/data/one.txt", "/data/three.txt", "/data/five.txt"}
	if len(group.Files) != len(expected) {
		t.Fatalf("Expected %d files in group, got %d", len(expected), len(group.Files))
	}
	for i, path := range expected {
		if group.Files[i] != path {
			t.Errorf("Expected file %s at position %d, got %s", path, i, group.Files[i])
		}
	}
}

func TestFindDuplicatesGroupOrder(t *testing.T) {
	results := []HashResult{
		{Index: 0, Path: "/data/zeta1.txt", Digest: "1111"},
		{Index: 1, Path: "/data/zeta2.txt", Digest: "1111"},
		{Index: 2, Path: "/data/alpha1.txt", Digest: "2222"},
		{Index: 3, Path: "/data/alpha2.txt", Digest: "2222"},
	}

	groups := FindDuplicates(results)

	if len(groups) != 2 {
		t.Fatalf("Expected 2 duplicate groups, got %d", len(groups))
	}

	// Groups are sorted by their first file, not by digest
	if groups[0].Files[0] != "/data/alpha1.txt" {
		t.Errorf("Expected alpha group first, got %s", groups[0].Files[0])
	}
	if groups[1].Files[0] != "/data/zeta1.txt" {
		t.Errorf("Expected zeta group second, got %s", groups[1].Files[0])
	}
}

func TestFindDuplicatesSkipsFailures(t *testing.T) {
	// A failed result must not count towards a group even though its digest
	// field compares equal to other failures
	results := []HashResult{
		{Index: 0, Path: "/data/good.txt", Digest: "AAAA"},
		{Index: 1, Path: "/data/bad.txt", Err: errors.New("unreadable")},
		{Index: 2, Path: "/data/worse.txt", Err: errors.New("unreadable")},
	}

	groups := FindDuplicates(results)
	if len(groups) != 0 {
		t.Errorf("Expected no duplicate groups, got %d", len(groups))
	}
}

func TestFindDuplicatesNoDuplicates(t *testing.T) {
	results := []HashResult{
		{Index: 0, Path: "/data/one.txt", Digest: "AAAA"},
		{Index: 1, Path: "/data/two.txt", Digest: "BBBB"},
	}

	groups := FindDuplicates(results)
	if len(groups) != 0 {
		t.Errorf("Expected no duplicate groups, got %d", len(groups))
	}

	if groups := FindDuplicates(nil); len(groups) != 0 {
		t.Errorf("Expected no groups for empty results, got %d", len(groups))
	}
}
