package bulkfilehash

import "strings"

// Hash type constants
const (
	HashTypeMD5    uint16 = 1 // MD5 (16 bytes)
	HashTypeSHA1   uint16 = 2 // SHA-1 (20 bytes)
	HashTypeSHA256 uint16 = 3 // SHA-256 (32 bytes)
	HashTypeSHA512 uint16 = 4 // SHA-512 (64 bytes)
	HashTypeXXH64  uint16 = 5 // XXH64 (8 bytes, non-cryptographic)
)

// Hash size constants
const (
	HashSizeMD5    = 16 // MD5 digest size in bytes
	HashSizeSHA1   = 20 // SHA-1 digest size in bytes
	HashSizeSHA256 = 32 // SHA-256 digest size in bytes
	HashSizeSHA512 = 64 // SHA-512 digest size in bytes
	HashSizeXXH64  = 8  // XXH64 digest size in bytes
)

// Worker pool defaults. The floor is a policy limit: requested worker counts
// below it are silently raised, never rejected.
const (
	DefaultWorkerFloor = 8
	DefaultHashWorkers = 8
)

// Hashing buffer constants
const (
	DefaultHashBuffer = "1M"
	MinHashBuffer     = 4 * 1024
)

// DefaultAlgorithm is the digest algorithm used when neither the command line
// nor the config file selects one.
const DefaultAlgorithm = "md5"

// HashTypeName returns the human-readable name for a hash type
func HashTypeName(hashType uint16) string {
	switch hashType {
	case HashTypeMD5:
		return "md5"
	case HashTypeSHA1:
		return "sha1"
	case HashTypeSHA256:
		return "sha256"
	case HashTypeSHA512:
		return "sha512"
	case HashTypeXXH64:
		return "xxh64"
	default:
		return "unknown"
	}
}

// HashTypeFromName returns the hash type constant from a name (case-insensitive)
func HashTypeFromName(name string) (uint16, bool) {
	switch strings.ToLower(name) {
	case "md5":
		return HashTypeMD5, true
	case "sha1":
		return HashTypeSHA1, true
	case "sha256":
		return HashTypeSHA256, true
	case "sha512":
		return HashTypeSHA512, true
	case "xxh64":
		return HashTypeXXH64, true
	default:
		return 0, false
	}
}
