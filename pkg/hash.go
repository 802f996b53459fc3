package bulkfilehash

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sys/unix"
)

// HashAlgorithm represents a hash algorithm configuration
type HashAlgorithm struct {
	Name    string
	TypeID  uint16
	Size    int
	NewFunc func() hash.Hash
}

// GetHashAlgorithm returns the hash algorithm configuration for the given name
func GetHashAlgorithm(name string) (*HashAlgorithm, error) {
	switch strings.ToLower(name) {
	case "md5":
		return &HashAlgorithm{
			Name:    "md5",
			TypeID:  HashTypeMD5,
			Size:    HashSizeMD5,
			NewFunc: func() hash.Hash { return md5.New() },
		}, nil
	case "sha1":
		return &HashAlgorithm{
			Name:    "sha1",
			TypeID:  HashTypeSHA1,
			Size:    HashSizeSHA1,
			NewFunc: func() hash.Hash { return sha1.New() },
		}, nil
	case "sha256":
		return &HashAlgorithm{
			Name:    "sha256",
			TypeID:  HashTypeSHA256,
			Size:    HashSizeSHA256,
			NewFunc: func() hash.Hash { return sha256.New() },
		}, nil
	case "sha512":
		return &HashAlgorithm{
			Name:    "sha512",
			TypeID:  HashTypeSHA512,
			Size:    HashSizeSHA512,
			NewFunc: func() hash.Hash { return sha512.New() },
		}, nil
	case "xxh64":
		return &HashAlgorithm{
			Name:    "xxh64",
			TypeID:  HashTypeXXH64,
			Size:    HashSizeXXH64,
			NewFunc: func() hash.Hash { return xxhash.New() },
		}, nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %s", name)
	}
}

// GetHashAlgorithmByType returns the hash algorithm configuration for the given type ID
func GetHashAlgorithmByType(typeID uint16) (*HashAlgorithm, error) {
	name := HashTypeName(typeID)
	if name == "unknown" {
		return nil, fmt.Errorf("unsupported hash type ID: %d", typeID)
	}
	return GetHashAlgorithm(name)
}

// HashFile calculates the hash of a file using a configurable buffer size
// and checks for shutdown signals between buffer reads for graceful
// interruption. A nil shutdownChan disables interruption.
func HashFile(filePath string, algorithm *HashAlgorithm, bufferSize int, shutdownChan <-chan struct{}) ([]byte, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	// Sequential read hint; errors are ignored
	_ = unix.Fadvise(int(file.Fd()), 0, 0, unix.FADV_SEQUENTIAL)

	hasher := algorithm.NewFunc()
	buffer := make([]byte, bufferSize)

	for {
		// Check for shutdown signal before each read
		select {
		case <-shutdownChan:
			return nil, ErrInterrupted
		default:
			// Continue with read
		}

		n, err := file.Read(buffer)
		if n > 0 {
			hasher.Write(buffer[:n])
		}

		if err == io.EOF {
			// Successfully reached end of file
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read from file %s: %w", filePath, err)
		}
	}

	return hasher.Sum(nil), nil
}

// HexDigest renders a digest as uppercase hexadecimal
func HexDigest(sum []byte) string {
	return strings.ToUpper(hex.EncodeToString(sum))
}

// HashFileToHexString calculates the hash of a file and returns it as an
// uppercase hex string
func HashFileToHexString(filePath string, algorithm *HashAlgorithm, bufferSize int, shutdownChan <-chan struct{}) (string, error) {
	hashBytes, err := HashFile(filePath, algorithm, bufferSize, shutdownChan)
	if err != nil {
		return "", err
	}
	return HexDigest(hashBytes), nil
}
