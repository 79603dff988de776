// Package gitlib wraps the subset of libgit2 needed to walk a repository's
// history and compute per-commit line statistics.
package gitlib

import (
	"encoding/hex"

	git2go "github.com/libgit2/git2go/v34"
)

// HashSize is the size of a SHA-1 hash in bytes.
const HashSize = 20

// shortHashLen is the number of hex digits shown by Hash.Short.
const shortHashLen = 7

// Hash represents a git object hash (SHA-1).
type Hash [HashSize]byte

// HashFromOid converts a libgit2 Oid to Hash.
func HashFromOid(oid *git2go.Oid) Hash {
	var h Hash
	if oid != nil {
		copy(h[:], oid[:])
	}

	return h
}

// String returns the hex representation of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Short returns the abbreviated hex form used in error messages.
func (h Hash) Short() string {
	return h.String()[:shortHashLen]
}
