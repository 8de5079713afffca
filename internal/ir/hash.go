package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix allows future algorithm migration.
const (
	DomainTree    = "opflow/tree/v1"
	DomainGraph   = "opflow/graph/v1"
	DomainFixture = "opflow/fixture/v1"
)

// HashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func HashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// HashValue canonically marshals v and hashes it under domain.
func HashValue(domain string, v Value) (string, error) {
	canonical, err := MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", domain, err)
	}
	return HashWithDomain(domain, canonical), nil
}

// TreeHash returns the content hash of the canonical dump of root.
// Two translations of the same bound tree always produce the same hash.
func TreeHash(root Operation) (string, error) {
	return HashValue(DomainTree, Dump(root))
}

// FixtureHash hashes raw fixture bytes.
func FixtureHash(data []byte) string {
	return HashWithDomain(DomainFixture, data)
}
