package catalog

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

// DomainStatement prefixes statement content hashes. The version suffix
// leaves room for a future change of hashing input.
const DomainStatement = "cqlb/statement/v1"

// hashWithDomain computes SHA-256 with domain separation:
// SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// StatementID is the content-addressed identity of compact query text.
// Two entries with the same text share an ID regardless of their names.
func StatementID(query string) string {
	return hashWithDomain(DomainStatement, []byte(query))
}

// IDGenerator produces build IDs for saved entries.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 build IDs.
// It is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
// Panics if UUID generation fails.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
