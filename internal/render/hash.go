package render

import (
	"crypto/sha256"
	"encoding/hex"
)

// DomainArtifact is the domain prefix for artifact content hashes. The
// version suffix enables future algorithm migration.
const DomainArtifact = "bpdc/artifact/v1"

// Hash computes the content hash of a rendered artifact:
// SHA256(domain + 0x00 + data). The null separator prevents domain/data
// boundary ambiguity. Because rendering is deterministic, equal graphs
// always hash equal.
func Hash(data []byte) string {
	h := sha256.New()
	h.Write([]byte(DomainArtifact))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
