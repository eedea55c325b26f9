package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/roach88/hosei/internal/combo"
)

// DomainDataset prefixes dataset digests. The version suffix allows the
// encoding to change without colliding with older digests.
const DomainDataset = "hosei/dataset/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data) as lowercase hex.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Dataset returns the digest of a combo dataset. Only ids and damage take
// part; Hosei records are ignored.
func Dataset(combos []combo.Combo) (string, error) {
	doc := make([]any, len(combos))
	for i, c := range combos {
		ws := make([]any, len(c))
		for j, w := range c {
			ws[j] = map[string]any{
				"id": w.ID,
				"dm": w.DM,
			}
		}
		doc[i] = ws
	}

	canonical, err := MarshalCanonical(doc)
	if err != nil {
		return "", fmt.Errorf("dataset digest: %w", err)
	}
	return hashWithDomain(DomainDataset, canonical), nil
}
