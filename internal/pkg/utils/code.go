package utils

import (
	"strings"

	"farmalink-service/internal/pkg/constvars"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

// GenerateLookupCode returns the code printed on a prescription for pharmacy
// lookup before locking.
func GenerateLookupCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

// DisplayCode derives the short human-facing code from a record id. Shown to
// patients and couriers instead of the full ObjectID hex.
func DisplayCode(id string) string {
	normalized := strings.ToUpper(id)
	if len(normalized) <= constvars.DisplayCodeLength {
		return normalized
	}
	return normalized[len(normalized)-constvars.DisplayCodeLength:]
}
