package tmx

import "github.com/google/uuid"

// NewIdentifier generates a fresh identifier in the external dialect's
// format: 36 characters, hex digits grouped 8-4-4-4-12 by hyphens, with the
// version nibble fixed at 4 and the variant nibble drawn from {8, 9, a, b}.
// That is an RFC 4122 version-4 UUID, which is exactly what the external
// tool writes.
func NewIdentifier() string {
	return uuid.NewString()
}
