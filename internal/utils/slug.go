package utils

import (
	"strings"

	"github.com/google/uuid"
)

const slugLength = 10

// NewSlug returns a short random URL-safe identifier.
func NewSlug() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:slugLength]
}
