package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument is wrapped by every local validation failure.
var ErrInvalidArgument = errors.New("invalid argument")

// ValidateIDPresent ensures an identifier is non-empty and safe to place in a
// URL path segment.
func ValidateIDPresent(id, field string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidArgument, field)
	}
	if strings.ContainsAny(id, "/?#") {
		return fmt.Errorf("%w: %s contains a reserved character", ErrInvalidArgument, field)
	}
	return nil
}

// JoinIDs renders identities as the comma-separated list the backend parses.
func JoinIDs(ids []string) string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return strings.Join(out, ",")
}
