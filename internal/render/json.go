package render

import (
	"encoding/json"
	"fmt"
	"io"

	"findigest/internal/digest"
)

// WriteJSON writes the combined result as pretty-printed JSON. HTML escaping
// is disabled so non-ASCII customer names survive byte-for-byte.
func WriteJSON(w io.Writer, result *digest.CombinedResult) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode digest as JSON: %w", err)
	}
	return nil
}
