package core

import (
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
)

// eventIDPrefix tags the trace ids minted for inbound webhook events
const eventIDPrefix = "evt"

// NewID returns a prefixed, lexicographically sortable id of the form
// "prefix_ULID", e.g. "evt_01G0EZ1XTM37C5X11SQTDNCTM1". The prefix is
// normalized to lowercase; an empty or blank prefix panics because every id
// in this system is namespaced.
func NewID(prefix string) string {
	cleaned := strings.ToLower(strings.TrimSpace(prefix))
	if cleaned == "" {
		panic("id prefix cannot be empty")
	}

	return fmt.Sprintf("%s_%s", cleaned, ulid.Make().String())
}

// NewEventID mints the trace id attached to one inbound webhook event for
// the duration of its handling
func NewEventID() string {
	return NewID(eventIDPrefix)
}
