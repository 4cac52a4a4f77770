package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// ID is a canonical string entity identifier. Legacy collection blobs (and the
// seed dataset) carry numeric ids, so unmarshalling accepts both JSON numbers
// and strings and normalizes them to their string form.
type ID string

// UnmarshalJSON accepts "123", 123 and 123.0 and stores "123".
func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*id = ""
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*id = ID(strconv.FormatInt(i, 10))
		return nil
	}
	*id = ID(n.String())
	return nil
}

// ParseID normalizes an identifier that may arrive as a raw route or query
// parameter.
func ParseID(value string) ID {
	return ID(strings.TrimSpace(value))
}

func (id ID) String() string { return string(id) }

// IsZero reports whether the identifier is empty.
func (id ID) IsZero() bool { return id == "" }

var lastAllocated atomic.Int64

// NewID allocates a time-based identifier (millisecond epoch), strictly
// increasing even when two allocations land in the same millisecond.
func NewID(now time.Time) ID {
	ms := now.UnixMilli()
	for {
		prev := lastAllocated.Load()
		candidate := ms
		if candidate <= prev {
			candidate = prev + 1
		}
		if lastAllocated.CompareAndSwap(prev, candidate) {
			return ID(strconv.FormatInt(candidate, 10))
		}
	}
}
