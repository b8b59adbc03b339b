package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"

	"order-manager/core/utils"
)

// Sizes maps a size label to the quantity currently available.
type Sizes map[string]int

// Get returns the counter for size. Absent labels read as 0.
func (s Sizes) Get(size string) int {
	return s[size]
}

// Clone returns an independent copy. A nil receiver clones to an empty map.
func (s Sizes) Clone() Sizes {
	out := make(Sizes, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Labels returns the size labels in lexical order.
func (s Sizes) Labels() []string {
	labels := make([]string, 0, len(s))
	for k := range s {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return labels
}

// Validate rejects negative counters.
func (s Sizes) Validate() error {
	for _, label := range s.Labels() {
		if s[label] < 0 {
			return fmt.Errorf("size %q has negative quantity %d", label, s[label])
		}
	}
	return nil
}

// UnmarshalJSON accepts any JSON value per label and normalizes it to an int.
// Strings, nulls and garbage become 0 so legacy documents stay readable.
func (s *Sizes) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = nil
		return nil
	}

	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("sizes must be an object of size to quantity: %w", err)
	}

	out := make(Sizes, len(raw))
	for k, v := range raw {
		out[k] = utils.ToInt(v)
	}
	*s = out
	return nil
}

// Value stores the counters as a JSON column.
func (s Sizes) Value() (driver.Value, error) {
	if s == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]int(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan reads the JSON column written by Value.
func (s *Sizes) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*s = Sizes{}
		return nil
	case []byte:
		return s.UnmarshalJSON(v)
	case string:
		return s.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("unsupported sizes column type %T", value)
	}
}
