package types

import (
	"encoding/json"
	"sort"
)

// FormData maps field keys to raw string values for one form session.
// A missing key is the "not entered" state, never an error.
// Lookups are exact and case-sensitive. FormData is owned by a single editing
// session and is not safe for concurrent mutation.
type FormData struct {
	values map[string]string
}

// NewFormData builds a FormData from an initial set of values. The map is
// copied; later changes to values do not affect the FormData.
func NewFormData(values map[string]string) *FormData {
	d := &FormData{values: make(map[string]string, len(values))}
	for k, v := range values {
		d.values[k] = v
	}
	return d
}

// TryGet returns the value stored under key and whether the key is present.
func (d *FormData) TryGet(key string) (string, bool) {
	if d == nil || d.values == nil {
		return "", false
	}
	v, ok := d.values[key]
	return v, ok
}

// Set stores value under key.
func (d *FormData) Set(key, value string) {
	if d.values == nil {
		d.values = make(map[string]string)
	}
	d.values[key] = value
}

// Delete removes key. Deleting an absent key is a no-op.
func (d *FormData) Delete(key string) {
	delete(d.values, key)
}

// Len returns the number of entered fields.
func (d *FormData) Len() int {
	if d == nil {
		return 0
	}
	return len(d.values)
}

// Keys returns the field keys in ascending order.
func (d *FormData) Keys() []string {
	if d == nil {
		return []string{}
	}
	keys := make([]string, 0, len(d.values))
	for k := range d.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns a copy of all values.
// Returns an empty map (not nil) if nothing has been entered.
func (d *FormData) Values() map[string]string {
	result := make(map[string]string, d.Len())
	if d == nil {
		return result
	}
	for k, v := range d.values {
		result[k] = v
	}
	return result
}

// MarshalJSON encodes the values as a flat JSON object.
func (d *FormData) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Values())
}

// UnmarshalJSON replaces the values with the decoded JSON object.
func (d *FormData) UnmarshalJSON(data []byte) error {
	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	d.values = make(map[string]string, len(values))
	for k, v := range values {
		d.values[k] = v
	}
	return nil
}
