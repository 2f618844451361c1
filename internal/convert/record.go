package convert

import "bytes"

// Record is one row or object: an ordered mapping from field name to Value.
// The zero Record is empty and ready to use.
type Record struct {
	keys   []string
	values map[string]Value
}

// Set assigns v to key. A new key is appended to the key order; an existing
// key keeps its position and takes the new value.
func (r *Record) Set(key string, v Value) {
	if r.values == nil {
		r.values = make(map[string]Value)
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// Get returns the value for key. Missing keys return an absent Value and false.
func (r Record) Get(key string) (Value, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the field names in order.
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.keys)
}

// MarshalJSON encodes r as a JSON object with keys in record order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshalNoEscape(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')

		v, err := r.values[key].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Headers returns the unified header list of a record set: the union of all
// keys, in first-seen order (record 0's keys first, then any new keys from
// record 1, and so on).
func Headers(records []Record) []string {
	seen := make(map[string]bool)
	var headers []string
	for _, rec := range records {
		for _, key := range rec.keys {
			if seen[key] {
				continue
			}
			seen[key] = true
			headers = append(headers, key)
		}
	}
	return headers
}
