package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/sadopc/wristtrack/internal/catalog"
)

// Get returns the item id recorded for d.
func (r Records) Get(d DateKey) (string, bool) {
	id, ok := r[d]
	return id, ok
}

// Keys returns the recorded dates in ascending order.
func (r Records) Keys() []DateKey {
	keys := make([]DateKey, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (r Records) clone() Records {
	out := make(Records, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Set returns a copy of r with d bound to itemID. r is not modified.
func Set(d DateKey, itemID string, r Records) Records {
	out := r.clone()
	out[d] = itemID
	return out
}

// Delete returns a copy of r without d. r is not modified.
func Delete(d DateKey, r Records) Records {
	out := r.clone()
	delete(out, d)
	return out
}

// Merge returns a copy of base with every entry of over applied on top.
func Merge(base, over Records) Records {
	out := base.clone()
	for k, v := range over {
		out[k] = v
	}
	return out
}

// Prune drops records whose item id is not in c and reports how many went.
func Prune(r Records, c *catalog.Catalog) (Records, int) {
	out := make(Records, len(r))
	removed := 0
	for k, v := range r {
		if !c.Contains(v) {
			removed++
			continue
		}
		out[k] = v
	}
	return out, removed
}

var errNotObject = errors.New("records payload is not a JSON object")

// DecodeRecords parses a JSON object of date -> item id. Entries with a
// malformed date key or a non-string value are skipped; see unreadableEntries.
func DecodeRecords(data []byte) (Records, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	out := make(Records, len(obj))
	for k, v := range obj {
		d, err := ParseDateKey(k)
		if err != nil {
			continue
		}
		id, ok := v.(string)
		if !ok {
			continue
		}
		out[d] = id
	}
	return out, nil
}

// EncodeRecords serializes r as a JSON object with sorted keys.
func EncodeRecords(r Records) ([]byte, error) {
	if r == nil {
		r = Records{}
	}
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	return data, nil
}

// unreadableEntries returns the raw entries of a stored payload that
// DecodeRecords skips. A payload that is not a JSON object has none.
func unreadableEntries(data []byte) map[string]json.RawMessage {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	out := make(map[string]json.RawMessage)
	for k, v := range obj {
		if _, err := ParseDateKey(k); err != nil {
			out[k] = v
			continue
		}
		var id string
		if err := json.Unmarshal(v, &id); err != nil {
			out[k] = v
		}
	}
	return out
}

// encodeWithExtras serializes r together with raw entries it does not hold.
// An entry in r replaces a raw entry under the same key.
func encodeWithExtras(r Records, extras map[string]json.RawMessage) ([]byte, error) {
	if len(extras) == 0 {
		return EncodeRecords(r)
	}
	obj := make(map[string]json.RawMessage, len(r)+len(extras))
	for k, v := range extras {
		obj[k] = v
	}
	for d, id := range r {
		v, err := json.Marshal(id)
		if err != nil {
			return nil, fmt.Errorf("encode records: %w", err)
		}
		obj[string(d)] = v
	}
	data, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	return data, nil
}
