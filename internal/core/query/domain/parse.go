package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ParseFilter decodes a JSON object into a Filter, keeping the key order of
// the document. The reserved key "$or" must hold an array of objects; every
// field of every object becomes one disjunct. "$or" is only allowed at the
// top level.
func ParseFilter(data []byte) (Filter, error) {
	var f Filter
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return f, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	conds, err := decodeDocument(dec, true)
	if err != nil {
		return Filter{}, fmt.Errorf("failed to parse filter: %w", err)
	}

	for _, c := range conds {
		if c.Field != OrKey {
			f.Conditions = append(f.Conditions, c)
			continue
		}
		branches, ok := c.Value.([][]Condition)
		if !ok {
			return Filter{}, fmt.Errorf("failed to parse filter: %s must be an array of objects", OrKey)
		}
		for _, b := range branches {
			f.Or = append(f.Or, b...)
		}
	}

	return f, nil
}

// ParseRecord decodes a JSON object into a Record.
func ParseRecord(data []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	conds, err := decodeDocument(dec, false)
	if err != nil {
		return nil, fmt.Errorf("failed to parse record: %w", err)
	}

	rec := make(Record, len(conds))
	for _, c := range conds {
		rec[c.Field] = c.Value
	}
	return rec, nil
}

// decodeDocument decodes exactly one object and rejects anything after it.
func decodeDocument(dec *json.Decoder, allowOr bool) ([]Condition, error) {
	conds, err := decodeObject(dec, allowOr)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after object")
	}
	return conds, nil
}

func decodeObject(dec *json.Decoder, allowOr bool) ([]Condition, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var conds []Condition
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected key, got %v", tok)
		}

		if key == OrKey {
			if !allowOr {
				return nil, fmt.Errorf("%s is only allowed at the top level of a filter", OrKey)
			}
			branches, err := decodeOrArray(dec)
			if err != nil {
				return nil, err
			}
			conds = append(conds, Condition{Field: key, Value: branches})
			continue
		}

		var raw interface{}
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		conds = append(conds, Condition{Field: key, Value: normalize(raw)})
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return conds, nil
}

func decodeOrArray(dec *json.Decoder) ([][]Condition, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, fmt.Errorf("%s must be an array", OrKey)
	}

	var branches [][]Condition
	for dec.More() {
		b, err := decodeObject(dec, false)
		if err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return branches, nil
}

// normalize turns json.Number into int64 or float64, recursively for arrays.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	case []interface{}:
		for i := range t {
			t[i] = normalize(t[i])
		}
		return t
	default:
		return v
	}
}
