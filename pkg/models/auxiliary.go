package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SheetRecord is one data row of a spreadsheet. Keys keep the column order
// of the sheet; Values holds float64, bool, string or nil.
type SheetRecord struct {
	Keys   []string
	Values map[string]any
}

// Get returns the value of column key.
func (r SheetRecord) Get(key string) any {
	return r.Values[key]
}

// MarshalJSON writes the record as an object in column order.
func (r SheetRecord) MarshalJSON() ([]byte, error) {
	return marshalOrdered(r.Keys, r.Get)
}

// marshalOrdered writes an object with keys in the given order.
func marshalOrdered(keys []string, value func(string) any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshalNoEscape(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := marshalNoEscape(value(key))
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// OCRResult is the recognized text of an ID-card image.
type OCRResult struct {
	RawText     string `json:"raw_text"`
	CleanedText string `json:"cleaned_text"`
}

// Clean fills CleanedText from RawText.
func (r *OCRResult) Clean(cleaner func(string) string) {
	r.CleanedText = cleaner(r.RawText)
}
