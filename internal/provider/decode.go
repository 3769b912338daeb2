package provider

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/bassista/go_records/internal/record"
	"github.com/go-playground/validator/v10"
)

// wireRecord mirrors the JSON payload. Pointer fields let the validator tell a
// missing field apart from a zero value.
type wireRecord struct {
	UserID *int64  `json:"userId" validate:"required"`
	ID     *int64  `json:"id" validate:"required,min=0"`
	Title  *string `json:"title" validate:"required,min=1"`
	Body   *string `json:"body" validate:"required"`
}

// wireFields is the exact, case-sensitive key set of a wireRecord object.
var wireFields = map[string]bool{"userId": true, "id": true, "title": true, "body": true}

var recordValidator = validator.New()

// decodeRecords parses a JSON array of records. Unknown, miscased or duplicate
// keys, wrong types, missing fields, trailing data and invalid values reject
// the whole payload.
func decodeRecords(r io.Reader) ([]record.Record, error) {
	decoder := json.NewDecoder(r)

	var elems []json.RawMessage
	if err := decoder.Decode(&elems); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	if elems == nil {
		return nil, errors.New("decode records: expected a JSON array, got null")
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("decode records: unexpected data after JSON array")
	}

	records := make([]record.Record, 0, len(elems))
	for i, elem := range elems {
		rec, err := decodeRecord(elem)
		if err != nil {
			return nil, fmt.Errorf("record at index %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeRecord(elem json.RawMessage) (record.Record, error) {
	if err := checkKeys(elem); err != nil {
		return record.Record{}, err
	}

	decoder := json.NewDecoder(bytes.NewReader(elem))
	decoder.DisallowUnknownFields()

	var wire wireRecord
	if err := decoder.Decode(&wire); err != nil {
		return record.Record{}, fmt.Errorf("decode: %w", err)
	}
	if err := recordValidator.Struct(&wire); err != nil {
		return record.Record{}, fmt.Errorf("validate: %w", err)
	}
	return record.New(*wire.ID, *wire.UserID, *wire.Title, *wire.Body)
}

// checkKeys walks the top-level keys of one object. encoding/json matches
// field names case-insensitively and lets the last duplicate win, so both are
// checked here before the typed decode.
func checkKeys(elem json.RawMessage) error {
	decoder := json.NewDecoder(bytes.NewReader(elem))

	tok, err := decoder.Token()
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected a JSON object, got %s", elem)
	}

	seen := make(map[string]bool, len(wireFields))
	for decoder.More() {
		tok, err := decoder.Token()
		if err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		key, _ := tok.(string)
		if !wireFields[key] {
			return fmt.Errorf("unknown field %q", key)
		}
		if seen[key] {
			return fmt.Errorf("duplicate field %q", key)
		}
		seen[key] = true

		var value json.RawMessage
		if err := decoder.Decode(&value); err != nil {
			return fmt.Errorf("decode field %q: %w", key, err)
		}
	}
	return nil
}
