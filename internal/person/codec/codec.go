// Package codec converts between the Person shape and the record image the
// store keeps (and the change feed carries). The image is canonical JSON;
// decoding is strict so a malformed image surfaces as an error instead of a
// half-empty record.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"person-service/internal/person/models"
)

// EncodeImage renders a Person into its stored record image.
func EncodeImage(p *models.Person) (json.RawMessage, error) {
	if p == nil {
		return nil, fmt.Errorf("encode person image: nil person")
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode person image: %w", err)
	}
	return raw, nil
}

// DecodeImage parses a stored record image back into a Person. Unknown
// fields and missing identity are decode errors.
func DecodeImage(raw json.RawMessage) (*models.Person, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var p models.Person
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode person image: %w", err)
	}
	if p.ID == "" {
		return nil, fmt.Errorf("decode person image: missing id")
	}
	return &p, nil
}
