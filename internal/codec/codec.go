// Package codec converts parameter sets to and from their external
// representations: share-link tokens, JSON request bodies, and YAML files.
//
// Everything decoded here is merged with the baseline parameter set and
// clamped to the range table before it is handed to the model.
package codec

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Simplici0/mako-cost/internal/model"
)

// Codec encodes parameter sets into an opaque string and back.
type Codec interface {
	Encode(p model.ParameterSet) (string, error)
	Decode(s string) model.ParameterSet
}

// Base64JSON encodes parameter sets as standard base64 over JSON, the format
// used in shareable links.
type Base64JSON struct{}

var _ Codec = Base64JSON{}

// Encode returns the base64 JSON token of p.
func (Base64JSON) Encode(p model.ParameterSet) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal parameter set: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Decode parses a token produced by Encode. Tokens that are not valid base64
// or JSON yield the baseline parameter set; missing fields are filled from
// the baseline and all values are clamped.
func (Base64JSON) Decode(s string) model.ParameterSet {
	raw, err := decodeBase64(strings.TrimSpace(s))
	if err != nil {
		return model.Defaults()
	}

	var partial Partial
	if err := json.Unmarshal(raw, &partial); err != nil {
		return model.Defaults()
	}
	return Normalize(partial)
}

func decodeBase64(s string) ([]byte, error) {
	if raw, err := base64.StdEncoding.DecodeString(s); err == nil {
		return raw, nil
	}
	// Tokens copied out of URLs may have lost their padding or been made URL-safe.
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	return raw, nil
}

// ErrEmptyDocument is returned by ReadYAML for an input with no YAML document.
var ErrEmptyDocument = errors.New("empty parameter document")

// ReadJSON decodes a partial parameter set from r and normalizes it.
func ReadJSON(r io.Reader) (model.ParameterSet, error) {
	var partial Partial
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&partial); err != nil {
		if errors.Is(err, io.EOF) {
			return model.Defaults(), nil
		}
		return model.ParameterSet{}, fmt.Errorf("decode parameters: %w", err)
	}
	return Normalize(partial), nil
}

// ReadYAML decodes a partial parameter set from a YAML document and
// normalizes it.
func ReadYAML(r io.Reader) (model.ParameterSet, error) {
	var partial Partial
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&partial); err != nil {
		if errors.Is(err, io.EOF) {
			return model.ParameterSet{}, ErrEmptyDocument
		}
		return model.ParameterSet{}, fmt.Errorf("decode yaml parameters: %w", err)
	}
	return Normalize(partial), nil
}

// WriteYAML writes the full parameter set p as YAML.
func WriteYAML(w io.Writer, p model.ParameterSet) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode yaml parameters: %w", err)
	}
	return enc.Close()
}
