// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/keyid/lib/ref"
)

// Format names a serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

// Formats lists the supported formats in display order.
var Formats = []Format{FormatJSON, FormatYAML, FormatCBOR}

// ParseFormat resolves a format name, case-insensitively. "yml" is
// accepted as an alias for YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "cbor":
		return FormatCBOR, nil
	}
	return "", fmt.Errorf("unknown format %q (supported: json, yaml, cbor)", name)
}

// Marshal encodes v in the given format. JSON output is indented for
// terminal display.
func Marshal(format Format, v any) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(v)
	case FormatCBOR:
		return encMode.Marshal(v)
	}
	return nil, fmt.Errorf("marshal: unsupported format %q", format)
}

// Unmarshal decodes data in the given format into v. Errors returned
// by a ref's UnmarshalText reach the caller unwrapped by the JSON and
// YAML decoders, so errors.As finds a *ref.ParseError.
func Unmarshal(format Format, data []byte, v any) error {
	switch format {
	case FormatJSON:
		return json.Unmarshal(jsonc.ToJSON(data), v)
	case FormatYAML:
		return yaml.Unmarshal(data, v)
	case FormatCBOR:
		return decMode.Unmarshal(data, v)
	}
	return fmt.Errorf("unmarshal: unsupported format %q", format)
}

// DetectFormat guesses whether a text document is JSON or YAML. A
// document whose first significant character, after JSONC comments are
// stripped, opens an object or array is JSON; anything else is YAML.
func DetectFormat(data []byte) Format {
	trimmed := bytes.TrimSpace(jsonc.ToJSON(data))
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// UnmarshalStrict is like Unmarshal but rejects fields that v does not
// declare, so a misspelled key name is an error rather than a silently
// empty field.
func UnmarshalStrict(format Format, data []byte, v any) error {
	switch format {
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.DisallowUnknownFields()
		return decoder.Decode(v)
	case FormatYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		return decoder.Decode(v)
	case FormatCBOR:
		return strictDecMode.Unmarshal(data, v)
	}
	return fmt.Errorf("unmarshal: unsupported format %q", format)
}

// DecodeDocument strictly decodes a JSON, JSONC or YAML document into
// v and returns the format it was read as. A document that looks like
// JSON but is not valid JSON is retried as YAML, which accepts flow
// mappings such as {module_id: M000...}. When both attempts fail the
// JSON error is returned unless YAML reached a key parse failure.
func DecodeDocument(data []byte, v any) (Format, error) {
	format := DetectFormat(data)
	err := UnmarshalStrict(format, data, v)
	if format == FormatYAML {
		return FormatYAML, err
	}

	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return FormatJSON, err
	}
	yamlErr := UnmarshalStrict(FormatYAML, data, v)
	var parseErr *ref.ParseError
	if yamlErr == nil || errors.As(yamlErr, &parseErr) {
		return FormatYAML, yamlErr
	}
	return FormatJSON, err
}
