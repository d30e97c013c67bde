// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/bureau-foundation/keyid/lib/ref"
	"github.com/bureau-foundation/keyid/lib/testutil"
)

// sampleKeys is a representative document holding one ref of each kind.
type sampleKeys struct {
	Module  ref.ModuleID    `json:"module_id" yaml:"module_id"`
	Server  ref.ServerID    `json:"server_id" yaml:"server_id"`
	Service ref.ServiceID   `json:"service_id" yaml:"service_id"`
	Seed    ref.ClusterSeed `json:"cluster_seed" yaml:"cluster_seed"`
}

func newSampleKeys() sampleKeys {
	return sampleKeys{
		Module:  ref.MustParseID[ref.ModulePrefix](testutil.UniqueKey("M")),
		Server:  ref.MustParseID[ref.ServerPrefix](testutil.UniqueKey("N")),
		Service: ref.MustParseID[ref.ServicePrefix](testutil.UniqueKey("V")),
		Seed:    ref.DefaultClusterSeed(),
	}
}

func TestRoundTrip(t *testing.T) {
	for _, format := range Formats {
		t.Run(string(format), func(t *testing.T) {
			original := newSampleKeys()

			data, err := Marshal(format, original)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if len(data) == 0 {
				t.Fatal("Marshal produced empty output")
			}

			var decoded sampleKeys
			if err := Unmarshal(format, data, &decoded); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if decoded != original {
				t.Errorf("round-trip mismatch: got %+v, want %+v", decoded, original)
			}
		})
	}
}

func TestRoundTripMultibyte(t *testing.T) {
	// 56 code points, 57 bytes.
	raw := "M" + strings.Repeat("0", 53) + "é0"
	for _, format := range Formats {
		t.Run(string(format), func(t *testing.T) {
			original := sampleKeys{Module: ref.MustParseID[ref.ModulePrefix](raw)}

			data, err := Marshal(format, original)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			var decoded sampleKeys
			if err := Unmarshal(format, data, &decoded); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if decoded != original {
				t.Errorf("round-trip mismatch: got %q, want %q", decoded.Module, original.Module)
			}
		})
	}
}

func TestInvalidUTF8NeverReachesEncoders(t *testing.T) {
	// Counted as 56 code points, but would come back from JSON as
	// U+FFFD and be refused by the CBOR decoder.
	raw := "M" + strings.Repeat("\xff", 55)
	if _, err := ref.ParseModuleID(raw); !errors.Is(err, ref.ErrInvalidEncoding) {
		t.Fatalf("ParseModuleID(invalid UTF-8) error = %v, want ErrInvalidEncoding", err)
	}

	// A JSON document carrying those bytes decodes to the U+FFFD
	// rendering, a different (valid) key, never to the raw bytes.
	var decoded sampleKeys
	data := []byte(`{"module_id": "` + raw + `"}`)
	if err := Unmarshal(FormatJSON, data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if want := "M" + strings.Repeat("\uFFFD", 55); decoded.Module.String() != want {
		t.Errorf("decoded module_id = %q, want %q", decoded.Module, want)
	}
}

func TestTextFormatsUsePlainStrings(t *testing.T) {
	original := newSampleKeys()

	jsonData, err := Marshal(FormatJSON, original)
	if err != nil {
		t.Fatalf("Marshal JSON: %v", err)
	}
	if !strings.Contains(string(jsonData), `"server_id": "`+original.Server.String()+`"`) {
		t.Errorf("JSON output does not hold server_id as a string:\n%s", jsonData)
	}

	yamlData, err := Marshal(FormatYAML, original)
	if err != nil {
		t.Fatalf("Marshal YAML: %v", err)
	}
	if !strings.Contains(string(yamlData), "cluster_seed: "+original.Seed.String()) {
		t.Errorf("YAML output does not hold cluster_seed as a string:\n%s", yamlData)
	}
}

func TestCBOREncodesRefsAsTextStrings(t *testing.T) {
	original := newSampleKeys()

	data, err := Marshal(FormatCBOR, original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	notation, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	// A text string appears quoted; a byte string or map would not.
	want := `"` + original.Module.String() + `"`
	if !strings.Contains(notation, want) {
		t.Errorf("diagnostic notation %s does not contain %s", notation, want)
	}
}

func TestCBORDeterministic(t *testing.T) {
	original := newSampleKeys()

	first, err := Marshal(FormatCBOR, original)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	second, err := Marshal(FormatCBOR, original)
	if err != nil {
		t.Fatalf("second Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("deterministic encoding violated: %x != %x", first, second)
	}
}

func TestUnmarshalRejectsInvalidKeys(t *testing.T) {
	wrongKind := testutil.Key("V")
	tests := []struct {
		name    string
		format  Format
		input   string
		wantErr error
	}{
		{
			name:    "json-wrong-kind",
			format:  FormatJSON,
			input:   `{"module_id": "` + wrongKind + `"}`,
			wantErr: ref.ErrWrongKeyType,
		},
		{
			name:    "json-wrong-length",
			format:  FormatJSON,
			input:   `{"cluster_seed": "SC00"}`,
			wantErr: ref.ErrWrongLength,
		},
		{
			name:    "yaml-wrong-kind",
			format:  FormatYAML,
			input:   "module_id: " + wrongKind + "\n",
			wantErr: ref.ErrWrongKeyType,
		},
		{
			name:    "yaml-wrong-length",
			format:  FormatYAML,
			input:   "server_id: N0\n",
			wantErr: ref.ErrWrongLength,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var decoded sampleKeys
			err := Unmarshal(test.format, []byte(test.input), &decoded)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("Unmarshal error = %v, want %v", err, test.wantErr)
			}
		})
	}
}

func TestUnmarshalCBORRejectsInvalidKey(t *testing.T) {
	data, err := Marshal(FormatCBOR, map[string]string{"service_id": testutil.Key("M")})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded sampleKeys
	if err := Unmarshal(FormatCBOR, data, &decoded); err == nil {
		t.Fatal("Unmarshal should reject a module ID in a service ID field")
	}
}

func TestUnmarshalInvalidCBOR(t *testing.T) {
	var decoded sampleKeys
	if err := Unmarshal(FormatCBOR, []byte{0xFF, 0xFE, 0xFD}, &decoded); err == nil {
		t.Error("Unmarshal should reject invalid CBOR")
	}
}

func TestUnmarshalJSONC(t *testing.T) {
	module := testutil.Key("M")
	input := `{
		// Module under test.
		"module_id": "` + module + `",
		/* no seed yet */
		"cluster_seed": "",
	}`

	var decoded sampleKeys
	if err := Unmarshal(FormatJSON, []byte(input), &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Module.String() != module {
		t.Errorf("module_id = %q, want %q", decoded.Module, module)
	}
	if !decoded.Seed.IsZero() {
		t.Errorf("cluster_seed = %q, want zero value", decoded.Seed)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"cbor", FormatCBOR, false},
		{"toml", "", true},
		{"", "", true},
	}
	for _, test := range tests {
		got, err := ParseFormat(test.input)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseFormat(%q): err=%v, wantErr=%v", test.input, err, test.wantErr)
			continue
		}
		if got != test.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := Marshal(Format("toml"), sampleKeys{}); err == nil {
		t.Error("Marshal should reject an unknown format")
	}
	var decoded sampleKeys
	if err := Unmarshal(Format("toml"), nil, &decoded); err == nil {
		t.Error("Unmarshal should reject an unknown format")
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Format
	}{
		{"object", `{"module_id": ""}`, FormatJSON},
		{"leading-whitespace", "\n\t  {}", FormatJSON},
		{"leading-comment", "// keys\n{}", FormatJSON},
		{"array", `[]`, FormatJSON},
		{"yaml-mapping", "module_id: M000\n", FormatYAML},
		{"yaml-comment", "# keys\nserver_id: N000\n", FormatYAML},
		{"empty", "", FormatYAML},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := DetectFormat([]byte(test.input)); got != test.want {
				t.Errorf("DetectFormat(%q) = %q, want %q", test.input, got, test.want)
			}
		})
	}
}

func BenchmarkMarshalCBOR(b *testing.B) {
	keys := newSampleKeys()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Marshal(FormatCBOR, keys)
	}
}

func TestUnmarshalStrictRejectsUnknownFields(t *testing.T) {
	misspelled := map[Format]string{
		FormatJSON: `{"modul_id": "` + testutil.Key("M") + `"}`,
		FormatYAML: "modul_id: " + testutil.Key("M") + "\n",
	}
	cborData, err := Marshal(FormatCBOR, map[string]string{"modul_id": testutil.Key("M")})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	misspelled[FormatCBOR] = string(cborData)

	for _, format := range Formats {
		t.Run(string(format), func(t *testing.T) {
			data := []byte(misspelled[format])

			var lenient sampleKeys
			if err := Unmarshal(format, data, &lenient); err != nil {
				t.Fatalf("Unmarshal should ignore unknown fields: %v", err)
			}
			var strict sampleKeys
			if err := UnmarshalStrict(format, data, &strict); err == nil {
				t.Error("UnmarshalStrict should reject unknown field modul_id")
			}
		})
	}
}

func TestUnmarshalStrictAcceptsKnownFields(t *testing.T) {
	original := newSampleKeys()
	for _, format := range Formats {
		t.Run(string(format), func(t *testing.T) {
			data, err := Marshal(format, original)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			var decoded sampleKeys
			if err := UnmarshalStrict(format, data, &decoded); err != nil {
				t.Fatalf("UnmarshalStrict: %v", err)
			}
			if decoded != original {
				t.Errorf("got %+v, want %+v", decoded, original)
			}
		})
	}
}

func TestDecodeDocument(t *testing.T) {
	module := testutil.Key("M")
	tests := []struct {
		name       string
		input      string
		wantFormat Format
		wantErr    error
		wantAnyErr bool
	}{
		{name: "json", input: `{"module_id": "` + module + `"}`, wantFormat: FormatJSON},
		{name: "jsonc", input: "// keys\n{\"module_id\": \"" + module + "\",}", wantFormat: FormatJSON},
		{name: "yaml", input: "module_id: " + module + "\n", wantFormat: FormatYAML},
		{name: "yaml-flow-mapping", input: "{module_id: " + module + "}", wantFormat: FormatYAML},
		{name: "yaml-flow-mapping-wrong-kind", input: "{module_id: " + testutil.Key("N") + "}", wantFormat: FormatYAML, wantErr: ref.ErrWrongKeyType},
		{name: "json-wrong-kind", input: `{"module_id": "` + testutil.Key("N") + `"}`, wantFormat: FormatJSON, wantErr: ref.ErrWrongKeyType},
		{name: "json-truncated", input: `{"module_id": `, wantFormat: FormatJSON, wantAnyErr: true},
		{name: "json-unknown-field", input: `{"modul_id": "` + module + `"}`, wantFormat: FormatJSON, wantAnyErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var decoded sampleKeys
			format, err := DecodeDocument([]byte(test.input), &decoded)
			if format != test.wantFormat {
				t.Errorf("format = %q, want %q", format, test.wantFormat)
			}
			switch {
			case test.wantErr != nil:
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("error = %v, want %v", err, test.wantErr)
				}
			case test.wantAnyErr:
				if err == nil {
					t.Fatal("expected an error")
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if decoded.Module.String() != module {
					t.Errorf("module_id = %q, want %q", decoded.Module, module)
				}
			}
		})
	}
}
