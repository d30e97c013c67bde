// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/bureau-foundation/keyid/lib/codec"
	"github.com/bureau-foundation/keyid/lib/ref"
)

// keyParser validates one raw key and returns it as its ref type.
type keyParser func(raw string) (encoding.TextMarshaler, error)

// kinds maps --kind values to parsers.
var kinds = map[string]keyParser{
	"module":  textParser(ref.ParseModuleID),
	"server":  textParser(ref.ParseServerID),
	"service": textParser(ref.ParseServiceID),
	"cluster": textParser(ref.ParseClusterSeed),
}

func textParser[T encoding.TextMarshaler](parse func(string) (T, error)) keyParser {
	return func(raw string) (encoding.TextMarshaler, error) {
		value, err := parse(raw)
		if err != nil {
			return nil, err
		}
		return value, nil
	}
}

// checkedKey is one accepted positional argument in structured output.
type checkedKey struct {
	Kind string                 `json:"kind" yaml:"kind"`
	Key  encoding.TextMarshaler `json:"key" yaml:"key"`
}

func checkArguments(logger *slog.Logger, kind string, parse keyParser, args []string, stdout io.Writer, out encoder) int {
	var accepted []checkedKey
	var lines []string
	rejected := 0
	for _, raw := range args {
		key, err := parse(raw)
		if err != nil {
			rejected++
			logRejected(logger, "rejected key", err, "kind", kind, "input", raw)
			continue
		}
		logger.Debug("accepted key", "kind", kind, "key", raw)
		accepted = append(accepted, checkedKey{Kind: kind, Key: key})
		lines = append(lines, raw)
	}

	if len(accepted) > 0 {
		if err := out.write(stdout, accepted, func() []string { return lines }); err != nil {
			logger.Error("writing output", "error", err)
			return exitUsage
		}
	}
	if rejected > 0 {
		return exitInvalid
	}
	return exitValid
}

// keyDocument is the document accepted on stdin. Decoding runs every
// field through its ref parser, and any other field is an error.
type keyDocument struct {
	ModuleID    ref.ModuleID    `json:"module_id,omitzero" yaml:"module_id,omitempty"`
	ServerID    ref.ServerID    `json:"server_id,omitzero" yaml:"server_id,omitempty"`
	ServiceID   ref.ServiceID   `json:"service_id,omitzero" yaml:"service_id,omitempty"`
	ClusterSeed ref.ClusterSeed `json:"cluster_seed,omitzero" yaml:"cluster_seed,omitempty"`
}

// lines renders the non-empty fields as "field=value" lines.
func (d keyDocument) lines() []string {
	fields := []struct {
		name  string
		value fmt.Stringer
		zero  bool
	}{
		{"module_id", d.ModuleID, d.ModuleID.IsZero()},
		{"server_id", d.ServerID, d.ServerID.IsZero()},
		{"service_id", d.ServiceID, d.ServiceID.IsZero()},
		{"cluster_seed", d.ClusterSeed, d.ClusterSeed.IsZero()},
	}
	var lines []string
	for _, field := range fields {
		if !field.zero {
			lines = append(lines, field.name+"="+field.value.String())
		}
	}
	return lines
}

func checkDocument(logger *slog.Logger, stdin io.Reader, stdout io.Writer, out encoder) int {
	data, err := io.ReadAll(stdin)
	if err != nil {
		logger.Error("reading stdin", "error", err)
		return exitUsage
	}
	if len(bytes.TrimSpace(data)) == 0 {
		logger.Error("empty key document on stdin")
		return exitUsage
	}

	var document keyDocument
	format, err := codec.DecodeDocument(data, &document)
	if err != nil {
		var parseErr *ref.ParseError
		if errors.As(err, &parseErr) {
			logRejected(logger, "rejected key document", err, "format", string(format))
			return exitInvalid
		}
		logger.Error("decoding key document", "format", string(format), "error", err)
		return exitUsage
	}
	logger.Debug("accepted key document", "format", string(format))

	if err := out.write(stdout, document, document.lines); err != nil {
		logger.Error("writing output", "error", err)
		return exitUsage
	}
	return exitValid
}

// logRejected logs a validation failure, adding the structured reason
// when err is a *ref.ParseError.
func logRejected(logger *slog.Logger, message string, err error, attrs ...any) {
	var parseErr *ref.ParseError
	if errors.As(err, &parseErr) {
		attrs = append(attrs, "reason", parseErr.Kind.String())
	}
	attrs = append(attrs, "error", err)
	logger.Warn(message, attrs...)
}
