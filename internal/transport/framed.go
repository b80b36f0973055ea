// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package transport

import (
	"bytes"
	"encoding/json"
	"unicode/utf8"

	apperrors "passstore/cli/internal/errors"
	"passstore/cli/internal/frame"
	"passstore/cli/internal/logging"
)

// Framed talks to the store's JSON API listener. A fresh listener is
// spawned for every request.
type Framed struct {
	cfg Config
}

// NewFramed returns a Framed transport for cfg.
func NewFramed(cfg Config) *Framed {
	return &Framed{cfg: cfg}
}

// Args returns the argv (after the program name) that starts the listener.
func (f *Framed) Args() []string {
	args := make([]string, 0, len(f.cfg.BaseArgs)+len(f.cfg.ListenArgs))
	args = append(args, f.cfg.BaseArgs...)
	return append(args, f.cfg.ListenArgs...)
}

// Marshal serializes msg to compact JSON without HTML escaping.
func Marshal(msg map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(msg); err != nil {
		return nil, apperrors.Wrap(apperrors.JSON, "encode request", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Execute sends req.Message and returns the JSON payload of the reply,
// with the 4-byte length prefix removed.
func (f *Framed) Execute(req Request) ([]byte, error) {
	payload, err := Marshal(req.Message)
	if err != nil {
		return nil, err
	}
	msg, err := frame.Encode(payload)
	if err != nil {
		return nil, err
	}
	logging.L().Trace("jsonapi request", logging.L().Args("payload", logging.Mask(string(payload))))

	out, err := run(f.cfg, f.Args(), msg)
	if err != nil {
		return nil, err
	}
	if err := out.checkStderr(); err != nil {
		return nil, err
	}
	body, err := frame.Skip(out.stdout)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(body) {
		return nil, apperrors.New(apperrors.FromUtf8, "response payload is not valid UTF-8")
	}
	return body, nil
}
