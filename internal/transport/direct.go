// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package transport

import (
	"strings"
	"unicode/utf8"

	apperrors "passstore/cli/internal/errors"
)

// Direct invokes the store program once per call with piped stdio.
type Direct struct {
	cfg Config
}

// NewDirect returns a Direct transport for cfg.
func NewDirect(cfg Config) *Direct {
	return &Direct{cfg: cfg}
}

// Args returns the argv (after the program name) for req.
func (d *Direct) Args(req Request) []string {
	args := make([]string, 0, len(d.cfg.BaseArgs)+1+len(req.Args))
	args = append(args, d.cfg.BaseArgs...)
	if strings.TrimSpace(req.Command) != "" {
		args = append(args, req.Command)
	}
	return append(args, req.Args...)
}

// Execute runs the program and returns its stdout unmodified.
func (d *Direct) Execute(req Request) ([]byte, error) {
	var stdin []byte
	if req.Input != nil {
		stdin = []byte(*req.Input + "\n")
	}
	out, err := run(d.cfg, d.Args(req), stdin)
	if err != nil {
		return nil, err
	}
	if err := out.checkStderr(); err != nil {
		return nil, err
	}
	if !utf8.Valid(out.stdout) {
		return nil, apperrors.New(apperrors.FromUtf8, "stdout is not valid UTF-8")
	}
	return out.stdout, nil
}
