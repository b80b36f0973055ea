// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package transport runs the password store program as a child process.
//
// Two transports are provided. Direct spawns the program once with a
// subcommand and positional arguments, optionally piping one line to its
// stdin. Framed spawns the program's JSON API listener and writes a single
// length-prefixed JSON request. Both capture stdout and stderr, wait for the
// process to exit, and treat any text on stderr as the store's verdict that
// the call failed, regardless of exit status.
//
// Every Execute call owns exactly one process. Nothing is pooled, reused or
// retried, and there is no timeout: a hung store program hangs the caller.
package transport

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"passstore/cli/internal/chomp"
	apperrors "passstore/cli/internal/errors"
	"passstore/cli/internal/logging"
)

// DefaultProgram is the store program resolved on PATH.
const DefaultProgram = "gopass"

// DefaultListenArgs start the program's persistent JSON API session.
var DefaultListenArgs = []string{"jsonapi", "listen"}

// Config identifies the program to run. It is injected into each
// transport so tests can point at a stub executable.
type Config struct {
	// Program is the executable name or path.
	Program string
	// BaseArgs are placed before every other argument.
	BaseArgs []string
	// ListenArgs select the listening mode used by Framed.
	ListenArgs []string
	// Env is appended to the inherited environment.
	Env []string
}

// DefaultConfig returns the configuration for gopass on PATH.
func DefaultConfig() Config {
	return Config{
		Program:    DefaultProgram,
		ListenArgs: append([]string(nil), DefaultListenArgs...),
	}
}

// Request describes one call. Direct reads Command, Args and Input;
// Framed reads Message.
type Request struct {
	// Command is the optional primary subcommand. Blank means none.
	Command string
	// Args are positional arguments, passed in order.
	Args []string
	// Input, when non-nil, is written to stdin followed by a newline.
	Input *string
	// Message is the structured request sent over the framed channel.
	Message map[string]any
}

// Line returns a pointer to s for use as Request.Input.
func Line(s string) *string { return &s }

// Transport executes a request and returns the raw payload produced by
// the store program.
type Transport interface {
	Execute(req Request) ([]byte, error)
}

// outcome holds the captured streams of one finished process.
type outcome struct {
	stdout []byte
	stderr []byte
}

// run spawns cfg.Program with args, writes stdin (if any) and closes it,
// then waits for exit. The process is always reaped before returning.
func run(cfg Config, args []string, stdin []byte) (outcome, error) {
	if strings.TrimSpace(cfg.Program) == "" {
		return outcome{}, apperrors.New(apperrors.IO, "no store program configured")
	}

	id := uuid.NewString()
	log := logging.L()
	start := time.Now()
	log.Debug("spawn", log.Args("call", id, "program", cfg.Program, "args", args, "stdin_bytes", len(stdin)))

	cmd := exec.Command(cfg.Program, args...)
	if len(cfg.Env) > 0 {
		cmd.Env = append(os.Environ(), cfg.Env...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	pipe, err := cmd.StdinPipe()
	if err != nil {
		return outcome{}, apperrors.Wrap(apperrors.IO, "open stdin pipe", err)
	}
	if err := cmd.Start(); err != nil {
		return outcome{}, apperrors.Wrap(apperrors.IO, fmt.Sprintf("spawn %s", cfg.Program), err)
	}

	var writeErr error
	if len(stdin) > 0 {
		_, writeErr = pipe.Write(stdin)
	}
	if err := pipe.Close(); err != nil && writeErr == nil && !stderrors.Is(err, os.ErrClosed) {
		writeErr = err
	}

	waitErr := cmd.Wait()
	log.Debug("exit", log.Args(
		"call", id,
		"code", cmd.ProcessState.ExitCode(),
		"stdout_bytes", stdout.Len(),
		"stderr_bytes", stderr.Len(),
		"elapsed", time.Since(start).Round(time.Millisecond).String(),
	))

	out := outcome{stdout: stdout.Bytes(), stderr: stderr.Bytes()}

	// A non-zero exit is not a failure on its own; stderr decides.
	var exitErr *exec.ExitError
	if waitErr != nil && !stderrors.As(waitErr, &exitErr) {
		return out, apperrors.Wrap(apperrors.IO, "wait for store process", waitErr)
	}
	if writeErr != nil && len(chomp.Chomp(string(out.stderr))) == 0 {
		return out, apperrors.Wrap(apperrors.IO, "write store process stdin", writeErr)
	}
	return out, nil
}

// checkStderr returns a Pass error when the store wrote a diagnostic.
func (o outcome) checkStderr() error {
	if !utf8.Valid(o.stderr) {
		return apperrors.New(apperrors.FromUtf8, "stderr is not valid UTF-8")
	}
	if msg := chomp.Chomp(string(o.stderr)); msg != "" {
		return apperrors.New(apperrors.Pass, msg)
	}
	return nil
}

var (
	_ Transport = (*Direct)(nil)
	_ Transport = (*Framed)(nil)
)
