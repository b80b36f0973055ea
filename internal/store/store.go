// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package store exposes the password store operations: get, list usernames,
// generate, insert and remove. Each operation validates the entry path, builds
// a request for the selected transport, and checks the shape of the reply.
//
// Two backends are supported. The jsonapi backend (default) talks to the
// store's JSON API listener for everything except removal. The cli backend
// uses one-shot command invocations and offers get, insert and remove only.
// Removal always goes through the command line, since the listener has no
// delete request.
package store

import (
	"fmt"
	"strings"

	"passstore/cli/internal/chomp"
	apperrors "passstore/cli/internal/errors"
	"passstore/cli/internal/jsonvalue"
	"passstore/cli/internal/logging"
	"passstore/cli/internal/transport"
)

// Backend selects how operations reach the store program.
type Backend string

const (
	// BackendJSONAPI uses the framed JSON listener.
	BackendJSONAPI Backend = "jsonapi"
	// BackendCLI uses one-shot command invocations.
	BackendCLI Backend = "cli"
)

// ParseBackend validates a backend name. Blank selects BackendJSONAPI.
func ParseBackend(raw string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(raw))) {
	case "", BackendJSONAPI:
		return BackendJSONAPI, nil
	case BackendCLI:
		return BackendCLI, nil
	default:
		return "", fmt.Errorf("unknown backend %q (want %q or %q)", raw, BackendJSONAPI, BackendCLI)
	}
}

// Store runs operations against one store program.
type Store struct {
	backend Backend
	direct  transport.Transport
	session transport.Transport
}

// New returns a Store that spawns the program described by cfg.
func New(backend Backend, cfg transport.Config) *Store {
	return NewWithTransports(backend, transport.NewDirect(cfg), transport.NewFramed(cfg))
}

// NewWithTransports returns a Store over the given transports. direct
// serves one-shot invocations and session serves framed requests.
func NewWithTransports(backend Backend, direct, session transport.Transport) *Store {
	if backend == "" {
		backend = BackendJSONAPI
	}
	return &Store{backend: backend, direct: direct, session: session}
}

// Backend reports the selected backend.
func (s *Store) Backend() Backend { return s.backend }

// Get returns the password stored at path.
func (s *Store) Get(path string) (string, error) {
	if err := validatePath(path); err != nil {
		return "", err
	}
	logging.L().Debug("get", logging.L().Args("path", path, "backend", s.backend))

	if s.backend == BackendCLI {
		out, err := s.direct.Execute(transport.Request{Args: []string{path}})
		if err != nil {
			return "", err
		}
		return chomp.Chomp(string(out)), nil
	}

	resp, err := s.query(map[string]any{
		"type":  "getLogin",
		"entry": path,
	})
	if err != nil {
		return "", err
	}
	password, ok := resp.Get("password").AsString()
	if !ok {
		return "", invalidOutput("getLogin reply has no string password field")
	}
	return password, nil
}

// GetUsernames returns the usernames of the entries matching path, in the
// order the store reports them. The username is the last path segment.
func (s *Store) GetUsernames(path string) ([]string, error) {
	if err := validatePath(path); err != nil {
		return nil, err
	}
	if s.backend == BackendCLI {
		return nil, unsupported("listing usernames")
	}
	logging.L().Debug("get usernames", logging.L().Args("path", path))

	resp, err := s.query(map[string]any{
		"type":  "query",
		"query": path,
	})
	if err != nil {
		return nil, err
	}
	entries, ok := resp.AsArray()
	if !ok {
		return nil, invalidOutput(fmt.Sprintf("query reply is %s, want array", resp.Kind()))
	}
	usernames := make([]string, 0, len(entries))
	for i, entry := range entries {
		name, ok := entry.AsString()
		if !ok {
			return nil, invalidOutput(fmt.Sprintf("query reply element %d is %s, want string", i, entry.Kind()))
		}
		usernames = append(usernames, username(name))
	}
	return usernames, nil
}

// Generate asks the store to create path with a generated password.
func (s *Store) Generate(path string, useSymbols bool, length int) error {
	if err := validatePath(path); err != nil {
		return err
	}
	if s.backend == BackendCLI {
		return unsupported("generating passwords")
	}
	logging.L().Debug("generate", logging.L().Args("path", path, "length", length, "symbols", useSymbols))

	resp, err := s.query(map[string]any{
		"type":        "create",
		"entry_name":  path,
		"password":    "",
		"generate":    true,
		"length":      length,
		"use_symbols": useSymbols,
	})
	if err != nil {
		return err
	}
	if _, ok := resp.Get("username").AsString(); !ok {
		return invalidOutput("create reply has no string username field")
	}
	return nil
}

// Insert stores password at path.
//
// On the jsonapi backend the listener may echo the stored password. An echo
// that differs from password is an error; a missing echo is accepted.
func (s *Store) Insert(path, password string) error {
	if err := validatePath(path); err != nil {
		return err
	}
	logging.L().Debug("insert", logging.L().Args("path", path, "backend", s.backend))

	if s.backend == BackendCLI {
		_, err := s.direct.Execute(transport.Request{
			Command: "insert",
			Args:    []string{"-m", path},
			Input:   transport.Line(password),
		})
		return err
	}

	resp, err := s.query(map[string]any{
		"type":       "create",
		"entry_name": path,
		"password":   password,
	})
	if err != nil {
		return err
	}
	if stored, ok := resp.Get("password").AsString(); ok && stored != password {
		return invalidOutput("create reply echoed a different password")
	}
	return nil
}

// Remove deletes the entry at path.
func (s *Store) Remove(path string) error {
	if err := validatePath(path); err != nil {
		return err
	}
	logging.L().Debug("remove", logging.L().Args("path", path))

	_, err := s.direct.Execute(transport.Request{
		Command: "rm",
		Args:    []string{"-f", path},
	})
	return err
}

// query sends msg over the framed session and parses the reply.
func (s *Store) query(msg map[string]any) (jsonvalue.Value, error) {
	out, err := s.session.Execute(transport.Request{Message: msg})
	if err != nil {
		return jsonvalue.Value{}, err
	}
	return jsonvalue.Parse(out)
}

func validatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return apperrors.New(apperrors.InvalidInput, "entry path is empty")
	}
	return nil
}

func username(entry string) string {
	if i := strings.LastIndex(entry, "/"); i >= 0 {
		return entry[i+1:]
	}
	return entry
}

func invalidOutput(msg string) error {
	return apperrors.New(apperrors.InvalidOutput, msg)
}

func unsupported(what string) error {
	return apperrors.New(apperrors.Unsupported, what+" requires the jsonapi backend")
}
