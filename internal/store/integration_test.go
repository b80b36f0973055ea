// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package store_test

import (
	"reflect"
	"testing"

	apperrors "passstore/cli/internal/errors"
	"passstore/cli/internal/store"
	"passstore/cli/internal/transport/transporttest"
)

func TestRoundTripAgainstFakeProcess(t *testing.T) {
	for _, backend := range []store.Backend{store.BackendJSONAPI, store.BackendCLI} {
		t.Run(string(backend), func(t *testing.T) {
			cfg, _ := transporttest.Config(t, "")
			s := store.New(backend, cfg)
			path := "test with spaces/pass with spaces"

			if err := s.Insert(path, "password"); err != nil {
				t.Fatalf("insert: %v", err)
			}
			got, err := s.Get(path)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got != "password" {
				t.Errorf("Get() = %q, want %q", got, "password")
			}
			if err := s.Remove(path); err != nil {
				t.Fatalf("remove: %v", err)
			}
			if _, err := s.Get(path); !apperrors.Is(err, apperrors.Pass) {
				t.Errorf("get after remove: err = %v, want pass error", err)
			}
		})
	}
}

func TestUsernamesAgainstFakeProcess(t *testing.T) {
	cfg, dir := transporttest.Config(t, "")
	transporttest.WriteEntry(t, dir, "test with spaces/alice", "a")
	transporttest.WriteEntry(t, dir, "test with spaces/bob", "b")
	transporttest.WriteEntry(t, dir, "other/carol", "c")

	got, err := store.New(store.BackendJSONAPI, cfg).GetUsernames("test with spaces")
	if err != nil {
		t.Fatalf("get usernames: %v", err)
	}
	if want := []string{"alice", "bob"}; !reflect.DeepEqual(got, want) {
		t.Errorf("GetUsernames() = %q, want %q", got, want)
	}
}

func TestGenerateAgainstFakeProcess(t *testing.T) {
	cfg, _ := transporttest.Config(t, "")
	s := store.New(store.BackendJSONAPI, cfg)
	if err := s.Generate("web/generated", false, 20); err != nil {
		t.Fatalf("generate: %v", err)
	}
	got, err := s.Get("web/generated")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 20 {
		t.Errorf("generated password length = %d, want 20", len(got))
	}
}

func TestFailureModesAgainstFakeProcess(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		op      func(s *store.Store) error
		wantErr apperrors.Kind
	}{
		{
			name:    "insert without echo succeeds",
			mode:    "no-echo",
			op:      func(s *store.Store) error { return s.Insert("web/x", "secret") },
			wantErr: "",
		},
		{
			name:    "insert with different echo",
			mode:    "wrong-echo",
			op:      func(s *store.Store) error { return s.Insert("web/x", "secret") },
			wantErr: apperrors.InvalidOutput,
		},
		{
			name:    "generate without username",
			mode:    "no-username",
			op:      func(s *store.Store) error { return s.Generate("web/x", true, 8) },
			wantErr: apperrors.InvalidOutput,
		},
		{
			name: "query object reply",
			mode: "object-query",
			op: func(s *store.Store) error {
				_, err := s.GetUsernames("web")
				return err
			},
			wantErr: apperrors.InvalidOutput,
		},
		{
			name: "query mixed reply",
			mode: "mixed-query",
			op: func(s *store.Store) error {
				_, err := s.GetUsernames("web")
				return err
			},
			wantErr: apperrors.InvalidOutput,
		},
		{
			name: "non JSON payload",
			mode: "not-json",
			op: func(s *store.Store) error {
				_, err := s.GetUsernames("web")
				return err
			},
			wantErr: apperrors.JSON,
		},
		{
			name:    "stderr wins over a valid reply",
			mode:    "stderr",
			op:      func(s *store.Store) error { return s.Insert("web/x", "secret") },
			wantErr: apperrors.Pass,
		},
		{
			name:    "remove missing entry",
			mode:    "",
			op:      func(s *store.Store) error { return s.Remove("web/missing") },
			wantErr: apperrors.Pass,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, _ := transporttest.Config(t, tt.mode)
			err := tt.op(store.New(store.BackendJSONAPI, cfg))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("err = %v, want nil", err)
				}
				return
			}
			if !apperrors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %s", err, tt.wantErr)
			}
		})
	}
}

func TestJunkPrefixIsSkipped(t *testing.T) {
	cfg, dir := transporttest.Config(t, "junk-prefix")
	transporttest.WriteEntry(t, dir, "web/example", "abc")
	got, err := store.New(store.BackendJSONAPI, cfg).Get("web/example")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "abc" {
		t.Errorf("Get() = %q, want %q", got, "abc")
	}
}

func TestPassMessageVerbatim(t *testing.T) {
	cfg, dir := transporttest.Config(t, "stderr")
	transporttest.WriteEntry(t, dir, "web/example", "abc")
	_, err := store.New(store.BackendJSONAPI, cfg).Get("web/example")
	if err == nil || err.Error() != "entry not found" {
		t.Errorf("err = %v, want %q", err, "entry not found")
	}
}
