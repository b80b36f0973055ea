// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package transporttest builds and configures a fake gopass executable for
// tests that need a real child process.
package transporttest

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"passstore/cli/internal/transport"
)

var (
	buildOnce sync.Once
	binPath   string
	errBuild  error
)

func build() {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		errBuild = fmt.Errorf("locate transporttest source")
		return
	}
	src := filepath.Join(filepath.Dir(file), "..", "testdata", "fake-gopass", "main.go")

	dir, err := os.MkdirTemp("", "fake-gopass-*")
	if err != nil {
		errBuild = fmt.Errorf("tmpdir: %w", err)
		return
	}
	binPath = filepath.Join(dir, "fake-gopass")
	if runtime.GOOS == "windows" {
		binPath += ".exe"
	}
	cmd := exec.Command("go", "build", "-o", binPath, src)
	cmd.Dir = filepath.Dir(src)
	if out, err := cmd.CombinedOutput(); err != nil {
		errBuild = fmt.Errorf("build fake-gopass: %w: %s", err, out)
		os.RemoveAll(dir)
	}
}

// Binary returns the path of the compiled fake, building it on first use.
func Binary(t testing.TB) string {
	t.Helper()
	buildOnce.Do(build)
	if errBuild != nil {
		t.Fatalf("fake binary build failed: %v", errBuild)
	}
	return binPath
}

// Config returns a transport config that runs the fake in the given mode
// against a fresh, empty store directory. The directory is returned too.
func Config(t testing.TB, mode string) (transport.Config, string) {
	t.Helper()
	store := t.TempDir()
	return ConfigWithStore(t, mode, store), store
}

// ConfigWithStore is like Config but reuses an existing store directory.
func ConfigWithStore(t testing.TB, mode, store string) transport.Config {
	t.Helper()
	cfg := transport.DefaultConfig()
	cfg.Program = Binary(t)
	cfg.Env = []string{
		"FAKE_GOPASS_STORE=" + store,
		"FAKE_GOPASS_MODE=" + mode,
	}
	return cfg
}

// WriteEntry seeds an entry file the way `insert -m` would store it.
func WriteEntry(t testing.TB, store, name, secret string) {
	t.Helper()
	path := filepath.Join(store, filepath.FromSlash(name)+".gpg")
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(secret+"\n"), 0o600); err != nil {
		t.Fatalf("write entry: %v", err)
	}
}
