// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain copies password store entries into and out of the OS
// keychain/credential store. Entries are keyed by their store path under the
// passstore service namespace.
//
// The package supports macOS Keychain (through the native security command
// when available), Windows Credential Manager, and the Secret Service or
// KWallet on Linux. Operations are thread-safe.
package keychain

import (
	"errors"
	"runtime"
	"strings"
	"sync"

	"github.com/99designs/keyring"
)

// Global keychain manager instance
var (
	globalManager *Manager
	globalError   error
	mu            sync.Mutex
)

// ErrNotFound is returned when no keychain item exists for an entry.
var ErrNotFound = errors.New("keychain: entry not found")

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "passstore"

// Manager provides centralized, thread-safe operations for the OS keychain.
type Manager struct {
	mu      sync.RWMutex
	backend keychainBackend
}

// keychainBackend defines the interface for keychain operations.
type keychainBackend interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}

// NewManager creates a new keychain manager with the OS keyring initialized.
func NewManager() (*Manager, error) {
	// Try native security backend first on macOS
	if runtime.GOOS == "darwin" {
		backend, err := newSecurityBackend()
		if err == nil {
			return &Manager{backend: backend}, nil
		}
	}

	ring, err := openRing()
	if err != nil {
		return nil, err
	}
	return &Manager{backend: &ringBackend{ring: ring}}, nil
}

// GetManager returns the global keychain manager instance.
// If not initialized, it will be created on first call.
// If initialization fails, it will retry on subsequent calls.
func GetManager() (*Manager, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalManager != nil {
		return globalManager, nil
	}

	globalManager, globalError = NewManager()
	if globalError != nil {
		return nil, globalError
	}
	return globalManager, nil
}

// allowedBackends lists the native backends for the current OS. The pass
// backend is never allowed: it is the store this package copies from.
func allowedBackends() []keyring.BackendType {
	switch runtime.GOOS {
	case "darwin":
		return []keyring.BackendType{keyring.KeychainBackend}
	case "windows":
		return []keyring.BackendType{keyring.WinCredBackend}
	case "linux", "freebsd", "openbsd":
		return []keyring.BackendType{keyring.SecretServiceBackend, keyring.KWalletBackend}
	default:
		return nil
	}
}

// openRing opens the OS keyring using native platform backends only.
func openRing() (keyring.Keyring, error) {
	backends := allowedBackends()
	if len(backends) == 0 {
		return nil, errors.New("secure storage not supported on " + runtime.GOOS)
	}

	cfg := keyring.Config{
		ServiceName:     ServiceName,
		AllowedBackends: backends,
		WinCredPrefix:   ServiceName,
	}
	return keyring.Open(cfg)
}

// SaveEntry stores secret under the entry path.
func (m *Manager) SaveEntry(path, secret string) error {
	if err := validate(path); err != nil {
		return err
	}
	if secret == "" {
		return errors.New("keychain: refusing to store an empty secret")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.backend.Set(path, secret)
}

// LoadEntry retrieves the secret stored under the entry path.
func (m *Manager) LoadEntry(path string) (string, error) {
	if err := validate(path); err != nil {
		return "", err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	secret, err := m.backend.Get(path)
	if err != nil {
		return "", err
	}
	if secret == "" {
		return "", ErrNotFound
	}
	return secret, nil
}

// RemoveEntry deletes the item for the entry path. Missing items are not an error.
func (m *Manager) RemoveEntry(path string) error {
	if err := validate(path); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.backend.Delete(path)
}

func validate(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("keychain: entry path is empty")
	}
	return nil
}

// ringBackend adapts a keyring.Keyring to keychainBackend.
type ringBackend struct {
	ring keyring.Keyring
}

func (r *ringBackend) Set(key, value string) error {
	return r.ring.Set(keyring.Item{
		Key:   key,
		Data:  []byte(value),
		Label: ServiceName + ": " + key,
	})
}

func (r *ringBackend) Get(key string) (string, error) {
	it, err := r.ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return string(it.Data), nil
}

func (r *ringBackend) Delete(key string) error {
	err := r.ring.Remove(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil
	}
	return err
}
