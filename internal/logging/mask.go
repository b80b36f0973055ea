// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides the CLI's structured logger plus utilities for
// secure logging and error presentation. It includes functions for masking
// secrets in log lines and framed JSON payloads, and for formatting errors
// for display while leaving the password store's own diagnostics untouched.
package logging

import (
	"regexp"
)

var (
	rePassword     = regexp.MustCompile(`(?i)(password=)([^\s;]+)`)
	reToken        = regexp.MustCompile(`(?i)(token=|bearer\s+)([A-Za-z0-9._-]+)`)
	reJSONPassword = regexp.MustCompile(`(?i)("(?:password|passphrase|secret)"\s*:\s*")((?:[^"\\]|\\.)*)(")`) // {"password":"..."}
	reAPIKey       = regexp.MustCompile(`(?i)(apikey=|api_key=)([^\s;]+)`)
	reGPGOpts      = regexp.MustCompile(`(PASSWORD_STORE_GPG_OPTS=)([^\s;]+)`)
)

// Mask replaces sensitive values in the input string with "*".
// Empty JSON password fields are left as they are so a generate request
// (which sends "password":"") still reads correctly in debug output.
func Mask(s string) string {
	out := s
	out = rePassword.ReplaceAllString(out, "$1***")
	out = reToken.ReplaceAllString(out, "$1***")
	out = reJSONPassword.ReplaceAllStringFunc(out, func(m string) string {
		parts := reJSONPassword.FindStringSubmatch(m)
		if parts[2] == "" {
			return m
		}
		return parts[1] + "***" + parts[3]
	})
	out = reAPIKey.ReplaceAllString(out, "$1***")
	out = reGPGOpts.ReplaceAllString(out, "$1***")
	return out
}
