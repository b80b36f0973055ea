// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package chomp trims line terminators from text captured from the password
// store process.
package chomp

import "strings"

// Chomp removes exactly one trailing line terminator from s.
// A "\r\n" pair counts as a single terminator.
func Chomp(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2]
	}
	return strings.TrimSuffix(s, "\n")
}
