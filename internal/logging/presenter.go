// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"

	apperrors "passstore/cli/internal/errors"
)

// PresentError formats an error for user display with masking.
// Diagnostics reported by the store program are shown exactly as printed.
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if !apperrors.Is(err, apperrors.Pass) {
		msg = Mask(msg)
	}
	if context == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", context, msg)
}
