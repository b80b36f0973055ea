// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"passstore/cli/internal/chomp"
	"passstore/cli/internal/terminal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// insertCmd stores a password read from the terminal or from stdin.
var insertCmd = &cobra.Command{
	Use:   "insert <path>",
	Short: "Store a password at path",
	Long: `The insert command stores a password at path. On a terminal the password is
read twice with masked input. Otherwise the first line of stdin is used, so
the command can be scripted:

  printf '%s\n' "$SECRET" | passstore insert web/example`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword(cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}
		err = withProgress("Saving "+args[0], func() error {
			return newStore(settings).Insert(args[0], password)
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Saved %s\n", args[0])
		return nil
	},
}

// readPassword prompts with masked input when in is a terminal and reads
// the first line of in otherwise.
func readPassword(in io.Reader, path string) (string, error) {
	if f, ok := in.(*os.File); ok && terminal.IsInteractive(f) {
		first, err := promptMasked(fmt.Sprintf("Password for %s", path))
		if err != nil {
			return "", err
		}
		second, err := promptMasked("Retype password")
		if err != nil {
			return "", err
		}
		if first != second {
			return "", errors.New("passwords do not match")
		}
		if first == "" {
			return "", errors.New("password is required")
		}
		return first, nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	line = chomp.Chomp(line)
	if line == "" {
		return "", errors.New("password is required on the first line of stdin")
	}
	return line, nil
}

func promptMasked(prompt string) (string, error) {
	value, err := pterm.DefaultInteractiveTextInput.WithMask("*").Show(prompt)
	if err != nil {
		return "", err
	}
	// Remove the prompt and masked echo from the terminal.
	terminal.ClearPreviousLines(len(prompt) + len(": ") + len(value))
	return strings.TrimRight(value, "\r\n"), nil
}

func init() {
	rootCmd.AddCommand(insertCmd)
}
