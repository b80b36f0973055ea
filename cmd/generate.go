// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

const defaultGenerateLength = 24

var (
	generateLength  int
	generateSymbols bool
)

// generateCmd creates an entry with a password chosen by the store.
var generateCmd = &cobra.Command{
	Use:   "generate <path>",
	Short: "Create an entry with a generated password",
	Long: `The generate command asks the store to create path with a newly generated
password. The password is not printed; run "passstore show <path>" to read it.
Requires the jsonapi backend.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if generateLength <= 0 {
			return errors.New("--length must be positive")
		}
		err := withProgress("Generating "+args[0], func() error {
			return newStore(settings).Generate(args[0], generateSymbols, generateLength)
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Generated %s\n", args[0])
		return nil
	},
}

func init() {
	generateCmd.Flags().IntVarP(&generateLength, "length", "l", defaultGenerateLength, "Password length")
	generateCmd.Flags().BoolVarP(&generateSymbols, "symbols", "s", false, "Include symbols in the password")
	rootCmd.AddCommand(generateCmd)
}
