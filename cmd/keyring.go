// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"

	"passstore/cli/internal/keychain"

	"github.com/spf13/cobra"
)

// keyringCmd groups the commands that copy entries to and from the OS keychain.
var keyringCmd = &cobra.Command{
	Use:   "keyring",
	Short: "Copy entries between the password store and the OS keychain",
	Long: `The keyring commands mirror single entries into the OS keychain (macOS
Keychain, Windows Credential Manager, or the Secret Service on Linux) so other
tools can read them without running the password store.`,
}

var keyringPushCmd = &cobra.Command{
	Use:   "push <path>",
	Short: "Copy the password at path into the OS keychain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kc, err := openKeychain()
		if err != nil {
			return fmt.Errorf("secure storage unavailable: %w", err)
		}
		var password string
		err = withProgress("Decrypting "+args[0], func() error {
			var err error
			password, err = newStore(settings).Get(args[0])
			return err
		})
		if err != nil {
			return err
		}
		if err := kc.SaveEntry(args[0], password); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Copied %s to the OS keychain\n", args[0])
		return nil
	},
}

var keyringPullCmd = &cobra.Command{
	Use:   "pull <path>",
	Short: "Store the OS keychain item for path in the password store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kc, err := openKeychain()
		if err != nil {
			return fmt.Errorf("secure storage unavailable: %w", err)
		}
		password, err := kc.LoadEntry(args[0])
		if errors.Is(err, keychain.ErrNotFound) {
			return fmt.Errorf("no keychain item for %s", args[0])
		}
		if err != nil {
			return err
		}
		err = withProgress("Saving "+args[0], func() error {
			return newStore(settings).Insert(args[0], password)
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Saved %s from the OS keychain\n", args[0])
		return nil
	},
}

var keyringRmCmd = &cobra.Command{
	Use:   "rm <path>",
	Short: "Delete the OS keychain item for path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kc, err := openKeychain()
		if err != nil {
			return fmt.Errorf("secure storage unavailable: %w", err)
		}
		if err := kc.RemoveEntry(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Removed %s from the OS keychain\n", args[0])
		return nil
	},
}

func init() {
	keyringCmd.AddCommand(keyringPushCmd, keyringPullCmd, keyringRmCmd)
	rootCmd.AddCommand(keyringCmd)
}
