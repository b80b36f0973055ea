// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// showCmd prints the password of one entry.
var showCmd = &cobra.Command{
	Use:     "show <path>",
	Aliases: []string{"get"},
	Short:   "Print the password stored at path",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var password string
		err := withProgress("Decrypting "+args[0], func() error {
			var err error
			password, err = newStore(settings).Get(args[0])
			return err
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), password)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
