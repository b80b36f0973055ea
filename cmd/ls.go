// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// lsCmd lists the usernames stored below a path, one per line.
var lsCmd = &cobra.Command{
	Use:     "ls <path>",
	Aliases: []string{"usernames"},
	Short:   "List the usernames of the entries matching path",
	Long: `The ls command asks the store for every entry matching path and prints the
last segment of each entry name. Entries named site/alice and site/bob are
listed as alice and bob. Requires the jsonapi backend.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var names []string
		err := withProgress("Searching "+args[0], func() error {
			var err error
			names, err = newStore(settings).GetUsernames(args[0])
			return err
		})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, n := range names {
			fmt.Fprintln(out, n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
}
