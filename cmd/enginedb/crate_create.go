package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	enginedb "github.com/enginecrate/enginedb"
)

func newCrateCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-crate <name>",
		Short: "Create a root crate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := enginedb.Open(cmd.Context(), dbDir)
			if err != nil {
				return err
			}
			defer db.Close()

			crate, err := db.CreateRootCrate(context.Background(), nil, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created crate %d (%s)\n", crate.ID(), args[0])
			return nil
		},
	}
	return cmd
}
