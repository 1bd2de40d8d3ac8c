package main

import (
	"context"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	enginedb "github.com/enginecrate/enginedb"
)

func newCratesCmd() *cobra.Command {
	var rootsOnly bool

	cmd := &cobra.Command{
		Use:   "crates",
		Short: "List crates in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, _, err := enginedb.Open(cmd.Context(), dbDir)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := context.Background()
			var crates []*enginedb.Crate
			if rootsOnly {
				crates, err = db.RootCrates(ctx, nil)
			} else {
				crates, err = db.Crates(ctx, nil)
			}
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"ID", "Name"})
			for _, crate := range crates {
				name, err := crate.Name(ctx, nil)
				if err != nil {
					return err
				}
				t.AppendRow(table.Row{crate.ID(), name})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&rootsOnly, "roots-only", false, "Only list root crates")
	return cmd
}
