package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	enginedb "github.com/enginecrate/enginedb"
)

func newRemoveTrackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-track <id>",
		Short: "Remove a track by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid track id %q: %w", args[0], err)
			}

			db, _, err := enginedb.Open(cmd.Context(), dbDir)
			if err != nil {
				return err
			}
			defer db.Close()

			track, err := db.TrackByID(context.Background(), nil, id)
			if err != nil {
				return err
			}
			if err := track.Remove(context.Background(), nil); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed track %d\n", id)
			return nil
		},
	}
}

func newRemoveCrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-crate <id>",
		Short: "Remove a crate by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid crate id %q: %w", args[0], err)
			}

			db, _, err := enginedb.Open(cmd.Context(), dbDir)
			if err != nil {
				return err
			}
			defer db.Close()

			crate, err := db.CrateByID(context.Background(), nil, id)
			if err != nil {
				return err
			}
			if err := crate.Remove(context.Background(), nil); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed crate %d\n", id)
			return nil
		},
	}
}
