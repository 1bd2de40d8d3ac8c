package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	enginedb "github.com/enginecrate/enginedb"
	"github.com/enginecrate/enginedb/internal/model"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <snapshot.json>",
		Short: "Create a track from a JSON track snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var snapshot model.TrackSnapshot
			if err := json.Unmarshal(data, &snapshot); err != nil {
				return fmt.Errorf("parse snapshot: %w", err)
			}

			db, _, err := enginedb.Open(cmd.Context(), dbDir)
			if err != nil {
				return err
			}
			defer db.Close()

			track, err := db.CreateTrack(context.Background(), nil, snapshot)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created track %d (%s)\n", track.ID(), snapshot.RelativePath)
			return nil
		},
	}
	return cmd
}
