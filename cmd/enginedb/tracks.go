package main

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	enginedb "github.com/enginecrate/enginedb"
)

func newTracksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracks",
		Short: "List tracks in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, _, err := enginedb.Open(cmd.Context(), dbDir)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := context.Background()
			tracks, err := db.Tracks(ctx, nil)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"ID", "Relative Path", "Title", "Artist", "BPM"})

			for _, track := range tracks {
				snapshot, err := track.Snapshot(ctx, nil)
				if err != nil {
					return fmt.Errorf("read track %d: %w", track.ID(), err)
				}
				title, artist := "", ""
				if snapshot.Title != nil {
					title = *snapshot.Title
				}
				if snapshot.Artist != nil {
					artist = *snapshot.Artist
				}
				bpm := ""
				if snapshot.BPM != nil {
					bpm = fmt.Sprintf("%.1f", *snapshot.BPM)
				}
				t.AppendRow(table.Row{track.ID(), snapshot.RelativePath, title, artist, bpm})
			}

			t.Render()
			return nil
		},
	}
	return cmd
}
