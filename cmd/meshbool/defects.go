package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajsb85/boolmesh/defects"
)

func newDefectsCmd() *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "defects",
		Short: "find self-intersections in a single mesh",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			zl := newLogger(cfg.LogLevel)

			soup, err := readSoup(in)
			if err != nil {
				return err
			}

			results, err := defects.Check(context.Background(), soup, cfg.Workers)
			if err != nil {
				return err
			}

			if len(results) == 0 {
				zl.Info().Msg("no self-intersections found")
				return nil
			}
			for _, r := range results {
				zl.Warn().
					Int("face_a", int(r.FaceA)).
					Int("face_b", int(r.FaceB)).
					Int("points", len(r.Points)).
					Msg("self-intersection")
			}
			cmd.SilenceUsage = true
			return &defectsFoundError{count: len(results)}
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "input mesh (required)")
	cmd.MarkFlagRequired("in")
	return cmd
}

// defectsFoundError gives `defects` the non-zero exit code spec.md §6
// requires ("Exit code zero on success, non-zero on any reported
// failure") without cobra printing its own redundant usage/error text
// for what is a reported finding, not a usage mistake.
type defectsFoundError struct{ count int }

func (e *defectsFoundError) Error() string {
	if e.count == 1 {
		return "1 self-intersection found"
	}
	return fmt.Sprintf("%d self-intersections found", e.count)
}
