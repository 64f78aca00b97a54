package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajsb85/boolmesh/boolean"
)

var opNames = map[string]boolean.Op{
	"union":                boolean.Union,
	"intersection":         boolean.Intersection,
	"difference":           boolean.Difference,
	"symmetric_difference": boolean.SymmetricDifference,
}

func newBooleanCmd() *cobra.Command {
	var inLeft, inRight, out, op string

	cmd := &cobra.Command{
		Use:   "boolean",
		Short: "corefine and classify two meshes, then extract one Boolean combination",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			zl := newLogger(cfg.LogLevel)

			boolOp, ok := opNames[op]
			if !ok {
				return fmt.Errorf("unknown --op %q (want one of: %s)", op, strings.Join(opKeys(), ", "))
			}

			left, err := readSoup(inLeft)
			if err != nil {
				return err
			}
			right, err := readSoup(inRight)
			if err != nil {
				return err
			}
			zl.Info().Int("left_faces", left.NumFaces()).Int("right_faces", right.NumFaces()).Msg("loaded inputs")

			mm, warn, err := boolean.Run(context.Background(), left, right, boolean.Options{
				Workers: cfg.Workers,
				Sink:    progressSink{zl},
			})
			if err != nil {
				return fmt.Errorf("boolean: %w", err)
			}
			if warn != 0 {
				zl.Warn().Str("warnings", warn.String()).Msg("classification produced warnings")
			}

			result := boolean.Extract(mm, boolOp)
			tags := boolean.ExtractFaceTags(mm, boolOp)
			zl.Info().Int("faces", result.NumFaces()).Str("op", op).Msg("extracted result")

			if err := writeSoup(out, result, tags); err != nil {
				return err
			}
			zl.Info().Str("path", out).Msg("wrote output")
			return nil
		},
	}

	cmd.Flags().StringVar(&inLeft, "in", "", "first input mesh (required)")
	cmd.Flags().StringVar(&inRight, "in2", "", "second input mesh (required)")
	cmd.Flags().StringVar(&out, "out", "", "output mesh path (required)")
	cmd.Flags().StringVar(&op, "op", "union", "one of: union, intersection, difference, symmetric_difference")
	cmd.MarkFlagRequired("in")
	cmd.MarkFlagRequired("in2")
	cmd.MarkFlagRequired("out")
	return cmd
}

func opKeys() []string {
	keys := make([]string, 0, len(opNames))
	for k := range opNames {
		keys = append(keys, k)
	}
	return keys
}
