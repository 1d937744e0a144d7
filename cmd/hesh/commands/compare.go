package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/hesh/pkg/observability"
)

func newCompareCommand(flags *commonFlags, d deps) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <key>",
		Short: "Analyze one random corpus with every hash function",
		Long: `Generate a single corpus and analyze it with additive, xor, rotating-xor
and a seeded xxhash64 baseline, all using the same key.`,
		Example:       `  hesh compare 31 --count 5000 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, flags, observability.ModeCompare, d, func(ctx context.Context, env Env) error {
				return Compare(ctx, args[0], env)
			})
		},
	}
}
