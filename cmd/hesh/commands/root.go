// Package commands implements the hesh CLI commands.
package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/hesh/pkg/corpus"
	"github.com/Sumatoshi-tech/hesh/pkg/observability"
)

// deps are the collaborators a command can have replaced in tests.
type deps struct {
	generate corpusGenerator
}

func defaultDeps() deps {
	return deps{generate: corpus.Generate}
}

// NewRootCommand creates the hesh root command with its subcommands.
func NewRootCommand() *cobra.Command {
	return newRootCommandWithDeps(defaultDeps())
}

func newRootCommandWithDeps(d deps) *cobra.Command {
	flags := &commonFlags{}

	var testMode bool

	root := &cobra.Command{
		Use:   "hesh [flags] <hash_id> <key> <text_or_flag>",
		Short: "A suite of keyed toy hash functions",
		Long: `hesh hashes text with one of three keyed hash functions:

  0  additive      sum of bytes times key
  1  xor           xor of bytes, key applied once per byte
  2  rotating-xor  xor-shift recurrence driven by the key

Pass -t as <text_or_flag> to also hash a random corpus and report how
the hash values collide.`,
		Example: `  hesh 2 7 "hello world"
  hesh 0 3 -t --count 500
  hesh 1 5 -t --chart html --chart-output xor.html`,
		Args:          cobra.RangeArgs(positionalArgCount-1, positionalArgCount),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, positional []string) error {
			args, err := ParseArgs(positional, testMode)
			if err != nil {
				return err
			}

			return execute(cmd, flags, observability.ModeHash, d, func(ctx context.Context, env Env) error {
				return Run(ctx, args, env)
			})
		},
	}

	flags.register(root)
	root.Flags().BoolVarP(&testMode, flagTest, "t", false, "hash \"-t\" and then test the hash over a random corpus")

	root.AddCommand(newCompareCommand(flags, d))
	root.AddCommand(newVersionCommand())

	return root
}

// execute resolves configuration, sets up observability and runs fn. Metrics
// are flushed even when fn fails.
func execute(
	cmd *cobra.Command, flags *commonFlags, mode observability.AppMode, d deps,
	fn func(context.Context, Env) error,
) (err error) {
	cfg, err := flags.resolveConfig(cmd)
	if err != nil {
		return err
	}

	env, shutdown, err := newEnv(cmd, cfg, mode, d.generate)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	defer func() {
		err = errors.Join(err, shutdown(context.WithoutCancel(ctx)))
	}()

	return fn(ctx, env)
}
