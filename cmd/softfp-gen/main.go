package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vk/beebsbench/internal/ctxlog"
	"github.com/vk/beebsbench/internal/softfp"
)

func main() {
	cmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the softfp-gen command reading vectors from stdin and
// echoing generated file names to stdout.
func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var (
		outDir  string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "softfp-gen [flags] TEST_TYPE",
		Short: "Generate RISC-V soft-float test programs from test vectors on stdin",
		Long: "Reads rows of \"lhs rhs expected flags\" hex words from stdin and writes\n" +
			"one assembly program per row. Known test types: " + strings.Join(softfp.TestTypeNames(), ", "),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
			ctx := ctxlog.WithLogger(cmd.Context(), logger)

			gen := &softfp.Generator{OutDir: outDir, Echo: stdout}
			_, err := gen.Generate(ctx, args[0], stdin)
			return err
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetContext(context.Background())
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory to write generated files into")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
	return cmd
}
