// Command mngbuild builds a minimum navigable graph from a .fbin point file
// and prints its construction diagnostics.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nnglabs/mng"
	"github.com/nnglabs/mng/internal/conv"
	"github.com/nnglabs/mng/point"
	"github.com/nnglabs/mng/walk"
)

var (
	seed         int64
	maxAttempts  int
	verbose      bool
	verify       bool
	verifySource int
)

var rootCmd = &cobra.Command{
	Use:   "mngbuild <points.fbin>",
	Short: "Build a minimum navigable graph over a set of points",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

func init() {
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "deterministic seed for edge selection")
	rootCmd.Flags().IntVar(&maxAttempts, "max-attempts", 32, "maximum exponential-search doublings before giving up")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug-level structured logging")
	rootCmd.Flags().BoolVar(&verify, "verify", false, "verify navigability from --verify-source after building")
	rootCmd.Flags().IntVar(&verifySource, "verify-source", 0, "source vertex to verify navigability from")
}

func runBuild(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := mng.NewTextLogger(level)

	points, err := point.LoadFbin(args[0])
	if err != nil {
		return fmt.Errorf("mngbuild: %w", err)
	}

	adj, diag, err := mng.Build(
		context.Background(),
		points,
		mng.WithLogger(logger),
		mng.WithSeed(seed),
		mng.WithMaxAttempts(maxAttempts),
	)
	if err != nil {
		return fmt.Errorf("mngbuild: build failed: %w", err)
	}

	fmt.Printf("points: %d\n", points.Len())
	fmt.Printf("build duration: %s\n", diag.BuildDuration)
	fmt.Printf("max out-degree: %d\n", diag.MaxOutDegree)
	fmt.Printf("avg out-degree: %.2f\n", diag.AvgOutDegree)
	fmt.Printf("budget doublings: %d\n", diag.BudgetDoublings)

	if verify {
		source, err := conv.IntToUint32(verifySource)
		if err != nil {
			return fmt.Errorf("mngbuild: %w", err)
		}
		if err := walk.VerifyNavigable(adj, points, source); err != nil {
			return fmt.Errorf("mngbuild: navigability check failed: %w", err)
		}
		fmt.Printf("navigable from vertex %d: yes\n", source)
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
