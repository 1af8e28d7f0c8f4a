package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sortviz/internal/config"
	"github.com/matzehuels/sortviz/pkg/controller"
	"github.com/matzehuels/sortviz/pkg/errors"
	"github.com/matzehuels/sortviz/pkg/sorting"
)

// allAlgorithms selects every registered algorithm in `run`.
const allAlgorithms = "all"

func (c *CLI) runCommand() *cobra.Command {
	var flags arrayFlags
	cmd := &cobra.Command{
		Use:   "run <algorithm|all>",
		Short: "Sort a random array without the visualizer and verify the result",
		Long: `Run one algorithm, or all of them in key order, against the same random
array and check that every result is a sorted permutation of it.

Runs are paced like the visualizer; pass --no-delay to finish immediately.`,
		Example: `  sortviz run quick --seed 7
  sortviz run all --no-delay -n 1000`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeAlgorithms,
		RunE: func(cmd *cobra.Command, args []string) error {
			algs, err := selectAlgorithms(args[0])
			if err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}
			return runSorts(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, algs)
		},
	}
	addArrayFlags(cmd, &flags)
	return cmd
}

func completeAlgorithms(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return append(sorting.Names(), allAlgorithms), cobra.ShellCompDirectiveNoFileComp
}

func selectAlgorithms(arg string) ([]sorting.Algorithm, error) {
	if strings.EqualFold(arg, allAlgorithms) {
		return sorting.All(), nil
	}
	alg, err := sorting.Parse(arg)
	if err != nil {
		return nil, err
	}
	return []sorting.Algorithm{alg}, nil
}

// runSorts sorts the same base array with each algorithm in turn.
// Progress goes to errOut, results to out.
func runSorts(ctx context.Context, out, errOut io.Writer, cfg *config.Config, algs []sorting.Algorithm) error {
	logger := loggerFromContext(ctx)
	ctrl, err := newController(cfg, logger)
	if err != nil {
		return err
	}
	prog := newProgress(logger)
	base := ctrl.Base()

	results := make([]controller.RunResult, 0, len(algs))
	for _, alg := range algs {
		res, err := runOne(ctx, ctrl, errOut, alg)
		if err != nil {
			return err
		}
		if err := verifySorted(base, ctrl.Bars().Values()); err != nil {
			return fmt.Errorf("%s: %w", alg.Title(), err)
		}
		printSuccess(out, "%s %s", alg.Title(), StyleDim.Render(fmt.Sprintf("%d steps · %d pauses · %s",
			res.Emits, res.Pauses, res.Duration.Round(time.Microsecond))))
		results = append(results, res)
	}

	if len(results) > 1 {
		fmt.Fprintln(out, resultsTable(results))
	}
	prog.done(fmt.Sprintf("Sorted %d bars with %d algorithm(s)", len(base), len(results)))
	return nil
}

func runOne(ctx context.Context, ctrl *controller.Controller, w io.Writer, alg sorting.Algorithm) (controller.RunResult, error) {
	spin := newSpinner(ctx, w, "Running "+alg.Title())
	spin.Start()

	if _, err := ctrl.StartSort(ctx, string(alg)); err != nil {
		spin.StopWithError(errors.UserMessage(err))
		return controller.RunResult{}, err
	}
	ctrl.Wait()

	res, _ := ctrl.LastRun()
	if res.Err != nil {
		spin.StopWithError(res.Error)
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		return res, res.Err
	}
	spin.Stop()
	return res, nil
}

// verifySorted checks that got is base in ascending order.
func verifySorted(base, got []int) error {
	want := slices.Clone(base)
	slices.Sort(want)
	if len(got) != len(want) {
		return errors.New(errors.ErrCodeInternal, "result has %d bars, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			return errors.New(errors.ErrCodeInternal, "result differs from the sorted input at index %d: got %d, want %d",
				i, got[i], want[i])
		}
	}
	return nil
}

func resultsTable(results []controller.RunResult) string {
	rows := make([][]string, len(results))
	for i, r := range results {
		rows[i] = []string{
			strconv.Itoa(r.Algorithm.Key()),
			r.Algorithm.Title(),
			strconv.Itoa(r.Emits),
			strconv.Itoa(r.Pauses),
			r.Duration.Round(time.Microsecond).String(),
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers("Key", "Algorithm", "Steps", "Pauses", "Time").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader
			}
			if col >= 2 {
				return StyleNumber
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
