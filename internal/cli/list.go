package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sortviz/internal/config"
	"github.com/matzehuels/sortviz/pkg/sorting"
)

func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the algorithms with their keys and pacing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			printAlgorithms(cmd.OutOrStdout(), cfg)
			return nil
		},
	}
}

// pauseFor is the wall time of one pause of alg under cfg's pacing.
func pauseFor(alg sorting.Algorithm, cfg *config.Config) time.Duration {
	d := time.Duration(float64(alg.PauseUnits()) * float64(cfg.Pacing.Unit.Std()) / cfg.Pacing.Speed)
	return d.Round(time.Microsecond)
}

func printAlgorithms(w io.Writer, cfg *config.Config) {
	algs := sorting.All()
	rows := make([][]string, len(algs))
	for i, a := range algs {
		stable := "no"
		if a.Stable() {
			stable = "yes"
		}
		rows[i] = []string{
			strconv.Itoa(a.Key()),
			string(a),
			a.Title(),
			strconv.Itoa(a.PauseUnits()),
			pauseFor(a, cfg).String(),
			stable,
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers("Key", "ID", "Algorithm", "Units", "Pause", "Stable").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleTableHeader
			case col == 0 || col == 3 || col == 4:
				return StyleNumber
			case col == 5 && rows[row][5] == "yes":
				return StyleSuccess
			}
			return lipgloss.NewStyle()
		})

	fmt.Fprintln(w, t.Render())
	printDetail(w, "pacing: %s per unit at %.2fx, key 0 randomizes", cfg.Pacing.Unit, cfg.Pacing.Speed)
}
