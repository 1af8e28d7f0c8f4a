package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sortviz/internal/config"
)

func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
		Long: `Settings come from, lowest priority first: built-in defaults, config files,
SORTVIZ_* environment variables (e.g. SORTVIZ_PACING_SPEED=2) and flags.`,
	}
	cmd.AddCommand(c.configPathCommand())
	cmd.AddCommand(c.configShowCommand())
	return cmd
}

func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show which config file is used and where files are searched",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.printConfigPaths(cmd.OutOrStdout())
			return nil
		},
	}
}

func (c *CLI) printConfigPaths(w io.Writer) {
	if path, ok := c.loader.Resolve(c.configPath); ok {
		printSuccess(w, "Using config file")
		printFile(w, path)
	} else {
		printWarning(w, "No config file found, using defaults")
	}
	if c.configPath != "" {
		return
	}
	printInfo(w, "Search paths (highest priority first)")
	for _, p := range c.loader.Paths() {
		printDetail(w, "%s", p)
	}
}

func (c *CLI) configShowCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			f, err := c.showFormat(format)
			if err != nil {
				return err
			}
			if err := config.Encode(cmd.OutOrStdout(), f, cfg); err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "output format: toml or yaml (default: that of the active file)")
	return cmd
}

// showFormat picks the output format: the flag, else the active file's
// format, else TOML.
func (c *CLI) showFormat(flag string) (config.Format, error) {
	switch config.Format(flag) {
	case config.FormatTOML, config.FormatYAML:
		return config.Format(flag), nil
	case "":
	default:
		return "", fmt.Errorf("invalid format %q (must be toml or yaml)", flag)
	}
	if path, ok := c.loader.Resolve(c.configPath); ok {
		if f, err := config.FormatFor(path); err == nil {
			return f, nil
		}
	}
	return config.FormatTOML, nil
}
