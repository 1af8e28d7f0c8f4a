package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sortviz/internal/config"
	"github.com/matzehuels/sortviz/pkg/controller"
	"github.com/matzehuels/sortviz/pkg/errors"
	"github.com/matzehuels/sortviz/pkg/sorting"
	"github.com/matzehuels/sortviz/pkg/visual"
)

const (
	speedStep = 1.5

	// defaultBarsHeight is used until the terminal reports its size.
	defaultBarsHeight = 20
)

// =============================================================================
// Command
// =============================================================================

func (c *CLI) tuiCommand() *cobra.Command {
	var flags arrayFlags
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Animate sorts in the terminal (default)",
		Long: `Open the interactive visualizer.

Keys: 0 new random array, 1-6 start a sort, r reset to the last array,
c cancel, +/- change speed, ? help, q quit.

The active config file is watched; pacing and UI changes apply live.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runTUI(cmd.Context(), func(cfg *config.Config) error {
				return flags.apply(cmd, cfg)
			})
		},
	}
	addArrayFlags(cmd, &flags)
	return cmd
}

// runTUI runs the visualizer until the user quits or ctx is done. override,
// when set, is applied to the initial config and to every reload.
func (c *CLI) runTUI(ctx context.Context, override func(*config.Config) error) error {
	load := func() (*config.Config, error) {
		cfg, err := c.loadConfig()
		if err != nil {
			return nil, err
		}
		if override != nil {
			if err := override(cfg); err != nil {
				return nil, err
			}
		}
		return cfg, nil
	}

	cfg, err := load()
	if err != nil {
		return err
	}

	logOut, err := openLogFile(c.logFile)
	if err != nil {
		return err
	}
	defer logOut.Close()
	logger := newLogger(logOut, c.Logger.GetLevel())

	ctrl, err := newController(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		ctrl.Cancel()
		ctrl.Wait()
	}()

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()

	var configs <-chan *config.Config
	if path, ok := c.loader.Resolve(c.configPath); ok {
		w := &config.Watcher{Path: path, Load: load, Logger: logger}
		if configs, err = w.Watch(watchCtx); err != nil {
			logger.Warn("config watch disabled", "path", path, "error", err)
		}
	}

	m := newModel(ctx, ctrl, cfg, c.stats, configs)
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("visualizer: %w", err)
	}
	return nil
}

// =============================================================================
// Keys
// =============================================================================

type keyMap struct {
	Randomize key.Binding
	Sorts     []key.Binding // in sorting.All order
	SortRange key.Binding   // short help entry for Sorts
	Reset     key.Binding
	Cancel    key.Binding
	Faster    key.Binding
	Slower    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	algs := sorting.All()
	k := keyMap{
		Randomize: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "randomize"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("c", "esc"),
			key.WithHelp("c/esc", "cancel"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "slower"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}

	digits := make([]string, len(algs))
	for i, alg := range algs {
		digits[i] = strconv.Itoa(alg.Key())
		k.Sorts = append(k.Sorts, key.NewBinding(
			key.WithKeys(digits[i]),
			key.WithHelp(digits[i], string(alg)),
		))
	}
	k.SortRange = key.NewBinding(
		key.WithKeys(digits...),
		key.WithHelp(digits[0]+"-"+digits[len(digits)-1], "sort"),
	)
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Randomize, k.SortRange, k.Cancel, k.Faster, k.Slower, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Randomize, k.Reset, k.Cancel},
		k.Sorts,
		{k.Faster, k.Slower},
		{k.Help, k.Quit},
	}
}

// =============================================================================
// Model
// =============================================================================

type tickMsg time.Time

type configMsg struct{ cfg *config.Config }

type model struct {
	ctx     context.Context
	ctrl    *controller.Controller
	stats   *sessionStats
	configs <-chan *config.Config

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	theme   theme
	refresh time.Duration
	legend  bool

	width  int
	height int
	status string
	err    error
}

func newModel(ctx context.Context, ctrl *controller.Controller, cfg *config.Config, stats *sessionStats, configs <-chan *config.Config) model {
	spin := spinner.New()
	spin.Spinner = spinner.MiniDot
	spin.Style = styleIconSpinner

	return model{
		ctx:     ctx,
		ctrl:    ctrl,
		stats:   stats,
		configs: configs,
		keys:    newKeyMap(),
		help:    help.New(),
		spinner: spin,
		theme:   themeFor(cfg.UI.Theme),
		refresh: cfg.UI.Refresh.Std(),
		legend:  cfg.UI.ShowLegend,
	}
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// waitForConfig delivers the next reloaded config, or nothing once the
// watcher has stopped.
func waitForConfig(ch <-chan *config.Config) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return configMsg{cfg: cfg}
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tick(m.refresh), m.spinner.Tick, waitForConfig(m.configs))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		// frames are pulled from the controller in View
		return m, tick(m.refresh)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case configMsg:
		m.applyConfig(msg.cfg)
		return m, waitForConfig(m.configs)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Cancel()
		m.ctrl.Wait()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Randomize):
		m.report(m.ctrl.RandomizeAndLoad(), "new random list generated")

	case key.Matches(msg, m.keys.Reset):
		m.report(m.ctrl.LoadFromBase(), "reset to the last random list")

	case key.Matches(msg, m.keys.Cancel):
		if m.ctrl.Cancel() {
			m.report(nil, "cancelling")
		}

	case key.Matches(msg, m.keys.Faster):
		m.setSpeed(m.ctrl.Speed() * speedStep)

	case key.Matches(msg, m.keys.Slower):
		m.setSpeed(m.ctrl.Speed() / speedStep)

	default:
		algs := sorting.All()
		for i, b := range m.keys.Sorts {
			if key.Matches(msg, b) {
				_, err := m.ctrl.StartSort(m.ctx, string(algs[i]))
				m.report(err, algs[i].Title()+" started")
				break
			}
		}
	}
	return m, nil
}

func (m *model) report(err error, ok string) {
	m.err = err
	if err != nil {
		m.status = ""
		return
	}
	m.status = ok
}

func (m *model) setSpeed(s float64) {
	s = min(max(s, errors.MinSpeed), errors.MaxSpeed)
	m.report(m.ctrl.SetSpeed(s), fmt.Sprintf("speed %.2fx", s))
}

// applyConfig takes over the live settings of a reloaded config. The array
// shape is fixed for the lifetime of the controller.
func (m *model) applyConfig(cfg *config.Config) {
	m.theme = themeFor(cfg.UI.Theme)
	m.refresh = cfg.UI.Refresh.Std()
	m.legend = cfg.UI.ShowLegend
	if err := m.ctrl.SetSpeed(cfg.Pacing.Speed); err != nil {
		m.report(err, "")
		return
	}
	if cfg.Array.Size != m.ctrl.Size() || cfg.Array.MaxValue != m.ctrl.MaxValue() {
		m.report(nil, "config reloaded; array changes apply after restart")
		return
	}
	m.report(nil, "config reloaded")
}

// =============================================================================
// View
// =============================================================================

func (m model) View() string {
	frame := m.ctrl.Frame()
	header := m.headerView(frame)
	footer := m.footerView()

	height := defaultBarsHeight
	if m.height > 0 {
		height = max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 1)
	}
	bars := renderBars(frame, m.ctrl.MaxValue(), m.width, height, m.theme)

	return lipgloss.JoinVertical(lipgloss.Left, header, bars, footer)
}

func (m model) headerView(frame visual.Frame) string {
	var state string
	last, ok := m.ctrl.LastRun()
	switch {
	case ok && last.Running:
		state = m.spinner.View() + " " + StyleValue.Render(last.Algorithm.Title())
	case ok && frame.Complete:
		state = StyleSuccess.Render(fmt.Sprintf("%s %s complete in %s",
			iconSuccess, last.Algorithm.Title(), last.Duration.Round(time.Millisecond)))
	case ok && last.Cancelled():
		state = StyleWarning.Render(fmt.Sprintf("%s %s cancelled", iconWarning, last.Algorithm.Title()))
	default:
		state = StyleDim.Render("idle")
	}

	details := []string{
		fmt.Sprintf("n %d", m.ctrl.Size()),
		fmt.Sprintf("speed %.2fx", m.ctrl.Speed()),
		m.stats.summary(),
	}
	if ok && !last.Running {
		details = append(details, fmt.Sprintf("%d steps", last.Emits))
	}
	return StyleTitle.Render(appName) + "  " + state + "  " +
		StyleDim.Render(strings.Join(details, " · "))
}

func (m model) footerView() string {
	var line string
	switch {
	case m.err != nil:
		line = StyleError.Render(iconError + " " + errors.UserMessage(m.err))
	case m.status != "":
		line = StyleDim.Render(iconInfo + " " + m.status)
	}
	if !m.legend {
		return line
	}
	return lipgloss.JoinVertical(lipgloss.Left, line, m.help.View(m.keys))
}
