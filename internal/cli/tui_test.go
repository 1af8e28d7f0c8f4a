package cli

import (
	"context"
	"io"
	"slices"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/sortviz/internal/config"
	"github.com/matzehuels/sortviz/pkg/controller"
	"github.com/matzehuels/sortviz/pkg/errors"
	"github.com/matzehuels/sortviz/pkg/source"
)

type deferredLauncher struct{ task func() }

func (d *deferredLauncher) launch(task func()) { d.task = task }

func newTestModel(t *testing.T, launch controller.Launcher) (model, *controller.Controller) {
	t.Helper()
	if launch == nil {
		launch = func(task func()) { task() }
	}
	ctrl, err := controller.New(controller.Options{
		Size:     24,
		MaxValue: 100,
		Unit:     -1,
		Source:   source.New(5),
		Launcher: launch,
		Logger:   log.New(io.Discard),
	})
	require.NoError(t, err)
	return newModel(context.Background(), ctrl, config.DefaultConfig(), &sessionStats{}, nil), ctrl
}

func press(t *testing.T, m model, keys string) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
	return next.(model), cmd
}

func TestKeyStartsAlgorithm(t *testing.T) {
	m, ctrl := newTestModel(t, nil)

	m, _ = press(t, m, "3")
	require.NoError(t, m.err)
	assert.Equal(t, "Bubble Sort started", m.status)

	last, ok := ctrl.LastRun()
	require.True(t, ok)
	assert.Equal(t, "bubble", string(last.Algorithm))
	assert.True(t, ctrl.Frame().Complete)
	assert.True(t, slices.IsSorted(ctrl.Bars().Values()))
}

func TestEveryDigitMapsToItsAlgorithm(t *testing.T) {
	m, ctrl := newTestModel(t, nil)
	for i, want := range []string{"selection", "insertion", "bubble", "merge", "quick", "heap"} {
		m, _ = press(t, m, string(rune('1'+i)))
		last, _ := ctrl.LastRun()
		assert.Equal(t, want, string(last.Algorithm))
	}
}

func TestRandomizeAndReset(t *testing.T) {
	m, ctrl := newTestModel(t, nil)
	before := ctrl.Base()

	m, _ = press(t, m, "0")
	assert.Equal(t, "new random list generated", m.status)
	assert.NotEqual(t, before, ctrl.Base())

	m, _ = press(t, m, "6")
	require.True(t, slices.IsSorted(ctrl.Bars().Values()))

	m, _ = press(t, m, "r")
	assert.Equal(t, ctrl.Base(), ctrl.Bars().Values())
	assert.False(t, ctrl.Frame().Complete)
}

func TestBusyAndCancel(t *testing.T) {
	d := &deferredLauncher{}
	m, ctrl := newTestModel(t, d.launch)

	m, _ = press(t, m, "5")
	require.True(t, ctrl.Running())

	m, _ = press(t, m, "4")
	require.Error(t, m.err)
	assert.Equal(t, errors.ErrCodeBusy, errors.GetCode(m.err))
	assert.Contains(t, m.footerView(), "a sort is already running")

	m, _ = press(t, m, "c")
	assert.NoError(t, m.err)
	assert.Equal(t, "cancelling", m.status)

	d.task()
	last, _ := ctrl.LastRun()
	assert.True(t, last.Cancelled())
	assert.Contains(t, m.headerView(ctrl.Frame()), "Quick Sort cancelled")
}

func TestSpeedKeys(t *testing.T) {
	m, ctrl := newTestModel(t, nil)

	m, _ = press(t, m, "+")
	assert.InDelta(t, 1.5, ctrl.Speed(), 1e-9)
	m, _ = press(t, m, "-")
	m, _ = press(t, m, "-")
	assert.InDelta(t, 1/1.5, ctrl.Speed(), 1e-9)

	for range 30 {
		m, _ = press(t, m, "+")
	}
	assert.Equal(t, float64(errors.MaxSpeed), ctrl.Speed())
	assert.Equal(t, "speed 64.00x", m.status)
}

func TestQuitAndHelp(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, _ = press(t, m, "?")
	assert.True(t, m.help.ShowAll)

	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestApplyConfig(t *testing.T) {
	m, ctrl := newTestModel(t, nil)

	cfg := config.DefaultConfig()
	cfg.Array.Size = 24
	cfg.Array.MaxValue = 100
	cfg.Pacing.Speed = 3
	cfg.UI.Theme = "mono"
	cfg.UI.ShowLegend = false
	cfg.UI.Refresh = config.Duration(50 * time.Millisecond)

	next, cmd := m.Update(configMsg{cfg: cfg})
	m = next.(model)
	assert.Nil(t, cmd, "no watcher to wait on")
	assert.Equal(t, 3.0, ctrl.Speed())
	assert.Equal(t, "mono", m.theme.name)
	assert.False(t, m.legend)
	assert.Equal(t, 50*time.Millisecond, m.refresh)
	assert.Equal(t, "config reloaded", m.status)

	cfg.Array.Size = 99
	next, _ = m.Update(configMsg{cfg: cfg})
	assert.Contains(t, next.(model).status, "after restart")
}

func TestViewFillsWindow(t *testing.T) {
	m, _ := newTestModel(t, nil)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(model)
	view := m.View()

	assert.Equal(t, 24, lipgloss.Height(view))
	assert.Contains(t, view, "sortviz")
	assert.Contains(t, view, "idle")
	assert.Contains(t, view, "randomize")

	m, _ = press(t, m, "2")
	assert.Contains(t, m.View(), "Insertion Sort complete")
}

func TestWaitForConfig(t *testing.T) {
	assert.Nil(t, waitForConfig(nil))

	ch := make(chan *config.Config, 1)
	cfg := config.DefaultConfig()
	ch <- cfg
	assert.Equal(t, configMsg{cfg: cfg}, waitForConfig(ch)())

	close(ch)
	assert.Nil(t, waitForConfig(ch)())
}
