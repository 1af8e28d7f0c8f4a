package cli

import (
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestMain(m *testing.M) {
	// plain glyphs, no escape sequences, regardless of the test's terminal
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}
