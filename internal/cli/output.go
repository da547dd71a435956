package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/clangoi/judotimer/internal/constants"
	"github.com/clangoi/judotimer/internal/domain"
)

// phaseColumnWidth fits the longest phase label ("Preparing", "Set Rest").
const phaseColumnWidth = 9

//nolint:gochecknoglobals // Shared styles
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	clockStyle   = lipgloss.NewStyle().Bold(true)

	phaseStyles = map[constants.Phase]lipgloss.Style{
		constants.PhaseIdle:      lipgloss.NewStyle().Faint(true),
		constants.PhasePreparing: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		constants.PhaseWork:      lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		constants.PhaseRest:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		constants.PhaseSetRest:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		constants.PhaseRunning:   lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
		constants.PhaseCompleted: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
	}
)

// titleCase turns "set_rest" into "Set Rest".
func titleCase(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}

func phaseLabel(p constants.Phase) string {
	return titleCase(p.String())
}

func modeLabel(m constants.TimerMode) string {
	return titleCase(m.String())
}

// styledPhase renders the phase label padded to a fixed column.
func styledPhase(p constants.Phase) string {
	label := runewidth.FillRight(phaseLabel(p), phaseColumnWidth)
	if style, ok := phaseStyles[p]; ok {
		return style.Render(label)
	}
	return label
}

// formatClock renders seconds as mm:ss, or h:mm:ss from one hour up.
func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h, m, s := seconds/3600, (seconds%3600)/60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// statusLine is the one-line view of a timer state.
func statusLine(st domain.RuntimeState) string {
	var b strings.Builder
	b.WriteString(styledPhase(st.Phase))
	b.WriteString(" ")

	switch st.Mode {
	case constants.ModeStopwatch:
		b.WriteString(clockStyle.Render(formatClock(st.ElapsedSeconds)))
	default:
		b.WriteString(clockStyle.Render(formatClock(st.TimeLeftSeconds)))
	}

	if st.Mode == constants.ModeTabata {
		tabata := st.Tabata
		fmt.Fprintf(&b, "  cycle %d/%d  set %d/%d", st.CurrentCycle, tabata.CyclesPerSet, st.CurrentSet, tabata.TotalSets)
		if entry, ok := st.CurrentEntry(); ok && st.IsSequenceMode {
			fmt.Fprintf(&b, "  %s", dimStyle.Render(fmt.Sprintf("%s (%d/%d)", entry.Name, st.CurrentSequenceIndex+1, len(st.Sequence))))
		}
	}

	if !st.IsRunning && st.Phase.IsActive() {
		b.WriteString("  ")
		b.WriteString(warnStyle.Render("paused"))
	}
	return b.String()
}

// checkmark is the success marker used in command confirmations.
func checkmark() string {
	return successStyle.Render("✓")
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// isTerminalWriter reports whether w is a terminal, which allows redrawing
// the status line in place.
func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
