package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/blueprint"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorAccent = lipgloss.Color("36")  // teal: headings, the primary hierarchy
	colorOK     = lipgloss.Color("35")  // green: accepted mutations
	colorCaveat = lipgloss.Color("220") // amber: detached hierarchies, repairs
	colorFault  = lipgloss.Color("167") // red: rejected mutations, load errors
	colorLocked = lipgloss.Color("173") // orange: locked ports
	colorText   = lipgloss.Color("255")
	colorLabel  = lipgloss.Color("245")
	colorMuted  = lipgloss.Color("240")
)

// =============================================================================
// Styles
// =============================================================================

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleDim     = lipgloss.NewStyle().Foreground(colorMuted)
	StyleValue   = lipgloss.NewStyle().Foreground(colorText)
	StyleSuccess = lipgloss.NewStyle().Foreground(colorOK)
	StyleWarning = lipgloss.NewStyle().Foreground(colorCaveat)
	StyleError   = lipgloss.NewStyle().Foreground(colorFault)
)

// Blueprint element styles, shared by tree, browse and validate.
var (
	stylePrimaryRoot   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleSecondaryRoot = lipgloss.NewStyle().Bold(true).Foreground(colorCaveat)
	stylePort          = lipgloss.NewStyle().Foreground(colorLabel)
	styleLockedPort    = lipgloss.NewStyle().Foreground(colorLocked)
	styleFreePort      = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	styleRepair        = lipgloss.NewStyle().Foreground(colorCaveat)
	styleSpinner       = lipgloss.NewStyle().Foreground(colorAccent)
)

const (
	markOK      = "✓"
	markFault   = "✗"
	markCaveat  = "!"
	markInfo    = "›"
	markFile    = "→"
	markRepair  = "~"
	markLocked  = "*"
	markDocking = " → "
)

// =============================================================================
// Blueprint Labels
// =============================================================================

// rootBadge marks hierarchy roots: the primary root, and detached roots
// that are not reached from it.
func rootBadge(s *blueprint.Structure) string {
	switch {
	case s.IsPrimaryRoot():
		return stylePrimaryRoot.Render("(primary)")
	case s.IsHierarchyRoot():
		return styleSecondaryRoot.Render("(detached)")
	}
	return ""
}

// portLabel renders a port by its short name, with a marker when locked.
func portLabel(p *blueprint.Port) string {
	if p.Locked() {
		return styleLockedPort.Render(shortPort(p) + markLocked)
	}
	return stylePort.Render(shortPort(p))
}

// statusLabel colours a mutation result by whether it was accepted.
func statusLabel(st blueprint.Status) string {
	if st.OK() {
		return StyleSuccess.Render(st.String())
	}
	return StyleError.Render(st.String())
}

// =============================================================================
// Status Output
// =============================================================================

var stdout io.Writer = os.Stdout

func printMarked(style lipgloss.Style, mark, msg string) {
	fmt.Fprintln(stdout, style.Render(mark)+" "+msg)
}

func printSuccess(format string, args ...any) {
	printMarked(StyleSuccess, markOK, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	printMarked(StyleError, markFault, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	printMarked(StyleWarning, markCaveat, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	printMarked(StyleDim, markInfo, fmt.Sprintf(format, args...))
}

// printRepair prints one load-time repair, indented under its file.
func printRepair(r string) {
	fmt.Fprintln(stdout, "  "+styleRepair.Render(markRepair)+" "+StyleDim.Render(r))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(markFile)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled setting.
func printKeyValue(key, value string) {
	label := lipgloss.NewStyle().Foreground(colorLabel).Width(12)
	fmt.Fprintln(stdout, label.Render(key)+" "+StyleValue.Render(value))
}
