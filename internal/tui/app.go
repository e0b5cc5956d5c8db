// Package tui provides the interactive Bubble Tea dashboard for chatwrap.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/chatwrap/internal/config"
	"github.com/theirongolddev/chatwrap/internal/dashboard"
	"github.com/theirongolddev/chatwrap/internal/export"
	"github.com/theirongolddev/chatwrap/internal/theme"
	"github.com/theirongolddev/chatwrap/internal/tui/components"
)

// DataLoadedMsg is sent when the first dashboard build finishes.
type DataLoadedMsg struct {
	View     dashboard.View
	LoadTime time.Duration
}

// RefreshDataMsg is sent when a background rebuild completes.
type RefreshDataMsg struct {
	View     dashboard.View
	LoadTime time.Duration
}

// ExportDoneMsg reports the result of writing a PNG export.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// Options configure a new App.
type Options struct {
	Source    dashboard.Source
	Dashboard dashboard.Options
	Config    config.Config
	// ExportDir receives PNG exports; empty means the working directory.
	ExportDir string
}

// App is the root Bubble Tea model.
type App struct {
	src       dashboard.Source
	opts      dashboard.Options
	cfg       config.Config
	exportDir string
	now       func() time.Time

	// Data
	view     dashboard.View
	loaded   bool
	loadTime time.Duration

	// Auto-refresh state
	autoRefresh     bool
	refreshInterval time.Duration
	lastRefresh     time.Time
	refreshing      bool

	// Transient status line message (export results)
	message   string
	messageAt time.Time
	exporting bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *setupValues // heap-allocated so the form's bindings survive model copies
	needSetup bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	minContentHeight = 5

	loadTimeout     = time.Minute
	messageLifetime = 5 * time.Second
)

// NewApp creates a new TUI app model.
func NewApp(o Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	refreshInterval := time.Duration(o.Config.TUI.RefreshIntervalSec) * time.Second
	if refreshInterval < 10*time.Second {
		refreshInterval = 30 * time.Second // minimum 10s, default 30s
	}

	now := o.Dashboard.Now
	if now == nil {
		now = time.Now
	}

	return App{
		src:             o.Source,
		opts:            o.Dashboard,
		cfg:             o.Config,
		exportDir:       o.ExportDir,
		now:             now,
		needSetup:       !config.Exists(),
		autoRefresh:     o.Config.TUI.AutoRefresh,
		refreshInterval: refreshInterval,
		spinner:         sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.src, a.opts),
		a.spinner.Tick,
		tickCmd(),
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.setupForm != nil {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case DataLoadedMsg:
		a.view = msg.View
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.lastRefresh = a.now()

		if a.needSetup {
			vals := setupValuesFrom(a.cfg)
			a.setupVals = &vals
			a.setupForm = newSetupForm(a.view.Conversations, a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case RefreshDataMsg:
		a.refreshing = false
		a.lastRefresh = a.now()
		a.view = msg.View
		a.loadTime = msg.LoadTime
		return a, nil

	case ExportDoneMsg:
		a.exporting = false
		if msg.Err != nil {
			a.setMessage("Export failed: " + msg.Err.Error())
		} else {
			a.setMessage("Saved " + filepath.Base(msg.Path))
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if a.message != "" && a.now().Sub(a.messageAt) >= messageLifetime {
			a.message = ""
		}
		if a.loaded && a.autoRefresh && !a.refreshing && a.now().Sub(a.lastRefresh) >= a.refreshInterval {
			a.refreshing = true
			cmds = append(cmds, refreshDataCmd(a.src, a.opts))
		}
		return a, tea.Batch(cmds...)
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}

	// First-run setup wizard intercepts all keys
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "r":
		if a.refreshing {
			return a, nil
		}
		a.refreshing = true
		return a, refreshDataCmd(a.src, a.opts)
	case "R":
		a.autoRefresh = !a.autoRefresh
		// Persist best-effort; a failed save only loses the preference.
		a.cfg.TUI.AutoRefresh = a.autoRefresh
		_ = config.Save(a.cfg)
		if a.autoRefresh {
			a.setMessage("Auto-refresh on")
		} else {
			a.setMessage("Auto-refresh off")
		}
		return a, nil
	case "e":
		if a.exporting {
			return a, nil
		}
		a.exporting = true
		return a, exportCmd(a.view, a.exportTheme(), a.exportDir, a.opts.Loc, a.cfg.ExportLocation(), a.now())
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	if r := []rune(key); len(r) == 1 {
		if idx := components.TabIdxByKey(r[0]); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		cfg, err := a.saveSetupConfig()
		a.needSetup = false
		a.setupForm = nil
		if err != nil {
			a.setMessage("Config not saved: " + err.Error())
			return a, nil
		}
		a.cfg = cfg
		a.opts.Loc = cfg.Location()
		a.setMessage("Saved " + config.ConfigPath())
		a.refreshing = true
		return a, refreshDataCmd(a.src, a.opts)
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

func (a *App) setMessage(s string) {
	a.message = s
	a.messageAt = a.now()
}

// exportTheme returns the configured web theme, Dawn when unknown.
func (a App) exportTheme() theme.Theme {
	if t, ok := theme.Lookup(a.cfg.Appearance.WebTheme); ok {
		return t
	}
	return theme.Dawn
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  chatwrap needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ chatwrap"))
	b.WriteString(subtitleStyle.Render(" · Claude 年度总结"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Reading artifacts..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Blue).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		name     string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"o c h t", "Jump to tab"},
			{"← →", "Previous / Next tab"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"r", "Refresh data"},
			{"R", "Toggle auto-refresh"},
			{"e", "Export PNG"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(sec.name))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar plus a year pill
	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pillAccent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	pill := pillStyle.Render(" Claude 年度总结 · ") +
		pillAccent.Render(fmt.Sprintf("%d", a.view.Year)) +
		pillStyle.Render(" │ ") +
		pillAccent.Render(fmt.Sprintf("%d", a.view.Conversations)) +
		pillStyle.Render(" conversations ")
	if a.autoRefresh {
		pill += pillStyle.Render("│ ") + pillAccent.Render("auto") + pillStyle.Render(" ")
	}
	header := components.RenderTabBar(a.activeTab, w) +
		"\n" + lipgloss.NewStyle().Background(t.Surface).Width(w).Render(pill)

	// 2. Status bar
	dataAge := fmt.Sprintf("%.1fs", a.loadTime.Seconds())
	statusBar := components.RenderStatusBar(w, dataAge, a.message, a.refreshing)

	// 3. Content zone
	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case 0:
		content = a.renderOverviewTab(cw)
	case 1:
		content = a.renderCalendarTab(cw)
	case 2:
		content = a.renderRhythmTab(cw)
	case 3:
		content = a.renderTopicsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Commands ───────────────────────────────────────────────────

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func buildView(src dashboard.Source, opts dashboard.Options) (dashboard.View, time.Duration) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	v := dashboard.Build(ctx, src, opts)
	return v, time.Since(start)
}

// loadDataCmd builds the dashboard for the first time.
func loadDataCmd(src dashboard.Source, opts dashboard.Options) tea.Cmd {
	return func() tea.Msg {
		v, d := buildView(src, opts)
		return DataLoadedMsg{View: v, LoadTime: d}
	}
}

// refreshDataCmd rebuilds the dashboard in the background.
func refreshDataCmd(src dashboard.Source, opts dashboard.Options) tea.Cmd {
	return func() tea.Msg {
		v, d := buildView(src, opts)
		return RefreshDataMsg{View: v, LoadTime: d}
	}
}

// exportCmd writes the current view as a PNG named after today's date in
// exportLoc.
func exportCmd(v dashboard.View, t theme.Theme, dir string, loc, exportLoc *time.Location, now time.Time) tea.Cmd {
	return func() tea.Msg {
		path := filepath.Join(dir, export.Filename(now, exportLoc, export.FormatPNG))
		return ExportDoneMsg{Path: path, Err: writeExport(path, v, t, loc)}
	}
}

func writeExport(path string, v dashboard.View, t theme.Theme, loc *time.Location) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export: %w", err)
	}
	if err := export.PNG(f, v, t, loc); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color
// so gaps between cards are not left unstyled.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the same width rules as RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW
		if i < len(components.Tabs)-1 {
			pos++ // separator
		}
	}
	return -1
}
