package tui

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/skytower/internal/registry"
	"github.com/vovakirdan/skytower/internal/storage"
)

// Below this width the stats panel moves under the table.
const statsPanelMinWidth = 84

const statsPanelWidth = 26

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	boardTabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTabStyle = lipgloss.NewStyle().Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Padding(0, 1)
	boardDimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// runOrder is the column the runs table is sorted by.
type runOrder int

const (
	byScore runOrder = iota
	byFloor
	byCombo
)

func (o runOrder) String() string {
	switch o {
	case byFloor:
		return "floor"
	case byCombo:
		return "combo"
	default:
		return "score"
	}
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Sort   key.Binding
	Export key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Sort, k.Export, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Next, k.Prev}, {k.Sort, k.Export, k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next mode")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev mode")),
		Sort:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Export: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export csv")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the kept runs of each mode with their statistics.
type ScoreboardModel struct {
	modes     []registry.GameInfo
	mode      int
	store     *storage.Store
	runs      []storage.RunEntry
	stats     storage.RunStats
	order     runOrder
	exportDir string
	status    string // last export result

	table  table.Model
	help   help.Model
	keys   ScoreboardKeyMap
	width  int
	height int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard opened on the first mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:     registry.List(),
		store:     store,
		keys:      DefaultScoreboardKeyMap(),
		help:      help.New(),
		width:     width,
		height:    height,
		exportDir: filepath.Join(os.Getenv("HOME"), ".skytower", "exports"),
	}
	m.table = m.newTable()
	m.reload()
	return m
}

func (m ScoreboardModel) currentMode() string {
	if len(m.modes) == 0 {
		return ""
	}
	return m.modes[m.mode].ID
}

func (m ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Score", Width: 8},
		{Title: "Floor", Width: 6},
		{Title: "Combo", Width: 6},
		{Title: "Time", Width: 6},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, min(m.height-12, 12))),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// reload fetches the current mode's runs. A store error shows an empty board.
func (m *ScoreboardModel) reload() {
	m.runs = nil
	if m.store != nil && len(m.modes) > 0 {
		if runs, err := m.store.TopRuns(m.currentMode(), 0); err == nil {
			m.runs = runs
		}
	}
	m.stats = storage.Summarize(m.runs)
	m.refreshRows()
}

// refreshRows sorts the runs by the current order and fills the table.
// Rank always reflects the stored score order.
func (m *ScoreboardModel) refreshRows() {
	rank := make(map[int64]int, len(m.runs))
	for i, r := range m.runs {
		rank[r.ID] = i + 1
	}

	shown := slices.Clone(m.runs)
	switch m.order {
	case byFloor:
		slices.SortStableFunc(shown, func(a, b storage.RunEntry) int { return cmp.Compare(b.Floor, a.Floor) })
	case byCombo:
		slices.SortStableFunc(shown, func(a, b storage.RunEntry) int { return cmp.Compare(b.MaxCombo, a.MaxCombo) })
	}

	rows := make([]table.Row, len(shown))
	for i, r := range shown {
		rows[i] = table.Row{
			fmt.Sprint(rank[r.ID]),
			fmt.Sprint(r.Score),
			fmt.Sprint(r.Floor),
			fmt.Sprintf("x%d", r.MaxCombo),
			formatDuration(r.Duration),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// export writes the current mode's runs to a CSV file.
func (m *ScoreboardModel) export(now time.Time) {
	if len(m.runs) == 0 {
		m.status = "nothing to export"
		return
	}
	if err := os.MkdirAll(m.exportDir, 0o755); err != nil {
		m.status = "export failed: " + err.Error()
		return
	}
	path := filepath.Join(m.exportDir, fmt.Sprintf("%s_%s.csv", m.currentMode(), now.Format("20060102_150405")))
	f, err := os.Create(path)
	if err != nil {
		m.status = "export failed: " + err.Error()
		return
	}
	defer f.Close()

	if err := storage.ExportCSV(f, m.runs); err != nil {
		m.status = "export failed: " + err.Error()
		return
	}
	m.status = "exported to " + path
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next), key.Matches(msg, m.keys.Prev):
			if n := len(m.modes); n > 0 {
				step := 1
				if key.Matches(msg, m.keys.Prev) {
					step = n - 1
				}
				m.mode = (m.mode + step) % n
				m.status = ""
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.Sort):
			m.order = (m.order + 1) % 3
			m.refreshRows()
			return m, nil

		case key.Matches(msg, m.keys.Export):
			m.export(time.Now())
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.refreshRows()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerStyled(boardTitleStyle.Render("BEST RUNS"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerStyled(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	board := boardFrameStyle.Render(m.renderTable())
	if m.stats.Count > 0 {
		panel := boardFrameStyle.Width(statsPanelWidth).Render(m.renderStats())
		if m.width >= statsPanelMinWidth {
			board = lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", panel)
		} else {
			board = lipgloss.JoinVertical(lipgloss.Left, board, panel)
		}
	}
	for _, line := range strings.Split(board, "\n") {
		b.WriteString(centerStyled(line, m.width))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(boardDimStyle.Render("  " + m.status))
		b.WriteString("\n")
	}
	b.WriteString(boardDimStyle.Render(fmt.Sprintf("  sorted by %s  ", m.order)))
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.mode {
			tabs[i] = boardActiveTabStyle.Render(g.Title)
		} else {
			tabs[i] = boardTabStyle.Render(g.Title)
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 && len(m.modes) > 0 {
		line = fmt.Sprintf("< %s >", m.modes[m.mode].Title)
	}
	return line
}

func (m ScoreboardModel) renderTable() string {
	if len(m.runs) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render("No runs recorded yet.\nClimb a few floors to get on the board!")
	}
	return m.table.View()
}

func (m ScoreboardModel) renderStats() string {
	st := m.stats
	rows := [][2]string{
		{"runs", fmt.Sprint(st.Count)},
		{"mean", fmt.Sprintf("%.0f", st.MeanScore)},
		{"std dev", fmt.Sprintf("%.0f", st.StdDevScore)},
		{"median", fmt.Sprintf("%.0f", st.MedianScore)},
		{"p90", fmt.Sprintf("%.0f", st.P90Score)},
		{"mean floor", fmt.Sprintf("%.1f", st.MeanFloor)},
		{"best floor", fmt.Sprint(st.BestFloor)},
		{"best combo", fmt.Sprintf("x%d", st.MaxCombo)},
	}

	var b strings.Builder
	b.WriteString(boardTitleStyle.Render("Stats"))
	for _, r := range rows {
		fmt.Fprintf(&b, "\n%-11s %10s", r[0], r[1])
	}
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}

// formatDuration renders a run length as m:ss.
func formatDuration(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
