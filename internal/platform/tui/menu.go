package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/skytower/internal/core"
	"github.com/vovakirdan/skytower/internal/games/tower"
	"github.com/vovakirdan/skytower/internal/registry"
	"github.com/vovakirdan/skytower/internal/storage"
)

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	menuSubtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	menuCursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226"))
	menuBlurbStyle    = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
)

// MenuItem is one mode in the menu with its stored records.
type MenuItem struct {
	registry.GameInfo
	Best      int // best stored score, 0 when none
	BestFloor int
}

type menuStage int

const (
	stageList menuStage = iota
	stagePractice
)

// practiceField is the focused control on the practice setup screen.
type practiceField int

const (
	fieldStartFloor practiceField = iota
	fieldFixedSpeed
)

// MenuModel picks a mode. Practice modes get a setup screen for the start
// floor and the fixed-speed toggle before the run starts.
type MenuModel struct {
	items  []MenuItem
	cursor int
	width  int
	height int
	config core.RuntimeConfig
	keys   *KeyMapper
	help   help.Model

	stage      menuStage
	floorInput textinput.Model
	fixedSpeed bool
	focus      practiceField
	maxFloor   int

	quitting       bool
	selected       *MenuItem
	practice       *tower.PracticeSettings
	openScoreboard bool
}

// NewMenuModel creates a menu listing every registered mode.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		item := MenuItem{GameInfo: g}
		if store != nil {
			// Missing records only hide the "best" column
			item.Best, _ = store.HighScore(g.ID)
			item.BestFloor, _ = store.BestFloor(g.ID)
		}
		items = append(items, item)
	}

	in := textinput.New()
	in.Placeholder = "1"
	in.CharLimit = 5
	in.Width = 8
	in.Prompt = "Start floor: "

	return MenuModel{
		items:      items,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		config:     cfg,
		keys:       NewKeyMapper(),
		help:       help.New(),
		floorInput: in,
		maxFloor:   tower.LoadConfig().Settings.PracticeMaxFloor,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.stage == stagePractice {
			return m.handlePracticeKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	if m.stage == stagePractice {
		var cmd tea.Cmd
		m.floorInput, cmd = m.floorInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)

	case MenuActionDown:
		m.cursor = min(m.cursor+1, len(m.items)-1)

	case MenuActionSelect:
		if len(m.items) == 0 {
			return m, nil
		}
		item := m.items[m.cursor]
		if item.Practice {
			m.stage = stagePractice
			m.focus = fieldStartFloor
			cmd := m.floorInput.Focus()
			return m, cmd
		}
		m.selected = &item
		return m, tea.Quit

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// handlePracticeKey edits the practice settings. Only digits reach the
// start floor field.
func (m MenuModel) handlePracticeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		m.stage = stageList
		m.floorInput.Blur()
		return m, nil

	case "enter":
		item := m.items[m.cursor]
		m.selected = &item
		m.practice = &tower.PracticeSettings{
			StartFloor: tower.ParseStartFloor(m.floorInput.Value(), m.maxFloor),
			FixedSpeed: m.fixedSpeed,
		}
		return m, tea.Quit

	case "up", "down", "tab", "shift+tab":
		if m.focus == fieldStartFloor {
			m.focus = fieldFixedSpeed
			m.floorInput.Blur()
			return m, nil
		}
		m.focus = fieldStartFloor
		cmd := m.floorInput.Focus()
		return m, cmd

	case " ":
		if m.focus == fieldFixedSpeed {
			m.fixedSpeed = !m.fixedSpeed
		}
		return m, nil
	}

	if m.focus != fieldStartFloor {
		return m, nil
	}
	if msg.Type == tea.KeyRunes && strings.Trim(string(msg.Runes), "0123456789") != "" {
		return m, nil
	}
	var cmd tea.Cmd
	m.floorInput, cmd = m.floorInput.Update(msg)
	return m, cmd
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerStyled(menuTitleStyle.Render("S K Y T O W E R"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerStyled(menuSubtitleStyle.Render("Climb. Skip floors. Don't fall behind."), m.width))
	b.WriteString("\n\n")

	if m.stage == stagePractice {
		m.viewPractice(&b)
		return b.String()
	}

	for i, item := range m.items {
		cursor := "  "
		title := item.Title
		if i == m.cursor {
			cursor = menuCursorStyle.Render("> ")
			title = menuCursorStyle.Render(title)
		}

		line := cursor + title
		if item.Best > 0 {
			line += fmt.Sprintf("  (best %d, floor %d)", item.Best, item.BestFloor)
		}
		b.WriteString(centerStyled(line, m.width))
		b.WriteString("\n")
		if item.Blurb != "" {
			b.WriteString(centerStyled(menuBlurbStyle.Render(item.Blurb), m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerStyled(m.help.View(m.keys.Menu), m.width))
	b.WriteString("\n")
	return b.String()
}

func (m MenuModel) viewPractice(b *strings.Builder) {
	b.WriteString(centerStyled(menuCursorStyle.Render("PRACTICE SETUP"), m.width))
	b.WriteString("\n\n")

	floor := m.floorInput.View()
	if m.focus == fieldStartFloor {
		floor = menuCursorStyle.Render("> ") + floor
	} else {
		floor = "  " + floor
	}
	b.WriteString(centerStyled(floor, m.width))
	b.WriteString("\n")

	box := "[ ]"
	if m.fixedSpeed {
		box = "[x]"
	}
	speed := "  " + box + " Fixed speed (no scrolling)"
	if m.focus == fieldFixedSpeed {
		speed = menuCursorStyle.Render("> ") + box + " Fixed speed (no scrolling)"
	}
	b.WriteString(centerStyled(speed, m.width))
	b.WriteString("\n\n")

	hint := fmt.Sprintf("Floors 1-%d  |  Tab: Switch  |  Space: Toggle  |  Enter: Start  |  Esc: Back", m.maxFloor)
	b.WriteString(centerStyled(menuSubtitleStyle.Render(hint), m.width))
	b.WriteString("\n")
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Practice returns the practice settings chosen for a practice mode,
// or nil for a normal run.
func (m MenuModel) Practice() *tower.PracticeSettings {
	return m.practice
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerStyled centers a possibly styled line within width.
func centerStyled(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Practice        *tower.PracticeSettings
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// NewGame creates the game the menu selected.
func (r MenuResult) NewGame() (registry.Game, error) {
	if r.Practice != nil {
		return tower.NewPracticeWith(*r.Practice), nil
	}
	return registry.Create(r.GameID)
}

// Result converts the final menu state.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{Config: m.config}
	switch {
	case m.openScoreboard:
		result.WantsScoreboard = true
	case m.quitting || m.selected == nil:
		result.Quit = true
	default:
		result.GameID = m.selected.ID
		result.Practice = m.practice
	}
	return result
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
