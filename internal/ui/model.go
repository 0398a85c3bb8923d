// ABOUTME: Bubbletea model for the SE manager debug panel
// ABOUTME: Lists clips for manual playback and shows channel activity
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Resonate-Protocol/sfxpool/pkg/sfx"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// RefreshInterval is how often channel activity is polled
const RefreshInterval = 100 * time.Millisecond

// Pool is the part of the sound-effect pool the panel drives
type Pool interface {
	Play(name string) (sfx.Playback, error)
	StopImmediately()
	StopImmediatelyByName(name string)
	ClipNames() []string
	Snapshot() []sfx.ChannelStatus
	Config() sfx.Config
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220"))

	playingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	faintStyle = lipgloss.NewStyle().Faint(true)
)

// Model represents the panel state
type Model struct {
	pool   Pool
	config sfx.Config

	// Clips
	clips   []string
	visible []string
	cursor  int

	// Filter
	filter    textinput.Model
	filtering bool

	// Channels, refreshed on every tick
	channels []sfx.ChannelStatus

	// Feedback from the last action
	status  string
	lastErr error

	keys keyMap
	help help.Model

	// Dimensions
	width  int
	height int
}

type tickMsg time.Time

// NewModel creates a panel for pool
func NewModel(pool Pool) Model {
	ti := textinput.New()
	ti.Prompt = "Filter: "
	ti.Placeholder = "clip name"

	clips := pool.ClipNames()
	m := Model{
		pool:    pool,
		config:  pool.Config(),
		clips:   clips,
		visible: clips,
		filter:  ti,
		keys:    newKeyMap(),
		help:    help.New(),
	}
	m.refresh()
	return m
}

// Init starts the refresh tick
func (m Model) Init() tea.Cmd {
	return tickEvery()
}

func tickEvery() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.filtering {
			return m.handleFilterKey(msg)
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	case tickMsg:
		m.refresh()
		return m, tickEvery()
	}

	return m, nil
}

// handleKey handles keyboard input while browsing
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Play):
		m.play()
	case key.Matches(msg, m.keys.Stop):
		if name, ok := m.selected(); ok {
			m.pool.StopImmediatelyByName(name)
			m.setStatus(fmt.Sprintf("Stopped %s", name))
		}
	case key.Matches(msg, m.keys.StopAll):
		m.pool.StopImmediately()
		m.setStatus("Stopped all")
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		return m, m.filter.Focus()
	case key.Matches(msg, m.keys.Clear):
		m.filter.SetValue("")
		m.applyFilter()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	m.refresh()
	return m, nil
}

// handleFilterKey feeds the filter input; enter keeps the filter, esc drops it
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *Model) applyFilter() {
	pattern := strings.TrimSpace(m.filter.Value())
	if pattern == "" {
		m.visible = m.clips
	} else {
		matches := fuzzy.Find(pattern, m.clips)
		m.visible = make([]string, len(matches))
		for i, match := range matches {
			m.visible[i] = match.Str
		}
	}

	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) play() {
	name, ok := m.selected()
	if !ok {
		return
	}

	pb, err := m.pool.Play(name)
	if err != nil {
		m.lastErr = err
		m.status = ""
		return
	}
	m.setStatus(fmt.Sprintf("Playing %s on channel %d", pb.Clip, pb.Channel))
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.lastErr = nil
}

func (m Model) selected() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return "", false
	}
	return m.visible[m.cursor], true
}

func (m *Model) refresh() {
	m.channels = m.pool.Snapshot()
}

// playingCount returns the number of channels currently playing
func (m Model) playingCount() int {
	n := 0
	for _, ch := range m.channels {
		if ch.Playing {
			n++
		}
	}
	return n
}

// View renders the panel
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("SE Manager (debug mode)"))
	b.WriteString("\n\n")

	if len(m.clips) == 0 {
		b.WriteString(valueStyle.Render("Audio clips not found."))
		b.WriteString("\n\n")
		b.WriteString(faintStyle.Render("Press 'q' or Ctrl+C to quit"))
		return b.String()
	}

	b.WriteString(headerStyle.Render("Volume: "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.2f", m.config.DefaultVolume)))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Max Play: "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d", m.config.MaxAudioSources)))
	b.WriteString("\n\n")

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderClips())
	b.WriteString("\n")
	b.WriteString(m.renderChannels())

	if line := playingLine(m.playingCount()); line != "" {
		b.WriteString(playingStyle.Render(line))
		b.WriteString("\n")
	}

	switch {
	case m.lastErr != nil:
		b.WriteString(errorStyle.Render(m.lastErr.Error()))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(faintStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// renderClips renders the clip list with the cursor and a play marker for
// clips that are currently sounding
func (m Model) renderClips() string {
	if len(m.visible) == 0 {
		return valueStyle.Render("  No matching clips") + "\n"
	}

	active := make(map[string]bool)
	for _, ch := range m.channels {
		if ch.Playing {
			active[ch.Clip] = true
		}
	}

	var b strings.Builder
	for i, name := range m.visible {
		marker := "  "
		if active[name] {
			marker = playingStyle.Render("♪ ")
		}

		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + name))
		} else {
			b.WriteString(valueStyle.Render("  " + name))
		}
		b.WriteString(" ")
		b.WriteString(marker)
		b.WriteString("\n")
	}
	return b.String()
}

// renderChannels renders one cell per channel: filled while playing
func (m Model) renderChannels() string {
	var cells strings.Builder
	for i := 0; i < m.config.MaxAudioSources; i++ {
		switch {
		case i < len(m.channels) && m.channels[i].Playing:
			cells.WriteString(playingStyle.Render("█"))
		case i < len(m.channels):
			cells.WriteString("▒")
		default:
			cells.WriteString(faintStyle.Render("░"))
		}
	}
	return headerStyle.Render("Channels: ") + cells.String() +
		valueStyle.Render(fmt.Sprintf(" %d/%d", len(m.channels), m.config.MaxAudioSources)) + "\n"
}

// playingLine returns the activity line, empty when nothing plays
func playingLine(n int) string {
	switch {
	case n == 1:
		return "1 audio source is playing."
	case n > 1:
		return fmt.Sprintf("%d audio sources are playing.", n)
	default:
		return ""
	}
}
