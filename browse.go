// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/cybrota/arbor/hierarchy"
	"github.com/patrickmn/go-cache"
)

// Focus order of the browser panes
const (
	focusInput = iota
	focusRows
	focusDetail
)

// Styles holds all the styling for the terminal screens
type Styles struct {
	BorderFocused  lipgloss.Style
	BorderBlurred  lipgloss.Style
	Title          lipgloss.Style
	InputPrompt    lipgloss.Style
	HelpKey        lipgloss.Style
	HelpDesc       lipgloss.Style
	SuccessMessage lipgloss.Style
	ErrorMessage   lipgloss.Style
}

// NewStyles creates the styles from the detected palette
func NewStyles() *Styles {
	p := GetPalette()
	return &Styles{
		BorderFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.BorderFocus).
			Bold(true),
		BorderBlurred: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Border),
		Title: lipgloss.NewStyle().
			Foreground(p.Primary).
			Padding(0, 1).
			Bold(true),
		InputPrompt: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),
		HelpKey: lipgloss.NewStyle().
			Foreground(p.TextMuted).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(p.TextMuted),
		SuccessMessage: lipgloss.NewStyle().
			Foreground(p.Success).
			Bold(true),
		ErrorMessage: lipgloss.NewStyle().
			Foreground(p.Error).
			Bold(true),
	}
}

// rowItem is one node in the outline list
type rowItem struct {
	row hierarchy.Row
}

func (i rowItem) FilterValue() string { return i.row.Key }
func (i rowItem) Title() string       { return strings.Repeat("  ", i.row.Depth) + i.row.Key }
func (i rowItem) Description() string { return strings.Repeat("  ", i.row.Depth) + i.row.Detail }

// BrowseModel is the tree browser: a command bar, the outline of the tree
// and a detail pane.
type BrowseModel struct {
	ready bool

	input  textinput.Model
	rows   list.Model
	detail viewport.Model

	ds      *dataset
	outline []hierarchy.Row
	queries *QueryManager
	results *cache.Cache
	copy    func(string) error

	focusIndex int
	answer     string
	status     string
	statusErr  bool

	styles          *Styles
	glamourRenderer *glamour.TermRenderer

	width  int
	height int
}

// NewBrowseModel creates the browser for ds.
func NewBrowseModel(ds *dataset, config *Config) BrowseModel {
	ti := textinput.New()
	ti.Placeholder = "find <key> · depth <key> · path <key> · match <text> · pattern <regexp>"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	outline := ds.rows()
	items := make([]list.Item, len(outline))
	for i, row := range outline {
		items[i] = rowItem{row: row}
	}
	rows := list.New(items, list.NewDefaultDelegate(), 0, 0)
	rows.SetShowTitle(false)
	rows.SetShowHelp(false)
	rows.SetFilteringEnabled(false)

	detail := viewport.New(0, 0)

	glamourRenderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(72),
	)

	m := BrowseModel{
		input:           ti,
		rows:            rows,
		detail:          detail,
		ds:              ds,
		outline:         outline,
		queries:         NewQueryManager(config.Browse.Suggestions),
		results:         NewResultCache(config.Browse.CacheMinutes),
		copy:            copyToClipboard,
		focusIndex:      focusInput,
		styles:          NewStyles(),
		glamourRenderer: glamourRenderer,
	}
	m.showSelected()
	return m
}

func (m BrowseModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles all the I/O
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKeys(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.ready = true
	}
	return m, nil
}

func (m BrowseModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab":
		m.setFocus((m.focusIndex + 1) % 3)
		return m, nil
	case "shift+tab":
		m.setFocus((m.focusIndex + 2) % 3)
		return m, nil
	case "ctrl+y":
		// Copy the path of the selected node
		row, ok := m.selected()
		if !ok {
			return m, nil
		}
		path := strings.Join(row.Path, pathSeparator)
		if err := m.copy(path); err != nil {
			m.setStatus(fmt.Sprintf("Copy failed: %v", err), true)
		} else {
			m.setStatus("📋 Copied "+path, false)
		}
		return m, nil
	}

	switch m.focusIndex {
	case focusInput:
		if msg.Type == tea.KeyEnter {
			m.runQuery(m.input.Value())
			return m, nil
		}
		m.input, cmd = m.input.Update(msg)
	case focusRows:
		switch msg.String() {
		case "enter":
			m.setFocus(focusDetail)
			return m, nil
		case "up", "k":
			m.rows.CursorUp()
		case "down", "j":
			m.rows.CursorDown()
		case "pgup":
			m.rows.PrevPage()
		case "pgdown":
			m.rows.NextPage()
		}
		m.showSelected()
	case focusDetail:
		switch msg.String() {
		case "home":
			m.detail.GotoTop()
		case "end":
			m.detail.GotoBottom()
		default:
			m.detail, cmd = m.detail.Update(msg)
		}
	}
	return m, cmd
}

func (m *BrowseModel) setFocus(i int) {
	m.focusIndex = i
	if i == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *BrowseModel) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m BrowseModel) selected() (hierarchy.Row, bool) {
	item, ok := m.rows.SelectedItem().(rowItem)
	if !ok {
		return hierarchy.Row{}, false
	}
	return item.row, true
}

// runQuery answers a command bar line, reusing cached answers.
func (m *BrowseModel) runQuery(line string) {
	query := strings.TrimSpace(line)
	if answer := GetResult(m.results, m.ds.Name, query); answer != "" {
		m.showAnswer(answer)
		m.setStatus("", false)
		return
	}

	answer, err := m.queries.Run(m.ds, query)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	CacheResult(m.results, m.ds.Name, query, answer)
	m.showAnswer(answer)
	m.setStatus("", false)
}

func (m *BrowseModel) showSelected() {
	row, ok := m.selected()
	if !ok {
		m.showAnswer("The tree is empty.")
		return
	}
	m.showAnswer(describeRow(row))
}

func (m *BrowseModel) showAnswer(markdown string) {
	m.answer = markdown
	// Try to render as markdown first
	if m.glamourRenderer != nil {
		if rendered, err := m.glamourRenderer.Render(markdown); err == nil {
			m.detail.SetContent(rendered)
			return
		}
	}
	m.detail.SetContent(markdown)
}

func (m *BrowseModel) updateLayout() {
	inputHeight := 3
	listHeight := m.height - inputHeight - 6 // Leave room for help text
	leftWidth := (m.width / 2) - 1
	rightWidth := m.width - leftWidth - 3

	m.input.Width = leftWidth - 4
	m.rows.SetSize(leftWidth-2, listHeight-2)
	m.detail.Width = rightWidth - 2
	m.detail.Height = listHeight + inputHeight
}

func (m BrowseModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.width < 30 || m.height < 10 {
		return "Terminal too small. Please resize your terminal."
	}

	inputHeight := 3
	listHeight := m.height - inputHeight - 6
	leftWidth := (m.width / 2) - 1
	rightWidth := m.width - leftWidth - 3

	inputBox := m.pane(focusInput, leftWidth, inputHeight, " 🔍 Query "+m.ds.Title, m.input.View())
	rowsBox := m.pane(focusRows, leftWidth, listHeight, fmt.Sprintf(" 🌳 Nodes (%d) ", len(m.outline)), m.rows.View())
	detailBox := m.pane(focusDetail, rightWidth, listHeight+inputHeight+2, " 📖 Details ", m.detail.View())

	main := lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, inputBox, rowsBox),
		detailBox,
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		main,
		m.renderStatus(),
		m.renderHelp(),
	)
}

func (m BrowseModel) pane(index, width, height int, title, content string) string {
	style := m.styles.BorderBlurred
	if m.focusIndex == index {
		style = m.styles.BorderFocused
		title += " (Active)"
	}
	return style.
		Width(width).
		Height(height).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Width(width-4).Render(title),
			content,
		))
}

func (m BrowseModel) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return m.styles.ErrorMessage.Render("  ❌ " + m.status)
	}
	return m.styles.SuccessMessage.Render("  " + m.status)
}

func (m BrowseModel) renderHelp() string {
	return renderKeyHelp(m.styles, [][2]string{
		{"enter", "run query"},
		{"tab", "switch focus"},
		{"↑/↓", "select node"},
		{"ctrl+y", "copy path"},
		{"esc", "quit"},
	})
}

// renderKeyHelp renders the key help footer
func renderKeyHelp(styles *Styles, bindings [][2]string) string {
	var helpEntries []string
	for _, b := range bindings {
		helpEntries = append(helpEntries,
			fmt.Sprintf("%s %s",
				styles.HelpKey.Render(b[0]),
				styles.HelpDesc.Render(b[1])))
	}

	return lipgloss.NewStyle().
		Padding(1, 0, 0, 2).
		Render(strings.Join(helpEntries, " • "))
}

func copyToClipboard(text string) error {
	return clipboard.WriteAll(text)
}

// runProgram starts a full screen Bubble Tea program
func runProgram(model tea.Model) error {
	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := program.Run()
	return err
}
