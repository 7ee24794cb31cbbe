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

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cybrota/arbor/diagnosis"
)

// DiagnoseModel walks a diagnosis session one question at a time.
type DiagnoseModel struct {
	session *diagnosis.Session
	cursor  int
	err     error
	styles  *Styles
}

func NewDiagnoseModel(session *diagnosis.Session) DiagnoseModel {
	return DiagnoseModel{session: session, styles: NewStyles()}
}

func (m DiagnoseModel) Init() tea.Cmd {
	return nil
}

func (m DiagnoseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	answers := m.session.Answers()
	switch key.String() {
	case "ctrl+c", "esc", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(answers)-1 {
			m.cursor++
		}
	case "r":
		m.session.Restart()
		m.cursor = 0
		m.err = nil
	case "enter":
		if m.session.Done() {
			return m, tea.Quit
		}
		m.err = m.session.Choose(answers[m.cursor])
		m.cursor = 0
	case "y", "n":
		// shortcut for yes/no questions
		if !m.session.Done() {
			label := map[string]string{"y": "yes", "n": "no"}[key.String()]
			m.err = m.session.Choose(label)
			if m.err == nil {
				m.cursor = 0
			}
		}
	}
	return m, nil
}

func (m DiagnoseModel) View() string {
	var b strings.Builder

	for _, step := range m.session.Trail() {
		b.WriteString(m.styles.HelpDesc.Render(fmt.Sprintf("  %s %s", step.Question, step.Answer)))
		b.WriteString("\n")
	}
	if len(m.session.Trail()) > 0 {
		b.WriteString("\n")
	}

	current := m.session.Current()
	if m.session.Done() {
		b.WriteString(m.styles.SuccessMessage.Render("  ✅ " + current.Text))
		b.WriteString("\n")
	} else {
		b.WriteString(m.styles.Title.Render("❓ " + current.Text))
		b.WriteString("\n\n")
		for i, answer := range m.session.Answers() {
			cursor := "  "
			style := lipgloss.NewStyle()
			if i == m.cursor {
				cursor = "> "
				style = m.styles.InputPrompt
			}
			b.WriteString(style.Render(cursor + answer))
			b.WriteString("\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.ErrorMessage.Render("  ❌ " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(renderKeyHelp(m.styles, [][2]string{
		{"↑/↓", "choose"},
		{"enter", "answer"},
		{"y/n", "yes or no"},
		{"r", "restart"},
		{"esc", "quit"},
	}))
	return b.String()
}
