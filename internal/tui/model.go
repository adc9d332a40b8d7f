package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"ember/internal/engine"
	"ember/internal/storage"
	"ember/internal/timeutil"
	"ember/internal/ui"
)

// rowKind tells the board what toggling a row means.
type rowKind int

const (
	rowPriority rowKind = iota
	rowHabit
)

type boardRow struct {
	kind  rowKind
	id    string
	title string
	done  bool
}

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	log     *storage.DailyLog
	streaks engine.StreakResult
	level   engine.LevelProgress
	quests  []engine.Quest
	rows    []boardRow

	selected int
	lastLog  string
	loading  bool
	err      error
}

type loadedMsg struct {
	log     *storage.DailyLog
	streaks engine.StreakResult
	level   engine.LevelProgress
	quests  []engine.Quest
	rows    []boardRow
	err     error
}

type toggledMsg struct {
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		log, err := m.svc.UpsertTodayLog(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		streaks, err := m.svc.Streaks(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		level, err := m.svc.LevelStatus(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		quests, err := m.svc.WeeklyQuests(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}

		day := string(timeutil.Day(m.svc.Now()))
		slate, err := m.svc.PriorityRepo().ListSlate(m.ctx, day, m.svc.Config().Slate.Size)
		if err != nil {
			return loadedMsg{err: err}
		}
		habits, err := m.svc.HabitRepo().ListActive(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}

		var rows []boardRow
		for _, p := range slate {
			rows = append(rows, boardRow{kind: rowPriority, id: p.ID, title: p.Title, done: p.IsCompleted})
		}
		for _, h := range habits {
			rows = append(rows, boardRow{kind: rowHabit, id: h.ID, title: h.Name, done: h.Progress >= 1})
		}

		return loadedMsg{log: log, streaks: streaks, level: level, quests: quests, rows: rows}
	}
}

func (m boardModel) toggleCmd(row boardRow) tea.Cmd {
	return func() tea.Msg {
		var err error
		switch row.kind {
		case rowPriority:
			if row.done {
				_, err = m.svc.UncompletePriority(m.ctx, row.id)
			} else {
				_, err = m.svc.CompletePriority(m.ctx, row.id)
			}
		case rowHabit:
			progress := 1.0
			if row.done {
				progress = 0
			}
			_, err = m.svc.CheckInHabit(m.ctx, row.id, m.svc.Now(), progress)
		}
		return toggledMsg{err: err}
	}
}

func (m boardModel) protectCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := m.svc.ToggleStreakProtection(m.ctx)
		return toggledMsg{err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.log = msg.log
		m.streaks = msg.streaks
		m.level = msg.level
		m.quests = msg.quests
		m.rows = msg.rows
		if m.selected >= len(m.rows) {
			m.selected = 0
		}
		return m, nil

	case toggledMsg:
		if msg.err != nil {
			m.lastLog = "Update failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = "Saved."
		return m, m.loadCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.rows)-1 {
				m.selected++
			}
			return m, nil
		case "enter", " ":
			if m.selected < len(m.rows) {
				return m, m.toggleCmd(m.rows[m.selected])
			}
			return m, nil
		case "p":
			return m, m.protectCmd()
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	if m.loading {
		return ui.Muted.Render("Loading…")
	}
	if m.err != nil {
		return ui.Bad.Render("Error: " + m.err.Error())
	}

	var b strings.Builder

	header := fmt.Sprintf("%s  %s %d day streak   %s lvl %d %s",
		ui.Heading(ui.IconFlame, "Ember — "+m.log.Day),
		ui.IconFlame, m.streaks.Current,
		ui.IconBolt, m.level.Level, ui.ProgressBar(m.level.Ratio, 12),
	)
	b.WriteString(header + "\n\n")

	b.WriteString(ui.H2.Render("Today") + "\n")
	if len(m.rows) == 0 {
		b.WriteString(ui.Muted.Render("  nothing planned — add priorities or habits") + "\n")
	}
	for i, row := range m.rows {
		check := "[ ]"
		if row.done {
			check = "[x]"
		}
		icon := ui.IconTarget
		if row.kind == rowHabit {
			icon = ui.IconLoop
		}
		line := fmt.Sprintf("%s %s %s", check, icon, row.title)
		if i == m.selected {
			line = ui.SelectedRow.Render(line)
		} else if row.done {
			line = ui.Muted.Render(line)
		}
		b.WriteString("  " + line + "\n")
	}

	b.WriteString("\n" + ui.H2.Render("Quests") + "\n")
	for _, q := range m.quests {
		state := fmt.Sprintf("%d/%d", q.Progress, q.Target)
		switch {
		case q.IsClaimed:
			state = ui.Gold.Render("claimed " + ui.IconTrophy)
		case q.IsComplete:
			state = ui.Good.Render("complete — claim with `ember quests --claim " + q.ID + "`")
		}
		b.WriteString(fmt.Sprintf("  %s %s  %s\n", ui.Key.Render(q.Title), ui.Muted.Render("("+q.ID+")"), state))
	}

	protected := ""
	if m.log.Protected {
		protected = "  " + ui.Key.Render(ui.IconSnow+" protected")
	}
	b.WriteString("\n" + fmt.Sprintf("intensity %.2f%s", m.log.Intensity, protected) + "\n")
	b.WriteString(ui.Dim.Render("space toggle · p protect · r reload · q quit — "+m.lastLog) + "\n")

	return b.String()
}
