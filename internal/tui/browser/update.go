package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/jakoblorz/go-depextract/internal/plan"
	"github.com/jakoblorz/go-depextract/internal/results"
	"github.com/jakoblorz/go-depextract/internal/session"
	"github.com/jakoblorz/go-depextract/internal/tui"
)

func scanCmd(job *session.ScanJob) tea.Cmd {
	return func() tea.Msg {
		return job.Run(context.Background())
	}
}

func analyzeCmd(job *session.AnalyzeJob) tea.Cmd {
	return func() tea.Msg {
		return job.Run(context.Background())
	}
}

func exportCmd(job *session.ExportJob) tea.Cmd {
	return func() tea.Msg {
		return job.Run(context.Background())
	}
}

func browseCmd(job *session.BrowseJob) tea.Cmd {
	return func() tea.Msg {
		return job.Run(context.Background())
	}
}

func settingsCmd(job *session.SettingsJob) tea.Cmd {
	return func() tea.Msg {
		return job.Run(context.Background())
	}
}

// Update handles messages and state transitions
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case session.ScanDone:
		_ = m.session.FinishScan(msg)
		m.includeCursor = -1
		m.refreshResults()
		return m, nil

	case session.AnalyzeDone:
		_ = m.session.FinishAnalyze(msg)
		m.includeCursor = -1
		if m.focus == paneResults && m.session.Store().IncludeCount() > 0 {
			m.includeCursor = 0
		}
		m.refreshResults()
		return m, nil

	case session.ExportDone:
		_ = m.session.FinishExport(msg)
		return m, nil

	case session.BrowseDone:
		_ = m.session.FinishBrowse(msg)
		return m, nil

	case session.SettingsDone:
		_ = m.session.FinishSettings(msg)
		return m, nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m, nil
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	m.search.Width = m.treeWidth() - 4
	m.results.Width = width - m.treeWidth() - 1
	m.results.Height = height - 1 - footerHeight
	if m.results.Height < 1 {
		m.results.Height = 1
	}
	m.help.Width = width
	m.refreshResults()
}

// refreshResults recomputes the results pane from the store
func (m *Model) refreshResults() {
	store := m.session.Store()
	if m.includeCursor >= store.IncludeCount() {
		m.includeCursor = store.IncludeCount() - 1
	}

	cursor := -1
	if m.focus == paneResults {
		cursor = m.includeCursor
	}
	report := results.Present(store)
	m.results.SetContent(results.Render(report, results.RenderOptions{
		Width:         m.results.Width,
		IncludeCursor: cursor,
	}))
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.session.SetFilterTerm("")
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.session.SetFilterTerm(m.search.Value())
	return m, cmd
}

func (m Model) openForm(kind formKind, form *huh.Form) (tea.Model, tea.Cmd) {
	m.form = form
	m.formKind = kind
	if m.width > 0 {
		m.form = m.form.WithWidth(m.width - 4)
	}
	return m, m.form.Init()
}

func (m *Model) closeForm() {
	m.form = nil
	m.formKind = formNone
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.completeForm()
	case huh.StateAborted:
		kind := m.formKind
		m.closeForm()
		if kind != formQuit {
			m.session.SetStatus("Cancelled")
		}
		return m, nil
	}
	return m, cmd
}

func (m Model) completeForm() (tea.Model, tea.Cmd) {
	kind := m.formKind
	m.closeForm()

	switch kind {
	case formProject:
		m.session.SetProject(strings.TrimSpace(*m.pathValue))
		return m.startScan()

	case formOutput:
		m.session.SetOutputDir(strings.TrimSpace(*m.pathValue))

	case formSettings:
		framework, mappings, err := m.settingsIn.Parse()
		if err != nil {
			m.session.SetStatus("Settings error: " + err.Error())
			return m, nil
		}
		m.session.SetFramework(framework)
		m.session.SetParseIncludes(m.settingsIn.ParseIncludes)
		job, err := m.session.StartSaveSettings(mappings)
		if err != nil {
			return m, nil
		}
		return m, settingsCmd(job)

	case formQuit:
		if *m.quitValue {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) startScan() (tea.Model, tea.Cmd) {
	if m.session.Busy(session.OpScan) {
		return m, nil
	}
	job, err := m.session.StartScan()
	if err != nil {
		return m, nil
	}
	m.focus = paneTree
	m.includeCursor = -1
	return m, scanCmd(job)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.session

	switch {
	case key.Matches(msg, m.keys.Quit):
		if s.AnyBusy() {
			*m.quitValue = false
			return m.openForm(formQuit, tui.NewConfirmForm(
				"Quit while an operation is running?",
				"Pending results will be lost.",
				m.quitValue,
			))
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.SwitchPane):
		if m.focus == paneTree {
			m.focus = paneResults
			if m.includeCursor < 0 && s.Store().IncludeCount() > 0 {
				m.includeCursor = 0
			}
		} else {
			m.focus = paneTree
		}
		m.refreshResults()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		if s.View() == nil {
			return m, nil
		}
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.ClearSearch):
		if s.Filter().HasTerm() {
			m.search.SetValue("")
			s.SetFilterTerm("")
		}
		return m, nil

	case key.Matches(msg, m.keys.Scan):
		return m.startScan()

	case key.Matches(msg, m.keys.Analyze):
		if s.Busy(session.OpAnalyze) || s.Busy(session.OpScan) {
			return m, nil
		}
		job, err := s.StartAnalyze()
		if err != nil {
			return m, nil
		}
		return m, analyzeCmd(job)

	case key.Matches(msg, m.keys.Export):
		if s.Busy(session.OpExport) || s.Busy(session.OpScan) {
			return m, nil
		}
		job, err := s.StartExport()
		if err != nil {
			return m, nil
		}
		return m, exportCmd(job)

	case key.Matches(msg, m.keys.Browse):
		if s.Busy(session.OpBrowse) {
			return m, nil
		}
		return m, browseCmd(s.StartBrowse(session.BrowseProject))

	case key.Matches(msg, m.keys.BrowseOut):
		if s.Busy(session.OpBrowse) {
			return m, nil
		}
		return m, browseCmd(s.StartBrowse(session.BrowseOutput))

	case key.Matches(msg, m.keys.EditProject):
		*m.pathValue = s.Project()
		return m.openForm(formProject, tui.NewPathForm(
			"Project directory",
			"Root of the PHP project to scan",
			m.pathValue,
		))

	case key.Matches(msg, m.keys.EditOutput):
		*m.pathValue = ""
		if !s.OutputIsAuto() {
			*m.pathValue = s.OutputDir()
		}
		return m.openForm(formOutput, tui.NewPathForm(
			"Output directory",
			s.OutputPlaceholder(),
			m.pathValue,
		))

	case key.Matches(msg, m.keys.ResetOut):
		s.ResetOutputDir()
		return m, nil

	case key.Matches(msg, m.keys.Settings):
		if s.Busy(session.OpSettings) {
			return m, nil
		}
		m.settingsIn = tui.NewSettingsValues(s.Framework(), s.Mappings(), s.ParseIncludes())
		return m.openForm(formSettings, tui.NewSettingsForm(m.settingsIn))

	case key.Matches(msg, m.keys.SavePlan):
		m.savePlan()
		return m, nil

	case key.Matches(msg, m.keys.CheckAll):
		n := s.Store().CheckResolvedIncludes()
		s.SetStatus(fmt.Sprintf("Checked %d resolved includes", n))
		m.refreshResults()
		return m, nil
	}

	if m.focus == paneResults {
		m.handleResultsKey(msg)
		return m, nil
	}
	m.handleTreeKey(msg)
	return m, nil
}

func (m *Model) handleTreeKey(msg tea.KeyMsg) {
	view := m.session.View()
	if view == nil {
		return
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		view.MoveUp()
	case key.Matches(msg, m.keys.Down):
		view.MoveDown()
	case key.Matches(msg, m.keys.PageUp):
		view.PageUp(m.treeHeight())
	case key.Matches(msg, m.keys.PageDown):
		view.PageDown(m.treeHeight())
	case key.Matches(msg, m.keys.Top):
		view.Top()
	case key.Matches(msg, m.keys.Bottom):
		view.Bottom()
	case key.Matches(msg, m.keys.Expand):
		view.ExpandOrDescend()
	case key.Matches(msg, m.keys.Collapse):
		view.CollapseOrAscend()
	case key.Matches(msg, m.keys.CollapseAll):
		view.CollapseAll()
	case key.Matches(msg, m.keys.Activate):
		view.ActivateCursor()
		m.refreshResults()
	}
}

func (m *Model) handleResultsKey(msg tea.KeyMsg) {
	store := m.session.Store()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.includeCursor > 0 {
			m.includeCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.includeCursor < store.IncludeCount()-1 {
			m.includeCursor++
		}
	case key.Matches(msg, m.keys.PageUp):
		m.results.LineUp(m.results.Height / 2)
		return
	case key.Matches(msg, m.keys.PageDown):
		m.results.LineDown(m.results.Height / 2)
		return
	case key.Matches(msg, m.keys.Top):
		m.results.GotoTop()
		return
	case key.Matches(msg, m.keys.Bottom):
		m.results.GotoBottom()
		return
	case key.Matches(msg, m.keys.Activate):
		store.ToggleInclude(m.includeCursor)
	default:
		return
	}
	m.refreshResults()
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.X >= m.treeWidth() {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.results.LineUp(3)
		case tea.MouseButtonWheelDown:
			m.results.LineDown(3)
		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress && m.focus != paneResults {
				m.focus = paneResults
				if m.includeCursor < 0 && m.session.Store().IncludeCount() > 0 {
					m.includeCursor = 0
				}
				m.refreshResults()
			}
		}
		return m, nil
	}

	view := m.session.View()
	if view == nil {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		for range 3 {
			view.MoveUp()
		}
	case tea.MouseButtonWheelDown:
		for range 3 {
			view.MoveDown()
		}
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress || msg.Y < treeTop {
			return m, nil
		}
		start, end := view.VisibleRange(m.treeHeight())
		i := start + msg.Y - treeTop
		if i >= end {
			return m, nil
		}
		m.focus = paneTree
		view.Activate(i)
		m.refreshResults()
	}
	return m, nil
}

func (m *Model) savePlan() {
	s := m.session
	if m.plans == nil {
		s.SetStatus("Plan saving is disabled")
		return
	}

	p := plan.Capture(s)
	if err := m.plans.Write(p); err != nil {
		s.SetStatus("Plan error: " + err.Error())
		return
	}
	s.SetStatus("Saved plan to " + p.FilePath)
}
