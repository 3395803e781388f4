package browser

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/jakoblorz/go-depextract/internal/plan"
	"github.com/jakoblorz/go-depextract/internal/session"
	"github.com/jakoblorz/go-depextract/internal/tui"
)

// pane is the part of the screen receiving navigation keys
type pane int

const (
	paneTree pane = iota
	paneResults
)

// formKind tells which embedded form is open
type formKind int

const (
	formNone formKind = iota
	formProject
	formOutput
	formSettings
	formQuit
)

const (
	// rows above the first tree row: title and search box
	treeTop = 2
	// status line, stats line and help line
	footerHeight = 3
)

// Model is the bubbletea model of the interactive browser
type Model struct {
	session *session.Session
	plans   *plan.Manager
	keys    keyMap

	width  int
	height int
	focus  pane

	searching bool
	search    textinput.Model
	spinner   spinner.Model
	results   viewport.Model
	help      help.Model

	// includeCursor is the highlighted include in the results pane
	includeCursor int

	form       *huh.Form
	formKind   formKind
	pathValue  *string
	quitValue  *bool
	settingsIn *tui.SettingsValues

	scanOnStart  bool
	loadSettings bool
	quitting     bool
}

// Options configures a browser model
type Options struct {
	// Plans stores plans saved with the save-plan key; nil disables it
	Plans *plan.Manager
	// ScanOnStart scans the session's project from Init
	ScanOnStart bool
	// LoadSettings fetches the collaborator's settings from Init
	LoadSettings bool
}

// New creates a browser over s
func New(s *session.Session, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Search files..."
	ti.Prompt = "/ "
	ti.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = tui.FocusedStyle

	m := Model{
		session:       s,
		plans:         opts.Plans,
		keys:          defaultKeyMap(),
		search:        ti,
		spinner:       sp,
		results:       viewport.New(40, 10),
		help:          help.New(),
		includeCursor: -1,
		pathValue:     new(string),
		quitValue:     new(bool),
		focus:         paneTree,
		scanOnStart:   opts.ScanOnStart,
		loadSettings:  opts.LoadSettings,
	}
	m.resize(80, 24)
	return m
}

// Session returns the session driven by the model
func (m Model) Session() *session.Session {
	return m.session
}

// treeWidth is the width of the left pane
func (m Model) treeWidth() int {
	return m.width / 2
}

// treeHeight is the number of tree rows that fit on screen
func (m Model) treeHeight() int {
	h := m.height - treeTop - footerHeight
	if h < 1 {
		return 1
	}
	return h
}

// Init starts the spinner and the optional startup operations
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.loadSettings {
		cmds = append(cmds, settingsCmd(m.session.StartLoadSettings()))
	}
	if m.scanOnStart && m.session.Project() != "" {
		if job, err := m.session.StartScan(); err == nil {
			cmds = append(cmds, scanCmd(job))
		}
	}
	return tea.Batch(cmds...)
}
