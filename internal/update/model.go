package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"tsuzuku/internal/notify"
	"tsuzuku/internal/scheduler"
	"tsuzuku/internal/store"
)

type InputMode string

const (
	ModeList InputMode = "list"
	ModeAdd  InputMode = "add"
	ModeEdit InputMode = "edit"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Quit    string
	Add     string
	Up      string
	Down    string
	Toggle  string
	Delete  string
	Edit    string
	Palette string
	Filter  string
	Sort    string
	Stats   string
	Help    string
	Confirm string
	Cancel  string
}

func DefaultKeyMap() GlobalKeyMap {
	return GlobalKeyMap{
		Quit:    "q",
		Add:     "a",
		Up:      "k",
		Down:    "j",
		Toggle:  " ",
		Delete:  "d",
		Edit:    "e",
		Palette: "/",
		Filter:  "f",
		Sort:    "o",
		Stats:   "s",
		Help:    "?",
		Confirm: "enter",
		Cancel:  "esc",
	}
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type Model struct {
	Store          *store.Store
	Scheduler      *scheduler.Engine
	Mode           InputMode
	Cursor         int
	SelectedTaskID string
	EditTaskID     string
	Query          string
	Filter         store.Filter
	Sort           store.SortOrder
	Palette        CommandPaletteState
	HelpVisible    bool
	StatsVisible   bool
	ReminderLog    []scheduler.ReminderEvent
	Notifications  []Notification
	DesktopEnabled bool
	notifier       notify.DesktopNotifier
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error
	// Bubble components used for rich TUI controls
	taskList     list.Model
	statsTable   table.Model
	taskInput    textinput.Model
	commandInput textinput.Model
	helpModel    help.Model
	helpViewport viewport.Model
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type SetFilterMsg struct {
	Filter store.Filter
}

type SetSortMsg struct {
	Order store.SortOrder
}

type SetSearchMsg struct {
	Query string
}

type ReminderDueMsg struct {
	Event scheduler.ReminderEvent
}

func NewModel(st *store.Store) Model {
	m := Model{
		Store:    st,
		Mode:     ModeList,
		Filter:   store.FilterAll,
		Sort:     store.SortNewestFirst,
		notifier: notify.NoopNotifier{},
		Keys:     DefaultKeyMap(),
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func NewModelWithScheduler(st *store.Store, engine *scheduler.Engine) Model {
	m := NewModel(st)
	m.Scheduler = engine
	return m
}

func NewModelWithRuntime(st *store.Store, engine *scheduler.Engine, desktopEnabled bool, notifier notify.DesktopNotifier, keys GlobalKeyMap) Model {
	m := NewModel(st)
	m.Scheduler = engine
	m.DesktopEnabled = desktopEnabled
	if notifier != nil {
		m.notifier = notifier
	}
	if keys != (GlobalKeyMap{}) {
		m.Keys = keys
	}
	m.syncSelectedToCursor()
	return m
}

func (m *Model) initBubbleComponents() {
	m.taskList = list.New([]list.Item{}, list.NewDefaultDelegate(), 58, 12)
	m.taskList.Title = "Tasks (list)"
	m.taskList.SetShowHelp(false)
	m.taskList.SetFilteringEnabled(false)

	cols := []table.Column{
		{Title: "Task", Width: 22},
		{Title: "Streak", Width: 7},
		{Title: "Status", Width: 12},
		{Title: "Next", Width: 10},
	}
	m.statsTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(false), table.WithHeight(8))

	m.taskInput = textinput.New()
	m.taskInput.Prompt = "> "
	m.taskInput.CharLimit = 256
	m.taskInput.Width = 48

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
	m.helpViewport = viewport.New(40, 12)
}
