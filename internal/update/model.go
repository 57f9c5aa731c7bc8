package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"go.uber.org/zap"

	"github.com/sandeepkv93/rxtrack/internal/model"
	"github.com/sandeepkv93/rxtrack/internal/scheduler"
	"github.com/sandeepkv93/rxtrack/internal/scorecard"
	"github.com/sandeepkv93/rxtrack/internal/tracker"
)

type View string

const (
	ViewDashboard    View = "Dashboard"
	ViewCleaning     View = "Cleaning"
	ViewDocuments    View = "Documents"
	ViewTraining     View = "Training"
	ViewSafeguarding View = "Safeguarding"
	ViewTemperature  View = "Temperature"
	ViewRP           View = "RP"
)

// Views is the tab order; keys 1-7 select them.
var Views = []View{ViewDashboard, ViewCleaning, ViewDocuments, ViewTraining, ViewSafeguarding, ViewTemperature, ViewRP}

// Store is what the TUI reads and writes through.
type Store interface {
	Now() time.Time
	Policy() model.Policy
	Snapshot(ctx context.Context) (scorecard.Snapshot, error)
	LogCompletion(ctx context.Context, taskName, staff, notes string) (model.CompletionEvent, error)
	LogTemperature(ctx context.Context, celsius float64, loggedBy, notes string) (model.TemperatureReading, bool, error)
	ToggleRPItem(ctx context.Context, item string) (bool, error)
	CycleTraining(ctx context.Context, target string) (model.TrainingItem, error)
	ReportIncident(ctx context.Context, in tracker.IncidentInput) (model.Incident, error)
}

type Options struct {
	PharmacyName    string
	RefreshInterval time.Duration
	Logger          *zap.Logger
}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Help   string
	Quit   string
	Reload string
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
	CurrentView   View
	Store         Store
	Scheduler     *scheduler.Engine
	Snapshot      scorecard.Snapshot
	Card          scorecard.Scorecard
	Loaded        bool
	Cursors       map[View]int
	AlertLog      []scheduler.AlertEvent
	Palette       CommandPaletteState
	HelpVisible   bool
	Notifications []Notification
	Status        StatusBar
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error
	Width         int

	pharmacyName    string
	refreshInterval time.Duration
	logger          *zap.Logger
	dashboardView   string

	cleaningTable     table.Model
	documentTable     table.Model
	trainingTable     table.Model
	safeguardingTable table.Model
	temperatureTable  table.Model
	commandInput      textinput.Model
	helpModel         help.Model
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// DataLoadedMsg carries a fresh read of the store.
type DataLoadedMsg struct {
	Snapshot scorecard.Snapshot
	Card     scorecard.Scorecard
	Alerts   []scheduler.AlertEvent
}

type RefreshTickMsg struct{}

type AlertDueMsg struct {
	Event scheduler.AlertEvent
}

func NewModel(store Store, engine *scheduler.Engine, opts Options) Model {
	m := Model{
		CurrentView:     ViewDashboard,
		Store:           store,
		Scheduler:       engine,
		Cursors:         make(map[View]int),
		pharmacyName:    opts.PharmacyName,
		refreshInterval: opts.RefreshInterval,
		logger:          opts.Logger,
		Keys: GlobalKeyMap{
			Help:   "?",
			Quit:   "q",
			Reload: "r",
		},
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}
