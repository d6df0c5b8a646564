package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/imsel/echotrails/trail"
)

// FolderRow tracks one queued folder's display state.
type FolderRow struct {
	Name      string
	FileCount int
	Status    string // "⏳", "🔄", "✓", "❌"
	Message   string
}

// RunModel is the TUI for a render run. It consumes the pipeline's
// ProgressUpdate stream and handles every variant; quit keys request
// cooperative cancellation and the model stays up until the pipeline
// confirms with its terminal event.
type RunModel struct {
	// Data
	folders       []FolderRow
	currentFolder int
	filesDone     int
	filesTotal    int
	currentFile   string
	rate          float64
	completed     int

	// Event plumbing
	events <-chan trail.ProgressUpdate
	cancel func()

	// UI components
	folderProgress  progress.Model
	overallProgress progress.Model

	// Layout
	width  int
	height int

	// Control state
	cancelRequested bool
	done            bool
	cancelled       bool

	// Version for display
	Version string
}

// NewRunModel creates the TUI model for a run over the given folders.
// cancel is the pipeline's cancellation handle.
func NewRunModel(folders []trail.FolderInfo, events <-chan trail.ProgressUpdate, cancel func(), version string) RunModel {
	rows := make([]FolderRow, len(folders))
	for i, f := range folders {
		rows[i] = FolderRow{Name: f.Name, FileCount: f.FileCount, Status: "⏳"}
	}

	return RunModel{
		folders:         rows,
		currentFolder:   -1,
		events:          events,
		cancel:          cancel,
		folderProgress:  progress.New(progress.WithDefaultGradient()),
		overallProgress: progress.New(progress.WithDefaultGradient()),
		Version:         version,
	}
}

// waitForEvent reads the next pipeline event as a tea command.
func waitForEvent(events <-chan trail.ProgressUpdate) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-events
		if !ok {
			return EventsClosedMsg{}
		}
		return EventMsg{Update: update}
	}
}

// Init implements tea.Model
func (m RunModel) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// Update implements tea.Model
func (m RunModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			// Cooperative: in-flight frames finish, the pipeline
			// confirms with a Cancelled event.
			m.cancelRequested = true
			m.cancel()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case EventMsg:
		return m.handleEvent(msg.Update)

	case EventsClosedMsg:
		return m, tea.Quit
	}

	return m, nil
}

// handleEvent applies one pipeline event to the display state.
func (m RunModel) handleEvent(update trail.ProgressUpdate) (tea.Model, tea.Cmd) {
	switch u := update.(type) {
	case trail.FolderStarted:
		m.currentFolder = u.FolderIndex
		m.filesDone = 0
		m.filesTotal = 0
		m.currentFile = ""
		m.rate = 0
		m.folders[u.FolderIndex].Status = "🔄"

	case trail.FileProgress:
		m.filesDone = u.FilesDone
		m.filesTotal = u.FilesTotal
		m.currentFile = u.CurrentFile
		m.rate = u.FilesPerSecond

	case trail.FolderCompleted:
		m.folders[u.FolderIndex].Status = "✓"
		m.completed++

	case trail.FolderError:
		m.folders[u.FolderIndex].Status = "❌"
		m.folders[u.FolderIndex].Message = u.Message
		m.completed++

	case trail.AllComplete:
		m.done = true
		return m, tea.Quit

	case trail.Cancelled:
		m.cancelled = true
		return m, tea.Quit
	}

	return m, waitForEvent(m.events)
}

// Done reports whether the run finished without cancellation.
func (m RunModel) Done() bool { return m.done }

// CancelledRun reports whether the pipeline confirmed cancellation.
func (m RunModel) CancelledRun() bool { return m.cancelled }

// View implements tea.Model
func (m RunModel) View() string {
	if m.done {
		return SuccessStyle.Render("✅ All folders complete.") + "\n"
	}
	if m.cancelled {
		return ErrorStyle.Render("Cancelled.") + "\n"
	}

	header := HeaderStyle.Render(fmt.Sprintf("EchoTrails %s", m.Version))

	// Folder queue
	folderViews := []string{"Folders:"}
	for i, f := range m.folders {
		line := fmt.Sprintf("  %s %s (%d files)", f.Status, f.Name, f.FileCount)
		if f.Message != "" {
			line += ": " + f.Message
		}
		if i == m.currentFolder && f.Status == "🔄" && m.filesTotal > 0 {
			percent := float64(m.filesDone) / float64(m.filesTotal)
			line += fmt.Sprintf("\n    %s %d/%d  %.1f files/s  %s",
				m.folderProgress.ViewAs(percent),
				m.filesDone, m.filesTotal, m.rate, m.currentFile)
		}
		folderViews = append(folderViews, line)
	}

	// Overall progress across folders
	overallPercent := 0.0
	if len(m.folders) > 0 {
		overallPercent = float64(m.completed) / float64(len(m.folders))
	}
	overallView := fmt.Sprintf("Overall: %s (%d/%d folders)",
		m.overallProgress.ViewAs(overallPercent), m.completed, len(m.folders))

	controls := "Controls: [q] Cancel"
	if m.cancelRequested {
		controls = ProcessingStyle.Render("Cancelling after in-flight frames…")
	}

	sections := []string{
		header,
		strings.Join(folderViews, "\n"),
		overallView,
		controls,
	}

	return strings.Join(sections, "\n\n")
}
