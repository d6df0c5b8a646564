package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imsel/echotrails/trail"
)

func testFolders() []trail.FolderInfo {
	return []trail.FolderInfo{
		{Name: "sweeps_a", FileCount: 3, Status: trail.StatusPending},
		{Name: "sweeps_b", FileCount: 2, Status: trail.StatusPending},
	}
}

func newTestModel(cancelled *bool) RunModel {
	events := make(chan trail.ProgressUpdate, 1)
	cancel := func() {
		if cancelled != nil {
			*cancelled = true
		}
	}
	return NewRunModel(testFolders(), events, cancel, "test")
}

func applyEvent(t *testing.T, m RunModel, update trail.ProgressUpdate) (RunModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(EventMsg{Update: update})
	model, ok := next.(RunModel)
	if !ok {
		t.Fatalf("Update returned %T, want RunModel", next)
	}
	return model, cmd
}

func TestNewRunModel(t *testing.T) {
	m := newTestModel(nil)

	if len(m.folders) != 2 {
		t.Fatalf("folders = %d, want 2", len(m.folders))
	}
	for i, f := range m.folders {
		if f.Status != "⏳" {
			t.Errorf("folders[%d].Status = %q, want pending glyph", i, f.Status)
		}
	}
	if m.Done() || m.CancelledRun() {
		t.Error("fresh model must not be done or cancelled")
	}
}

func TestRunModel_FolderLifecycle(t *testing.T) {
	m := newTestModel(nil)

	m, cmd := applyEvent(t, m, trail.FolderStarted{FolderIndex: 0, FolderName: "sweeps_a"})
	if cmd == nil {
		t.Error("expected a follow-up event wait command")
	}
	if m.folders[0].Status != "🔄" {
		t.Errorf("started folder glyph = %q, want processing", m.folders[0].Status)
	}

	m, _ = applyEvent(t, m, trail.FileProgress{
		FolderIndex: 0, FilesDone: 2, FilesTotal: 3,
		CurrentFile: "frame_b.png", FilesPerSecond: 12.5,
	})
	if m.filesDone != 2 || m.filesTotal != 3 {
		t.Errorf("progress = %d/%d, want 2/3", m.filesDone, m.filesTotal)
	}
	if m.currentFile != "frame_b.png" {
		t.Errorf("currentFile = %q, want frame_b.png", m.currentFile)
	}
	if m.rate != 12.5 {
		t.Errorf("rate = %v, want 12.5", m.rate)
	}

	m, _ = applyEvent(t, m, trail.FolderCompleted{FolderIndex: 0})
	if m.folders[0].Status != "✓" {
		t.Errorf("completed folder glyph = %q, want check", m.folders[0].Status)
	}
	if m.completed != 1 {
		t.Errorf("completed = %d, want 1", m.completed)
	}
}

func TestRunModel_FolderError(t *testing.T) {
	m := newTestModel(nil)

	m, _ = applyEvent(t, m, trail.FolderStarted{FolderIndex: 0, FolderName: "sweeps_a"})
	m, _ = applyEvent(t, m, trail.FolderError{FolderIndex: 0, Message: "no image files found"})

	if m.folders[0].Status != "❌" {
		t.Errorf("failed folder glyph = %q, want cross", m.folders[0].Status)
	}
	if m.folders[0].Message != "no image files found" {
		t.Errorf("failed folder message = %q", m.folders[0].Message)
	}
}

func TestRunModel_TerminalEventsQuit(t *testing.T) {
	m := newTestModel(nil)
	m, cmd := applyEvent(t, m, trail.AllComplete{})
	if !m.Done() {
		t.Error("AllComplete must mark the model done")
	}
	if cmd == nil {
		t.Fatal("AllComplete must quit the program")
	}

	m = newTestModel(nil)
	m, cmd = applyEvent(t, m, trail.Cancelled{})
	if !m.CancelledRun() {
		t.Error("Cancelled must mark the model cancelled")
	}
	if cmd == nil {
		t.Fatal("Cancelled must quit the program")
	}
}

func TestRunModel_QuitKeyRequestsCancellation(t *testing.T) {
	var cancelled bool
	m := newTestModel(&cancelled)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(RunModel)

	if !cancelled {
		t.Error("q must invoke the cancel handle")
	}
	if !m.cancelRequested {
		t.Error("q must flag the pending cancellation")
	}
	if m.Done() || m.CancelledRun() {
		t.Error("quit key must not terminate before the pipeline confirms")
	}
}

func TestRunModel_ViewShowsFolders(t *testing.T) {
	m := newTestModel(nil)
	m, _ = applyEvent(t, m, trail.FolderStarted{FolderIndex: 0, FolderName: "sweeps_a"})

	view := m.View()
	for _, want := range []string{"sweeps_a", "sweeps_b", "EchoTrails"} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q", want)
		}
	}
}
