package trail

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func makeQueue(t *testing.T, frameCounts ...int) []FolderInfo {
	t.Helper()
	paths := make([]string, len(frameCounts))
	for i, n := range frameCounts {
		parent := t.TempDir()
		dir := filepath.Join(parent, "sweeps")
		if err := os.Mkdir(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		writeFrameSequence(t, dir, n)
		paths[i] = dir
	}
	return EnumerateFolders(paths)
}

func runQueue(ctx context.Context, folders []FolderInfo, opts Options) []ProgressUpdate {
	events := make(chan ProgressUpdate, 64)
	wait := collectEvents(events)
	ProcessFolders(ctx, folders, opts, events)
	return wait()
}

func defaultOpts() Options {
	return Options{Params: testParams(2), Workers: 2}
}

func TestProcessFolders_HappyPath(t *testing.T) {
	folders := makeQueue(t, 3, 2)

	updates := runQueue(context.Background(), folders, defaultOpts())

	for i, f := range folders {
		if f.Status != StatusComplete {
			t.Errorf("folders[%d].Status = %v, want complete", i, f.Status)
		}
		if f.Progress != 1 {
			t.Errorf("folders[%d].Progress = %v, want 1", i, f.Progress)
		}
	}

	// Outputs land next to each input folder.
	for i, f := range folders {
		outDir := OutputDir(f.Path, 2)
		entries, err := os.ReadDir(outDir)
		if err != nil {
			t.Fatalf("folder %d output dir: %v", i, err)
		}
		if len(entries) != f.FileCount {
			t.Errorf("folder %d wrote %d frames, want %d", i, len(entries), f.FileCount)
		}
	}

	// Last event is AllComplete; folder events never interleave.
	last := updates[len(updates)-1]
	if _, ok := last.(AllComplete); !ok {
		t.Fatalf("last event = %T, want AllComplete", last)
	}

	currentFolder := -1
	var sawCompleted bool
	for _, u := range updates {
		switch e := u.(type) {
		case FolderStarted:
			if e.FolderIndex != currentFolder+1 {
				t.Errorf("FolderStarted(%d) out of order, previous folder %d", e.FolderIndex, currentFolder)
			}
			if currentFolder >= 0 && !sawCompleted {
				t.Errorf("folder %d started before folder %d finished", e.FolderIndex, currentFolder)
			}
			currentFolder = e.FolderIndex
			sawCompleted = false
		case FileProgress:
			if e.FolderIndex != currentFolder {
				t.Errorf("FileProgress for folder %d while folder %d is active", e.FolderIndex, currentFolder)
			}
		case FolderCompleted:
			if e.FolderIndex != currentFolder {
				t.Errorf("FolderCompleted(%d) while folder %d is active", e.FolderIndex, currentFolder)
			}
			sawCompleted = true
		}
	}
}

func TestProcessFolders_EmptyFolderIsolated(t *testing.T) {
	good := makeQueue(t, 2)
	empty := EnumerateFolders([]string{t.TempDir()})
	folders := append(empty, good...)

	updates := runQueue(context.Background(), folders, defaultOpts())

	if folders[0].Status != StatusError {
		t.Errorf("empty folder status = %v, want error", folders[0].Status)
	}
	if folders[0].ErrMessage == "" {
		t.Error("empty folder has no error message")
	}
	if folders[1].Status != StatusComplete {
		t.Errorf("sibling folder status = %v, want complete", folders[1].Status)
	}

	var sawError bool
	for _, u := range updates {
		if e, ok := u.(FolderError); ok && e.FolderIndex == 0 {
			sawError = true
		}
	}
	if !sawError {
		t.Error("no FolderError event for the empty folder")
	}
	if _, ok := updates[len(updates)-1].(AllComplete); !ok {
		t.Errorf("last event = %T, want AllComplete", updates[len(updates)-1])
	}
}

func TestProcessFolders_DimensionMismatchSchedulesNothing(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "sweeps")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFrameSequence(t, dir, 2)
	writeFramePNG(t, filepath.Join(dir, "odd.png"), solidFrame(9, 9, testParams(1).Background.NRGBA(255)))

	folders := EnumerateFolders([]string{dir})
	updates := runQueue(context.Background(), folders, defaultOpts())

	if folders[0].Status != StatusError {
		t.Errorf("folder status = %v, want error", folders[0].Status)
	}

	// No output directory means no task ever ran.
	if _, err := os.Stat(OutputDir(dir, 2)); !os.IsNotExist(err) {
		t.Errorf("output directory exists for mismatched folder (err=%v)", err)
	}

	for _, u := range updates {
		if _, ok := u.(FileProgress); ok {
			t.Error("mismatched folder emitted FileProgress")
		}
	}
}

func TestProcessFolders_CancelledBeforeStart(t *testing.T) {
	folders := makeQueue(t, 2, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	updates := runQueue(ctx, folders, defaultOpts())

	if len(updates) != 1 {
		t.Fatalf("got %d events, want 1", len(updates))
	}
	if _, ok := updates[0].(Cancelled); !ok {
		t.Fatalf("event = %T, want Cancelled", updates[0])
	}

	for i, f := range folders {
		if f.Status != StatusPending {
			t.Errorf("folders[%d].Status = %v, want pending", i, f.Status)
		}
		if _, err := os.Stat(OutputDir(f.Path, 2)); !os.IsNotExist(err) {
			t.Errorf("folders[%d] has output despite cancellation", i)
		}
	}
}

func TestProcessFolders_CancelDuringFirstFolder(t *testing.T) {
	folders := makeQueue(t, 2, 2)

	// Unbuffered channel: the orchestrator cannot outrun the consumer,
	// so cancelling on FolderStarted(0) is observed before the second
	// folder's loop iteration begins. The first folder still drains its
	// pool and stays Complete; the second is never started.
	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan ProgressUpdate)
	done := make(chan []ProgressUpdate, 1)
	go func() {
		var all []ProgressUpdate
		for update := range events {
			if s, ok := update.(FolderStarted); ok && s.FolderIndex == 0 {
				cancel()
			}
			all = append(all, update)
		}
		done <- all
	}()

	ProcessFolders(ctx, folders, defaultOpts(), events)
	updates := <-done

	if _, ok := updates[len(updates)-1].(Cancelled); !ok {
		t.Fatalf("last event = %T, want Cancelled", updates[len(updates)-1])
	}

	if folders[0].Status != StatusComplete {
		t.Errorf("first folder status = %v, want complete", folders[0].Status)
	}
	if folders[1].Status != StatusPending {
		t.Errorf("skipped folder status = %v, want pending", folders[1].Status)
	}
	for _, u := range updates {
		if s, ok := u.(FolderStarted); ok && s.FolderIndex == 1 {
			t.Error("second folder was started after cancellation")
		}
	}
}

func TestProcessFolders_EmptyQueue(t *testing.T) {
	updates := runQueue(context.Background(), nil, defaultOpts())
	if len(updates) != 1 {
		t.Fatalf("got %d events, want 1", len(updates))
	}
	if _, ok := updates[0].(AllComplete); !ok {
		t.Errorf("event = %T, want AllComplete", updates[0])
	}
}

func TestProcessFolders_LimitTruncatesFrames(t *testing.T) {
	folders := makeQueue(t, 5)
	opts := defaultOpts()
	opts.Limit = 2

	runQueue(context.Background(), folders, opts)

	entries, err := os.ReadDir(OutputDir(folders[0].Path, 2))
	if err != nil {
		t.Fatalf("output dir: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("wrote %d frames, want 2 (limit)", len(entries))
	}
}
