package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/schollz/progressbar/v3"

	"github.com/imsel/echotrails/config"
	"github.com/imsel/echotrails/trail"
	"github.com/imsel/echotrails/types"
	"github.com/imsel/echotrails/ui"
	"github.com/imsel/echotrails/utils"
)

type RenderCmd struct {
	Dirs          []string `arg:"" name:"dirs" help:"Folders of input frames to process" type:"existingdir"`
	HistoryLength *int     `help:"Number of previous frames kept visible (fades to 0 by this age)"`
	Limit         *int     `help:"Cap on number of frames per folder (0 = no limit)"`
	Workers       *int     `help:"Number of parallel workers (0 = all logical cores)"`
	Background    *string  `help:"Background color hex (#RRGGBB)"`
	CurrentColor  *string  `help:"Current frame color hex (#RRGGBB)"`
	HistoryColor  *string  `help:"History frame color hex (#RRGGBB)"`
	LuminanceTint bool     `help:"Scale the history tint by source pixel luminance"`
	NoTUI         bool     `help:"Plain progress output instead of the interactive view"`
}

// settings merges persisted defaults with the flags given on the
// command line; a flag left unset keeps the saved value.
func (cmd *RenderCmd) settings() (config.Settings, error) {
	settings, err := config.Load()
	if err != nil {
		return settings, err
	}
	if cmd.HistoryLength != nil {
		settings.HistoryLength = *cmd.HistoryLength
	}
	if cmd.Limit != nil {
		settings.Limit = *cmd.Limit
	}
	if cmd.Workers != nil {
		settings.Threads = *cmd.Workers
	}
	if cmd.Background != nil {
		settings.BackgroundColor = *cmd.Background
	}
	if cmd.CurrentColor != nil {
		settings.CurrentColor = *cmd.CurrentColor
	}
	if cmd.HistoryColor != nil {
		settings.HistoryColor = *cmd.HistoryColor
	}
	return settings, nil
}

func (cmd *RenderCmd) Run(appCtx *types.AppContext) error {
	version := types.DefaultVersion
	if appCtx != nil {
		version = appCtx.Version
	}

	settings, err := cmd.settings()
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Validate has already checked the color strings.
	background, _ := trail.ParseHexColor(settings.BackgroundColor)
	current, _ := trail.ParseHexColor(settings.CurrentColor)
	history, _ := trail.ParseHexColor(settings.HistoryColor)

	params := trail.Params{
		HistoryLength: settings.HistoryLength,
		Background:    background,
		CurrentColor:  current,
		HistoryColor:  history,
	}
	if cmd.LuminanceTint {
		params.TintMode = trail.TintLuminance
	}

	workers := settings.Threads
	if workers <= 0 {
		// Network-mounted input is better served by a single worker.
		hasNetworkDirs := false
		for _, dir := range cmd.Dirs {
			if utils.IsNetworkDrive(dir) {
				hasNetworkDirs = true
				break
			}
		}
		if hasNetworkDirs {
			workers = 1
			fmt.Printf("⚠️  Network drive detected, using 1 worker for optimal performance\n")
		} else {
			workers = runtime.NumCPU()
		}
	}

	folders := trail.EnumerateFolders(cmd.Dirs)
	opts := trail.Options{Params: params, Workers: workers, Limit: settings.Limit}
	events := make(chan trail.ProgressUpdate, 64)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go trail.ProcessFolders(ctx, folders, opts, events)

	if cmd.NoTUI {
		return cmd.runPlain(ctx, cancel, folders, events, version)
	}
	return cmd.runWithTUI(folders, events, cancel, version)
}

// runWithTUI consumes the event stream in the interactive view.
func (cmd *RenderCmd) runWithTUI(folders []trail.FolderInfo, events chan trail.ProgressUpdate, cancel func(), version string) error {
	model := ui.NewRunModel(folders, events, cancel, version)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("failed to run progress view: %w", err)
	}

	if m, ok := final.(ui.RunModel); ok && m.CancelledRun() {
		fmt.Println(ui.ErrorStyle.Render("Run cancelled."))
		return nil
	}

	cmd.printSummary(folders)
	return nil
}

// runPlain consumes the event stream with a simple progress bar; SIGINT
// requests cooperative cancellation.
func (cmd *RenderCmd) runPlain(ctx context.Context, cancel func(), folders []trail.FolderInfo, events chan trail.ProgressUpdate, version string) error {
	signalCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	go func() {
		<-signalCtx.Done()
		cancel()
	}()

	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("EchoTrails %s", version)))
	fmt.Println(ui.ProcessingStyle.Render(fmt.Sprintf("Processing %d folders:", len(folders))))

	var bar *progressbar.ProgressBar
	for update := range events {
		switch u := update.(type) {
		case trail.FolderStarted:
			fmt.Printf("\n📂 %s\n", u.FolderName)
			bar = nil

		case trail.FileProgress:
			if bar == nil {
				bar = progressbar.NewOptions(u.FilesTotal,
					progressbar.OptionSetDescription("compositing"),
					progressbar.OptionShowCount(),
					progressbar.OptionShowIts(),
				)
			}
			_ = bar.Set(u.FilesDone)

		case trail.FolderCompleted:
			if bar != nil {
				_ = bar.Finish()
				bar = nil
			}
			fmt.Printf("\n%s\n", ui.SuccessStyle.Render("✅ Folder complete"))

		case trail.FolderError:
			if bar != nil {
				_ = bar.Finish()
				bar = nil
			}
			fmt.Printf("\n%s\n", ui.ErrorStyle.Render(fmt.Sprintf("❌ %s", u.Message)))

		case trail.AllComplete:
			fmt.Printf("\n%s\n", ui.SuccessStyle.Render("✅ Processing complete."))

		case trail.Cancelled:
			fmt.Printf("\n%s\n", ui.ErrorStyle.Render("Run cancelled."))
		}
	}

	cmd.printSummary(folders)
	return nil
}

// printSummary lists the final status of every queued folder.
func (cmd *RenderCmd) printSummary(folders []trail.FolderInfo) {
	var complete, failed int
	for _, f := range folders {
		switch f.Status {
		case trail.StatusComplete:
			complete++
		case trail.StatusError:
			failed++
		}
	}

	fmt.Printf("\n%s\n", ui.InfoStyle.Render(fmt.Sprintf("Folders: %d complete, %d failed, %d skipped",
		complete, failed, len(folders)-complete-failed)))
	for _, f := range folders {
		if f.Status == trail.StatusError {
			fmt.Printf("  ❌ %s: %s\n", f.Name, f.ErrMessage)
		}
	}
}
