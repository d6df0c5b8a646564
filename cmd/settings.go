package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/imsel/echotrails/config"
	"github.com/imsel/echotrails/ui"
)

type SettingsCmd struct {
	Show SettingsShowCmd `cmd:"" default:"1" help:"Print the effective settings"`
	Save SettingsSaveCmd `cmd:"" help:"Persist settings as the new defaults"`
}

type SettingsShowCmd struct{}

func (cmd *SettingsShowCmd) Run() error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	path, err := config.Path()
	if err != nil {
		return err
	}

	content, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(ui.InfoStyle.Render(fmt.Sprintf("Settings file: %s", path)))
	fmt.Println(string(content))
	return nil
}

type SettingsSaveCmd struct {
	HistoryLength int    `help:"Number of previous frames kept visible" default:"5"`
	Background    string `help:"Background color hex (#RRGGBB)" default:"#000000"`
	CurrentColor  string `help:"Current frame color hex (#RRGGBB)" default:"#00ff00"`
	HistoryColor  string `help:"History frame color hex (#RRGGBB)" default:"#ff7f00"`
	Workers       int    `help:"Number of parallel workers (0 = all logical cores)" default:"0"`
	Limit         int    `help:"Cap on number of frames per folder (0 = no limit)" default:"0"`
}

func (cmd *SettingsSaveCmd) Run() error {
	settings := config.Settings{
		HistoryLength:   cmd.HistoryLength,
		BackgroundColor: cmd.Background,
		CurrentColor:    cmd.CurrentColor,
		HistoryColor:    cmd.HistoryColor,
		Threads:         cmd.Workers,
		Limit:           cmd.Limit,
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := config.Save(settings); err != nil {
		return err
	}

	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", ui.SuccessStyle.Render(fmt.Sprintf("✅ Settings saved to %s", path)))
	return nil
}
