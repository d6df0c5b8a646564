package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/imsel/echotrails/trail"
	"github.com/imsel/echotrails/ui"
)

type DupesCmd struct {
	Directory string `arg:"" name:"directory" help:"Folder of frames to compare" type:"existingdir"`
	Threshold int    `help:"Hamming distance threshold for similarity (0-64)" default:"10"`
	Limit     int    `help:"Cap on number of frames to compare (0 = no limit)" default:"0"`
}

func (cmd *DupesCmd) Run() error {
	if cmd.Threshold < 0 || cmd.Threshold > 64 {
		return fmt.Errorf("threshold must be between 0 and 64, got %d", cmd.Threshold)
	}

	fmt.Println(ui.InfoStyle.Render(fmt.Sprintf("Hashing frames in %s...", cmd.Directory)))

	hashes, err := trail.HashFrames(cmd.Directory, cmd.Limit)
	if err != nil {
		return fmt.Errorf("failed to hash frames: %w", err)
	}

	fmt.Println(ui.InfoStyle.Render(fmt.Sprintf("Comparing %d frames (threshold: %d):", len(hashes), cmd.Threshold)))

	pairs, err := trail.FindSimilarFrames(hashes, cmd.Threshold)
	if err != nil {
		return fmt.Errorf("failed to compare frames: %w", err)
	}

	if len(pairs) == 0 {
		fmt.Printf("%s\n", ui.SuccessStyle.Render("✅ No similar frames found within threshold"))
		return nil
	}

	for _, p := range pairs {
		fmt.Printf("🎯 Similar (distance %d): %s ↔ %s\n",
			p.Distance, filepath.Base(p.A), filepath.Base(p.B))
	}
	return nil
}
