package main

import (
	"github.com/alecthomas/kong"

	"github.com/imsel/echotrails/cmd"
	"github.com/imsel/echotrails/types"
)

var Version = "dev"

type CLI struct {
	Render   cmd.RenderCmd   `cmd:"" help:"Render motion-trail composites for folders of frames"`
	Dupes    cmd.DupesCmd    `cmd:"" help:"Find perceptually similar frames in a folder"`
	Settings cmd.SettingsCmd `cmd:"" help:"Show or persist default settings"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("echotrails"),
		kong.Description("Motion-trail compositor for time-ordered image sequences"),
		kong.Bind(&types.AppContext{Version: Version}),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
