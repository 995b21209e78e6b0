package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/urfave/cli/v3"

	"github.com/component-model/witpy/cmd/witpy/cmd/generate"
)

var (
	version  = ""
	revision = ""
)

func init() {
	build, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	version = build.Main.Version
	for _, s := range build.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		}
	}
	if version == "" {
		version = revision
	}
	if version == "" {
		version = "(none)"
	}
}

// Command is the root CLI command, exported so tests can drive it directly.
var Command = &cli.Command{
	Name:  "witpy",
	Usage: "generate Python bindings for WebAssembly Interface Types components",
	Commands: []*cli.Command{
		generate.Command,
	},
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "force-wit",
			Usage: "force loading WIT via wasm-tools",
		},
	},
	Version: version,
}

func main() {
	err := Command.Run(context.Background(), os.Args)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}
