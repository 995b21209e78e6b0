package generate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/component-model/witpy/internal/codec"
	"github.com/component-model/witpy/internal/logging"
	"github.com/component-model/witpy/internal/oci"
	"github.com/component-model/witpy/internal/witcli"
	"github.com/component-model/witpy/wit"
	"github.com/component-model/witpy/wit/pybindgen"
	"github.com/urfave/cli/v3"
)

var log = logging.Logger(os.Stderr, slog.LevelInfo)

// Command is the CLI command for generate.
var Command = &cli.Command{
	Name:    "generate",
	Aliases: []string{"py"},
	Usage:   "generate Python bindings from WIT (WebAssembly Interface Types)",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "world",
			Aliases:  []string{"w"},
			Value:    "",
			OnlyOnce: true,
			Config:   cli.StringConfig{TrimSpace: true},
			Usage:    "base name for the generated _import.py/_export.py files (default: the world's name); every world is generated",
		},
		&cli.StringFlag{
			Name:      "out",
			Aliases:   []string{"o"},
			Value:     ".",
			TakesFile: true,
			OnlyOnce:  true,
			Config:    cli.StringConfig{TrimSpace: true},
			Usage:     "output directory",
		},
		&cli.StringFlag{
			Name:     "runtime-module",
			Value:    "",
			OnlyOnce: true,
			Config:   cli.StringConfig{TrimSpace: true},
			Usage:    "Python module the generated code imports the canonical-ABI host runtime from",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "do not write files; print to stdout",
		},
	},
	Action: action,
}

type config struct {
	dryRun        bool
	out           string
	outPerm       os.FileMode
	world         string
	runtimeModule string
	forceWIT      bool
	path          string
}

func action(ctx context.Context, cmd *cli.Command) error {
	cfg, err := parseFlags(cmd)
	if err != nil {
		return err
	}

	res, err := loadWITModule(ctx, cfg)
	if err != nil {
		return err
	}

	var opts []pybindgen.Option
	opts = append(opts, pybindgen.GeneratedBy(cmd.Root().Name))
	if cfg.world != "" {
		opts = append(opts, pybindgen.OutputModule(cfg.world))
	}
	if cfg.runtimeModule != "" {
		opts = append(opts, pybindgen.RuntimeModule(cfg.runtimeModule))
	}

	out, err := pybindgen.Generate(res, opts...)
	if err != nil {
		return err
	}

	return writeFiles(out, cfg)
}

func parseFlags(cmd *cli.Command) (*config, error) {
	dryRun := cmd.Bool("dry-run")
	out := cmd.String("out")

	info, err := os.Stat(out)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", out)
	}
	log.Info("resolved output directory", "dir", out)
	outPerm := info.Mode().Perm()

	path, err := witcli.LoadPath(cmd.Args().Slice()...)
	if err != nil {
		return nil, err
	}

	return &config{
		dryRun:        dryRun,
		out:           out,
		outPerm:       outPerm,
		world:         cmd.String("world"),
		runtimeModule: cmd.String("runtime-module"),
		forceWIT:      cmd.Bool("force-wit"),
		path:          path,
	}, nil
}

func loadWITModule(ctx context.Context, cfg *config) (*wit.Resolve, error) {
	if oci.IsOCIPath(cfg.path) {
		log.Info("fetching OCI artifact", "path", cfg.path)
		buf, err := oci.PullWIT(ctx, cfg.path)
		if err != nil {
			return nil, err
		}
		return wit.LoadWITFromBuffer(buf.Bytes())
	}

	return witcli.LoadWIT(ctx, cfg.forceWIT, cfg.path)
}

func writeFiles(out *pybindgen.Output, cfg *config) error {
	log.Info("generated files", "count", len(out.Files))
	for _, name := range codec.SortedKeys(out.Files) {
		content := out.Files[name]
		path := filepath.Join(cfg.out, name)

		if cfg.dryRun {
			fmt.Printf("--- %s ---\n", path)
			fmt.Println(string(content))
			fmt.Println()
			continue
		}

		if err := os.MkdirAll(cfg.out, cfg.outPerm); err != nil {
			return err
		}
		if err := os.WriteFile(path, content, cfg.outPerm); err != nil {
			return err
		}
		log.Info("wrote file", "path", path)
	}
	return nil
}
