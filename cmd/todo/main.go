package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/idilsaglam/todosh/internal/cli"
	"github.com/idilsaglam/todosh/internal/config"
	"github.com/idilsaglam/todosh/internal/logging"
	"github.com/idilsaglam/todosh/internal/store"
	"github.com/idilsaglam/todosh/internal/store/boltstore"
	"github.com/idilsaglam/todosh/internal/store/jsonstore"
	"github.com/idilsaglam/todosh/internal/store/memstore"
	"github.com/idilsaglam/todosh/internal/ui"
)

const welcome = "Welcome to todo. Your command line todo pal!"

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "todo",
		Short:         "Interactive todo shell",
		Long:          welcome + "\n\nType commands at the >>> prompt; `exit` saves and quits.",
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if err := resolveConfig(&cfg, cfgPath, changed); err != nil {
				ui.Fail(os.Stderr, err.Error())
				return err
			}
			if cfg.NoColor {
				ui.DisableColor()
			}

			log, err := logging.New(os.Stderr, cfg.LogLevel, cfg.NoColor)
			if err != nil {
				ui.Fail(os.Stderr, err.Error())
				return err
			}
			log = logging.WithSession(log)
			log.Debug().Interface("config", cfg).Msg("configuration")

			return runShell(cfg, log)
		},
	}

	f := root.Flags()
	f.StringVar(&cfgPath, "config", "", "config file (default ~/.todo/config.toml)")
	f.StringVar(&cfg.StorePath, "store", cfg.StorePath, "todo data file (default depends on backend)")
	f.StringVar(&cfg.Backend, "backend", cfg.Backend, "storage backend: json, bolt or memory")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "diagnostic log level: debug, info, warn, error")
	f.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored output")
	f.BoolVar(&cfg.Plain, "plain", cfg.Plain, "plain line input and list output, no interactive widgets")
	return root
}

// resolveConfig layers file and environment values under explicit flags.
func resolveConfig(cfg *config.Config, cfgPath string, changed map[string]bool) error {
	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = config.DefaultConfigPath()
	}
	if cfgFile != "" && config.FileExists(cfgFile) {
		fc, err := config.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config %s: %w", cfgFile, err)
		}
		config.ApplyFileConfig(cfg, fc, changed)
	} else if cfgPath != "" {
		return fmt.Errorf("config file %s not found", cfgPath)
	}
	config.ApplyEnvConfig(cfg, changed)
	return cfg.Validate()
}

func newPersister(cfg config.Config) store.Persister {
	switch cfg.Backend {
	case config.BackendBolt:
		return boltstore.New(cfg.StorePath)
	case config.BackendMemory:
		return memstore.New()
	default:
		return jsonstore.New(cfg.StorePath)
	}
}

func runShell(cfg config.Config, log zerolog.Logger) error {
	p := newPersister(cfg)
	s := store.OpenOrNew(p, log)

	interactive := !cfg.Plain &&
		isatty.IsTerminal(os.Stdin.Fd()) &&
		isatty.IsTerminal(os.Stdout.Fd())

	var (
		reader   cli.LineReader
		selector cli.Selector
	)
	if interactive {
		reader = ui.NewPrompt(os.Stdin, os.Stdout)
		selector = ui.NewListSelector(os.Stdin, os.Stdout)
	} else {
		reader = ui.NewScannerReader(os.Stdin)
		selector = ui.NewPlainSelector(os.Stdout)
	}

	d := cli.NewDispatcher(s, p, cli.Options{
		Selector: selector,
		Out:      os.Stdout,
		ErrOut:   os.Stderr,
		Logger:   log,
	})

	if interactive {
		ui.Println(os.Stdout, welcome)
		cli.PrintHelp(os.Stdout)
	}

	err := cli.Run(reader, d)
	if errors.Is(err, cli.ErrInputClosed) {
		ui.Muted(os.Stderr, "Input closed; unsaved changes were discarded. Use `exit` to save.")
	}
	return err
}
