package main

import (
	"github.com/spf13/cobra"
	"md2gdocs/config"
	"md2gdocs/debug"
	"md2gdocs/markdown"
)

type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// app carries the state shared by every subcommand.
type app struct {
	info       BuildInfo
	configPath string
	debug      bool
	cfg        *config.Config
}

func newRootCommand(info BuildInfo) *cobra.Command {
	a := &app{info: info}

	root := &cobra.Command{
		Use:   "md2gdocs",
		Short: "Publish markdown files as Google Docs",
		Long: `md2gdocs compiles a small markdown dialect (headings, emphasis, lists,
block quotes, links, rules and tables) into Google Docs edit requests and
applies them to a new or existing document.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.load()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging on stderr")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to config file (default "+config.ConfigPath()+")")

	root.AddCommand(
		newAuthCommand(a),
		newPushCommand(a),
		newCompileCommand(a),
		newCheckCommand(a),
		newCommentsCommand(a),
		newHistoryCommand(a),
		newVersionCommand(a),
	)

	return root
}

func (a *app) load() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return configError(err)
	}
	if err := cfg.Validate(); err != nil {
		return configError(err)
	}

	a.cfg = cfg
	debug.Enabled = a.debug || cfg.Debug
	debug.Log("Loaded config (auth=%s, batch=%d)", cfg.AuthMode, cfg.BatchSize)
	return nil
}

func (a *app) compilerOptions() []markdown.Option {
	return []markdown.Option{
		markdown.WithQuoteIndent(a.cfg.QuoteIndentPt),
		markdown.WithStrikeStyle(markdown.StrikeStyle(a.cfg.StrikeStyle)),
		markdown.WithBlankLines(a.cfg.PreserveBlankLines),
	}
}
