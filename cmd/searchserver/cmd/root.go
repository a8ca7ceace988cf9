// Package cmd provides the CLI commands for searchserver.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/ingestion"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/ingestion/publisher"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/server"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/tracker"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/logger"
)

// app is the state shared by every subcommand, built once the persistent
// flags are parsed.
type app struct {
	configPath string
	corpusPath string
	modeName   string

	cfg      *config.Config
	mode     server.Mode
	registry *prometheus.Registry
	server   *server.Server
	tracker  *tracker.Tracker
	report   ingestion.Report
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return apperrors.ExitCode(err)
	}
	return apperrors.ExitOK
}

// NewRootCmd creates the root command for the searchserver CLI.
func NewRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "searchserver",
		Short: "TF-IDF document search over a YAML corpus",
		Long: `searchserver indexes the documents of a corpus file in memory and
answers ranked queries, per-document matches and health checks against them.

Queries are space-separated words. A word prefixed with '-' excludes every
document containing it.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return apperrors.New(apperrors.ErrInvalidConfig, err.Error())
	})

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to config file")
	cmd.PersistentFlags().StringVar(&a.corpusPath, "corpus", "", "path to corpus file")
	cmd.PersistentFlags().StringVar(&a.modeName, "mode", "sequential", "execution mode: sequential or parallel")

	cmd.AddCommand(
		newSearchCmd(a),
		newMatchCmd(a),
		newIDsCmd(a),
		newCheckCmd(a),
		newMetricsCmd(a),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	mode, err := parseMode(a.modeName)
	if err != nil {
		return err
	}
	a.mode = mode

	opts := []server.Option{server.WithLogger(logger.WithComponent("search-server"))}
	if cfg.Metrics.Enabled {
		a.registry = prometheus.NewRegistry()
		opts = append(opts, server.WithRegisterer(a.registry))
	}
	s, err := server.New(cfg.Engine, opts...)
	if err != nil {
		return err
	}
	a.server = s
	a.tracker = tracker.New(s)

	if a.corpusPath != "" {
		corpus, err := ingestion.Load(a.corpusPath)
		if err != nil {
			return err
		}
		a.report = publisher.New(s).Ingest(corpus)
	}
	slog.Debug("cli ready",
		"command", cmd.Name(),
		"mode", mode.String(),
		"documents", s.DocumentCount(),
	)
	return nil
}

func parseMode(name string) (server.Mode, error) {
	switch name {
	case "sequential", "seq":
		return server.Sequential, nil
	case "parallel", "par":
		return server.Parallel, nil
	default:
		return 0, apperrors.Newf(apperrors.ErrInvalidConfig, "unknown mode %q", name)
	}
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return enc.Close()
}
