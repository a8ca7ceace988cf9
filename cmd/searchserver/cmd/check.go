package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/ingestion"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/health"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify index consistency and report corpus ingestion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			checker := health.NewChecker()
			a.server.RegisterChecks(checker)
			report := checker.Run(cmd.Context())

			err := writeYAML(cmd.OutOrStdout(), struct {
				Health    health.Report    `yaml:"health"`
				Ingestion ingestion.Report `yaml:"ingestion"`
				StopWords []string         `yaml:"stop_words"`
			}{report, a.report, a.server.StopWords()})
			if err != nil {
				return err
			}
			if report.Status != health.StatusDown {
				return nil
			}
			return fmt.Errorf("health check failed: %s down", strings.Join(downComponents(report), ", "))
		},
	}
}

// downComponents lists the failing components in name order.
func downComponents(report health.Report) []string {
	var down []string
	for _, name := range report.Names() {
		if report.Components[name].Status == health.StatusDown {
			down = append(down, name)
		}
	}
	return down
}
