package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
)

func newMetricsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics [QUERY...]",
		Short: "Run queries and print metrics in the Prometheus text format",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.registry == nil {
				return apperrors.New(apperrors.ErrInvalidConfig, "metrics are disabled in the configuration")
			}
			for _, query := range args {
				if _, err := a.tracker.FindTopDocuments(a.mode, query); err != nil {
					return fmt.Errorf("query %q: %w", query, err)
				}
			}
			return metrics.Dump(cmd.OutOrStdout(), a.registry)
		},
	}
}
