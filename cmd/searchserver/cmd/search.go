package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/documents"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/server"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/tracker"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/paginator"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		statusName string
		pageSize   int
		format     string
	)
	cmd := &cobra.Command{
		Use:   "search QUERY...",
		Short: "Rank documents against one or more queries",
		Long: `Rank the corpus against each QUERY and print the top documents, split
into pages of --page-size results.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, ok := documents.ParseStatus(statusName)
			if !ok {
				return apperrors.Newf(apperrors.ErrInvalidConfig, "unknown status %q", statusName)
			}
			results := make([]queryResult, 0, len(args))
			for _, query := range args {
				docs, err := a.tracker.FindTopDocumentsByStatus(a.mode, query, status)
				if err != nil {
					return fmt.Errorf("query %q: %w", query, err)
				}
				p, err := paginator.New(docs, pageSize)
				if err != nil {
					return err
				}
				r := queryResult{Query: query, Pages: make([][]server.Document, 0, p.PageCount())}
				for page := range p.Pages() {
					r.Pages = append(r.Pages, page)
				}
				results = append(results, r)
			}
			if format == "yaml" {
				return writeYAML(cmd.OutOrStdout(), searchOutput{
					Results:          results,
					NoResultRequests: a.tracker.NoResultRequests(),
					Stats:            a.tracker.Stats(),
				})
			}
			writeResults(cmd.OutOrStdout(), results)
			fmt.Fprintf(cmd.OutOrStdout(), "requests without results: %d\n", a.tracker.NoResultRequests())
			return nil
		},
	}
	cmd.Flags().StringVar(&statusName, "status", documents.StatusActual.String(), "document status to search")
	cmd.Flags().IntVar(&pageSize, "page-size", 2, "results per page")
	cmd.Flags().StringVar(&format, "output", "text", "output format: text or yaml")
	return cmd
}

type queryResult struct {
	Query string              `yaml:"query"`
	Pages [][]server.Document `yaml:"pages"`
}

type searchOutput struct {
	Results          []queryResult `yaml:"results"`
	NoResultRequests int           `yaml:"no_result_requests"`
	Stats            tracker.Stats `yaml:"stats"`
}

func writeResults(w io.Writer, results []queryResult) {
	for _, r := range results {
		fmt.Fprintf(w, "query: %s\n", r.Query)
		if len(r.Pages) == 0 {
			fmt.Fprintln(w, "  no documents found")
			continue
		}
		for i, page := range r.Pages {
			fmt.Fprintf(w, "  page %d/%d\n", i+1, len(r.Pages))
			for _, doc := range page {
				fmt.Fprintf(w, "    %s\n", formatDocument(doc))
			}
		}
	}
}

func formatDocument(doc server.Document) string {
	return fmt.Sprintf("{ document_id = %d, relevance = %.6f, rating = %d }", doc.ID, doc.Relevance, doc.Rating)
}
