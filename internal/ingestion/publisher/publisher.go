// Package publisher feeds validated corpus entries into a search server.
package publisher

import (
	"log/slog"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/documents"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/ingestion"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/ingestion/validator"
)

// Indexer is satisfied by *server.Server.
type Indexer interface {
	AddDocument(id int, text string, status documents.Status, ratings []int) error
}

type Publisher struct {
	indexer Indexer
	logger  *slog.Logger
}

func New(indexer Indexer) *Publisher {
	return &Publisher{
		indexer: indexer,
		logger:  slog.Default().With("component", "publisher"),
	}
}

// Ingest adds every entry of c in file order. A rejected entry is logged
// and recorded in the report; ingestion continues with the next one.
func (p *Publisher) Ingest(c *ingestion.Corpus) ingestion.Report {
	var report ingestion.Report
	for i := range c.Documents {
		e := &c.Documents[i]
		status, err := validator.ValidateEntry(e)
		if err == nil {
			err = p.indexer.AddDocument(e.ID, e.Text, status, e.Ratings)
		}
		if err != nil {
			p.logger.Warn("document rejected", "doc_id", e.ID, "error", err)
			report.Rejected = append(report.Rejected, ingestion.Rejection{ID: e.ID, Reason: err.Error()})
			continue
		}
		report.Indexed++
	}
	p.logger.Info("corpus ingested",
		"indexed", report.Indexed,
		"rejected", len(report.Rejected),
	)
	return report
}
