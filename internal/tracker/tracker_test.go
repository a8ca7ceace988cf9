package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/server"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/logger"
)

func newServer(t *testing.T) *server.Server {
	t.Helper()
	cfg := config.DefaultEngine()
	cfg.StopWords = []string{"and", "in", "at"}
	s, err := server.New(cfg, server.WithLogger(logger.Discard()))
	require.NoError(t, err)

	texts := []string{
		"curly cat curly tail",
		"curly dog and fancy collar",
		"big cat fancy collar",
		"big dog sparrow Eugene",
		"big dog sparrow Vasiliy",
	}
	for i, text := range texts {
		require.NoError(t, s.AddDocument(i+1, text, server.StatusActual, []int{1, 2, 3}))
	}
	return s
}

func TestNoResultRequestsSlidingWindow(t *testing.T) {
	tr := New(newServer(t))

	for range WindowSize - 1 {
		docs, err := tr.FindTopDocuments(server.Sequential, "empty request")
		require.NoError(t, err)
		require.Empty(t, docs)
	}
	assert.Equal(t, WindowSize-1, tr.NoResultRequests())

	_, err := tr.FindTopDocuments(server.Sequential, "curly dog")
	require.NoError(t, err)
	assert.Equal(t, WindowSize-1, tr.NoResultRequests())

	// Each further hit evicts one of the oldest empty requests.
	_, err = tr.FindTopDocumentsByStatus(server.Parallel, "big collar", server.StatusActual)
	require.NoError(t, err)
	_, err = tr.FindTopDocumentsWithPredicate(server.Sequential, "sparrow", nil)
	require.NoError(t, err)
	assert.Equal(t, WindowSize-3, tr.NoResultRequests())

	stats := tr.Stats()
	assert.Equal(t, int64(WindowSize+2), stats.TotalRequests)
	assert.Equal(t, WindowSize, stats.WindowRequests)
	assert.Equal(t, []QueryCount{{Query: "empty request", Count: WindowSize - 3}}, stats.ZeroResultQueries)
}

func TestFailedRequestsStayOutOfWindow(t *testing.T) {
	tr := New(newServer(t))

	_, err := tr.FindTopDocuments(server.Sequential, "--cat")
	assert.ErrorIs(t, err, apperrors.ErrDoubleMinus)
	_, err = tr.FindTopDocuments(server.Sequential, "unicorn")
	require.NoError(t, err)

	assert.Equal(t, 1, tr.NoResultRequests())
	stats := tr.Stats()
	assert.Equal(t, int64(2), stats.TotalRequests)
	assert.Equal(t, int64(1), stats.FailedRequests)
	assert.Equal(t, 1, stats.WindowRequests)
}

func TestWindowEvictsEmptyForEmpty(t *testing.T) {
	tr := New(newServer(t))
	for range WindowSize + 50 {
		_, err := tr.FindTopDocuments(server.Parallel, "unicorn")
		require.NoError(t, err)
	}
	assert.Equal(t, WindowSize, tr.NoResultRequests())

	for range WindowSize {
		_, err := tr.FindTopDocuments(server.Parallel, "cat")
		require.NoError(t, err)
	}
	assert.Zero(t, tr.NoResultRequests())
	assert.Empty(t, tr.Stats().ZeroResultQueries)
}

func TestTopN(t *testing.T) {
	got := topN(map[string]int{"b": 2, "a": 2, "c": 5, "d": 1}, 3)
	assert.Equal(t, []QueryCount{{"c", 5}, {"a", 2}, {"b", 2}}, got)
}
