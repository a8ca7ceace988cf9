// Package paginator splits a slice into fixed-size pages.
package paginator

import (
	"iter"

	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

// Paginator hands out consecutive pages of items. It holds a single cursor:
// pages already returned by Next or Pages are not produced again.
type Paginator[T any] struct {
	items    []T
	pageSize int
	offset   int
}

// New returns a Paginator over items. The last page may be shorter than
// pageSize.
func New[T any](items []T, pageSize int) (*Paginator[T], error) {
	if pageSize < 1 {
		return nil, apperrors.Newf(apperrors.ErrInvalidPageSize, "page size %d", pageSize)
	}
	return &Paginator[T]{items: items, pageSize: pageSize}, nil
}

// Next returns the next page, or false once items are exhausted. Pages
// share the backing array of items.
func (p *Paginator[T]) Next() ([]T, bool) {
	if p.offset >= len(p.items) {
		return nil, false
	}
	end := min(p.offset+p.pageSize, len(p.items))
	page := p.items[p.offset:end:end]
	p.offset = end
	return page, true
}

// Pages yields the remaining pages, advancing the same cursor as Next.
func (p *Paginator[T]) Pages() iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for {
			page, ok := p.Next()
			if !ok || !yield(page) {
				return
			}
		}
	}
}

// PageCount is the total number of pages, regardless of the cursor.
func (p *Paginator[T]) PageCount() int {
	return (len(p.items) + p.pageSize - 1) / p.pageSize
}
