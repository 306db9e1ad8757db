package query

import (
	"strconv"

	"github.com/stackwise/catalog-api/internal/apierr"
)

const (
	DefaultOffset = 0
	DefaultLimit  = 10
)

type Pagination struct {
	Offset int
	Limit  int
}

// ParsePagination normalizes raw offset/limit query values. Empty values take
// the defaults; anything non-integer, a negative offset, or a limit below 1
// is rejected.
func ParsePagination(offsetStr, limitStr string) (Pagination, error) {
	p := Pagination{Offset: DefaultOffset, Limit: DefaultLimit}

	if offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return p, apierr.BadRequest("offset must be an integer: %q", offsetStr)
		}
		if offset < 0 {
			return p, apierr.BadRequest("offset must not be negative: %d", offset)
		}
		p.Offset = offset
	}

	if limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return p, apierr.BadRequest("limit must be an integer: %q", limitStr)
		}
		if limit < 1 {
			return p, apierr.BadRequest("limit must be at least 1: %d", limit)
		}
		p.Limit = limit
	}

	return p, nil
}

type Metadata struct {
	Total int64 `json:"total"`
}

// Paginated is one page of results plus the total count of matching rows
// before offset/limit were applied.
type Paginated[T any] struct {
	Data []T      `json:"data"`
	Meta Metadata `json:"meta"`
}

func NewPaginated[T any](data []T, total int64) Paginated[T] {
	if data == nil {
		data = []T{}
	}
	return Paginated[T]{Data: data, Meta: Metadata{Total: total}}
}
