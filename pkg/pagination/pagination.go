package pagination

import (
	"encoding/json"

	"promptcraft/pkg/query"
)

// SortFields is []query.SortField with flexible JSON unmarshaling:
// clients may send either a compact string ("name,-created_at") or an
// array of SortField objects.
type SortFields []query.SortField

func (s *SortFields) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = query.ParseSortFields(str)
		return nil
	}

	var fields []query.SortField
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*s = fields
	return nil
}

// PageRequest is a client request for a page of data, with optional
// search text and sort order.
type PageRequest struct {
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
	Search   *string    `json:"search,omitempty"`
	Sort     SortFields `json:"sort,omitempty"`
}

// Normalize clamps page and page size into the configured bounds.
func (r *PageRequest) Normalize(cfg Config) {
	r.Page = max(r.Page, 1)
	if r.PageSize < 1 {
		r.PageSize = cfg.DefaultPageSize
	}
	r.PageSize = min(r.PageSize, cfg.MaxPageSize)
}

// FromOffset converts an offset/limit pair into a PageRequest, normalized
// against the config. Offsets that are not a whole multiple of the limit
// round down to the containing page.
func FromOffset(offset, limit int, cfg Config) PageRequest {
	req := PageRequest{PageSize: limit}
	req.Normalize(cfg)
	if offset > 0 {
		req.Page = offset/req.PageSize + 1
	}
	return req
}

// PageResult holds a page of data along with pagination metadata.
type PageResult[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// NewPageResult creates a PageResult with calculated total pages. Data
// is never nil so empty pages serialize as [].
func NewPageResult[T any](data []T, total, page, pageSize int) PageResult[T] {
	if data == nil {
		data = []T{}
	}

	return PageResult[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: max((total+pageSize-1)/pageSize, 1),
	}
}
