// Package handlers holds the Gin HTTP handlers. Handlers bind and
// validate input, call a service, and write the uniform envelope; all
// status-code decisions live in response.FromError.
package handlers

import (
	"net/url"

	"github.com/devtrails/campdirect/internal/query"
	"github.com/devtrails/campdirect/pkg/response"
)

// paginationMeta derives next/prev links from the executed query spec
// and the unpaginated total.
func paginationMeta(spec *query.Spec, total int) *response.Pagination {
	p := &response.Pagination{}
	if spec.Page*spec.Limit < total {
		p.Next = &response.Page{Page: spec.Page + 1, Limit: spec.Limit}
	}
	if spec.Page > 1 {
		p.Prev = &response.Page{Page: spec.Page - 1, Limit: spec.Limit}
	}
	if p.Next == nil && p.Prev == nil {
		return nil
	}
	return p
}

func parseQuery(values url.Values) *query.Spec {
	return query.Parse(values)
}
