// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered in the API response envelope.
//
// # Backpressure
//
// Every page item fans out into several enrichment lookups (owner, counts,
// viewer flags), so [MaxLimit] bounds the worst-case work per request.
package pagination

import (
	"math"
	"net/http"

	"github.com/taibuivan/vidora/pkg/convert"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 10
	// MaxLimit is the upper bound for items per page.
	MaxLimit = 50
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
	// MaxPage bounds page so the derived offset always fits a 32-bit OFFSET.
	MaxPage = math.MaxInt32/MaxLimit + 1
)

// Params holds the normalized page window.
type Params struct {
	Page  int
	Limit int
	Skip  int
}

// Offset returns the SQL OFFSET value derived from [Page] and [Limit].
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Normalize converts raw page/limit inputs into a safe window.
//
// # Rules
//
//   - Missing or non-numeric values fall back to [DefaultPage] / [DefaultLimit].
//   - page < 1 becomes 1; page > [MaxPage] saturates at [MaxPage], which is
//     still a window past the end of any real listing.
//   - limit < 1 becomes [DefaultLimit]; limit > [MaxLimit] is clamped to [MaxLimit].
func Normalize(pageRaw, limitRaw string) Params {
	page := convert.ToIntD(pageRaw, DefaultPage)
	limit := convert.ToIntD(limitRaw, DefaultLimit)

	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}

	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	params := Params{Page: page, Limit: limit}
	params.Skip = params.Offset()
	return params
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()
	return Normalize(query.Get("page"), query.Get("limit"))
}

// # Envelopes

// Page is a window of items plus the size of the whole matching set.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// NewPage builds a [Page] for the given window. A nil slice becomes empty so
// the envelope always serializes "items": [].
func NewPage[T any](items []T, total int, params Params) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Total: total, Page: params.Page, Limit: params.Limit}
}

// MapPage projects every item of a page, keeping total and window intact.
func MapPage[T any, U any](page Page[T], project func(T) U) Page[U] {
	items := make([]U, len(page.Items))
	for i, item := range page.Items {
		items[i] = project(item)
	}
	return Page[U]{Items: items, Total: page.Total, Page: page.Page, Limit: page.Limit}
}

// Meta returns the response metadata block for the page.
func (p Page[T]) Meta() Meta {
	return NewMeta(p.Page, p.Limit, p.Total)
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata for a response.
//
// It automatically calculates the TotalPages based on the total count and limit.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
