package models

import (
	"bytes"
	"encoding/json"
)

// Page is the pagination envelope returned by list endpoints. Pages are 1-indexed.
type Page[T any] struct {
	Items       []T  `json:"items"`
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalItems  int  `json:"totalItems"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// NewPage derives the envelope fields from a total count.
func NewPage[T any](items []T, page, limit, totalItems int) Page[T] {
	if page < 1 {
		page = 1
	}
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if limit > 0 {
		totalPages = (totalItems + limit - 1) / limit
	}
	return Page[T]{
		Items:       items,
		Page:        page,
		Limit:       limit,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// pageEnvelope has Page's fields without its UnmarshalJSON method.
type pageEnvelope[T any] Page[T]

// UnmarshalJSON also accepts a bare array, which some endpoints return
// instead of the envelope.
func (p *Page[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*p = NewPage(items, 1, len(items), len(items))
		return nil
	}

	var env pageEnvelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	*p = Page[T](env)
	if p.Items == nil {
		p.Items = []T{}
	}
	return nil
}
