// Package paging pages lists with a human-friendly 1-based "start" query
// parameter. Backend collections arrive whole, so most lists page in
// memory with Window; the audit log pages in Mongo with Offset.
package paging

import (
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the default number of rows shown in paged lists.
const PageSize = 25

// ParseStart extracts the "start" query parameter (1-based index).
// Returns 1 if not present or invalid.
func ParseStart(r *http.Request) int {
	s := query.Get(r, "start")
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Range holds computed display values for one page of a list.
type Range struct {
	Total     int
	Start     int // 1-based index of the first row shown (0 if none)
	End       int // 1-based index of the last row shown (0 if none)
	HasPrev   bool
	HasNext   bool
	PrevStart int
	NextStart int
}

// ComputeRange calculates display values for a page beginning at start that
// shows shown rows out of total.
func ComputeRange(start, shown, total, pageSize int) Range {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	if shown == 0 {
		return Range{Total: total, PrevStart: 1, NextStart: 1}
	}
	prev := start - pageSize
	if prev < 1 {
		prev = 1
	}
	end := start + shown - 1
	return Range{
		Total:     total,
		Start:     start,
		End:       end,
		HasPrev:   start > 1,
		HasNext:   end < total,
		PrevStart: prev,
		NextStart: end + 1,
	}
}

// Window returns the page of rows beginning at the 1-based start. A start
// past the end snaps back to the last page.
func Window[T any](rows []T, start, pageSize int) ([]T, Range) {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	total := len(rows)
	if start < 1 {
		start = 1
	}
	if total == 0 {
		return rows[:0:0], ComputeRange(1, 0, 0, pageSize)
	}
	if start > total {
		start = ((total-1)/pageSize)*pageSize + 1
	}
	end := start - 1 + pageSize
	if end > total {
		end = total
	}
	page := rows[start-1 : end]
	return page, ComputeRange(start, len(page), total, pageSize)
}

// Offset converts a 1-based start into a skip count for a database query.
func Offset(start int) int64 {
	if start < 1 {
		return 0
	}
	return int64(start - 1)
}

// Query encodes the list's active filters as the prefix the shared pager
// template puts before "start=". Empty values are dropped; the result is
// empty or ends in "&", and is already URL-encoded.
func Query(filters url.Values) template.URL {
	clean := url.Values{}
	for k, vs := range filters {
		for _, v := range vs {
			if v != "" {
				clean.Add(k, v)
			}
		}
	}
	if len(clean) == 0 {
		return ""
	}
	return template.URL(clean.Encode() + "&")
}
