package httpserver

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Cursor identifies a position in a created-at-ordered listing. None of
// the routes registered in this module paginate yet, so the helpers in
// this file have no caller outside their tests.
type Cursor struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
}

// EncodeCursor base64-encodes c for use as an opaque query parameter.
func EncodeCursor(c Cursor) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshaling cursor: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// DecodeCursor reverses EncodeCursor.
func DecodeCursor(s string) (Cursor, error) {
	var c Cursor
	b, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return c, fmt.Errorf("decoding cursor: %w", err)
	}
	if err := json.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("unmarshaling cursor: %w", err)
	}
	return c, nil
}

// CursorParams are the standard cursor-pagination query parameters.
type CursorParams struct {
	Cursor string
	Limit  int
}

// ParseCursorParams reads cursor/limit from the request's query string,
// defaulting and capping limit.
func ParseCursorParams(r *http.Request, defaultLimit, maxLimit int) CursorParams {
	q := r.URL.Query()
	limit := defaultLimit
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return CursorParams{Cursor: q.Get("cursor"), Limit: limit}
}

// CursorPage is the JSON envelope returned by cursor-paginated listings.
type CursorPage[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// OffsetParams are the standard offset-pagination query parameters.
type OffsetParams struct {
	Offset int
	Limit  int
}

// ParseOffsetParams reads offset/limit from the request's query string.
func ParseOffsetParams(r *http.Request, defaultLimit, maxLimit int) OffsetParams {
	q := r.URL.Query()
	limit := defaultLimit
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := 0
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return OffsetParams{Offset: offset, Limit: limit}
}

// OffsetPage is the JSON envelope returned by offset-paginated listings.
type OffsetPage[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
