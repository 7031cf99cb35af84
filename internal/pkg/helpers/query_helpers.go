package helpers

import (
	"net/url"
	"strconv"
)

// Query collects list filters into URL query values. Unset inputs
// (zero ints, empty strings, nil pointers) are skipped so the backend
// never sees empty or null placeholders.
type Query struct {
	values url.Values
}

// NewQuery creates an empty Query
func NewQuery() *Query {
	return &Query{values: url.Values{}}
}

// String adds key when v is non-empty.
func (q *Query) String(key, v string) *Query {
	if v != "" {
		q.values.Set(key, v)
	}
	return q
}

// Int adds key when v is positive. Page numbers, limits and ids are all 1-based.
func (q *Query) Int(key string, v int) *Query {
	if v > 0 {
		q.values.Set(key, strconv.Itoa(v))
	}
	return q
}

// Bool adds key when v is set.
func (q *Query) Bool(key string, v *bool) *Query {
	if v != nil {
		q.values.Set(key, strconv.FormatBool(*v))
	}
	return q
}

// Values returns the collected values
func (q *Query) Values() url.Values {
	return q.values
}

// Encode renders the query string without the leading '?'
func (q *Query) Encode() string {
	return q.values.Encode()
}

// WithQuery appends the encoded query to path when it is not empty.
func WithQuery(path string, q *Query) string {
	if q == nil || len(q.values) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
