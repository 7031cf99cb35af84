package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/amrelfalogy/smarted/internal/app/models/dto"
)

func TestQuerySkipsUnsetFilters(t *testing.T) {
	active := false
	q := NewQuery().
		Int("page", 2).
		Int("limit", 0).
		String("search", "").
		String("status", "pending").
		Bool("isActive", &active).
		Bool("isFree", nil)

	assert.Equal(t, "isActive=false&page=2&status=pending", q.Encode())
	assert.Equal(t, "/api/payments?isActive=false&page=2&status=pending", WithQuery("/api/payments", q))
	assert.Equal(t, "/api/payments", WithQuery("/api/payments", NewQuery().String("search", "")))
}

func TestPaginationForArray(t *testing.T) {
	assert.Equal(t, dto.PaginationInfo{Page: 3, Limit: 10}, PaginationForArray(2, 3, 10))
	assert.Equal(t, dto.PaginationInfo{Page: 1, Limit: 5}, PaginationForArray(5, 0, 5))
	assert.Equal(t, dto.PaginationInfo{Page: 1, TotalPages: 1, TotalItems: 4, Limit: 5}, PaginationForArray(4, 0, 5))
	assert.Equal(t, dto.PaginationInfo{Page: 1, TotalPages: 1, TotalItems: 25, Limit: 25}, PaginationForArray(25, 0, 0))
	assert.Equal(t, dto.PaginationInfo{Page: 1, TotalPages: 1}, PaginationForArray(0, 0, 0))
}

func TestPageWindow(t *testing.T) {
	first, last := PageWindow(dto.PaginationInfo{Page: 3, Limit: 10, TotalItems: 25, TotalPages: 3})
	assert.Equal(t, 21, first)
	assert.Equal(t, 25, last)

	first, last = PageWindow(dto.PaginationInfo{Page: 1, Limit: 10})
	assert.Zero(t, first)
	assert.Zero(t, last)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 25, Percentage(50, 200))
	assert.Equal(t, 100, Percentage(200, 200))
	assert.Equal(t, 33, Percentage(1, 3))
	assert.Equal(t, 67, Percentage(2, 3))
	assert.Equal(t, 0, Percentage(0, 0))
	assert.Equal(t, 0, Percentage(10, -1))
	assert.Equal(t, 100, ClampPercent(140))
}

func TestFormatting(t *testing.T) {
	ts := time.Date(2026, 3, 9, 14, 5, 0, 0, time.UTC)
	assert.Equal(t, "Mar 9, 2026", FormatDate(ts))
	assert.Equal(t, "-", FormatDate(time.Time{}))
	assert.Equal(t, "Mar 9, 2026 14:05", FormatDateTime(&ts))
	assert.Equal(t, "-", FormatDateTime(nil))
	assert.Equal(t, "4:05", FormatSeconds(245))
	assert.Equal(t, "1:01:01", FormatSeconds(3661))
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.5 MiB", FormatBytes(1572864))
	assert.Equal(t, "150.00 EGP", FormatAmount(150, "EGP"))
	assert.Equal(t, 90*time.Second, ParseDuration("1m30s", time.Second))
	assert.Equal(t, time.Second, ParseDuration("soon", time.Second))
}
