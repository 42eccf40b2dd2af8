package http

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagination(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/donations", nil)
		page, pageSize := pagination(r)
		assert.Equal(t, int32(1), page)
		assert.Equal(t, int32(20), pageSize)
	})

	t.Run("Explicit Values", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/donations?page=3&page_size=50", nil)
		page, pageSize := pagination(r)
		assert.Equal(t, int32(3), page)
		assert.Equal(t, int32(50), pageSize)
	})

	t.Run("Page Size Capped", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/donations?page_size=500", nil)
		_, pageSize := pagination(r)
		assert.Equal(t, int32(20), pageSize)
	})

	t.Run("Non-Positive Ignored", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/donations?page=0&page_size=-5", nil)
		page, pageSize := pagination(r)
		assert.Equal(t, int32(1), page)
		assert.Equal(t, int32(20), pageSize)
	})

	t.Run("Overflowing Page Falls Back To Default", func(t *testing.T) {
		// 2^31+1 must not wrap into a negative int32 offset
		r := httptest.NewRequest("GET", "/donations?page=2147483649", nil)
		page, _ := pagination(r)
		assert.Equal(t, int32(1), page)
	})
}
