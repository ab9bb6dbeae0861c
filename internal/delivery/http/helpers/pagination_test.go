package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventregistration/internal/domain"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    domain.PaginationParams
		wantErr string
	}{
		{name: "defaults", query: "", want: domain.PaginationParams{Page: 1, PageSize: 20}},
		{name: "explicit", query: "?page=3&page_size=5", want: domain.PaginationParams{Page: 3, PageSize: 5}},
		{name: "page size capped", query: "?page_size=500", want: domain.PaginationParams{Page: 1, PageSize: MaxPageSize}},
		{name: "zero page", query: "?page=0", wantErr: "page must be a positive integer"},
		{name: "negative page size", query: "?page_size=-1", wantErr: "page_size must be a positive integer"},
		{name: "not a number", query: "?page=two", wantErr: "page must be a positive integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/admin/occurrences/x/registrations"+tt.query, nil)
			got, err := ParsePagination(r)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewPaginationMeta(t *testing.T) {
	assert.Equal(t, PaginationMeta{Page: 2, PageSize: 10, Total: 21, TotalPages: 3},
		NewPaginationMeta(domain.PaginationParams{Page: 2, PageSize: 10}, 21))
	assert.Equal(t, PaginationMeta{Page: 1, PageSize: 20, Total: 0, TotalPages: 0},
		NewPaginationMeta(domain.PaginationParams{Page: 1, PageSize: 20}, 0))
	assert.Zero(t, NewPaginationMeta(domain.PaginationParams{}, 5).TotalPages)
}
