package dto

import "testing"

func TestToFilterPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		pageSize   int
		wantOffset int
		wantLimit  int
	}{
		{"defaults", 0, 0, 0, 10},
		{"explicit page", 3, 20, 40, 20},
		{"negative page clamped", -1, 20, 0, 20},
		// An oversized page size falls back to the same default the
		// usecase enforces, so offset and limit stay in step with the
		// rows actually returned.
		{"oversized page size", 2, 500, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := StockListRequest{Page: tt.page, PageSize: tt.pageSize}
			filter := req.ToFilter()
			if filter.Offset != tt.wantOffset {
				t.Errorf("offset = %d, want %d", filter.Offset, tt.wantOffset)
			}
			if filter.Limit != tt.wantLimit {
				t.Errorf("limit = %d, want %d", filter.Limit, tt.wantLimit)
			}
		})
	}
}
