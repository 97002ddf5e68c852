package usecase

import (
	"math"

	"github.com/mapmark/pinpoint/internal/domain/contract"
)

const defaultPageSize = 20

// normalizePagination clamps page/limit into a usable range.
func normalizePagination(page, limit, maxLimit int) contract.Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return contract.Pagination{Page: page, PageSize: limit}
}

func buildPaginationMeta(p contract.Pagination, total int64) contract.PaginationMeta {
	totalPages := int(math.Ceil(float64(total) / float64(p.PageSize)))
	return contract.PaginationMeta{
		CurrentPage: p.Page,
		PageSize:    p.PageSize,
		TotalItems:  total,
		TotalPages:  totalPages,
		HasNext:     p.Page < totalPages,
		HasPrevious: p.Page > 1,
	}
}
