package persistence

import (
	"strings"

	"gorm.io/gorm"

	"github.com/rosemer/ledger/internal/domain/shared"
)

// sortableColumns guards ORDER BY against arbitrary input. Callers may
// only sort on columns every ledger table actually has.
var sortableColumns = map[string]bool{
	"created_at":          true,
	"updated_at":          true,
	"item_name":           true,
	"transaction_id":      true,
	"transaction_date":    true,
	"entry_date_and_time": true,
	"name":                true,
	"contact":             true,
	"username":            true,
}

// applyFilter applies pagination and ordering from the filter to the query.
func applyFilter(query *gorm.DB, filter shared.Filter, defaultOrder string) *gorm.DB {
	orderBy := defaultOrder
	if filter.OrderBy != "" && sortableColumns[filter.OrderBy] {
		orderBy = filter.OrderBy
	}
	direction := "ASC"
	if strings.EqualFold(filter.OrderDir, "desc") {
		direction = "DESC"
	}
	query = query.Order(orderBy + " " + direction)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}
