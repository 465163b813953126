package tenant

import "gorm.io/gorm"

// Scope restricts a query to rows owned by companyID.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return ScopeTable("", companyID)
}

// ScopeTable is Scope for queries that join several tables carrying a
// company_id column.
func ScopeTable(table, companyID string) func(db *gorm.DB) *gorm.DB {
	column := "company_id"
	if table != "" {
		column = table + ".company_id"
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", companyID)
	}
}
