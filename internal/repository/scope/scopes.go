package scope

import "gorm.io/gorm"

// OrderByGradedDesc lists scoring attempts newest grading first.
func OrderByGradedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("graded_at DESC")
}

// OrderByCreatedDesc lists records newest first.
func OrderByCreatedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}
