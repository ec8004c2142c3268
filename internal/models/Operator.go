// internal/models/operator.go
package models

import (
	"gorm.io/gorm"
)

// Operator represents a bus company account. Operators are the only
// account type allowed to create, update or delete routes, and every
// route they create carries their ID as its immutable owner.
type Operator struct {
	gorm.Model

	CompanyName  string `json:"company_name" binding:"required"`
	TaxID        string `gorm:"unique" json:"tax_id" binding:"required"`
	ContactEmail string `gorm:"unique;not null" json:"contact_email" binding:"required,email"`
	Password     string `json:"-"`
}
