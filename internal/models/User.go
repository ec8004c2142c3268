package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// User is a rider account. Riders never own or mutate routes; the only
// state they carry besides credentials is a list of favourite route IDs.
type User struct {
	gorm.Model
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Email    string `json:"email" gorm:"unique"`
	Password string `json:"-"`

	// SavedRoutes holds route IDs the rider bookmarked.
	SavedRoutes pq.StringArray `json:"saved_routes" gorm:"type:text[]"`
}
