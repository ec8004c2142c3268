package models

import "gorm.io/gorm"

// GeocodePlace caches one geocoder answer per full address so repeated
// enrichment of the same streets does not hit the external service again.
// Misses are cached too (Found=false) since an address that did not
// resolve yesterday will not resolve today either.
type GeocodePlace struct {
	gorm.Model
	Address string  `gorm:"uniqueIndex" json:"address"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Found   bool    `json:"found"`
}
