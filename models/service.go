package models

import "time"

// ServiceCategory groups services for browsing.
type ServiceCategory string

const (
	CategoryCleaning    ServiceCategory = "cleaning"
	CategoryPlumbing    ServiceCategory = "plumbing"
	CategoryElectrical  ServiceCategory = "electrical"
	CategoryPainting    ServiceCategory = "painting"
	CategoryCarpentry   ServiceCategory = "carpentry"
	CategoryGardening   ServiceCategory = "gardening"
	CategoryAppliance   ServiceCategory = "appliance"
	CategoryMoving      ServiceCategory = "moving"
	CategoryPestControl ServiceCategory = "pest_control"
	CategoryOther       ServiceCategory = "other"
)

// Service is a bookable offering in the catalog.
type Service struct {
	ID           string          `bson:"id" json:"id"`
	Name         string          `bson:"name" json:"name"`
	Description  string          `bson:"description" json:"description"`
	Category     ServiceCategory `bson:"category" json:"category"`
	Price        float64         `bson:"price" json:"price"`
	PriceUnit    string          `bson:"price_unit" json:"priceUnit"` // "hour", "fixed" or "sqft"
	Duration     int             `bson:"duration" json:"duration"`    // minutes
	Rating       float64         `bson:"rating" json:"rating"`
	TotalReviews int             `bson:"total_reviews" json:"totalReviews"`
	Features     []string        `bson:"features,omitempty" json:"features,omitempty"`
	Available    bool            `bson:"available" json:"available"`
	CreatedAt    time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `bson:"updated_at" json:"updated_at"`
}
