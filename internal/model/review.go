package model

import "github.com/google/uuid"

// Review is a customer's rating and comment on a medicine
type Review struct {
	BaseModel
	MedicineID uuid.UUID `gorm:"type:uuid;not null;index" json:"medicine_id" validate:"uuid_required"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer   *User     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Rating     int       `gorm:"not null" json:"rating" validate:"required,gte=1,lte=5"`
	Comment    string    `gorm:"type:text;not null" json:"comment" validate:"required"`
}

// ReviewStats aggregates the reviews of one medicine
type ReviewStats struct {
	MedicineID         uuid.UUID        `json:"medicine_id"`
	TotalReviews       int64            `json:"total_reviews"`
	AverageRating      float64          `json:"average_rating"` // rounded to 1 decimal
	RatingDistribution map[string]int64 `json:"rating_distribution"`
}
