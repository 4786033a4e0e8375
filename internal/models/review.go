package models

import "time"

// Review is a user rating of a product. Reviews are append-only in
// this scope and read newest-first.
type Review struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string    `json:"productId" gorm:"index;type:varchar(36)" validate:"required"`
	UserID    string    `json:"userId" gorm:"type:varchar(36)" validate:"required"`
	Rating    int       `json:"rating" validate:"required,gte=1,lte=5"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewWithAuthor decorates a review with the display name of its
// author for product detail pages.
type ReviewWithAuthor struct {
	Review
	Author string `json:"author"`
	Date   string `json:"date"`
}
