package main

import (
	"log"
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// seedCatalog populates the catalog with sample data for local
// development. It is idempotent against a database that already has
// the seed categories.
func seedCatalog(categories repositories.CategoryRepository, products repositories.ProductRepository, reviews repositories.ReviewRepository) {
	if existing, err := categories.GetBySlug("audio"); err == nil && existing != nil {
		return
	}

	cats := []models.Category{
		{ID: "11111111-1111-1111-1111-111111111111", Name: "Audio", Slug: "audio", Description: "Headphones, speakers and everything that makes noise", ImageURL: "/images/categories/audio.jpg"},
		{ID: "22222222-2222-2222-2222-222222222222", Name: "Wearables", Slug: "wearables", Description: "Watches and trackers", ImageURL: "/images/categories/wearables.jpg"},
		{ID: "33333333-3333-3333-3333-333333333333", Name: "Smart Home", Slug: "smart-home", Description: "Devices for a connected home", ImageURL: "/images/categories/smart-home.jpg"},
	}
	for i := range cats {
		if err := categories.Create(&cats[i]); err != nil {
			log.Printf("Error seeding category %s: %v", cats[i].Name, err)
		}
	}

	prods := []models.Product{
		{
			ID:              "aaaaaaa1-0000-0000-0000-000000000001",
			Name:            "Nimbus Wireless Headphones",
			Description:     "Over-ear wireless headphones with active noise cancelling",
			LongDescription: "Forty hours of battery, multipoint pairing and a carry case. The drivers are tuned for a warm, slightly bass-forward signature.",
			Price:           decimal.NewFromFloat(199.99),
			ImageURL:        "/images/products/nimbus.jpg",
			CategoryID:      cats[0].ID,
			InStock:         true,
			IsFeatured:      true,
			Specifications: []models.Specification{
				{Label: "Battery life", Value: "40 hours"},
				{Label: "Weight", Value: "254 g"},
				{Label: "Bluetooth", Value: "5.3"},
			},
		},
		{
			ID:          "aaaaaaa1-0000-0000-0000-000000000002",
			Name:        "Brick Portable Speaker",
			Description: "Pocket-sized waterproof speaker",
			Price:       decimal.NewFromFloat(59.00),
			ImageURL:    "/images/products/brick.jpg",
			CategoryID:  cats[0].ID,
			InStock:     true,
			IsNew:       true,
		},
		{
			ID:          "aaaaaaa1-0000-0000-0000-000000000003",
			Name:        "Pulse Fitness Watch",
			Description: "Heart rate, sleep and GPS tracking with a week of battery",
			Price:       decimal.NewFromFloat(149.50),
			ImageURL:    "/images/products/pulse.jpg",
			CategoryID:  cats[1].ID,
			InStock:     true,
			IsFeatured:  true,
			IsNew:       true,
		},
		{
			ID:          "aaaaaaa1-0000-0000-0000-000000000004",
			Name:        "Halo Smart Bulb",
			Description: "Dimmable color bulb controlled over WiFi",
			Price:       decimal.NewFromFloat(24.99),
			ImageURL:    "/images/products/halo.jpg",
			CategoryID:  cats[2].ID,
			InStock:     false,
		},
	}
	for i := range prods {
		if err := products.Create(&prods[i]); err != nil {
			log.Printf("Error seeding product %s: %v", prods[i].Name, err)
		}
	}

	variants := []models.ProductVariant{
		{ProductID: prods[0].ID, Name: "Midnight Black", InStock: true},
		{ProductID: prods[0].ID, Name: "Fog Grey", InStock: true},
		{ProductID: prods[2].ID, Name: "40mm", InStock: true},
		{ProductID: prods[2].ID, Name: "44mm", InStock: false},
	}
	for i := range variants {
		if err := products.CreateVariant(&variants[i]); err != nil {
			log.Printf("Error seeding variant %s: %v", variants[i].Name, err)
		}
	}

	seedReviews := []models.Review{
		{ProductID: prods[0].ID, UserID: "seed-user", Rating: 5, Text: "Best headphones I have owned.", CreatedAt: time.Now().AddDate(0, 0, -20)},
		{ProductID: prods[0].ID, UserID: "seed-user", Rating: 4, Text: "Great sound, case is a bit bulky.", CreatedAt: time.Now().AddDate(0, 0, -5)},
		{ProductID: prods[2].ID, UserID: "seed-user", Rating: 4, Text: "Battery really does last a week.", CreatedAt: time.Now().AddDate(0, 0, -2)},
	}
	for i := range seedReviews {
		if err := reviews.Create(&seedReviews[i]); err != nil {
			log.Printf("Error seeding review: %v", err)
		}
	}

	log.Printf("Seeded %d categories and %d products", len(cats), len(prods))
}
