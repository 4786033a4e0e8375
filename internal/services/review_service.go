package services

import (
	"errors"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// DefaultReviewMinLength is the minimum review text length when no
// policy is configured.
const DefaultReviewMinLength = 3

// ReviewService accepts new product reviews and serves them annotated
// with author information.
type ReviewService struct {
	productRepo repositories.ProductRepository
	reviewRepo  repositories.ReviewRepository
	userRepo    repositories.UserRepository
	minTextLen  int
}

// NewReviewService creates a new ReviewService. minTextLen <= 0 falls
// back to the default policy.
func NewReviewService(productRepo repositories.ProductRepository, reviewRepo repositories.ReviewRepository, userRepo repositories.UserRepository, minTextLen int) *ReviewService {
	if minTextLen <= 0 {
		minTextLen = DefaultReviewMinLength
	}
	return &ReviewService{
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
		userRepo:    userRepo,
		minTextLen:  minTextLen,
	}
}

// AddReview validates and appends a review for a product. The product
// must exist, the rating must be 1..5 and the text must meet the
// minimum length. No aggregate is updated on the product itself; the
// average rating is derived on read.
func (s *ReviewService) AddReview(productID, userID string, rating int, text string) (*models.Review, error) {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return nil, err
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if len(text) < s.minTextLen {
		return nil, fmt.Errorf("%w: review text must be at least %d characters", ErrValidation, s.minTextLen)
	}

	review := &models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Text:      text,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

// ListForProduct returns a product's reviews newest-first, each
// annotated with the author's display name. A missing or deleted
// author reads as "Anonymous".
func (s *ReviewService) ListForProduct(productID string) ([]models.ReviewWithAuthor, error) {
	reviews, err := s.reviewRepo.GetByProduct(productID)
	if err != nil {
		return nil, err
	}

	annotated := make([]models.ReviewWithAuthor, 0, len(reviews))
	for _, review := range reviews {
		author := "Anonymous"
		if user, err := s.userRepo.GetByID(review.UserID); err == nil && user.Name != "" {
			author = user.Name
		} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		annotated = append(annotated, models.ReviewWithAuthor{
			Review: review,
			Author: author,
			Date:   review.CreatedAt.Format("Jan 2, 2006"),
		})
	}
	return annotated, nil
}

// AverageRating derives the mean rating at read time. An empty review
// set means "no rating", not zero.
func AverageRating(reviews []models.Review) *float64 {
	if len(reviews) == 0 {
		return nil
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return &avg
}
