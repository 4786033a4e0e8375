package services_test

import (
	"testing"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newReviewService(products *MockProductRepository, reviews *MockReviewRepository, users *MockUserRepository) *services.ReviewService {
	return services.NewReviewService(products, reviews, users, services.DefaultReviewMinLength)
}

func TestReviewService_AddReview(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockReviews := new(MockReviewRepository)
	mockUsers := new(MockUserRepository)
	service := newReviewService(mockProducts, mockReviews, mockUsers)

	mockProducts.On("GetByID", "prod-1").Return(&models.Product{ID: "prod-1"}, nil).Once()
	mockReviews.On("Create", mock.AnythingOfType("*models.Review")).Return(nil).Once()

	review, err := service.AddReview("prod-1", "user-1", 4, "Great sound for the price.")

	assert.NoError(t, err)
	assert.Equal(t, "prod-1", review.ProductID)
	assert.Equal(t, "user-1", review.UserID)
	assert.Equal(t, 4, review.Rating)
	mockProducts.AssertExpectations(t)
	mockReviews.AssertExpectations(t)
}

func TestReviewService_AddReview_Rejections(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockReviews := new(MockReviewRepository)
	mockUsers := new(MockUserRepository)
	service := newReviewService(mockProducts, mockReviews, mockUsers)

	// Unknown product propagates the not-found error.
	mockProducts.On("GetByID", "missing").Return(nil, repositories.ErrNotFound).Once()
	review, err := service.AddReview("missing", "user-1", 4, "Nice enough.")
	assert.Nil(t, review)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	// Out-of-range ratings and short text are rejected before any write.
	mockProducts.On("GetByID", "prod-1").Return(&models.Product{ID: "prod-1"}, nil).Times(3)

	for _, rating := range []int{0, 6} {
		review, err = service.AddReview("prod-1", "user-1", rating, "Fine product.")
		assert.Nil(t, review)
		assert.ErrorIs(t, err, services.ErrValidation)
	}

	review, err = service.AddReview("prod-1", "user-1", 4, "ok")
	assert.Nil(t, review)
	assert.ErrorIs(t, err, services.ErrValidation)

	mockReviews.AssertNotCalled(t, "Create", mock.Anything)
}

func TestReviewService_ListForProduct(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockReviews := new(MockReviewRepository)
	mockUsers := new(MockUserRepository)
	service := newReviewService(mockProducts, mockReviews, mockUsers)

	created := time.Date(2026, time.March, 9, 12, 0, 0, 0, time.UTC)
	mockReviews.On("GetByProduct", "prod-1").Return([]models.Review{
		{ID: "r2", ProductID: "prod-1", UserID: "user-2", Rating: 4, CreatedAt: created},
		{ID: "r1", ProductID: "prod-1", UserID: "ghost", Rating: 5, CreatedAt: created},
	}, nil).Once()
	mockUsers.On("GetByID", "user-2").Return(&models.User{ID: "user-2", Name: "Dana"}, nil).Once()
	mockUsers.On("GetByID", "ghost").Return(nil, repositories.ErrNotFound).Once()

	annotated, err := service.ListForProduct("prod-1")

	assert.NoError(t, err)
	assert.Len(t, annotated, 2)
	assert.Equal(t, "Dana", annotated[0].Author)
	assert.Equal(t, "Mar 9, 2026", annotated[0].Date)
	assert.Equal(t, "Anonymous", annotated[1].Author)
	mockUsers.AssertExpectations(t)
}

func TestAverageRating(t *testing.T) {
	avg := services.AverageRating([]models.Review{
		{Rating: 5}, {Rating: 4}, {Rating: 3},
	})
	assert.NotNil(t, avg)
	assert.Equal(t, 4.0, *avg)

	assert.Nil(t, services.AverageRating(nil))
	assert.Nil(t, services.AverageRating([]models.Review{}))
}
