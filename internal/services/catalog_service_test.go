package services_test

import (
	"testing"

	"storefront/internal/catalog"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCatalogService(products *MockProductRepository, categories *MockCategoryRepository, reviews *MockReviewRepository, users *MockUserRepository) *services.CatalogService {
	reviewService := services.NewReviewService(products, reviews, users, services.DefaultReviewMinLength)
	return services.NewCatalogService(products, categories, reviews, reviewService)
}

func TestCatalogService_ListProducts(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	mockReviews := new(MockReviewRepository)
	mockUsers := new(MockUserRepository)
	service := newCatalogService(mockProducts, mockCategories, mockReviews, mockUsers)

	filter := catalog.Filter{Category: "audio", SortBy: catalog.SortPriceAsc}
	mockProducts.On("GetAll", filter).Return([]models.Product{
		{ID: "p1", Name: "Brick Portable Speaker", Price: decimal.NewFromFloat(59.00)},
		{ID: "p2", Name: "Nimbus Wireless Headphones", Price: decimal.NewFromFloat(199.99)},
	}, nil).Once()
	mockProducts.On("GetVariants", "p1").Return([]models.ProductVariant{}, nil).Once()
	mockProducts.On("GetVariants", "p2").Return([]models.ProductVariant{
		{ID: "v1", ProductID: "p2", Name: "Midnight Black", InStock: true},
	}, nil).Once()

	listed, err := service.ListProducts(filter)

	assert.NoError(t, err)
	assert.Len(t, listed, 2)
	assert.Empty(t, listed[0].Variants)
	assert.Len(t, listed[1].Variants, 1)
	mockProducts.AssertExpectations(t)
}

func TestCatalogService_GetProductDetail(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	mockReviews := new(MockReviewRepository)
	mockUsers := new(MockUserRepository)
	service := newCatalogService(mockProducts, mockCategories, mockReviews, mockUsers)

	product := &models.Product{ID: "p1", Name: "Nimbus Wireless Headphones", CategoryID: "cat-audio"}
	mockProducts.On("GetByID", "p1").Return(product, nil).Once()
	mockProducts.On("GetVariants", "p1").Return([]models.ProductVariant{}, nil).Once()
	mockReviews.On("GetByProduct", "p1").Return([]models.Review{
		{ID: "r1", UserID: "user-1", Rating: 5},
		{ID: "r2", UserID: "user-1", Rating: 4},
		{ID: "r3", UserID: "user-1", Rating: 3},
	}, nil).Twice()
	mockUsers.On("GetByID", "user-1").Return(&models.User{ID: "user-1", Name: "Dana"}, nil).Times(3)
	mockCategories.On("GetAll").Return([]models.Category{
		{ID: "cat-audio", Slug: "audio"},
	}, nil).Once()
	// One extra candidate is fetched so the product itself can be
	// dropped without shortening the list.
	mockProducts.On("GetAll", catalog.Filter{Category: "audio", Limit: 5}).Return([]models.Product{
		{ID: "p1"}, {ID: "p2"}, {ID: "p3"},
	}, nil).Once()

	detail, err := service.GetProductDetail("p1")

	assert.NoError(t, err)
	assert.Equal(t, "Nimbus Wireless Headphones", detail.Name)
	assert.Len(t, detail.Reviews, 3)
	assert.NotNil(t, detail.AverageRating)
	assert.Equal(t, 4.0, *detail.AverageRating)
	assert.Len(t, detail.RelatedProducts, 2)
	for _, related := range detail.RelatedProducts {
		assert.NotEqual(t, "p1", related.ID)
	}
	mockProducts.AssertExpectations(t)
}

func TestCatalogService_GetProductDetail_NoReviews(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	mockReviews := new(MockReviewRepository)
	mockUsers := new(MockUserRepository)
	service := newCatalogService(mockProducts, mockCategories, mockReviews, mockUsers)

	product := &models.Product{ID: "p1", Name: "Halo Smart Bulb"}
	mockProducts.On("GetByID", "p1").Return(product, nil).Once()
	mockProducts.On("GetVariants", "p1").Return([]models.ProductVariant{}, nil).Once()
	mockReviews.On("GetByProduct", "p1").Return([]models.Review{}, nil).Twice()

	detail, err := service.GetProductDetail("p1")

	assert.NoError(t, err)
	// No reviews means no rating at all, not a zero rating.
	assert.Nil(t, detail.AverageRating)
	assert.Empty(t, detail.Reviews)
	// No category, no related products.
	assert.Empty(t, detail.RelatedProducts)
}

func TestCatalogService_GetProductDetail_NotFound(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	mockReviews := new(MockReviewRepository)
	mockUsers := new(MockUserRepository)
	service := newCatalogService(mockProducts, mockCategories, mockReviews, mockUsers)

	mockProducts.On("GetByID", "missing").Return(nil, repositories.ErrNotFound).Once()

	detail, err := service.GetProductDetail("missing")

	assert.Nil(t, detail)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCatalogService_CreateVariant_UnknownProduct(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	mockReviews := new(MockReviewRepository)
	mockUsers := new(MockUserRepository)
	service := newCatalogService(mockProducts, mockCategories, mockReviews, mockUsers)

	mockProducts.On("GetByID", "missing").Return(nil, repositories.ErrNotFound).Once()

	err := service.CreateVariant(&models.ProductVariant{ProductID: "missing", Name: "Large"})

	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockProducts.AssertNotCalled(t, "CreateVariant", mock.Anything)
}
