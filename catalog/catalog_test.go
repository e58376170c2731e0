package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/Raj-baniya/copy-of-Giftology/models"
	"github.com/Raj-baniya/copy-of-Giftology/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProducts serves a fixed product list.
type stubProducts struct {
	repository.ProductRepository
	products []models.Product
	err      error
	limit    int
}

func (s *stubProducts) ListActiveProducts(context.Context) ([]models.Product, error) {
	return s.products, s.err
}

func (s *stubProducts) ListFeaturedProducts(_ context.Context, limit int) ([]models.Product, error) {
	s.limit = limit
	return s.products, s.err
}

func (s *stubProducts) GetProductBySlug(_ context.Context, slug string) (*models.Product, error) {
	for _, p := range s.products {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubProducts) GetProductsByIDs(_ context.Context, ids []string) ([]models.Product, error) {
	var out []models.Product
	for _, p := range s.products {
		for _, id := range ids {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func TestNormalize(t *testing.T) {
	p := models.Product{
		ID:             "p1",
		Name:           "Rose Box",
		Slug:           "rose-box",
		Price:          decimal.RequireFromString("499.99"),
		CompareAtPrice: decimal.NewNullDecimal(decimal.NewFromInt(699)),
		Images:         []string{"/a.jpg", "/b.jpg"},
		Category:       &models.Category{Slug: "flowers", Name: "Flowers"},
		IsFeatured:     true,
		StockQuantity:  4,
	}

	item := Normalize(p)
	assert.Equal(t, "/a.jpg", item.ImageURL)
	assert.Equal(t, "flowers", item.Category)
	assert.Equal(t, "Flowers", item.CategoryName)
	assert.True(t, item.Trending)
	require.NotNil(t, item.CompareAtPrice)
	assert.True(t, item.CompareAtPrice.Equal(decimal.NewFromInt(699)))
}

func TestNormalizeDefaults(t *testing.T) {
	item := Normalize(models.Product{ID: "p2", Name: "Plain"})
	assert.Equal(t, "", item.ImageURL)
	assert.Equal(t, Uncategorized, item.Category)
	assert.NotNil(t, item.Images)
	assert.Nil(t, item.CompareAtPrice)
}

func TestFeaturedDefaultsLimit(t *testing.T) {
	repo := &stubProducts{}
	_, err := NewReader(repo).Featured(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultFeaturedLimit, repo.limit)
}

func TestBySlug(t *testing.T) {
	repo := &stubProducts{products: []models.Product{
		{ID: "p1", Slug: "live", IsActive: true},
		{ID: "p2", Slug: "retired", IsActive: false},
	}}
	r := NewReader(repo)

	item, err := r.BySlug(context.Background(), "live")
	require.NoError(t, err)
	assert.Equal(t, "p1", item.ID)

	_, err = r.BySlug(context.Background(), "retired")
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = r.BySlug(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestLookupSkipsInactive(t *testing.T) {
	repo := &stubProducts{products: []models.Product{
		{ID: "p1", IsActive: true, Price: decimal.NewFromInt(500)},
		{ID: "p2", IsActive: false},
	}}

	found, err := NewReader(repo).Lookup(context.Background(), []string{"p1", "p2", "p3"})
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.True(t, found["p1"].CartProduct().Price.Equal(decimal.NewFromInt(500)))
}

func TestListProductsWrapsError(t *testing.T) {
	boom := errors.New("db down")
	_, err := NewReader(&stubProducts{err: boom}).ListProducts(context.Background())
	assert.ErrorIs(t, err, boom)
}
