package service

import (
	"context"
	"sort"
	"strings"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/repository"
)

type ProductService struct {
	repo repository.ProductRepository
	opts options
}

func NewProductService(repo repository.ProductRepository, opts ...Option) *ProductService {
	return &ProductService{repo: repo, opts: buildOptions(opts)}
}

type CreateProductInput struct {
	Name        string
	Price       *float64
	Quantity    *int
	Category    string
	Image       string
	Description string
}

func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *ProductService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, productID)
}

func (s *ProductService) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return s.repo.ListProductsByCategory(ctx, category)
}

// Categories returns the distinct non-empty categories, sorted.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if name == "" || category == "" || in.Price == nil || in.Quantity == nil {
		return nil, invalidInput("Name, price, quantity, and category are required fields")
	}
	if *in.Price < 0 || *in.Quantity < 0 {
		return nil, invalidInput("Price and quantity must be non-negative")
	}

	now := s.opts.now()
	p := &domain.Product{
		ID:          s.opts.newID(),
		Name:        name,
		Price:       *in.Price,
		Quantity:    *in.Quantity,
		Image:       strings.TrimSpace(in.Image),
		Category:    category,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProduct applies the non-empty fields of patch.
func (s *ProductService) UpdateProduct(ctx context.Context, productID string, patch domain.ProductPatch) (*domain.Product, error) {
	patch.Name = trimmedOrNil(patch.Name)
	patch.Category = trimmedOrNil(patch.Category)
	patch.Image = trimmedOrNil(patch.Image)
	patch.Description = trimmedOrNil(patch.Description)

	if patch.IsEmpty() {
		return nil, invalidInput("No fields to update")
	}
	if (patch.Price != nil && *patch.Price < 0) || (patch.Quantity != nil && *patch.Quantity < 0) {
		return nil, invalidInput("Price and quantity must be non-negative")
	}
	return s.repo.UpdateProduct(ctx, productID, patch)
}

func (s *ProductService) DeleteProduct(ctx context.Context, productID string) error {
	return s.repo.DeleteProduct(ctx, productID)
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
