package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/fjod/go_storefront/internal/domain"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const productsCollection = "products"

type firestoreProductRepository struct {
	client *firestore.Client
}

func NewFirestoreProductRepository(client *firestore.Client) ProductRepository {
	return &firestoreProductRepository{client: client}
}

func (r *firestoreProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return r.query(ctx, r.client.Collection(productsCollection).Query)
}

func (r *firestoreProductRepository) ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return r.query(ctx, r.client.Collection(productsCollection).Where("category", "==", category))
}

func (r *firestoreProductRepository) query(ctx context.Context, q firestore.Query) ([]domain.Product, error) {
	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]domain.Product, 0, len(docs))
	for _, doc := range docs {
		p, err := decodeProduct(doc)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, nil
}

func (r *firestoreProductRepository) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	snap, err := r.client.Collection(productsCollection).Doc(productID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return decodeProduct(snap)
}

func (r *firestoreProductRepository) CreateProduct(ctx context.Context, p *domain.Product) error {
	if _, err := r.client.Collection(productsCollection).Doc(p.ID).Create(ctx, p); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *firestoreProductRepository) UpdateProduct(ctx context.Context, productID string, patch domain.ProductPatch) (*domain.Product, error) {
	ref := r.client.Collection(productsCollection).Doc(productID)

	var updated *domain.Product
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrProductNotFound
			}
			return err
		}
		p, err := decodeProduct(snap)
		if err != nil {
			return err
		}
		patch.Apply(p, time.Now().UTC())
		if err := tx.Set(ref, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return updated, nil
}

func (r *firestoreProductRepository) DeleteProduct(ctx context.Context, productID string) error {
	_, err := r.client.Collection(productsCollection).Doc(productID).Delete(ctx, firestore.Exists)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func decodeProduct(snap *firestore.DocumentSnapshot) (*domain.Product, error) {
	var p domain.Product
	if err := snap.DataTo(&p); err != nil {
		return nil, fmt.Errorf("failed to decode product %s: %w", snap.Ref.ID, err)
	}
	p.ID = snap.Ref.ID
	return &p, nil
}
