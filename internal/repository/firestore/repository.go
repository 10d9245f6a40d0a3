package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/yemsy26/comercio-fenix-v1/internal/repository"
)

// productDocument представляет документ в коллекции Firestore
type productDocument struct {
	Stock     int64     `firestore:"stock"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

// Repository реализует ProductRepository используя Firestore
type Repository struct {
	client *firestore.Client
	col    *firestore.CollectionRef
}

// NewRepository создаёт новый Firestore репозиторий
// collection - имя коллекции с товарами (обычно "products"),
// документ keyed по productID и содержит числовое поле stock
func NewRepository(client *firestore.Client, collection string) *Repository {
	return &Repository{
		client: client,
		col:    client.Collection(collection),
	}
}

// GetStock получает остаток товара из Firestore
// Возвращает ErrNotFound, если документ не существует
func (r *Repository) GetStock(ctx context.Context, productID string) (int64, error) {
	snap, err := r.col.Doc(productID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return 0, repository.ErrNotFound
		}
		return 0, err
	}

	var doc productDocument
	if err := snap.DataTo(&doc); err != nil {
		return 0, err
	}

	return doc.Stock, nil
}

// ReduceStock атомарно списывает quantity со склада
// Вся последовательность read-check-write выполняется внутри RunTransaction:
// Firestore сам перезапускает транзакцию при конфликте с конкурентной записью,
// поэтому своих retry здесь нет. Бизнес-ошибки (ErrNotFound, ErrInsufficientStock)
// прерывают транзакцию без частичной записи.
func (r *Repository) ReduceStock(ctx context.Context, productID string, quantity int64) (int64, error) {
	ref := r.col.Doc(productID)

	var remaining int64
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return repository.ErrNotFound
			}
			return err
		}

		var doc productDocument
		if err := snap.DataTo(&doc); err != nil {
			return err
		}

		if doc.Stock < quantity {
			return repository.ErrInsufficientStock
		}

		remaining = doc.Stock - quantity
		return tx.Update(ref, []firestore.Update{
			{Path: "stock", Value: remaining},
			{Path: "updated_at", Value: firestore.ServerTimestamp},
		})
	})
	if err != nil {
		// Сентинели проходят через RunTransaction как есть,
		// handler различает их через errors.Is
		return 0, err
	}

	return remaining, nil
}
