package memory

import (
	"context"
	"sync"

	"github.com/yemsy26/comercio-fenix-v1/internal/repository"
)

// Repository реализует ProductRepository используя in-memory хранилище
// Используется для разработки и тестирования
// Mutex даёт ту же гарантию сериализации read-check-write,
// что и транзакция Firestore в production реализации
type Repository struct {
	mu    sync.Mutex
	stock map[string]int64
}

// NewRepository создаёт новый in-memory репозиторий
func NewRepository() *Repository {
	return &Repository{
		stock: make(map[string]int64),
	}
}

// Seed записывает начальный остаток товара (для тестов и локального запуска)
func (r *Repository) Seed(productID string, stock int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stock[productID] = stock
}

// GetStock получает остаток товара
func (r *Repository) GetStock(ctx context.Context, productID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stock, ok := r.stock[productID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	return stock, nil
}

// ReduceStock атомарно списывает quantity со склада
func (r *Repository) ReduceStock(ctx context.Context, productID string, quantity int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stock, ok := r.stock[productID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	if stock < quantity {
		return 0, repository.ErrInsufficientStock
	}

	r.stock[productID] = stock - quantity
	return r.stock[productID], nil
}
