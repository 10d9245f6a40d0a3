package repository

import (
	"context"
	"errors"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=ProductRepository --dir=. --output=./mocks --outpkg=mocks

// ProductRepository определяет интерфейс для работы с хранилищем товаров
// Service слой зависит от этого интерфейса, а не от конкретной реализации
type ProductRepository interface {
	// GetStock получает текущий остаток товара
	// Возвращает ErrNotFound, если товар не найден
	GetStock(ctx context.Context, productID string) (int64, error)

	// ReduceStock атомарно уменьшает остаток товара на quantity
	// Последовательность read-check-write выполняется с транзакционной изоляцией:
	// два конкурентных списания не могут оба увидеть один и тот же остаток
	// и увести stock в минус
	// Возвращает остаток после списания
	// Возвращает ErrNotFound, если товар не найден,
	// и ErrInsufficientStock, если остатка не хватает (ничего не записывается)
	ReduceStock(ctx context.Context, productID string, quantity int64) (int64, error)
}

// ErrNotFound возвращается, когда товар не найден в хранилище
var ErrNotFound = errors.New("product not found")

// ErrInsufficientStock возвращается, когда остатка не хватает для списания
var ErrInsufficientStock = errors.New("insufficient stock")
