package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/yemsy26/comercio-fenix-v1/internal/repository"
	"github.com/yemsy26/comercio-fenix-v1/internal/service"
	"github.com/yemsy26/comercio-fenix-v1/pkg/observability"
)

// Handler содержит HTTP-обработчики Stock Service
// Зависит от service слоя, но не знает о Firestore и Firebase
type Handler struct {
	stockService *service.StockService
	logger       *zap.Logger
}

// NewHandler создаёт новый HTTP handler
func NewHandler(stockService *service.StockService, logger *zap.Logger) *Handler {
	return &Handler{
		stockService: stockService,
		logger:       logger,
	}
}

// ReduceStockRequest представляет HTTP запрос на списание со склада
// Поля указатели, чтобы отличать отсутствующее значение от нулевого
type ReduceStockRequest struct {
	ProductID *string `json:"productId"`
	Quantity  *int64  `json:"quantity"`
}

// StockResponse представляет HTTP ответ с остатком товара
type StockResponse struct {
	ProductID string `json:"productId"`
	Stock     int64  `json:"stock"`
}

// ReduceStock обрабатывает POST /products/reduce-stock
// Ответы plain text; статусы: 400 на невалидный ввод, 404 если товар не найден,
// 409 при нехватке остатка, 500 на неожиданные ошибки store
func (h *Handler) ReduceStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := observability.L(ctx, h.logger)

	var reqBody ReduceStockRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		// Сюда попадает и нечисловой quantity (строка в JSON)
		log.Warn("reduce-stock: malformed body", zap.Error(err))
		http.Error(w, "Bad Request: Missing productId or quantity", http.StatusBadRequest)
		return
	}

	if reqBody.ProductID == nil || *reqBody.ProductID == "" || reqBody.Quantity == nil {
		log.Warn("reduce-stock: missing productId or quantity")
		http.Error(w, "Bad Request: Missing productId or quantity", http.StatusBadRequest)
		return
	}
	if *reqBody.Quantity <= 0 {
		log.Warn("reduce-stock: non-positive quantity", zap.Int64("quantity", *reqBody.Quantity))
		http.Error(w, "Bad Request: quantity must be > 0", http.StatusBadRequest)
		return
	}

	result, err := h.stockService.ReduceStock(ctx, service.ReduceStockInput{
		ProductID: *reqBody.ProductID,
		Quantity:  *reqBody.Quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			http.Error(w, "Product not found", http.StatusNotFound)
		case errors.Is(err, repository.ErrInsufficientStock):
			http.Error(w, "Insufficient stock", http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Error updating stock: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "Stock updated successfully for product %s", result.ProductID)
}

// GetProductStock обрабатывает GET /products/{id}/stock
func (h *Handler) GetProductStock(w http.ResponseWriter, r *http.Request, productID string) {
	ctx := r.Context()
	log := observability.L(ctx, h.logger)

	stock, err := h.stockService.GetStock(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		log.Error("get stock failed", zap.Error(err), zap.String("product_id", productID))
		http.Error(w, fmt.Sprintf("Error reading stock: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StockResponse{
		ProductID: productID,
		Stock:     stock,
	})
}
