//go:build e2e

package e2e

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/gcloud"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	httpapi "github.com/yemsy26/comercio-fenix-v1/internal/api/http"
	"github.com/yemsy26/comercio-fenix-v1/internal/auth"
	firestorerepo "github.com/yemsy26/comercio-fenix-v1/internal/repository/firestore"
	"github.com/yemsy26/comercio-fenix-v1/internal/service"
)

// staticVerifier подменяет проверку ID-токенов: в e2e нас интересует
// Firestore, а не identity провайдер
type staticVerifier struct {
	tokens map[string]auth.Claims
}

func (v *staticVerifier) VerifyToken(ctx context.Context, idToken string) (auth.Claims, error) {
	claims, ok := v.tokens[idToken]
	if !ok {
		return auth.Claims{}, errors.New("ID token has invalid signature")
	}
	return claims, nil
}

func TestStock_E2E_ReduceStock(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// 1) Поднимаем Firestore эмулятор
	fsC, err := gcloud.RunFirestore(ctx,
		"gcr.io/google.com/cloudsdktool/google-cloud-cli:367.0.0-emulators",
		gcloud.WithProjectID("comercio-fenix-e2e"),
	)
	require.NoError(t, err)
	defer func() { require.NoError(t, fsC.Terminate(ctx)) }()

	// 2) Подключаемся к эмулятору как клиент
	conn, err := grpc.NewClient(fsC.URI,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	defer conn.Close()

	client, err := firestore.NewClient(ctx, fsC.Settings.ProjectID, option.WithGRPCConn(conn))
	require.NoError(t, err)
	defer client.Close()

	// Сидируем товар
	col := client.Collection("products")
	_, err = col.Doc("product-123").Set(ctx, map[string]interface{}{
		"stock":      int64(20),
		"updated_at": time.Now(),
	})
	require.NoError(t, err)

	// 3) Поднимаем HTTP сервер внутри теста (реальные repo+service+handler)
	logger := zap.NewNop()
	repo := firestorerepo.NewRepository(client, "products")
	svc := service.NewStockService(logger, repo)
	h := httpapi.NewHandler(svc, logger)

	verifier := &staticVerifier{tokens: map[string]auth.Claims{
		"admin-token":  {UID: "uid-admin", Role: "admin"},
		"client-token": {UID: "uid-client", Role: "client"},
	}}

	srv := httptest.NewServer(httpapi.NewRouter(h, verifier, func() bool { return true }, logger))
	defer srv.Close()

	reduce := func(token, body string) (int, string) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			srv.URL+"/products/reduce-stock", strings.NewReader(body))
		require.NoError(t, err)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(data)
	}

	readStock := func() int64 {
		snap, err := col.Doc("product-123").Get(ctx)
		require.NoError(t, err)
		var doc struct {
			Stock int64 `firestore:"stock"`
		}
		require.NoError(t, snap.DataTo(&doc))
		return doc.Stock
	}

	// 4) success кейс: 20 - 5 = 15
	code, body := reduce("admin-token", `{"productId":"product-123","quantity":5}`)
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, "Stock updated successfully for product product-123")
	require.Equal(t, int64(15), readStock())

	// 5) fail кейс: списание 1000 не должно уменьшить stock
	code, body = reduce("admin-token", `{"productId":"product-123","quantity":1000}`)
	require.Equal(t, http.StatusConflict, code)
	require.Contains(t, body, "Insufficient stock")
	require.Equal(t, int64(15), readStock())

	// 6) несуществующий товар
	code, _ = reduce("admin-token", `{"productId":"ghost","quantity":1}`)
	require.Equal(t, http.StatusNotFound, code)

	// 7) роль вне admin/seller не проходит и не трогает store
	code, _ = reduce("client-token", `{"productId":"product-123","quantity":1}`)
	require.Equal(t, http.StatusForbidden, code)
	require.Equal(t, int64(15), readStock())
}

// Конкурентные списания против реальных транзакций эмулятора:
// из остатка 10 два запроса по 6 - ровно один проходит
func TestStock_E2E_ConcurrentReduce(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fsC, err := gcloud.RunFirestore(ctx,
		"gcr.io/google.com/cloudsdktool/google-cloud-cli:367.0.0-emulators",
		gcloud.WithProjectID("comercio-fenix-e2e"),
	)
	require.NoError(t, err)
	defer func() { require.NoError(t, fsC.Terminate(ctx)) }()

	conn, err := grpc.NewClient(fsC.URI,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	defer conn.Close()

	client, err := firestore.NewClient(ctx, fsC.Settings.ProjectID, option.WithGRPCConn(conn))
	require.NoError(t, err)
	defer client.Close()

	col := client.Collection("products")
	_, err = col.Doc("product-123").Set(ctx, map[string]interface{}{
		"stock":      int64(10),
		"updated_at": time.Now(),
	})
	require.NoError(t, err)

	repo := firestorerepo.NewRepository(client, "products")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.ReduceStock(ctx, "product-123", 6)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	require.Equal(t, 1, succeeded)

	stock, err := repo.GetStock(ctx, "product-123")
	require.NoError(t, err)
	require.Equal(t, int64(4), stock)
}
