package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirekcahs/codebrew-pos/internal/application/service"
	"github.com/kirekcahs/codebrew-pos/internal/config"
	"github.com/kirekcahs/codebrew-pos/internal/domain/entity"
	"github.com/kirekcahs/codebrew-pos/internal/domain/repository"
	infraRepo "github.com/kirekcahs/codebrew-pos/internal/infrastructure/repository"
	"github.com/kirekcahs/codebrew-pos/internal/presentation/http/handler"
	"github.com/kirekcahs/codebrew-pos/pkg/printer"
	"github.com/kirekcahs/codebrew-pos/pkg/utils"
)

// stubGateway serves a fixed catalog and accepts every order.
type stubGateway struct {
	role    string
	orderID int64
	orders  int
}

func (g *stubGateway) Login(ctx context.Context, username, password string) (*repository.LoginResult, error) {
	return &repository.LoginResult{
		Token:      "upstream-bearer",
		UserID:     7,
		Username:   username,
		RoleName:   g.role,
		BranchID:   3,
		BranchName: "Makati",
	}, nil
}

func (g *stubGateway) FetchProducts(ctx context.Context, token string) ([]entity.Product, error) {
	return []entity.Product{
		{ID: 1, Name: "Caffe Latte", Category: "Coffee", UnitPrice: 12000},
		{ID: 2, Name: "Butter Croissant", Category: "Pastry", UnitPrice: 9500},
	}, nil
}

func (g *stubGateway) SubmitOrder(ctx context.Context, token string, order *repository.OrderSubmission) (*repository.OrderResult, error) {
	g.orders++
	id := g.orderID
	return &repository.OrderResult{OrderID: &id}, nil
}

func newTestRouter(t *testing.T, gw repository.UpstreamGateway) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App:       config.AppConfig{Name: "codebrew-pos", Env: "test", Port: "0"},
		POS:       config.POSConfig{TaxRate: 0.12, StoreName: "CodeBrew"},
		Session:   config.SessionConfig{Secret: "test-secret", Expiry: time.Hour},
		RateLimit: config.RateLimitConfig{Requests: 1000, Duration: 1},
		Printer:   config.PrinterConfig{Type: "none", Width: 32},
	}

	jwtManager := utils.NewJWTManager(cfg.Session.Secret, cfg.Session.Expiry)
	sessions := service.NewSessionRegistry()

	authService := service.NewAuthService(gw, sessions, jwtManager, cfg.POS)
	catalogService := service.NewCatalogService(gw)
	cartService := service.NewCartService(catalogService)
	checkoutService := service.NewCheckoutService(gw, nil)
	receiptService := service.NewReceiptService(printer.NewNullPrinter(), cfg.Printer, cfg.POS.StoreName)

	handlers := &Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Catalog:  handler.NewCatalogHandler(catalogService),
		Cart:     handler.NewCartHandler(cartService),
		Checkout: handler.NewCheckoutHandler(checkoutService),
		Receipt:  handler.NewReceiptHandler(receiptService),
		Journal:  handler.NewJournalHandler(service.NewJournalService(nil)),
	}

	return Setup(handlers, &Deps{
		JWTManager:       jwtManager,
		Cfg:              cfg,
		Sessions:         sessions,
		IdempotencyStore: infraRepo.NewMemoryIdempotencyStore(time.Minute),
	})
}

func doJSON(router *gin.Engine, method, path, token string, payload interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": "maria", "password": "secret",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.AccessToken)
	return resp.Data.AccessToken
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, &stubGateway{role: "Cashier"})
	w := doJSON(router, http.MethodGet, "/health", "", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRequired(t *testing.T) {
	router := newTestRouter(t, &stubGateway{role: "Cashier"})

	w := doJSON(router, http.MethodGet, "/api/v1/cart", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/cart", "not-a-token", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPOSRequiresCashier(t *testing.T) {
	router := newTestRouter(t, &stubGateway{role: "Admin"})
	token := login(t, router)

	// session endpoints work for any role
	w := doJSON(router, http.MethodGet, "/api/v1/session", token, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// register operations do not
	w = doJSON(router, http.MethodGet, "/api/v1/products", token, nil, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/checkout", token, gin.H{"payment_method": "Cash"}, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCheckoutFlow(t *testing.T) {
	gw := &stubGateway{role: "Cashier", orderID: 4891}
	router := newTestRouter(t, gw)
	token := login(t, router)

	// load the catalog
	w := doJSON(router, http.MethodGet, "/api/v1/products", token, nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// ring up two lattes and a croissant
	w = doJSON(router, http.MethodPost, "/api/v1/cart/items", token, gin.H{"product_id": 1, "quantity": 2}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(router, http.MethodPost, "/api/v1/cart/items", token, gin.H{"product_id": 2}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cart struct {
		Data struct {
			Items []struct {
				Quantity int `json:"quantity"`
			} `json:"items"`
			Totals struct {
				Subtotal float64 `json:"subtotal"`
				Total    float64 `json:"total"`
			} `json:"totals"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	require.Len(t, cart.Data.Items, 2)
	assert.Equal(t, 335.0, cart.Data.Totals.Subtotal)
	assert.Equal(t, 375.2, cart.Data.Totals.Total)

	// pay cash
	w = doJSON(router, http.MethodPost, "/api/v1/checkout", token, gin.H{"payment_method": "Cash"}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var checkout struct {
		Data struct {
			Receipt struct {
				ID           string  `json:"id"`
				Total        float64 `json:"total"`
				ServerIssued bool    `json:"server_issued"`
			} `json:"receipt"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &checkout))
	assert.Equal(t, "4891", checkout.Data.Receipt.ID)
	assert.True(t, checkout.Data.Receipt.ServerIssued)

	// the cart is fresh again
	w = doJSON(router, http.MethodGet, "/api/v1/cart", token, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Empty(t, cart.Data.Items)

	// and the receipt is in the log
	w = doJSON(router, http.MethodGet, "/api/v1/receipts/latest", token, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJournalDisabled(t *testing.T) {
	router := newTestRouter(t, &stubGateway{role: "Cashier"})
	token := login(t, router)

	w := doJSON(router, http.MethodGet, "/api/v1/receipts/journal", token, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Enabled bool `json:"enabled"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Data.Enabled)
}

func TestCheckoutEmptyCart(t *testing.T) {
	router := newTestRouter(t, &stubGateway{role: "Cashier"})
	token := login(t, router)

	w := doJSON(router, http.MethodPost, "/api/v1/checkout", token, gin.H{"payment_method": "Cash"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutIdempotencyReplay(t *testing.T) {
	gw := &stubGateway{role: "Cashier", orderID: 4891}
	router := newTestRouter(t, gw)
	token := login(t, router)

	w := doJSON(router, http.MethodGet, "/api/v1/products", token, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(router, http.MethodPost, "/api/v1/cart/items", token, gin.H{"product_id": 1}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	headers := map[string]string{"Idempotency-Key": "retry-1"}

	w = doJSON(router, http.MethodPost, "/api/v1/checkout", token, gin.H{"payment_method": "Cash"}, headers)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := w.Body.String()

	// the retry must not create a second order
	w = doJSON(router, http.MethodPost, "/api/v1/checkout", token, gin.H{"payment_method": "Cash"}, headers)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "true", w.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, first, w.Body.String())
	assert.Equal(t, 1, gw.orders)
}
