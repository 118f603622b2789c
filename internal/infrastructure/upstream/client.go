package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/kirekcahs/codebrew-pos/internal/config"
	"github.com/kirekcahs/codebrew-pos/internal/domain/entity"
	"github.com/kirekcahs/codebrew-pos/internal/domain/repository"
	"github.com/kirekcahs/codebrew-pos/pkg/apperror"
)

// Client talks to the external CodeBrew API. All business logic —
// credential checks, persistence, inventory decrement — lives upstream;
// the terminal only issues the requests the POS flow needs.
type Client struct {
	baseURL string
	timeout time.Duration
}

// NewClient creates an upstream client from config.
func NewClient(cfg *config.UpstreamConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: timeout,
	}
}

// httpClient builds a client that attaches the session's bearer token to
// every request. The timeout bounds the whole exchange; expiry surfaces as
// a transport failure.
func (c *Client) httpClient(token string) *http.Client {
	client := &http.Client{Timeout: c.timeout}
	if token != "" {
		client.Transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
		}
	}
	return client
}

func (c *Client) do(ctx context.Context, token, method, path string, payload interface{}) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, apperror.ErrInternalServer
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, apperror.ErrInternalServer
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient(token).Do(req)
	if err != nil {
		return 0, nil, apperror.ErrUpstreamUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, apperror.ErrUpstreamUnavailable
	}
	return resp.StatusCode, body, nil
}

// Login exchanges credentials for a bearer token and user context.
func (c *Client) Login(ctx context.Context, username, password string) (*repository.LoginResult, error) {
	status, body, err := c.do(ctx, "", http.MethodPost, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		if status == http.StatusUnauthorized {
			return nil, apperror.ErrInvalidCredentials
		}
		if msg := extractMessage(body); msg != "" {
			return nil, apperror.NewAppError(status, msg)
		}
		return nil, apperror.NewAppError(status, "Login failed")
	}

	var decoded struct {
		AccessToken string `json:"accessToken"`
		User        struct {
			UserID     flexNumber `json:"user_id"`
			Username   string     `json:"username"`
			RoleName   string     `json:"role_name"`
			BranchID   flexNumber `json:"branch_id"`
			BranchName string     `json:"branch_name"`
		} `json:"user"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil || decoded.AccessToken == "" {
		return nil, apperror.NewAppError(http.StatusBadGateway, "Malformed login response")
	}

	return &repository.LoginResult{
		Token:      decoded.AccessToken,
		UserID:     int64(decoded.User.UserID),
		Username:   decoded.User.Username,
		RoleName:   decoded.User.RoleName,
		BranchID:   int64(decoded.User.BranchID),
		BranchName: decoded.User.BranchName,
	}, nil
}

// FetchProducts returns the full sellable catalog.
func (c *Client) FetchProducts(ctx context.Context, token string) ([]entity.Product, error) {
	status, body, err := c.do(ctx, token, http.MethodGet, "/products", nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		if msg := extractMessage(body); msg != "" {
			return nil, apperror.NewAppError(status, msg)
		}
		return nil, apperror.NewAppError(status, "Failed to load products")
	}

	var dtos []struct {
		ProductID   int64      `json:"product_id"`
		Name        string     `json:"name"`
		SKU         string     `json:"sku"`
		Category    string     `json:"category"`
		UnitCost    flexNumber `json:"unit_cost"`
		ImageURL    string     `json:"image_url"`
		Description string     `json:"description"`
	}
	if err := json.Unmarshal(normalizeData(body), &dtos); err != nil {
		return nil, apperror.NewAppError(http.StatusBadGateway, "Malformed product list")
	}

	products := make([]entity.Product, 0, len(dtos))
	for _, dto := range dtos {
		products = append(products, entity.Product{
			ID:          dto.ProductID,
			Name:        dto.Name,
			SKU:         dto.SKU,
			Category:    dto.Category,
			UnitPrice:   entity.Cents(float64(dto.UnitCost)),
			ImageURL:    dto.ImageURL,
			Description: dto.Description,
		})
	}
	return products, nil
}

// SubmitOrder creates the order upstream and returns whatever identifier
// the server assigned.
func (c *Client) SubmitOrder(ctx context.Context, token string, order *repository.OrderSubmission) (*repository.OrderResult, error) {
	status, body, err := c.do(ctx, token, http.MethodPost, "/orders", order)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, classifyOrderError(status, extractMessage(body))
	}
	return &repository.OrderResult{OrderID: extractOrderID(body)}, nil
}

// classifyOrderError maps the upstream rejection message onto the error
// taxonomy. The two domain cases are recognized by substring, matching the
// contract the UI has always relied on.
func classifyOrderError(status int, message string) *apperror.AppError {
	switch {
	case message == "":
		return apperror.NewAppError(status, "Failed to complete order")
	case strings.Contains(message, "Insufficient stock"):
		return apperror.NewInsufficientStockError(message)
	case strings.Contains(message, "No inventory record"):
		return apperror.NewNoInventoryRecordError(message)
	default:
		return apperror.NewAppError(status, message)
	}
}
