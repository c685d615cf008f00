// Package api is the typed client for the AgriHub backend. The client only
// moves JSON; all business rules (inventory, pricing, authorization) are
// enforced server-side.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/agrihub/storefront/internal/errors"
	"github.com/agrihub/storefront/internal/models"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// TokenFunc supplies the current bearer credential, empty when logged out.
type TokenFunc func() string

type Client struct {
	baseURL string
	http    *http.Client
	token   TokenFunc
	logger  *slog.Logger
}

func NewClient(baseURL string, httpClient *http.Client, token TokenFunc, logger *slog.Logger) *Client {

	if httpClient == nil {
		httpClient = &http.Client{}
	}

	if httpClient.Transport == nil {
		httpClient.Transport = otelhttp.NewTransport(http.DefaultTransport)
	}

	if token == nil {
		token = func() string { return "" }
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		token:   token,
		logger:  logger,
	}
}

// errorEnvelope is the backend's error body.
type errorEnvelope struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {

	var reqBody io.Reader

	if body != nil {

		data, err := json.Marshal(body)
		if err != nil {
			return apperrors.TransportError("failed to encode request").WithError(err)
		}

		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return apperrors.TransportError("failed to build request").WithError(err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authed {

		token := c.token()
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	logger := c.logger.With(
		slog.String("request_id", requestID),
		slog.String("http_method", method),
		slog.String("http_path", path),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("API request failed", slog.String("error", err.Error()))

		return apperrors.TransportError("could not reach the AgriHub API").WithError(err)
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn("failed to read API response", slog.String("error", err.Error()))

		return apperrors.TransportError("failed to read response").WithError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {

		message := fmt.Sprintf("request failed with status %d", resp.StatusCode)

		var envelope errorEnvelope
		if err := json.Unmarshal(data, &envelope); err == nil && envelope.Message != "" {
			message = envelope.Message
		}

		logger.Warn("API request rejected", slog.Int("http_status", resp.StatusCode), slog.String("message", message))

		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return apperrors.UnauthorizedError(message)
		case http.StatusForbidden:
			return apperrors.ForbiddenError(message)
		case http.StatusNotFound:
			return apperrors.NotFoundError(message)
		default:
			return apperrors.APIError(message, resp.StatusCode)
		}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			logger.Warn("malformed API response", slog.String("error", err.Error()))

			return apperrors.APIError("malformed response from the AgriHub API", resp.StatusCode).WithError(err)
		}
	}

	logger.Debug("API request completed", slog.Int("http_status", resp.StatusCode))

	return nil
}

func (c *Client) decodeSession(ctx context.Context, path string, body any) (*models.Session, error) {

	var sess models.Session

	if err := c.do(ctx, http.MethodPost, path, body, &sess, false); err != nil {
		return nil, err
	}

	if !sess.Complete() {
		return nil, apperrors.APIError("incomplete session payload from the AgriHub API", http.StatusOK)
	}

	return &sess, nil
}

func (c *Client) Register(ctx context.Context, req *models.RegisterRequest) (*models.Session, error) {
	return c.decodeSession(ctx, "/auth/register", req)
}

func (c *Client) Login(ctx context.Context, req *models.LoginRequest) (*models.Session, error) {
	return c.decodeSession(ctx, "/auth/login", req)
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {

	var categories []models.Category

	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories, false); err != nil {
		return nil, err
	}

	return categories, nil
}

// ListProducts lists products, optionally filtered by category ID.
func (c *Client) ListProducts(ctx context.Context, categoryID string) ([]models.Product, error) {

	path := "/products"

	if categoryID != "" {
		query := url.Values{}
		query.Set("category", categoryID)
		path += "?" + query.Encode()
	}

	var products []models.Product

	if err := c.do(ctx, http.MethodGet, path, nil, &products, false); err != nil {
		return nil, err
	}

	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {

	var product models.Product

	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, &product, false); err != nil {
		return nil, err
	}

	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	var product models.Product

	if err := c.do(ctx, http.MethodPost, "/products", req, &product, true); err != nil {
		return nil, err
	}

	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error) {

	var product models.Product

	if err := c.do(ctx, http.MethodPut, "/products/"+url.PathEscape(id), req, &product, true); err != nil {
		return nil, err
	}

	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil, true)
}

func (c *Client) PlaceOrder(ctx context.Context, req *models.PlaceOrderRequest) (*models.PlaceOrderResponse, error) {

	var placed models.PlaceOrderResponse

	if err := c.do(ctx, http.MethodPost, "/orders", req, &placed, true); err != nil {
		return nil, err
	}

	return &placed, nil
}

// MyOrders is the customer's own order history.
func (c *Client) MyOrders(ctx context.Context) ([]models.Order, error) {

	var orders []models.Order

	if err := c.do(ctx, http.MethodGet, "/orders/myorders", nil, &orders, true); err != nil {
		return nil, err
	}

	return orders, nil
}

// ListOrders is the farmer/admin view over all orders.
func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {

	var orders []models.Order

	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders, true); err != nil {
		return nil, err
	}

	return orders, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {

	req := &models.UpdateOrderStatusRequest{Status: status}

	return c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(id)+"/status", req, nil, true)
}
