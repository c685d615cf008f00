package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agrihub/storefront/internal/api"
	apperrors "github.com/agrihub/storefront/internal/errors"
	"github.com/agrihub/storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) *api.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return api.NewClient(server.URL, server.Client(), func() string { return token }, testLogger())
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestClientLogin(t *testing.T) {
	ctx := context.Background()

	session := models.Session{
		ID:       "u1",
		Username: "alice",
		Email:    "alice@farm.test",
		Role:     models.RoleCustomer,
		Token:    "tok",
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/auth/login", r.URL.Path)
			assert.Empty(t, r.Header.Get("Authorization"), "auth endpoints must not carry a bearer token")
			assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req models.LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "alice@farm.test", req.Email)

			writeJSON(t, w, http.StatusOK, session)
		})

		// Act
		got, err := client.Login(ctx, &models.LoginRequest{Email: "alice@farm.test", Password: "secret"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, &session, got)
	})

	t.Run("Failure - Invalid Credentials", func(t *testing.T) {
		client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusUnauthorized, map[string]string{"message": "Invalid email or password"})
		})

		_, err := client.Login(ctx, &models.LoginRequest{Email: "alice@farm.test", Password: "wrong"})

		require.Error(t, err)
		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeUnauthorized, appErr.Code)
		assert.Equal(t, "Invalid email or password", appErr.Message, "the server's message should surface verbatim")
	})

	t.Run("Failure - Incomplete Session Payload", func(t *testing.T) {
		client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]string{"id": "u1", "username": "alice"})
		})

		_, err := client.Login(ctx, &models.LoginRequest{Email: "alice@farm.test", Password: "secret"})

		require.Error(t, err)
		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeAPI, appErr.Code)
	})

	t.Run("Failure - Server Unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close() // deliberately dead

		client := api.NewClient(server.URL, nil, nil, testLogger())

		_, err := client.Login(ctx, &models.LoginRequest{Email: "alice@farm.test", Password: "secret"})

		require.Error(t, err)
		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeTransport, appErr.Code)
	})
}

func TestClientProducts(t *testing.T) {
	ctx := context.Background()

	catalog := []models.Product{
		{ID: "p1", Name: "Organic Tomatoes", Price: 3.50, Unit: "kg", StockQuantity: 10},
		{ID: "p2", Name: "Raw Honey", Price: 12.00, Unit: "jar", StockQuantity: 0},
	}

	t.Run("Success - List All", func(t *testing.T) {
		client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/products", r.URL.Path)
			assert.Empty(t, r.URL.Query().Get("category"))

			writeJSON(t, w, http.StatusOK, catalog)
		})

		products, err := client.ListProducts(ctx, "")

		require.NoError(t, err)
		assert.Equal(t, catalog, products)
	})

	t.Run("Success - List Filtered By Category", func(t *testing.T) {
		client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "c2", r.URL.Query().Get("category"))

			writeJSON(t, w, http.StatusOK, catalog[:1])
		})

		products, err := client.ListProducts(ctx, "c2")

		require.NoError(t, err)
		assert.Len(t, products, 1)
	})

	t.Run("Success - Get One", func(t *testing.T) {
		client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/products/p1", r.URL.Path)

			writeJSON(t, w, http.StatusOK, catalog[0])
		})

		product, err := client.GetProduct(ctx, "p1")

		require.NoError(t, err)
		assert.Equal(t, &catalog[0], product)
	})

	t.Run("Failure - Get Unknown", func(t *testing.T) {
		client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusNotFound, map[string]string{"message": "Product not found"})
		})

		_, err := client.GetProduct(ctx, "missing")

		require.Error(t, err)
		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
	})

	t.Run("Failure - Malformed Response Body", func(t *testing.T) {
		client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"not": "a list"`))
		})

		_, err := client.ListProducts(ctx, "")

		require.Error(t, err)
		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeAPI, appErr.Code)
	})

	t.Run("Failure - Error Body Without Message Field", func(t *testing.T) {
		client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("boom"))
		})

		_, err := client.ListProducts(ctx, "")

		require.Error(t, err)
		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "request failed with status 500", appErr.Message)
		assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode)
	})
}

func TestClientProductManagement(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Create Carries Bearer Token", func(t *testing.T) {
		client := newTestClient(t, "farmer-token", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Bearer farmer-token", r.Header.Get("Authorization"))

			writeJSON(t, w, http.StatusCreated, models.Product{ID: "p9", Name: "Fresh Eggs"})
		})

		product, err := client.CreateProduct(ctx, &models.CreateProductRequest{
			CategoryID:  "c1",
			Name:        "Fresh Eggs",
			Description: "Free range",
			Price:       4.20,
			Unit:        "dozen",
		})

		require.NoError(t, err)
		assert.Equal(t, "p9", product.ID)
	})

	t.Run("Success - Update Sends Only Set Fields", func(t *testing.T) {
		client := newTestClient(t, "farmer-token", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/products/p1", r.URL.Path)

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Contains(t, body, "price")
			assert.NotContains(t, body, "name", "unset fields must be omitted, not zeroed")

			writeJSON(t, w, http.StatusOK, models.Product{ID: "p1", Price: 5.00})
		})

		price := 5.00
		_, err := client.UpdateProduct(ctx, "p1", &models.UpdateProductRequest{Price: &price})

		require.NoError(t, err)
	})

	t.Run("Success - Delete", func(t *testing.T) {
		client := newTestClient(t, "farmer-token", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/products/p1", r.URL.Path)

			writeJSON(t, w, http.StatusOK, map[string]string{"message": "Product removed"})
		})

		require.NoError(t, client.DeleteProduct(ctx, "p1"))
	})

	t.Run("Failure - Forbidden", func(t *testing.T) {
		client := newTestClient(t, "customer-token", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusForbidden, map[string]string{"message": "Not authorized as a farmer"})
		})

		err := client.DeleteProduct(ctx, "p1")

		require.Error(t, err)
		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeForbidden, appErr.Code)
	})
}

func TestClientOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Place Order", func(t *testing.T) {
		client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/orders", r.URL.Path)

			var req models.PlaceOrderRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Len(t, req.OrderItems, 1)
			assert.Equal(t, "p1", req.OrderItems[0].ProductID)
			assert.Equal(t, "m-pesa", req.PaymentMethod)

			writeJSON(t, w, http.StatusCreated, models.PlaceOrderResponse{OrderID: "o42"})
		})

		placed, err := client.PlaceOrder(ctx, &models.PlaceOrderRequest{
			OrderItems:      []models.OrderItemInput{{ProductID: "p1", Quantity: 2}},
			ShippingAddress: "12 Farm Lane",
			PaymentMethod:   "m-pesa",
		})

		require.NoError(t, err)
		assert.Equal(t, "o42", placed.OrderID)
	})

	t.Run("Success - My Orders", func(t *testing.T) {
		client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/orders/myorders", r.URL.Path)

			writeJSON(t, w, http.StatusOK, []models.Order{{ID: "o1", Status: models.OrderStatusPending}})
		})

		orders, err := client.MyOrders(ctx)

		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, models.OrderStatusPending, orders[0].Status)
	})

	t.Run("Success - Update Status", func(t *testing.T) {
		client := newTestClient(t, "admin-token", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/orders/o1/status", r.URL.Path)

			var req models.UpdateOrderStatusRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, models.OrderStatusShipped, req.Status)

			writeJSON(t, w, http.StatusOK, map[string]string{"message": "updated"})
		})

		require.NoError(t, client.UpdateOrderStatus(ctx, "o1", models.OrderStatusShipped))
	})
}
