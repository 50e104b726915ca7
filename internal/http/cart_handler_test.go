package http

import (
	"net/http"
	"testing"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addWidget(t *testing.T, s *testServer, userID string) domain.CartEntry {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/customers/"+userID+"/cart/add", map[string]interface{}{
		"productId": "p1",
		"name":      "Widget",
		"price":     9.99,
		"quantity":  2,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[CartItemAddedResponse](t, rec).Item
}

func TestAddItem_Success(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/customers/u1/cart/add", map[string]interface{}{
		"productId": "p1",
		"name":      "Widget",
		"price":     9.99,
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeBody[CartItemAddedResponse](t, rec)
	assert.Equal(t, "Item added to cart successfully", resp.Message)
	assert.Equal(t, "u1", resp.UserID)
	assert.NotEmpty(t, resp.Item.CartItemID)
	assert.Equal(t, 1, resp.Item.Quantity)
	assert.Equal(t, "", resp.Item.Image)
}

func TestAddItem_MissingFields(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/customers/u1/cart/add", map[string]interface{}{"productId": "p1", "name": "Widget"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Product ID, name, and price are required", decodeBody[ErrorResponse](t, rec).Message)
}

func TestAddItem_InvalidJSON(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/customers/u1/cart/add", "{")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decodeBody[ErrorResponse](t, rec).Message)
}

func TestGetCart(t *testing.T) {
	s := newTestServer(t)
	added := addWidget(t, s, "u1")

	rec := s.do(t, http.MethodGet, "/customers/u1/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[CartResponse](t, rec)
	assert.Equal(t, "u1", resp.UserID)
	assert.Equal(t, 1, resp.TotalItems)
	require.Len(t, resp.Cart, 1)
	assert.Equal(t, added.CartItemID, resp.Cart[0].CartItemID)

	rec = s.do(t, http.MethodGet, "/customers/u1/cart/quantity", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decodeBody[CartLengthResponse](t, rec).Length)
}

func TestGetCart_UserNotFound(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/customers/ghost/cart", "/customers/ghost/cart/quantity"} {
		rec := s.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Equal(t, "User not found", decodeBody[ErrorResponse](t, rec).Message)
	}
}

func TestGetCart_EmptyCartEncodesAsArray(t *testing.T) {
	s := newTestServer(t)
	s.store.PutUser(&domain.User{ID: "u1"})

	rec := s.do(t, http.MethodGet, "/customers/u1/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"userId":"u1","cart":[],"totalItems":0}`, rec.Body.String())
}

func TestUpdateQuantity(t *testing.T) {
	s := newTestServer(t)
	added := addWidget(t, s, "u1")

	rec := s.do(t, http.MethodPut, "/customers/u1/cart/update/"+added.CartItemID, map[string]int{"quantity": 5})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[CartItemUpdatedResponse](t, rec)
	assert.Equal(t, "Cart item updated successfully", resp.Message)
	assert.Equal(t, added.CartItemID, resp.CartItemID)
	assert.Equal(t, 5, resp.Quantity)
	assert.Equal(t, "u1", resp.UserID)
}

func TestUpdateQuantity_Errors(t *testing.T) {
	s := newTestServer(t)
	added := addWidget(t, s, "u1")

	tests := []struct {
		name   string
		path   string
		body   interface{}
		status int
		msg    string
	}{
		{"zero quantity", "/customers/u1/cart/update/" + added.CartItemID, map[string]int{"quantity": 0}, http.StatusBadRequest, "Valid quantity is required"},
		{"missing quantity", "/customers/u1/cart/update/" + added.CartItemID, map[string]int{}, http.StatusBadRequest, "Valid quantity is required"},
		{"unknown item", "/customers/u1/cart/update/nope", map[string]int{"quantity": 2}, http.StatusNotFound, "Item not found in cart"},
		{"unknown user", "/customers/ghost/cart/update/" + added.CartItemID, map[string]int{"quantity": 2}, http.StatusNotFound, "User not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPut, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.msg, decodeBody[ErrorResponse](t, rec).Message)
		})
	}
}

func TestRemoveItem(t *testing.T) {
	s := newTestServer(t)
	added := addWidget(t, s, "u1")

	rec := s.do(t, http.MethodDelete, "/customers/u1/cart/remove/"+added.CartItemID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[CartItemRemovedResponse](t, rec)
	assert.Equal(t, "Item removed from cart successfully", resp.Message)
	assert.Equal(t, added.CartItemID, resp.CartItemID)

	rec = s.do(t, http.MethodDelete, "/customers/u1/cart/remove/"+added.CartItemID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Item not found in cart", decodeBody[ErrorResponse](t, rec).Message)
}

func TestEmptyCart(t *testing.T) {
	s := newTestServer(t)
	addWidget(t, s, "u1")
	addWidget(t, s, "u1")

	rec := s.do(t, http.MethodDelete, "/customers/u1/cart/empty", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Cart emptied successfully","userId":"u1"}`, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/customers/u1/cart/quantity", nil)
	assert.Equal(t, 0, decodeBody[CartLengthResponse](t, rec).Length)

	rec = s.do(t, http.MethodDelete, "/customers/ghost/cart/empty", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
