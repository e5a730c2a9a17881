package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webshop/order-api/internal/catalog"
	"github.com/webshop/order-api/internal/orders"
)

func TestAddProductDuplicateName(t *testing.T) {
	api := newTestAPI(t)
	api.addProduct(t, "widget", 1.0, 5)

	w := api.do(t, http.MethodPost, "/products", catalog.ProductInput{Name: "widget", Price: 2.0, InStock: 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// exactly one row survives
	w = api.do(t, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ps []catalog.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ps))
	assert.Len(t, ps, 1)
	assert.Equal(t, 1.0, ps[0].Price)
}

func TestAddProductRejectsInvalidInput(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(t, http.MethodPost, "/products", catalog.ProductInput{Name: "widget", Price: 0, InStock: 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "price")
}

func TestGetProductRepeatable(t *testing.T) {
	api := newTestAPI(t)
	p := api.addProduct(t, "widget", 1.5, 7)

	var bodies []string
	for i := 0; i < 2; i++ {
		w := api.do(t, http.MethodGet, fmt.Sprintf("/products/%d", p.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		bodies = append(bodies, w.Body.String())
	}
	assert.Equal(t, bodies[0], bodies[1], "reads without writes must not differ")
}

func TestGetProductMissing(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(t, http.MethodGet, "/products/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(t, http.MethodGet, "/products/not-a-number", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateProduct(t *testing.T) {
	api := newTestAPI(t)
	p := api.addProduct(t, "widget", 1.0, 5)

	w := api.do(t, http.MethodPut, fmt.Sprintf("/products/%d", p.ID),
		catalog.ProductInput{Name: "widget mk2", Price: 2.5, InStock: 8})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got catalog.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "widget mk2", got.Name)
	assert.Equal(t, 2.5, got.Price)
	assert.Equal(t, 8, got.InStock)

	w = api.do(t, http.MethodPut, "/products/42", catalog.ProductInput{Name: "x", Price: 1, InStock: 0})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProductCascadesToItemsOnly(t *testing.T) {
	api := newTestAPI(t)
	widget := api.addProduct(t, "widget", 1.0, 5)
	api.addProduct(t, "gizmo", 2.0, 5)

	w := api.do(t, http.MethodPost, "/orders", PlaceOrderReq{
		Items: []orders.ItemInput{
			{Name: "widget", Amount: 1},
			{Name: "gizmo", Amount: 2},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var o orders.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &o))

	w = api.do(t, http.MethodDelete, fmt.Sprintf("/products/%d", widget.ID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// the order survives with only the gizmo line
	w = api.do(t, http.MethodGet, fmt.Sprintf("/orders/%d", o.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got orders.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Amount)

	w = api.do(t, http.MethodDelete, fmt.Sprintf("/products/%d", widget.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
