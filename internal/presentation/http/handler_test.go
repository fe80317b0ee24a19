package httptransport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appinventory "github.com/zenmart/fulfillment/internal/application/inventory"
	apporder "github.com/zenmart/fulfillment/internal/application/order"
	apppayment "github.com/zenmart/fulfillment/internal/application/payment"
	"github.com/zenmart/fulfillment/internal/infrastructure/id"
	"github.com/zenmart/fulfillment/internal/infrastructure/inventorygw"
	"github.com/zenmart/fulfillment/internal/infrastructure/memory"
	"github.com/zenmart/fulfillment/internal/infrastructure/ordergw"
	"go.uber.org/zap"
)

// Spins up the full in-memory stack behind the real router. The event bus is
// left out so payments stay PROCESSING until driven explicitly.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	idGen := id.NewUUIDGenerator()
	inventoryService := appinventory.NewService(memory.NewInventoryRepository(), idGen, nil)
	orderService := apporder.NewService(
		memory.NewOrderRepository(),
		idGen,
		inventorygw.New(inventoryService, time.Second),
		nil,
		nil,
	)
	paymentService := apppayment.NewService(
		memory.NewPaymentRepository(),
		idGen,
		ordergw.New(orderService, time.Second),
		nil,
		nil,
		nil,
	)

	router := NewRouter(NewHandler(orderService, paymentService, inventoryService), zap.NewNop())
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "tester")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	}
	return resp, decoded
}

func createItem(t *testing.T, srv *httptest.Server, name string, quantity int, price string) map[string]any {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/inventory", map[string]any{
		"name":        name,
		"category":    "electronics",
		"description": "test item",
		"quantity":    quantity,
		"price":       price,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return body
}

func TestCreateOrderDecrementsInventory(t *testing.T) {
	srv := newTestServer(t)
	item := createItem(t, srv, "Laptop", 50, "999.99")

	resp, order := doJSON(t, http.MethodPost, srv.URL+"/api/orders", map[string]any{
		"customer_id":   "C1",
		"customer_name": "Ada",
		"items": []map[string]any{
			{
				"product_id":   item["id"],
				"product_name": "Laptop",
				"quantity":     2,
				"unit_price":   "999.99",
			},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Regexp(t, `^ORD-[0-9a-f]{8}$`, order["id"])
	assert.Equal(t, "PROCESSING", order["status"])
	assert.Equal(t, "1999.98", order["total_amount"])

	resp, got := doJSON(t, http.MethodGet, srv.URL+"/api/inventory/"+item["id"].(string), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 48, got["quantity"])
}

func TestCreateOrderSurvivesMissingProduct(t *testing.T) {
	srv := newTestServer(t)

	resp, order := doJSON(t, http.MethodPost, srv.URL+"/api/orders", map[string]any{
		"customer_id":   "C1",
		"customer_name": "Ada",
		"items": []map[string]any{
			{
				"product_id":   "ghost",
				"product_name": "Ghost",
				"quantity":     1,
				"unit_price":   "10.00",
			},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "order placement does not depend on stock")

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/orders/"+order["id"].(string), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/orders", map[string]any{
		"customer_id":   "C1",
		"customer_name": "Ada",
		"items":         []map[string]any{},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_REQUEST", body["code"])
}

func TestOrderNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/orders/ORD-missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestOrderLifecycleEndpoints(t *testing.T) {
	srv := newTestServer(t)
	item := createItem(t, srv, "Laptop", 50, "999.99")

	_, order := doJSON(t, http.MethodPost, srv.URL+"/api/orders", map[string]any{
		"customer_id":   "C1",
		"customer_name": "Ada",
		"items": []map[string]any{
			{"product_id": item["id"], "product_name": "Laptop", "quantity": 1, "unit_price": "999.99"},
		},
	})
	orderURL := srv.URL + "/api/orders/" + order["id"].(string)

	// Completing before shipping is rejected.
	resp, body := doJSON(t, http.MethodPost, orderURL+"/complete", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_STATE", body["code"])

	resp, body = doJSON(t, http.MethodPost, orderURL+"/ship", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "SHIPPED", body["status"])

	// A shipped order can no longer be cancelled.
	resp, body = doJSON(t, http.MethodPost, orderURL+"/cancel", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_STATE", body["code"])

	resp, body = doJSON(t, http.MethodPost, orderURL+"/complete", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "COMPLETED", body["status"])

	// The direct status surface still allows arbitrary overwrites.
	resp, body = doJSON(t, http.MethodPut, orderURL+"/status", map[string]any{"status": "PROCESSING"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "PROCESSING", body["status"])
}

func TestPaymentFlowOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	item := createItem(t, srv, "Laptop", 50, "999.99")

	_, order := doJSON(t, http.MethodPost, srv.URL+"/api/orders", map[string]any{
		"customer_id":   "C1",
		"customer_name": "Ada",
		"items": []map[string]any{
			{"product_id": item["id"], "product_name": "Laptop", "quantity": 1, "unit_price": "999.99"},
		},
	})
	orderID := order["id"].(string)

	resp, payment := doJSON(t, http.MethodPost, srv.URL+"/api/payments", map[string]any{
		"order_id":        orderID,
		"customer_id":     "C1",
		"amount":          "999.99",
		"payment_method":  "CREDIT_CARD",
		"payment_gateway": "stripe",
	})
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "PROCESSING", payment["status"])
	assert.NotEmpty(t, payment["transaction_id"])
	paymentID := payment["id"].(string)

	// Refund before completion is a state conflict.
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/payments/"+paymentID+"/refund", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_STATE", body["code"])

	// Force completion through the status surface; the order gets marked PAID.
	resp, body = doJSON(t, http.MethodPut, srv.URL+"/api/payments/"+paymentID+"/status",
		map[string]any{"status": "COMPLETED"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "COMPLETED", body["status"])

	resp, got := doJSON(t, http.MethodGet, srv.URL+"/api/orders/"+orderID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "PAID", got["payment_status"])

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/payments/"+paymentID+"/refund", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "REFUNDED", body["status"])

	resp, got = doJSON(t, http.MethodGet, srv.URL+"/api/orders/"+orderID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "REFUNDED", got["payment_status"])

	resp, byOrder := doJSON(t, http.MethodGet, srv.URL+"/api/payments/order/"+orderID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, paymentID, byOrder["id"])

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/payments", map[string]any{
		"order_id":        orderID,
		"customer_id":     "C1",
		"amount":          "999.99",
		"payment_method":  "CARRIER_PIGEON",
		"payment_gateway": "stripe",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_REQUEST", body["code"])
}

func TestInventoryEndpoints(t *testing.T) {
	srv := newTestServer(t)
	item := createItem(t, srv, "Laptop", 12, "999.99")
	createItem(t, srv, "Desk Lamp", 4, "19.00")
	itemURL := srv.URL + "/api/inventory/" + item["id"].(string)

	resp, body := doJSON(t, http.MethodPut, itemURL+"/decrement", map[string]any{"quantity": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 10, body["quantity"])
	assert.Equal(t, "LOW_STOCK", body["status"])

	resp, body = doJSON(t, http.MethodPut, itemURL+"/decrement", map[string]any{"quantity": 11})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/inventory/search?keyword=lamp", nil)
	require.NoError(t, err)
	searchResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer searchResp.Body.Close()
	var hits []map[string]any
	require.NoError(t, json.NewDecoder(searchResp.Body).Decode(&hits))
	require.Len(t, hits, 1)
	assert.Equal(t, "Desk Lamp", hits[0]["name"])

	resp, body = doJSON(t, http.MethodPut, itemURL, map[string]any{
		"name":        "Laptop",
		"category":    "electronics",
		"description": "restocked",
		"quantity":    100,
		"price":       "899.00",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "IN_STOCK", body["status"])

	req, err = http.NewRequest(http.MethodDelete, itemURL, nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	delResp.Body.Close()
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, itemURL, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestMarkOrderPaymentStatusValidation(t *testing.T) {
	srv := newTestServer(t)
	item := createItem(t, srv, "Laptop", 50, "999.99")

	_, order := doJSON(t, http.MethodPost, srv.URL+"/api/orders", map[string]any{
		"customer_id":   "C1",
		"customer_name": "Ada",
		"items": []map[string]any{
			{"product_id": item["id"], "product_name": "Laptop", "quantity": 1, "unit_price": "999.99"},
		},
	})
	base := fmt.Sprintf("%s/api/orders/%s/payment-status", srv.URL, order["id"])

	resp, body := doJSON(t, http.MethodPut, base+"?status=PAID", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "PAID", body["payment_status"])

	resp, body = doJSON(t, http.MethodPut, base+"?status=SETTLED", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_REQUEST", body["code"])
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
