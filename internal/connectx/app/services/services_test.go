package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connectx/internal/connectx/app/dto"
	"connectx/internal/connectx/app/services"
	"connectx/internal/connectx/client"
	"connectx/internal/connectx/config"
)

// recordedRequest - снимок запроса, принятого тестовым бэкендом.
type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   []byte
}

func newServiceBackend(t *testing.T, response string, record *recordedRequest) *client.Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		record.Method = r.Method
		record.Path = r.URL.Path
		record.Query = r.URL.RawQuery
		var raw json.RawMessage
		_ = json.NewDecoder(r.Body).Decode(&raw)
		record.Body = raw
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)

	cfg := &config.Config{
		BaseURL:        server.URL,
		APIKey:         "test-api-key",
		RequestTimeout: 5 * time.Second,
	}
	c, err := client.New(cfg, nil)
	require.NoError(t, err)
	return c
}

func TestProductsService_List(t *testing.T) {
	var record recordedRequest
	c := newServiceBackend(t, `{"count":1,"next":null,"previous":null,"results":[{"id":"p1","name":"Sneakers","price":79.9}]}`, &record)
	svc := services.NewProductsService(c)

	page, err := svc.List(context.Background(), dto.ListParams{Page: 2, PageSize: 10, Search: "sneak"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, record.Method)
	assert.Equal(t, "/products/", record.Path)
	assert.Equal(t, "page=2&page_size=10&search=sneak", record.Query)

	assert.Equal(t, 1, page.Count)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Sneakers", page.Results[0].Name)
}

func TestProductsService_Get(t *testing.T) {
	var record recordedRequest
	c := newServiceBackend(t, `{"id":"p1","name":"Sneakers"}`, &record)
	svc := services.NewProductsService(c)

	product, err := svc.Get(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, "/products/p1/", record.Path, "resource path must end with a slash")
	assert.Equal(t, "p1", product.ID)
}

func TestProductsService_Update(t *testing.T) {
	var record recordedRequest
	c := newServiceBackend(t, `{"id":"p1","name":"Sneakers","price":59.9}`, &record)
	svc := services.NewProductsService(c)

	price := 59.9
	product, err := svc.Update(context.Background(), "p1", &dto.UpdateProductRequest{Price: &price})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, record.Method)
	assert.Equal(t, "/products/p1/", record.Path)
	assert.JSONEq(t, `{"price":59.9}`, string(record.Body), "unset fields must be omitted from the patch")
	assert.InDelta(t, 59.9, product.Price, 0.0001)
}

func TestProductsService_Delete(t *testing.T) {
	var record recordedRequest
	c := newServiceBackend(t, `{}`, &record)
	svc := services.NewProductsService(c)

	require.NoError(t, svc.Delete(context.Background(), "p1"))
	assert.Equal(t, http.MethodDelete, record.Method)
	assert.Equal(t, "/products/p1/", record.Path)
}

func TestPaymentsService_Initialize(t *testing.T) {
	t.Run("fills tx_ref when empty", func(t *testing.T) {
		var record recordedRequest
		c := newServiceBackend(t, `{"checkout_url":"https://checkout.chapa.co/x","tx_ref":"tx-abc"}`, &record)
		svc := services.NewPaymentsService(c)

		req := &dto.InitializePaymentRequest{OrderID: "o1", Amount: 100, Currency: "ETB"}
		resp, err := svc.Initialize(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, "/payments/initialize_chapa_payment/", record.Path)
		assert.NotEmpty(t, req.TxRef)
		assert.True(t, strings.HasPrefix(req.TxRef, "tx-"))
		assert.Equal(t, "https://checkout.chapa.co/x", resp.CheckoutURL)

		var sent map[string]any
		require.NoError(t, json.Unmarshal(record.Body, &sent))
		assert.Equal(t, req.TxRef, sent["tx_ref"], "generated tx_ref must be sent to the backend")
	})

	t.Run("keeps caller-provided tx_ref", func(t *testing.T) {
		var record recordedRequest
		c := newServiceBackend(t, `{"checkout_url":"https://checkout.chapa.co/x","tx_ref":"tx-mine"}`, &record)
		svc := services.NewPaymentsService(c)

		req := &dto.InitializePaymentRequest{OrderID: "o1", Amount: 100, Currency: "ETB", TxRef: "tx-mine"}
		_, err := svc.Initialize(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, "tx-mine", req.TxRef)
	})
}

func TestPaymentsService_Verify(t *testing.T) {
	var record recordedRequest
	c := newServiceBackend(t, `{"status":"success","tx_ref":"tx-1","amount":100,"currency":"ETB"}`, &record)
	svc := services.NewPaymentsService(c)

	resp, err := svc.Verify(context.Background(), "tx-1")
	require.NoError(t, err)

	assert.Equal(t, "/payments/verify_chapa_payment/", record.Path)
	assert.JSONEq(t, `{"tx_ref":"tx-1"}`, string(record.Body))
	assert.Equal(t, "success", resp.Status)
}

func TestTenantsService_UpdateStatus(t *testing.T) {
	var record recordedRequest
	c := newServiceBackend(t, `{"id":"t1","name":"Shop","status":"approved"}`, &record)
	svc := services.NewTenantsService(c)

	tenant, err := svc.UpdateStatus(context.Background(), "t1", &dto.UpdateTenantStatusRequest{Status: dto.TenantStatusApproved})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, record.Method)
	assert.Equal(t, "approved", tenant.Status)
}
