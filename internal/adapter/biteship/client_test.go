package biteship

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	domainErrors "github.com/mymedina/commerce/internal/domain/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/rates/couriers", r.URL.Path)
		require.Equal(t, "biteship_test_key", r.Header.Get("Authorization"))

		var req RatesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "jne,jnt", req.Couriers)
		require.Len(t, req.Items, 1)

		_, _ = w.Write([]byte(`{"success":true,"pricing":[
            {"courier_code":"jne","courier_name":"JNE","courier_service_code":"reg","courier_service_name":"Reguler","price":15000,"duration":"2-3 days"},
            {"courier_code":"jnt","courier_name":"J&T","courier_service_code":"ez","courier_service_name":"EZ","price":14000,"duration":"2-4 days"}
        ]}`))
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, "biteship_test_key", discardLogger())
	require.NoError(t, err)

	pricing, err := client.Rates(context.Background(), RatesRequest{
		OriginAreaID:      "IDNP6IDNC148",
		DestinationAreaID: "IDNP9IDNC52",
		Couriers:          "jne,jnt",
		Items:             []Item{{Name: "Gamis Basic", Value: 100000, Weight: 500, Quantity: 1}},
	})
	require.NoError(t, err)
	require.Len(t, pricing, 2)
	require.Equal(t, "jne", pricing[0].CourierCode)
	require.Equal(t, float64(15000), pricing[0].Price)
}

func TestCreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/orders", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"id":"biteship-order-1","price":15000,
            "courier":{"tracking_id":"trk-1","waybill_id":"JNE123456","link":"https://biteship.com/track/trk-1"}}`))
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, "biteship_test_key", discardLogger())
	require.NoError(t, err)

	order, err := client.CreateOrder(context.Background(), OrderRequest{
		CourierCompany: "jne",
		CourierType:    "reg",
		Destination:    Contact{Name: "Siti", Phone: "0812", Address: "Jl. Merdeka 1"},
	})
	require.NoError(t, err)
	require.Equal(t, "biteship-order-1", order.OrderID)
	require.Equal(t, "JNE123456", order.WaybillID)
	require.Equal(t, "https://biteship.com/track/trk-1", order.TrackingURL)
}

func TestTrack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/trackings/trk-1", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"waybill_id":"JNE123456","status":"delivered",
            "link":"https://biteship.com/track/trk-1",
            "history":[{"note":"picked up","status":"picked","updated_at":"2025-01-02T08:00:00+07:00"},
                       {"note":"delivered","status":"delivered","updated_at":"2025-01-03T10:00:00+07:00"}]}`))
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, "biteship_test_key", discardLogger())
	require.NoError(t, err)

	tracking, err := client.Track(context.Background(), "trk-1")
	require.NoError(t, err)
	require.Equal(t, "delivered", tracking.Status)
	require.Len(t, tracking.History, 2)
}

func TestSearchAreas(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/maps/areas", r.URL.Path)
		require.Equal(t, "Bandung", r.URL.Query().Get("input"))
		require.Equal(t, "ID", r.URL.Query().Get("countries"))
		_, _ = w.Write([]byte(`{"success":true,"areas":[{"id":"IDNP9IDNC52","name":"Bandung, West Java","postal_code":40111}]}`))
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, "biteship_test_key", discardLogger())
	require.NoError(t, err)

	areas, err := client.SearchAreas(context.Background(), "Bandung")
	require.NoError(t, err)
	require.Len(t, areas, 1)
	require.Equal(t, "IDNP9IDNC52", areas[0].ID)
}

func TestGatewayErrorSurfacesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"error":"items is required"}`))
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, "biteship_test_key", discardLogger())
	require.NoError(t, err)

	_, err = client.Rates(context.Background(), RatesRequest{})
	var gwErr *domainErrors.GatewayError
	require.ErrorAs(t, err, &gwErr)
	require.Equal(t, "biteship", gwErr.Gateway)
	require.Contains(t, gwErr.Message, "items is required")
}
