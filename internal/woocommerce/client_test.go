package woocommerce

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/loopiify-next/internal/config"
)

func TestListCompletedOrdersBuildsQueryAndDecodes(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wp-json/wc/v3/orders" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{
				"id": 101,
				"status": "completed",
				"total": "45.50",
				"currency": "MYR",
				"date_created_gmt": "2025-06-01T08:30:00",
				"billing": {
					"first_name": "Mei",
					"last_name": "Ling",
					"email": "mei@example.com",
					"phone": "012-345 6789",
					"city": "Kuala Lumpur",
					"country": "MY"
				}
			}
		]`))
	}))
	defer server.Close()

	client := NewClient(&config.WooCommerceConfig{PageSize: 50})
	creds := Credentials{BaseURL: server.URL, ConsumerKey: "ck_test", ConsumerSecret: "cs_test"}

	orders, err := client.ListCompletedOrders(context.Background(), creds, 2)
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("orders want 1 got %d", len(orders))
	}
	order := orders[0]
	if order.ID != 101 || order.Total != "45.50" || order.Billing.Phone != "012-345 6789" {
		t.Fatalf("order decoded wrong: %+v", order)
	}
	if order.DateCreated.IsZero() {
		t.Fatalf("date_created_gmt should parse")
	}

	if gotQuery["consumer_key"] != "ck_test" || gotQuery["consumer_secret"] != "cs_test" {
		t.Fatalf("credentials missing from query: %v", gotQuery)
	}
	if gotQuery["status"] != "completed" || gotQuery["per_page"] != "50" || gotQuery["page"] != "2" {
		t.Fatalf("query params wrong: %v", gotQuery)
	}
}

func TestListCompletedOrdersRequiresCredentials(t *testing.T) {
	client := NewClient(nil)
	if _, err := client.ListCompletedOrders(context.Background(), Credentials{}, 1); err != ErrCredentialsMissing {
		t.Fatalf("want ErrCredentialsMissing got %v", err)
	}
}

func TestListCompletedOrdersSurfacesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(nil)
	creds := Credentials{BaseURL: server.URL, ConsumerKey: "ck", ConsumerSecret: "cs"}
	if _, err := client.ListCompletedOrders(context.Background(), creds, 1); err == nil {
		t.Fatalf("expect error for non-2xx response")
	}
}
