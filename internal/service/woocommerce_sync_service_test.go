package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/loopiify-next/internal/woocommerce"
)

// fakeOrderLister 按页返回预置订单
type fakeOrderLister struct {
	pages    [][]woocommerce.Order
	pageSize int
}

func (f *fakeOrderLister) ListCompletedOrders(_ context.Context, _ woocommerce.Credentials, page int) ([]woocommerce.Order, error) {
	if page < 1 || page > len(f.pages) {
		return nil, nil
	}
	return f.pages[page-1], nil
}

func (f *fakeOrderLister) PageSize() int {
	return f.pageSize
}

func wooOrder(id int64, phone, total string) woocommerce.Order {
	return woocommerce.Order{
		ID:          id,
		Status:      "completed",
		Total:       total,
		Currency:    "MYR",
		DateCreated: woocommerce.OrderTime{Time: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)},
		Billing: woocommerce.Billing{
			FirstName: "Mei",
			LastName:  "Ling",
			Phone:     phone,
		},
	}
}

func TestSyncStoreImportsPagedOrders(t *testing.T) {
	env := setupServiceTest(t)
	store := env.createStore(t, "sync-paged")
	store.WooCommerceURL = "https://shop.example.com"
	store.ConsumerKey = "ck"
	store.ConsumerSecret = "cs"
	if err := env.storeRepo.Update(store); err != nil {
		t.Fatalf("update store failed: %v", err)
	}

	lister := &fakeOrderLister{
		pageSize: 2,
		pages: [][]woocommerce.Order{
			{
				wooOrder(1, "0123450001", "100.00"),
				wooOrder(2, "0123450002", "50.00"),
			},
			{
				// 同一顾客的第二笔订单
				wooOrder(3, "0123450001", "25.50"),
			},
		},
	}
	svc := NewWooCommerceSyncService(env.storeRepo, env.customerRepo, lister)

	result, err := svc.SyncStore(context.Background(), store.ID)
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if result.Pages != 2 || result.Orders != 3 {
		t.Fatalf("result wrong: %+v", result)
	}
	if result.CustomersCreated != 2 || result.CustomersUpdated != 1 {
		t.Fatalf("customer counts wrong: %+v", result)
	}

	repeat, err := env.customerRepo.GetByStorePhone(store.ID, "60123450001")
	if err != nil || repeat == nil {
		t.Fatalf("repeat customer missing: %v", err)
	}
	if repeat.TotalSpent.String() != "125.50" || repeat.OrdersCount != 2 {
		t.Fatalf("repeat customer aggregates wrong: spent=%s orders=%d", repeat.TotalSpent.String(), repeat.OrdersCount)
	}
	if repeat.LastOrderDate == nil {
		t.Fatalf("last order date should be set")
	}
}

func TestSyncStoreSkipsOrdersWithoutPhone(t *testing.T) {
	env := setupServiceTest(t)
	store := env.createStore(t, "sync-skip")

	lister := &fakeOrderLister{
		pageSize: 10,
		pages: [][]woocommerce.Order{
			{
				wooOrder(1, "", "100.00"),
				wooOrder(2, "0123460001", "not-a-number"),
				wooOrder(3, "0123460002", "80.00"),
			},
		},
	}
	svc := NewWooCommerceSyncService(env.storeRepo, env.customerRepo, lister)

	result, err := svc.SyncStore(context.Background(), store.ID)
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if result.Skipped != 2 || result.CustomersCreated != 1 {
		t.Fatalf("skip counts wrong: %+v", result)
	}
}

func TestSyncStoreUnknownStore(t *testing.T) {
	env := setupServiceTest(t)
	svc := NewWooCommerceSyncService(env.storeRepo, env.customerRepo, &fakeOrderLister{pageSize: 10})
	if _, err := svc.SyncStore(context.Background(), 9999); !errors.Is(err, ErrStoreNotFound) {
		t.Fatalf("want ErrStoreNotFound got %v", err)
	}
}
