package service

import (
	"context"
	"sync"
	"testing"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/testdb"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type published struct {
	Topic string
	Key   string
	Event any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (p *recordingPublisher) PublishEvent(ctx context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{Topic: topic, Key: key, Event: event})
	return p.err
}

func (p *recordingPublisher) Events() []published {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]published(nil), p.events...)
}

func newRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	return &repo.GormRepo{DB: testdb.New(t)}
}

func f64(v float64) *float64 { return &v }

func validOrderRequest() transport.CreateOrderRequest {
	return transport.CreateOrderRequest{
		Customer: &transport.CustomerInput{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
			Phone:     "+15550100",
			Username:  "ada",
		},
		Address: &transport.AddressInput{
			Street: "1 Analytical Way",
			City:   "London",
		},
		Items: []transport.OrderItemInput{
			{ProductID: "sku-1", Name: "Notebook", Price: f64(50), Quantity: 2},
		},
		Pricing: &transport.PricingInput{
			Subtotal: f64(100),
			Shipping: f64(10),
			Tax:      f64(7),
			Total:    f64(117),
		},
	}
}

func seedProduct(t *testing.T, r *repo.GormRepo, name string, stock int) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Price: 10, Stock: stock, Images: []string{}}
	if err := r.CreateProduct(context.Background(), p); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}
