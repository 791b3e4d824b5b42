package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
)

type AdminService struct {
	Repo *repo.GormRepo
}

type CustomerPage struct {
	Customers []repo.CustomerRow `json:"customers"`
	Page      int                `json:"page"`
	Pages     int                `json:"pages"`
	Total     int64              `json:"total"`
}

// Stats aggregates order counts per status and revenue. Cancelled orders do
// not count toward revenue.
func (s *AdminService) Stats(ctx context.Context) (*transport.Stats, error) {
	rows, err := s.Repo.OrderStatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.Repo.CountProducts(ctx)
	if err != nil {
		return nil, err
	}

	st := &transport.Stats{
		OrdersByState: make(map[models.OrderStatus]int64, len(models.OrderStatuses)),
		TotalProducts: products,
	}
	for _, status := range models.OrderStatuses {
		st.OrdersByState[status] = 0
	}

	revenue := decimal.Zero
	for _, r := range rows {
		st.TotalOrders += r.Count
		st.OrdersByState[r.OrderStatus] = r.Count
		if r.OrderStatus != models.OrderStatusCancelled {
			revenue = revenue.Add(decimal.NewFromFloat(r.Revenue))
		}
	}
	st.Revenue = money(revenue)
	return st, nil
}

func (s *AdminService) Customers(ctx context.Context, page, limit int) (*CustomerPage, error) {
	page, offset, limit := util.Calculate(page, limit)
	total, rows, err := s.Repo.ListCustomers(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].TotalSpent = money(decimal.NewFromFloat(rows[i].TotalSpent))
	}
	return &CustomerPage{Customers: rows, Page: page, Pages: util.Pages(total, limit), Total: total}, nil
}
