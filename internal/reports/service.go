package reports

import (
	"context"
	"fmt"

	pkgerrors "github.com/gestao-escolar/escolar-backend/pkg/errors"
)

// Dashboard bundles every report block into one payload, matching what
// the management screen renders in a single request.
type Dashboard struct {
	Summary        *DashboardSummary `json:"summary"`
	OrdersByStatus []StatusCount     `json:"orders_by_status"`
	RevenueByMonth []MonthlyRevenue  `json:"revenue_by_month"`
	StockBySchool  []SchoolStock     `json:"stock_by_school"`
	TopProducts    []TopProduct      `json:"top_products"`
}

// Service defines the behavior needed by the reports controller.
type Service interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	RevenueByMonth(ctx context.Context, months int) ([]MonthlyRevenue, error)
	TopProducts(ctx context.Context, limit int) ([]TopProduct, error)
}

type service struct {
	repo *Repository
}

// NewService constructs a reports service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reports repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	summary, err := s.repo.Summary(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "dashboard summary")
	}
	byStatus, err := s.repo.OrdersByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "orders by status")
	}
	byMonth, err := s.repo.RevenueByMonth(ctx, 12)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revenue by month")
	}
	bySchool, err := s.repo.StockBySchool(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "stock by school")
	}
	top, err := s.repo.TopProducts(ctx, 10)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "top products")
	}

	return &Dashboard{
		Summary:        summary,
		OrdersByStatus: byStatus,
		RevenueByMonth: byMonth,
		StockBySchool:  bySchool,
		TopProducts:    top,
	}, nil
}

func (s *service) RevenueByMonth(ctx context.Context, months int) ([]MonthlyRevenue, error) {
	rows, err := s.repo.RevenueByMonth(ctx, months)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revenue by month")
	}
	return rows, nil
}

func (s *service) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	rows, err := s.repo.TopProducts(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "top products")
	}
	return rows, nil
}
