package orders

import (
	"context"
	"fmt"
	"time"

	customersvc "github.com/gestao-escolar/escolar-backend/internal/customers"
	productsvc "github.com/gestao-escolar/escolar-backend/internal/products"
	schoolsvc "github.com/gestao-escolar/escolar-backend/internal/schools"
	"github.com/gestao-escolar/escolar-backend/internal/stock"
	"github.com/gestao-escolar/escolar-backend/pkg/db"
	"github.com/gestao-escolar/escolar-backend/pkg/db/models"
	"github.com/gestao-escolar/escolar-backend/pkg/enums"
	pkgerrors "github.com/gestao-escolar/escolar-backend/pkg/errors"
	"github.com/gestao-escolar/escolar-backend/pkg/logger"
	"github.com/gestao-escolar/escolar-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service defines the behavior needed by the orders controller.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*models.Order, error)
	List(ctx context.Context, params pagination.Params) (*OrderList, error)
	Get(ctx context.Context, id int) (*OrderDetail, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	repo      *Repository
	customers *customersvc.Repository
	schools   *schoolsvc.Repository
	products  *productsvc.Repository
	ledger    *stock.Ledger
	client    *db.Client
	logg      *logger.Logger
}

// NewService constructs an orders service.
func NewService(
	repo *Repository,
	customers *customersvc.Repository,
	schools *schoolsvc.Repository,
	products *productsvc.Repository,
	ledger *stock.Ledger,
	client *db.Client,
	logg *logger.Logger,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if customers == nil || schools == nil || products == nil {
		return nil, fmt.Errorf("catalog repositories required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("stock ledger required")
	}
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{
		repo:      repo,
		customers: customers,
		schools:   schools,
		products:  products,
		ledger:    ledger,
		client:    client,
		logg:      logg,
	}, nil
}

// orderLine is a validated input line with its parsed size.
type orderLine struct {
	OrderLineInput
	size enums.Size
}

func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*models.Order, error) {
	lines, err := s.validateLines(input)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, input, lines); err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.PrecoUnitario.Mul(decimal.NewFromInt(int64(line.Quantidade))))
	}
	total = total.Sub(input.Desconto).Round(2)

	order := &models.Order{
		ClienteID:  input.ClienteID,
		EscolaID:   input.EscolaID,
		Status:     string(enums.OrderStatusPendente),
		Total:      total,
		Desconto:   input.Desconto.Round(2),
		DataPedido: time.Now().UTC(),
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		items := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			items = append(items, models.OrderItem{
				PedidoID:      order.ID,
				ProdutoID:     line.ProdutoID,
				Tamanho:       line.size,
				Quantidade:    line.Quantidade,
				PrecoUnitario: line.PrecoUnitario.Round(2),
			})
		}
		if err := repo.CreateOrderItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order items")
		}
		order.Items = items

		for _, line := range lines {
			key := stock.Key{
				EscolaID:  input.EscolaID,
				ProdutoID: line.ProdutoID,
				Tamanho:   line.size,
			}
			if err := s.ledger.Decrement(ctx, tx, key, line.Quantidade); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"pedido_id": order.ID,
			"total":     order.Total.String(),
			"items":     len(order.Items),
		})
		s.logg.Info(ctx, "orders.place: order created")
	}
	return order, nil
}

func (s *service) validateLines(input PlaceOrderInput) ([]orderLine, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must have at least one item")
	}
	if input.Desconto.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount cannot be negative")
	}

	lines := make([]orderLine, 0, len(input.Items))
	for i, item := range input.Items {
		size, err := enums.ParseSize(item.Tamanho)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid size").
				WithDetails(map[string]any{"item": i})
		}
		if item.Quantidade <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive").
				WithDetails(map[string]any{"item": i})
		}
		if item.PrecoUnitario.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit price cannot be negative").
				WithDetails(map[string]any{"item": i})
		}
		lines = append(lines, orderLine{OrderLineInput: item, size: size})
	}
	return lines, nil
}

func (s *service) checkReferences(ctx context.Context, input PlaceOrderInput, lines []orderLine) error {
	if exists, err := s.customers.Exists(ctx, input.ClienteID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check customer")
	} else if !exists {
		return pkgerrors.New(pkgerrors.CodeReference, "customer not found")
	}
	if exists, err := s.schools.Exists(ctx, input.EscolaID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check school")
	} else if !exists {
		return pkgerrors.New(pkgerrors.CodeReference, "school not found")
	}
	for _, line := range lines {
		if exists, err := s.products.Exists(ctx, line.ProdutoID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check product")
		} else if !exists {
			return pkgerrors.New(pkgerrors.CodeReference, "product not found").
				WithDetails(map[string]any{"produto_id": line.ProdutoID})
		}
	}
	return nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*OrderList, error) {
	list, err := s.repo.List(ctx, params)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

func (s *service) Get(ctx context.Context, id int) (*OrderDetail, error) {
	order, err := s.repo.FindOrder(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	detail := &OrderDetail{Order: *order, Items: order.Items}
	detail.Order.Items = nil
	return detail, nil
}

// Delete removes the pedido and its line items. Stock deducted by the sale
// is not restored.
func (s *service) Delete(ctx context.Context, id int) error {
	var affected int64
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		affected, err = s.repo.WithTx(tx).DeleteOrder(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
		}
		return nil
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return nil
}
