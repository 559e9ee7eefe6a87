package stock

import (
	"context"

	"github.com/gestao-escolar/escolar-backend/pkg/config"
	pkgerrors "github.com/gestao-escolar/escolar-backend/pkg/errors"
	"github.com/gestao-escolar/escolar-backend/pkg/logger"
	"gorm.io/gorm"
)

// Ledger applies the stock decrement policy on behalf of the order engine.
//
// The historical behavior is fully permissive: quantities may go negative
// and a missing entry is a silent no-op, which records a sale with no stock
// effect. Both behaviors are preserved by default and each has an opt-in
// strict mode in StockConfig.
type Ledger struct {
	repo *Repository
	cfg  config.StockConfig
	logg *logger.Logger
}

// NewLedger builds a ledger bound to the stock repository.
func NewLedger(repo *Repository, cfg config.StockConfig, logg *logger.Logger) *Ledger {
	return &Ledger{repo: repo, cfg: cfg, logg: logg}
}

// Decrement subtracts amount from the entry for key inside the caller's
// transaction.
func (l *Ledger) Decrement(ctx context.Context, tx *gorm.DB, key Key, amount int) error {
	if amount <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "decrement amount must be positive")
	}

	repo := l.repo.WithTx(tx)

	affected, err := repo.Decrement(ctx, key, amount, l.cfg.EnforceNonNegative)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
	}
	if affected > 0 {
		return nil
	}

	// Nothing matched: either the entry does not exist, or the
	// non-negative guard filtered it out.
	entry, err := repo.Find(ctx, key)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stock entry")
	}

	if entry == nil {
		if l.cfg.RequireEntry {
			return pkgerrors.New(pkgerrors.CodeReference, "no stock entry for school/product/size").
				WithDetails(map[string]any{
					"escola_id":  key.EscolaID,
					"produto_id": key.ProdutoID,
					"tamanho":    key.Tamanho,
				})
		}
		if l.logg != nil {
			ctx = l.logg.WithFields(ctx, map[string]any{
				"escola_id":  key.EscolaID,
				"produto_id": key.ProdutoID,
				"tamanho":    key.Tamanho.String(),
				"amount":     amount,
			})
			l.logg.Warn(ctx, "stock.decrement.missing_entry: sale recorded without stock deduction")
		}
		return nil
	}

	return pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock").
		WithDetails(map[string]any{
			"escola_id":  key.EscolaID,
			"produto_id": key.ProdutoID,
			"tamanho":    key.Tamanho,
			"available":  entry.Quantidade,
			"requested":  amount,
		})
}
