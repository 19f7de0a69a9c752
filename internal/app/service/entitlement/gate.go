package entitlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/purchase"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/models"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/logctx"
)

var (
	// ErrNotFound means there is no approved purchase for the email. An absent
	// row and approved=false are the same thing to callers.
	ErrNotFound = errors.New("no approved purchase for email")
	// ErrAlreadyConsumed means the single generation was already used.
	ErrAlreadyConsumed = errors.New("combo already generated for this purchase")
)

// Gate decides whether an email may run one combo generation.
type Gate struct {
	store purchase.Store
	log   *zap.SugaredLogger
	now   func() time.Time
}

func NewGate(store purchase.Store, log *zap.SugaredLogger) *Gate {
	return &Gate{store: store, log: log, now: time.Now}
}

// CheckAccess returns the purchase when the email still holds its
// entitlement. Store failures are returned wrapped and are neither
// ErrNotFound nor ErrAlreadyConsumed.
func (g *Gate) CheckAccess(ctx context.Context, email string) (*models.Purchase, error) {
	email = purchase.NormalizeEmail(email)
	if email == "" {
		return nil, ErrNotFound
	}
	p, err := g.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, purchase.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("check access: %w", err)
	}
	if !p.Approved {
		return nil, ErrNotFound
	}
	if p.ComboGenerated {
		return p, ErrAlreadyConsumed
	}
	return p, nil
}

// Reserve claims the entitlement before the expensive generation. Losing the
// race to a concurrent request yields ErrAlreadyConsumed.
func (g *Gate) Reserve(ctx context.Context, email string) error {
	ok, err := g.store.ReserveCombo(ctx, email)
	if err != nil {
		return fmt.Errorf("reserve entitlement: %w", err)
	}
	if !ok {
		return ErrAlreadyConsumed
	}
	logctx.FromCtx(ctx, g.log).Infow("entitlement_reserved")
	return nil
}

// Release undoes a reservation after a failed generation so the customer
// can retry. Failures are logged only.
func (g *Gate) Release(ctx context.Context, email string) {
	if err := g.store.ReleaseCombo(ctx, email); err != nil {
		logctx.FromCtx(ctx, g.log).Errorw("entitlement_release_failed", "error", err.Error())
		return
	}
	logctx.FromCtx(ctx, g.log).Infow("entitlement_released")
}

// Complete records a successful generation. It is best effort: the document
// has already been produced and must still reach the customer.
func (g *Gate) Complete(ctx context.Context, email string) {
	if err := g.store.MarkComboGenerated(ctx, email, g.now()); err != nil {
		logctx.FromCtx(ctx, g.log).Errorw("entitlement_consume_failed", "error", err.Error())
		return
	}
	logctx.FromCtx(ctx, g.log).Infow("entitlement_consumed")
}
