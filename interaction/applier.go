package interaction

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/espectro-app/espectro/app"
	"github.com/espectro-app/espectro/domain"
)

// Applier performs a toggle against the gateway and, once the server has
// answered, hands the returned state to the caller's apply function, which
// updates membership and the denormalized counter together. Nothing is
// applied before the response, and nothing at all when the request fails.
type Applier struct {
	svc      app.InteractionService
	notifier Notifier
	logger   *zap.Logger
}

// NewApplier creates an Applier.
func NewApplier(svc app.InteractionService, notifier Notifier, logger *zap.Logger) *Applier {
	if notifier == nil {
		notifier = NotifierFunc(func(Notice) {})
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Applier{svc: svc, notifier: notifier, logger: logger}
}

// Apply toggles kind on ref. apply receives the state the server reports.
func (a *Applier) Apply(ctx context.Context, ref domain.ContentRef, kind domain.InteractionKind, apply func(active bool)) (domain.ToggleResult, error) {
	if !ref.Valid() {
		return domain.ToggleResult{}, domain.ErrInvalidRef
	}

	res, err := a.svc.Toggle(ctx, kind, ref)
	if err != nil {
		a.logger.Error("toggle failed",
			zap.Stringer("interaction", kind),
			zap.Stringer("ref", ref),
			zap.Error(err),
		)
		a.notifier.Notify(Notice{Level: LevelError, Text: failureText(kind, err)})
		return domain.ToggleResult{}, fmt.Errorf("toggling %s on %s: %w", kind, ref, err)
	}

	if apply != nil {
		apply(res.Active)
	}

	if res.Message != "" {
		a.notifier.Notify(Notice{Level: LevelInfo, Text: res.Message})
	}
	a.logger.Debug("toggle applied",
		zap.Stringer("interaction", kind),
		zap.Stringer("ref", ref),
		zap.Bool("active", res.Active),
	)
	return res, nil
}

func failureText(kind domain.InteractionKind, err error) string {
	if errors.Is(err, domain.ErrUnauthorized) {
		return "Session expired. Log in again to " + kind.String() + " content."
	}
	return "Could not update " + kind.String() + ". Try again."
}
