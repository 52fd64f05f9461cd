package interaction

import (
	"context"

	"github.com/espectro-app/espectro/domain"
)

// Target is the part of a content card a click landed on.
type Target int

const (
	TargetCard Target = iota
	TargetLike
	TargetFavorite
)

// Propagates reports whether a click on t reaches the card's own action.
// Like and favorite controls stop propagation.
func (t Target) Propagates() bool {
	return t == TargetCard
}

func (t Target) interaction() (domain.InteractionKind, bool) {
	switch t {
	case TargetLike:
		return domain.Like, true
	case TargetFavorite:
		return domain.Favorite, true
	default:
		return 0, false
	}
}

// Click is a user activation of an item in a list view.
type Click struct {
	ItemID string
	Target Target
}

// Outcome tells the view what to do after a click.
type Outcome struct {
	ItemID   string
	Navigate bool                 // open the item's detail
	Result   *domain.ToggleResult // set when a toggle was confirmed
}

// HandleClick dispatches a click: cards navigate, controls toggle and never
// navigate, whether the toggle succeeded or not.
func (c *Controller[T]) HandleClick(ctx context.Context, click Click) (Outcome, error) {
	out := Outcome{ItemID: click.ItemID}
	kind, isControl := click.Target.interaction()
	if !isControl {
		if _, ok := c.Item(click.ItemID); !ok {
			return out, domain.ErrNotFound
		}
		out.Navigate = click.Target.Propagates()
		return out, nil
	}
	res, err := c.Toggle(ctx, click.ItemID, kind)
	if err != nil {
		return out, err
	}
	out.Result = &res
	return out, nil
}
