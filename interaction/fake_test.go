package interaction

import (
	"context"
	"sync"

	"github.com/espectro-app/espectro/domain"
)

type toggleCall struct {
	kind domain.InteractionKind
	ref  domain.ContentRef
}

type pendingToggle struct {
	call    toggleCall
	release chan toggleReply
}

type toggleReply struct {
	res domain.ToggleResult
	err error
}

// fakeGateway answers ListMine from fixtures. Toggle is answered by toggle
// when set, or parked on pending until the test releases it.
type fakeGateway struct {
	mu       sync.Mutex
	mine     map[domain.InteractionKind][]domain.Interaction
	mineErr  map[domain.InteractionKind]error
	toggle   func(kind domain.InteractionKind, ref domain.ContentRef) (domain.ToggleResult, error)
	calls    []toggleCall
	listings int
	pending  chan pendingToggle
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		mine:    make(map[domain.InteractionKind][]domain.Interaction),
		mineErr: make(map[domain.InteractionKind]error),
	}
}

func (f *fakeGateway) ListMine(_ context.Context, kind domain.InteractionKind) ([]domain.Interaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listings++
	if err := f.mineErr[kind]; err != nil {
		return nil, err
	}
	return f.mine[kind], nil
}

func (f *fakeGateway) Toggle(ctx context.Context, kind domain.InteractionKind, ref domain.ContentRef) (domain.ToggleResult, error) {
	call := toggleCall{kind: kind, ref: ref}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	toggle, pending := f.toggle, f.pending
	f.mu.Unlock()

	if pending != nil {
		p := pendingToggle{call: call, release: make(chan toggleReply, 1)}
		pending <- p
		select {
		case r := <-p.release:
			return r.res, r.err
		case <-ctx.Done():
			return domain.ToggleResult{}, ctx.Err()
		}
	}
	if toggle != nil {
		return toggle(kind, ref)
	}
	return domain.ToggleResult{Kind: kind, Active: true}, nil
}

func (f *fakeGateway) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func liked(articleIDs ...string) []domain.Interaction {
	out := make([]domain.Interaction, 0, len(articleIDs))
	for i, id := range articleIDs {
		out = append(out, domain.Interaction{ID: "rec-" + string(rune('a'+i)), UserID: "u1", ArticleID: id})
	}
	return out
}

func articleSource(items ...domain.Article) Source[domain.Article] {
	return func(context.Context) ([]domain.Article, error) {
		return items, nil
	}
}

func article(id string, likes, favorites int) domain.Article {
	return domain.Article{ID: id, Title: "Article " + id, Counts: domain.Counts{Likes: likes, Favorites: favorites}}
}
