package interaction

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/espectro-app/espectro/app"
	"github.com/espectro-app/espectro/domain"
)

// Source fetches the collection a list view displays.
type Source[T any] func(ctx context.Context) ([]T, error)

type options struct {
	name       string
	prune      map[domain.InteractionKind]bool
	collection map[domain.InteractionKind]bool
}

// Option configures a Controller.
type Option func(*options)

// WithName labels the controller in logs and notices.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithPrune drops an item from the collection once kind is unset on it.
// Views listing "my favorites" or "my likes" use it.
func WithPrune(kind domain.InteractionKind) Option {
	return func(o *options) { o.prune[kind] = true }
}

// WithCollectionMembership declares that the collection holds exactly the
// items the user marked with kind. Mount then builds that membership set from
// the fetched items instead of listing the user's records a second time.
func WithCollectionMembership(kind domain.InteractionKind) Option {
	return func(o *options) { o.collection[kind] = true }
}

// confirmed is a toggle the server answered while a mount was in flight.
type confirmed struct {
	id     string
	kind   domain.InteractionKind
	active bool
}

// Controller owns one screen's content collection and the like and favorite
// membership sets for that content kind. Safe for concurrent use.
type Controller[T domain.Content[T]] struct {
	kind       domain.ContentKind
	name       string
	prune      map[domain.InteractionKind]bool
	collection map[domain.InteractionKind]bool
	source     Source[T]
	svc        app.InteractionService
	applier    *Applier
	notifier   Notifier
	logger     *zap.Logger

	mu        sync.RWMutex
	items     []T
	likes     *MembershipSet
	favorites *MembershipSet
	mounted   bool
	loadErr   error

	// generation is bumped when a mount starts; landed is the generation
	// whose results are on display. They differ while a mount is in flight.
	generation int
	landed     int
	journal    []confirmed
}

// NewController wires a controller. The content kind comes from T.
func NewController[T domain.Content[T]](source Source[T], svc app.InteractionService, notifier Notifier, logger *zap.Logger, opts ...Option) *Controller[T] {
	var zero T
	kind := zero.ContentKind()
	o := options{
		name:       kind.Plural(),
		prune:      make(map[domain.InteractionKind]bool),
		collection: make(map[domain.InteractionKind]bool),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if notifier == nil {
		notifier = NotifierFunc(func(Notice) {})
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("view", o.name))
	return &Controller[T]{
		kind:       kind,
		name:       o.name,
		prune:      o.prune,
		collection: o.collection,
		source:     source,
		svc:        svc,
		applier:    NewApplier(svc, notifier, logger),
		notifier:   notifier,
		logger:     logger,
		likes:      NewMembershipSet(domain.Like, kind),
		favorites:  NewMembershipSet(domain.Favorite, kind),
	}
}

// Mount fetches the collection and both membership sets concurrently and
// replaces all prior state. Membership failures degrade to empty sets; a
// collection failure leaves the view empty and is returned.
//
// When mounts overlap, only the most recently started one is kept. Toggles
// the server confirms while a mount is in flight are replayed onto its
// results, so a snapshot fetched before the toggle does not undo it.
func (c *Controller[T]) Mount(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.journal = nil
	c.mu.Unlock()

	var (
		items   []T
		loadErr error
		sets    = map[domain.InteractionKind]*MembershipSet{}
		setsMu  sync.Mutex
		wg      sync.WaitGroup
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		items, loadErr = c.source(ctx)
	}()
	for _, kind := range []domain.InteractionKind{domain.Like, domain.Favorite} {
		if c.collection[kind] {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			set := LoadMembership(ctx, c.svc, kind, c.kind, c.logger)
			setsMu.Lock()
			sets[kind] = set
			setsMu.Unlock()
		}()
	}
	wg.Wait()

	if loadErr != nil {
		items = nil
	}
	for kind := range c.collection {
		ids := make([]string, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ContentID())
		}
		sets[kind] = NewMembershipSet(kind, c.kind, ids...)
	}

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		c.logger.Debug("discarding superseded mount", zap.Int("generation", gen))
		return nil
	}
	c.landed = gen
	c.mounted = true
	c.likes = sets[domain.Like]
	c.favorites = sets[domain.Favorite]
	c.loadErr = loadErr
	c.items = items
	replayed := len(c.journal)
	c.replayLocked()
	c.mu.Unlock()

	if loadErr != nil {
		c.logger.Error("loading collection failed", zap.Error(loadErr))
		c.notifier.Notify(Notice{Level: LevelError, Text: "Could not load " + c.name + "."})
		return fmt.Errorf("loading %s: %w", c.name, loadErr)
	}
	c.logger.Debug("mounted",
		zap.Int("items", len(items)),
		zap.Int("liked", sets[domain.Like].Len()),
		zap.Int("favorited", sets[domain.Favorite].Len()),
		zap.Int("replayed", replayed),
	)
	return nil
}

// replayLocked reapplies toggles confirmed during the mount. A toggle the
// snapshot already reflects changes nothing.
func (c *Controller[T]) replayLocked() {
	for _, e := range c.journal {
		if c.setLocked(e.kind).Contains(e.id) == e.active {
			continue
		}
		c.markLocked(e.id, e.kind, e.active)
	}
	c.journal = nil
}

// Toggle likes or favorites the item with id through the Applier.
func (c *Controller[T]) Toggle(ctx context.Context, id string, kind domain.InteractionKind) (domain.ToggleResult, error) {
	c.mu.RLock()
	_, ok := c.indexLocked(id)
	gen := c.generation
	c.mu.RUnlock()
	if !ok {
		return domain.ToggleResult{}, fmt.Errorf("%s %q: %w", c.kind, id, domain.ErrNotFound)
	}
	return c.applier.Apply(ctx, domain.RefFor(c.kind, id), kind, func(active bool) {
		c.confirm(gen, id, kind, active)
	})
}

// confirm applies a server-confirmed toggle. Membership and counter change
// under one lock so readers never see one without the other. A response to a
// toggle issued before the displayed mount started is already reflected in
// that mount's snapshot and is ignored.
func (c *Controller[T]) confirm(gen int, id string, kind domain.InteractionKind, active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.landed > gen {
		return
	}
	if c.landed != c.generation {
		c.journal = append(c.journal, confirmed{id: id, kind: kind, active: active})
	}
	c.markLocked(id, kind, active)
}

func (c *Controller[T]) markLocked(id string, kind domain.InteractionKind, active bool) {
	c.setLocked(kind).set(id, active)
	i, ok := c.indexLocked(id)
	if !ok {
		return
	}
	if !active && c.prune[kind] {
		c.items = slices.Delete(c.items, i, i+1)
		return
	}
	delta := 1
	if !active {
		delta = -1
	}
	item := c.items[i]
	c.items[i] = item.WithCounts(item.ContentCounts().Bump(kind, delta))
}

func (c *Controller[T]) indexLocked(id string) (int, bool) {
	i := slices.IndexFunc(c.items, func(it T) bool { return it.ContentID() == id })
	return i, i >= 0
}

func (c *Controller[T]) setLocked(kind domain.InteractionKind) *MembershipSet {
	if kind == domain.Favorite {
		return c.favorites
	}
	return c.likes
}

// Kind returns the content kind this controller displays.
func (c *Controller[T]) Kind() domain.ContentKind { return c.kind }

// Name returns the view label.
func (c *Controller[T]) Name() string { return c.name }

// Items returns a copy of the collection as currently held.
func (c *Controller[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

// Item returns one item by ID.
func (c *Controller[T]) Item(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i, ok := c.indexLocked(id); ok {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Entry is one item with the user's marks on it, read together.
type Entry[T any] struct {
	Item      T
	Liked     bool
	Favorited bool
}

// Entries returns the collection with its marks from a single read of the
// controller state, so counters and markers always agree.
func (c *Controller[T]) Entries() []Entry[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Entry[T], 0, len(c.items))
	for _, it := range c.items {
		id := it.ContentID()
		out = append(out, Entry[T]{Item: it, Liked: c.likes.Contains(id), Favorited: c.favorites.Contains(id)})
	}
	return out
}

// Lookup returns the entry for id.
func (c *Controller[T]) Lookup(id string) (Entry[T], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.indexLocked(id)
	if !ok {
		return Entry[T]{}, false
	}
	it := c.items[i]
	return Entry[T]{Item: it, Liked: c.likes.Contains(id), Favorited: c.favorites.Contains(id)}, true
}

// Liked reports whether the user has liked id.
func (c *Controller[T]) Liked(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.likes.Contains(id)
}

// Favorited reports whether the user has favorited id.
func (c *Controller[T]) Favorited(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.favorites.Contains(id)
}

// Marked reports whether kind is set on id.
func (c *Controller[T]) Marked(id string, kind domain.InteractionKind) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.setLocked(kind).Contains(id)
}

// Count returns the displayed counter of kind for id.
func (c *Controller[T]) Count(id string, kind domain.InteractionKind) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i, ok := c.indexLocked(id); ok {
		return c.items[i].ContentCounts().Of(kind)
	}
	return 0
}

// Memberships returns the like and favorite sets of the current mount.
func (c *Controller[T]) Memberships() (likes, favorites *MembershipSet) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.likes, c.favorites
}

// Mounting reports whether a mount has started and not yet landed.
func (c *Controller[T]) Mounting() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.landed != c.generation
}

// Mounted reports whether Mount has completed at least once.
func (c *Controller[T]) Mounted() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mounted
}

// Empty reports a mounted view with nothing to show.
func (c *Controller[T]) Empty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mounted && len(c.items) == 0
}

// Err returns the collection error of the last mount.
func (c *Controller[T]) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadErr
}
