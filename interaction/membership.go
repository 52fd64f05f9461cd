package interaction

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/espectro-app/espectro/app"
	"github.com/espectro-app/espectro/domain"
)

// MembershipSet holds the IDs of content of one kind the current user has
// marked with one interaction kind. It lives as long as the view that loaded
// it and is only changed by its Controller once the server confirms a toggle.
type MembershipSet struct {
	kind    domain.InteractionKind
	content domain.ContentKind

	mu  sync.RWMutex
	ids map[string]struct{}
}

// NewMembershipSet creates a set seeded with ids.
func NewMembershipSet(kind domain.InteractionKind, content domain.ContentKind, ids ...string) *MembershipSet {
	s := &MembershipSet{
		kind:    kind,
		content: content,
		ids:     make(map[string]struct{}, len(ids)),
	}
	for _, id := range ids {
		if id != "" {
			s.ids[id] = struct{}{}
		}
	}
	return s
}

// LoadMembership fetches the user's records of kind and keeps the foreign
// keys pointing at content of the given kind. Records without that key
// (content deleted server-side, or the other content kind) are dropped.
// A failed listing yields an empty set; it is logged and never retried.
func LoadMembership(ctx context.Context, svc app.InteractionService, kind domain.InteractionKind, content domain.ContentKind, logger *zap.Logger) *MembershipSet {
	set := NewMembershipSet(kind, content)
	records, err := svc.ListMine(ctx, kind)
	if err != nil {
		logger.Warn("membership listing failed; starting empty",
			zap.Stringer("interaction", kind),
			zap.Stringer("content", content),
			zap.Error(err),
		)
		return set
	}
	for _, rec := range records {
		if id, ok := rec.ContentID(content); ok {
			set.ids[id] = struct{}{}
		}
	}
	return set
}

func (s *MembershipSet) Kind() domain.InteractionKind    { return s.kind }
func (s *MembershipSet) ContentKind() domain.ContentKind { return s.content }

// Contains reports whether id is marked.
func (s *MembershipSet) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of marked IDs.
func (s *MembershipSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// IDs returns a sorted copy of the marked IDs.
func (s *MembershipSet) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s *MembershipSet) set(id string, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if active {
		s.ids[id] = struct{}{}
		return
	}
	delete(s.ids, id)
}
