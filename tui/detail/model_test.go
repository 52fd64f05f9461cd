package detail

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/espectro-app/espectro/domain"
	"github.com/espectro-app/espectro/interaction"
	"github.com/espectro-app/espectro/tui/common"
	"github.com/espectro-app/espectro/tui/compose"
)

type stubInteractions struct {
	mu      sync.Mutex
	liked   bool
	toggles int
}

func (s *stubInteractions) ListMine(context.Context, domain.InteractionKind) ([]domain.Interaction, error) {
	return nil, nil
}

func (s *stubInteractions) Toggle(_ context.Context, kind domain.InteractionKind, _ domain.ContentRef) (domain.ToggleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toggles++
	s.liked = !s.liked
	return domain.ToggleResult{Kind: kind, Active: s.liked, Message: "Content liked"}, nil
}

type stubComments struct {
	mu    sync.Mutex
	list  []domain.Comment
	added []string
	refs  []domain.ContentRef
}

func (s *stubComments) List(_ context.Context, ref domain.ContentRef) ([]domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refs = append(s.refs, ref)
	return s.list, nil
}

func (s *stubComments) Add(_ context.Context, ref domain.ContentRef, body string) (domain.Comment, error) {
	body, err := domain.NormalizeComment(body)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("adding comment: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.added = append(s.added, body)
	return domain.Comment{ID: "c-new", AuthorName: "Ana", Body: body, CreatedAt: time.Now()}, nil
}

type model = Model[domain.Activity]

func newTestModel(t *testing.T, fetchErr error) (model, *stubInteractions, *stubComments, *interaction.NoticeLog) {
	t.Helper()
	svc := &stubInteractions{}
	comments := &stubComments{}
	notices := interaction.NewNoticeLog()
	m := New(Config[domain.Activity]{
		ID: "act-1",
		Fetch: func(context.Context) (domain.Activity, error) {
			if fetchErr != nil {
				return domain.Activity{}, fetchErr
			}
			return domain.Activity{ID: "act-1", Title: "Calm corner", Counts: domain.Counts{Likes: 2}}, nil
		},
		Interactions: svc,
		Comments:     comments,
		Notices:      notices,
		Body:         common.ActivityBody,
	})
	m = feed(t, m, m.Mount()())
	m = feed(t, m, m.loadComments()())
	return m, svc, comments, notices
}

func feed(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(model)
}

func press(m model, r rune) (model, tea.Cmd) {
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return updated.(model), cmd
}

func TestLikeTogglesSingleItem(t *testing.T) {
	m, svc, _, notices := newTestModel(t, nil)

	m, cmd := press(m, 'l')
	if cmd == nil {
		t.Fatalf("expected toggle command")
	}
	msg := cmd()
	if _, ok := msg.(BackMsg); ok {
		t.Fatalf("like must not leave the view")
	}
	m = feed(t, m, msg)

	if !m.Controller().Liked("act-1") || m.Controller().Count("act-1", domain.Like) != 3 {
		t.Fatalf("expected liked with 3 likes, got %d", m.Controller().Count("act-1", domain.Like))
	}
	if svc.toggles != 1 {
		t.Fatalf("expected one toggle, got %d", svc.toggles)
	}
	if last, _ := notices.Last(); last.Text != "Content liked" {
		t.Fatalf("expected server message, got %q", last.Text)
	}
}

func TestEscEmitsBack(t *testing.T) {
	m, _, _, _ := newTestModel(t, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	if _, ok := cmd().(BackMsg); !ok {
		t.Fatalf("expected BackMsg")
	}
}

func TestCommentsAreLoadedForActivityRef(t *testing.T) {
	_, _, comments, _ := newTestModel(t, nil)
	if len(comments.refs) != 1 || comments.refs[0] != domain.ActivityRef("act-1") {
		t.Fatalf("expected comments listed for activity act-1, got %v", comments.refs)
	}
}

func TestComposeCapturesKeys(t *testing.T) {
	m, svc, _, _ := newTestModel(t, nil)

	m, _ = press(m, 'c')
	if !m.Capturing() {
		t.Fatalf("expected composer to capture keys")
	}
	m, _ = press(m, 'l')
	if svc.toggles != 0 {
		t.Fatalf("typing in the composer must not toggle")
	}
}

func TestSubmittedCommentIsAppended(t *testing.T) {
	m, _, comments, notices := newTestModel(t, nil)

	updated, cmd := m.Update(compose.DoneMsg{Body: "  Worked for us  "})
	m = updated.(model)
	if m.Capturing() {
		t.Fatalf("composer should close")
	}
	m = feed(t, m, cmd())

	if len(m.Comments()) != 1 || m.Comments()[0].Body != "Worked for us" {
		t.Fatalf("expected trimmed comment appended, got %+v", m.Comments())
	}
	if len(comments.added) != 1 {
		t.Fatalf("expected one Add call")
	}
	if last, _ := notices.Last(); last.Text != "Comment posted." {
		t.Fatalf("unexpected notice %q", last.Text)
	}
}

func TestCancelledCommentPostsNothing(t *testing.T) {
	m, _, comments, _ := newTestModel(t, nil)
	_, cmd := m.Update(compose.DoneMsg{})
	if cmd != nil {
		t.Fatalf("cancel should not post")
	}
	if len(comments.added) != 0 {
		t.Fatalf("nothing should be added")
	}
}

func TestTooLongCommentIsReported(t *testing.T) {
	m, _, _, notices := newTestModel(t, nil)

	updated, cmd := m.Update(compose.DoneMsg{Body: strings.Repeat("x", domain.MaxCommentLength+1)})
	m = updated.(model)
	m = feed(t, m, cmd())

	if len(m.Comments()) != 0 {
		t.Fatalf("rejected comment must not be shown")
	}
	last, _ := notices.Last()
	if last.Level != interaction.LevelError || !strings.Contains(last.Text, "1000") {
		t.Fatalf("expected length notice, got %+v", last)
	}
}

func TestMissingItemView(t *testing.T) {
	m, _, _, _ := newTestModel(t, fmt.Errorf("get activity: %w", domain.ErrNotFound))
	if !strings.Contains(m.View(), "no longer available") {
		t.Fatalf("expected missing item message, got %q", m.View())
	}
	m, cmd := press(m, 'l')
	if cmd != nil {
		t.Fatalf("like must be ignored when nothing loaded")
	}
}

func TestViewShowsControlsAndEmptyComments(t *testing.T) {
	m, _, _, _ := newTestModel(t, nil)
	view := m.View()
	for _, want := range []string{"Calm corner", "♡ 2", "No comments yet"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}
