package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestCountsBump_FloorsAtZero(t *testing.T) {
	c := Counts{Likes: 1, Favorites: 0, Comments: 3}

	c = c.Bump(Like, -1).Bump(Like, -1)
	if c.Likes != 0 {
		t.Fatalf("likes must not go negative: %d", c.Likes)
	}
	c = c.Bump(Favorite, 1)
	if c.Favorites != 1 || c.Comments != 3 {
		t.Fatalf("unexpected counts: %#v", c)
	}
	if c.Of(Favorite) != 1 || c.Of(Like) != 0 {
		t.Fatalf("Of mismatch: %#v", c)
	}
}

func TestContentRef_MarshalsExactlyOneForeignKey(t *testing.T) {
	tests := []struct {
		name string
		ref  ContentRef
		want string
	}{
		{name: "article", ref: ArticleRef("a1"), want: `{"articleId":"a1"}`},
		{name: "activity", ref: ActivityRef("x9"), want: `{"activityId":"x9"}`},
		{name: "by kind", ref: RefFor(KindActivity, "x1"), want: `{"activityId":"x1"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := json.Marshal(tc.ref)
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}
			if string(got) != tc.want {
				t.Fatalf("got %s want %s", got, tc.want)
			}
		})
	}
}

func TestContentRef_ZeroValueIsInvalid(t *testing.T) {
	var ref ContentRef
	if ref.Valid() {
		t.Fatalf("zero ref must be invalid")
	}
	if _, err := json.Marshal(ref); !errors.Is(err, ErrInvalidRef) {
		t.Fatalf("expected ErrInvalidRef, got %v", err)
	}
	if ArticleRef("").Valid() {
		t.Fatalf("ref without id must be invalid")
	}
}

func TestInteractionContentID_SkipsMissingKeys(t *testing.T) {
	rec := Interaction{ID: "l1", ArticleID: "a1"}
	if id, ok := rec.ContentID(KindArticle); !ok || id != "a1" {
		t.Fatalf("expected article key, got %q %v", id, ok)
	}
	if _, ok := rec.ContentID(KindActivity); ok {
		t.Fatalf("activity key must be absent")
	}
}

func TestWithCounts_ReturnsUpdatedCopy(t *testing.T) {
	a := Article{ID: "a1", Counts: Counts{Likes: 5}}
	b := a.WithCounts(a.ContentCounts().Bump(Like, 1))
	if a.Counts.Likes != 5 || b.Counts.Likes != 6 {
		t.Fatalf("WithCounts must not mutate receiver: a=%d b=%d", a.Counts.Likes, b.Counts.Likes)
	}
	act := Activity{ID: "x1", Title: "Sensory bin"}
	if act.ContentKind() != KindActivity || act.Headline() != "Sensory bin" {
		t.Fatalf("unexpected activity accessors")
	}
}
