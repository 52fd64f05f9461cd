package interaction

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/espectro-app/espectro/domain"
)

func TestLoadMembershipKeepsOnlyMatchingForeignKeys(t *testing.T) {
	gw := newFakeGateway()
	gw.mine[domain.Favorite] = []domain.Interaction{
		{ID: "f1", ArticleID: "a1"},
		{ID: "f2", ActivityID: "x9"},
		{ID: "f3"}, // content deleted server-side
		{ID: "f4", ArticleID: "a2"},
	}

	set := LoadMembership(context.Background(), gw, domain.Favorite, domain.KindArticle, zap.NewNop())

	assert.Equal(t, []string{"a1", "a2"}, set.IDs())
	assert.False(t, set.Contains("x9"))
	assert.Equal(t, domain.Favorite, set.Kind())
	assert.Equal(t, domain.KindArticle, set.ContentKind())
}

func TestLoadMembershipFailureYieldsEmptySet(t *testing.T) {
	gw := newFakeGateway()
	gw.mineErr[domain.Like] = errors.New("boom")

	set := LoadMembership(context.Background(), gw, domain.Like, domain.KindActivity, zap.NewNop())

	assert.Zero(t, set.Len())
	assert.Empty(t, set.IDs())
}

func TestMembershipSetIgnoresEmptySeedIDs(t *testing.T) {
	set := NewMembershipSet(domain.Like, domain.KindArticle, "a1", "", "a1")
	assert.Equal(t, 1, set.Len())

	set.set("a2", true)
	set.set("a1", false)
	set.set("zz", false)
	assert.Equal(t, []string{"a2"}, set.IDs())
}
