package interaction

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/espectro-app/espectro/domain"
)

func TestApplierAppliesConfirmedState(t *testing.T) {
	gw := newFakeGateway()
	gw.toggle = func(kind domain.InteractionKind, _ domain.ContentRef) (domain.ToggleResult, error) {
		return domain.ToggleResult{Kind: kind, Active: true, Message: "Added to favorites"}, nil
	}
	notices := NewNoticeLog()
	var applied []bool

	res, err := NewApplier(gw, notices, nil).Apply(context.Background(), domain.ActivityRef("x1"), domain.Favorite,
		func(active bool) { applied = append(applied, active) })

	require.NoError(t, err)
	assert.True(t, res.Active)
	assert.Equal(t, []bool{true}, applied)
	last, ok := notices.Last()
	require.True(t, ok)
	assert.Equal(t, LevelInfo, last.Level)
	assert.Equal(t, "Added to favorites", last.Text)
	assert.False(t, last.At.IsZero())
	require.Len(t, gw.calls, 1)
	assert.Equal(t, domain.ActivityRef("x1"), gw.calls[0].ref)
}

func TestApplierFailureLeavesStateUntouched(t *testing.T) {
	gw := newFakeGateway()
	gw.toggle = func(domain.InteractionKind, domain.ContentRef) (domain.ToggleResult, error) {
		return domain.ToggleResult{}, errors.New("503 service unavailable")
	}
	notices := NewNoticeLog()
	applied := false

	_, err := NewApplier(gw, notices, nil).Apply(context.Background(), domain.ArticleRef("a1"), domain.Like,
		func(bool) { applied = true })

	require.Error(t, err)
	assert.False(t, applied)
	got := notices.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, LevelError, got[0].Level)
	assert.Equal(t, "Could not update like. Try again.", got[0].Text)
}

func TestApplierUnauthorizedNotice(t *testing.T) {
	gw := newFakeGateway()
	gw.toggle = func(domain.InteractionKind, domain.ContentRef) (domain.ToggleResult, error) {
		return domain.ToggleResult{}, fmt.Errorf("POST /likes/toggle: %w", domain.ErrUnauthorized)
	}
	notices := NewNoticeLog()

	_, err := NewApplier(gw, notices, nil).Apply(context.Background(), domain.ArticleRef("a1"), domain.Like, nil)

	require.ErrorIs(t, err, domain.ErrUnauthorized)
	last, _ := notices.Last()
	assert.Equal(t, "Session expired. Log in again to like content.", last.Text)
}

func TestApplierRejectsInvalidRef(t *testing.T) {
	gw := newFakeGateway()

	_, err := NewApplier(gw, nil, nil).Apply(context.Background(), domain.ContentRef{}, domain.Like, nil)

	require.ErrorIs(t, err, domain.ErrInvalidRef)
	assert.Zero(t, gw.callCount())
}
