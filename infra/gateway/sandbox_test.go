package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/espectro-app/espectro/app"
	"github.com/espectro-app/espectro/domain"
	"github.com/espectro-app/espectro/infra/auth"
	"github.com/espectro-app/espectro/infra/sandbox"
)

type stack struct {
	sandbox *sandbox.Server
	session *auth.Session
	client  *Client
}

func newStack(t *testing.T) stack {
	t.Helper()
	sb := sandbox.New()
	srv := httptest.NewServer(sb.Handler())
	t.Cleanup(srv.Close)

	session, err := auth.NewSession(auth.NewFileStore(filepath.Join(t.TempDir(), "session")), nil)
	require.NoError(t, err)
	client := NewClient(srv.URL, session,
		WithTimeout(5*time.Second),
		WithUnauthorizedHook(func() { _ = session.Logout() }),
	)

	token, user, err := NewAuthService(client).Login(context.Background(), domain.Credentials{Email: sandbox.DemoEmail, Password: sandbox.DemoPassword})
	require.NoError(t, err)
	require.NoError(t, session.Start(token, user))
	return stack{sandbox: sb, session: session, client: client}
}

func TestSandbox_LoginAndMe(t *testing.T) {
	st := newStack(t)

	me, err := NewAuthService(st.client).Me(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "u-demo", me.ID)
	assert.Equal(t, domain.RoleCaregiver, me.Role)
}

func TestSandbox_LoginRejectsBadPassword(t *testing.T) {
	st := newStack(t)

	_, _, err := NewAuthService(st.client).Login(context.Background(), domain.Credentials{Email: sandbox.DemoEmail, Password: "not-the-password"})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.True(t, st.session.Valid(), "a failed login must not end the current session")
}

func TestSandbox_ToggleRoundTrip(t *testing.T) {
	st := newStack(t)
	content := NewContentService(st.client)
	interactions := NewInteractionService(st.client)
	ctx := context.Background()

	before, err := content.GetArticle(ctx, "art-3")
	require.NoError(t, err)

	res, err := interactions.Toggle(ctx, domain.Like, domain.ArticleRef("art-3"))
	require.NoError(t, err)
	assert.True(t, res.Active)
	assert.Equal(t, "Content liked", res.Message)

	mine, err := interactions.ListMine(ctx, domain.Like)
	require.NoError(t, err)
	var ids []string
	for _, rec := range mine {
		if id, ok := rec.ContentID(domain.KindArticle); ok {
			ids = append(ids, id)
		}
	}
	assert.Contains(t, ids, "art-3")

	after, err := content.GetArticle(ctx, "art-3")
	require.NoError(t, err)
	assert.Equal(t, before.Counts.Likes+1, after.Counts.Likes)

	res, err = interactions.Toggle(ctx, domain.Like, domain.ArticleRef("art-3"))
	require.NoError(t, err)
	assert.False(t, res.Active)
}

func TestSandbox_UnauthorizedLogsOut(t *testing.T) {
	st := newStack(t)
	loggedOut := 0
	st.session.OnLogout(func() { loggedOut++ })
	st.sandbox.FailNext("/likes/toggle", http.StatusUnauthorized)

	_, err := NewInteractionService(st.client).Toggle(context.Background(), domain.Like, domain.ArticleRef("art-1"))

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, 1, loggedOut)
	assert.False(t, st.session.Valid())

	_, err = NewContentService(st.client).ListArticles(context.Background(), app.Filter{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSandbox_Comments(t *testing.T) {
	st := newStack(t)
	svc := NewCommentService(st.client)
	ctx := context.Background()

	_, err := svc.Add(ctx, domain.ActivityRef("act-1"), "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyComment)

	added, err := svc.Add(ctx, domain.ActivityRef("act-1"), " Worked great \n")
	require.NoError(t, err)
	assert.Equal(t, "Worked great", added.Body)
	assert.Equal(t, "Demo Caregiver", added.AuthorName)

	list, err := svc.List(ctx, domain.ActivityRef("act-1"))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, added.ID, list[0].ID)
}

func TestSandbox_ProfilesCRUD(t *testing.T) {
	st := newStack(t)
	svc := NewProfileService(st.client)
	ctx := context.Background()

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Mateo", list[0].Name)
	assert.False(t, list[0].BirthDate.IsZero())

	_, err = svc.Create(ctx, domain.AutismProfile{Name: "Future", BirthDate: time.Now().AddDate(1, 0, 0)})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	created, err := svc.Create(ctx, domain.AutismProfile{
		Name:          "Sofía",
		BirthDate:     time.Date(2021, 4, 2, 0, 0, 0, 0, time.UTC),
		SupportLevel:  1,
		Communication: domain.CommunicationAAC,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "u-demo", created.OwnerID)

	created.Notes = "Likes music"
	updated, err := svc.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "Likes music", updated.Notes)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
