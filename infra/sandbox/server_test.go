package sandbox

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, s *Server, method, path, token string, body any) (int, map[string]any, []any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var obj map[string]any
	var arr []any
	if rec.Body.Len() > 0 {
		if bytes.HasPrefix(rec.Body.Bytes(), []byte("[")) {
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &arr))
		} else {
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &obj))
		}
	}
	return rec.Code, obj, arr
}

func demoToken(t *testing.T, s *Server) string {
	t.Helper()
	tok, err := s.IssueToken(DemoEmail, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestLogin(t *testing.T) {
	s := New()

	code, body, _ := call(t, s, http.MethodPost, "/auth/login", "", map[string]string{"email": DemoEmail, "password": DemoPassword})
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, "u-demo", body["user"].(map[string]any)["id"])

	code, body, _ = call(t, s, http.MethodPost, "/auth/login", "", map[string]string{"email": DemoEmail, "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid email or password", body["message"])
}

func TestRequiresValidToken(t *testing.T) {
	s := New()

	code, _, _ := call(t, s, http.MethodGet, "/articles", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _, _ = call(t, s, http.MethodGet, "/articles", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	expired, err := s.IssueToken(DemoEmail, -time.Minute)
	require.NoError(t, err)
	code, _, _ = call(t, s, http.MethodGet, "/articles", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	forged, err := New(WithSecret([]byte("other"))).IssueToken(DemoEmail, time.Hour)
	require.NoError(t, err)
	code, _, _ = call(t, s, http.MethodGet, "/articles", forged, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestToggleFlipsRecordAndCounter(t *testing.T) {
	s := New()
	tok := demoToken(t, s)

	code, body, _ := call(t, s, http.MethodPost, "/favorites/toggle", tok, map[string]string{"activityId": "act-2"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["favorited"])
	assert.Equal(t, "Added to favorites", body["message"])

	_, act, _ := call(t, s, http.MethodGet, "/activities/act-2", tok, nil)
	assert.EqualValues(t, 1, act["favoritesCount"])

	code, body, _ = call(t, s, http.MethodPost, "/favorites/toggle", tok, map[string]string{"activityId": "act-2"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["favorited"])

	_, act, _ = call(t, s, http.MethodGet, "/activities/act-2", tok, nil)
	assert.EqualValues(t, 0, act["favoritesCount"])
}

func TestToggleRejectsAmbiguousRef(t *testing.T) {
	s := New()
	tok := demoToken(t, s)

	code, _, _ := call(t, s, http.MethodPost, "/likes/toggle", tok, map[string]string{"articleId": "art-1", "activityId": "act-1"})
	assert.Equal(t, http.StatusBadRequest, code)
	code, _, _ = call(t, s, http.MethodPost, "/likes/toggle", tok, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, code)
	code, _, _ = call(t, s, http.MethodPost, "/likes/toggle", tok, map[string]string{"articleId": "missing"})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestListMineAfterDelete(t *testing.T) {
	s := New()
	tok := demoToken(t, s)
	s.DeleteArticle("art-1")

	code, _, recs := call(t, s, http.MethodGet, "/likes/me", tok, nil)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, recs, 2)
	first := recs[0].(map[string]any)
	assert.Nil(t, first["articleId"])
	assert.NotContains(t, first, "article")
	second := recs[1].(map[string]any)
	assert.Equal(t, "act-1", second["activityId"])
	assert.Contains(t, second, "activity")
}

func TestFailNextAppliesOnce(t *testing.T) {
	s := New()
	tok := demoToken(t, s)
	s.FailNext("/likes/me", http.StatusServiceUnavailable)

	code, body, _ := call(t, s, http.MethodGet, "/likes/me", tok, nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "injected failure", body["message"])

	code, _, _ = call(t, s, http.MethodGet, "/likes/me", tok, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, s.Hits("/likes/me"))
}

func TestFiltersAndComments(t *testing.T) {
	s := New()
	tok := demoToken(t, s)

	_, _, acts := call(t, s, http.MethodGet, "/activities?category=social&difficulty=hard", tok, nil)
	require.Len(t, acts, 1)
	assert.Equal(t, "act-3", acts[0].(map[string]any)["id"])

	_, _, arts := call(t, s, http.MethodGet, "/articles?search=SENSORY", tok, nil)
	require.Len(t, arts, 1)

	code, _, _ := call(t, s, http.MethodPost, "/comments", tok, map[string]string{"articleId": "art-3", "content": "  "})
	assert.Equal(t, http.StatusBadRequest, code)

	code, cm, _ := call(t, s, http.MethodPost, "/comments", tok, map[string]string{"articleId": "art-3", "content": "Thanks!"})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Demo Caregiver", cm["authorName"])

	_, _, list := call(t, s, http.MethodGet, "/comments?articleId=art-3", tok, nil)
	assert.Len(t, list, 1)
}

func TestProfilesAreScopedToOwner(t *testing.T) {
	s := New()
	demo := demoToken(t, s)
	pro, err := s.IssueToken("lucia@espectro.app", time.Hour)
	require.NoError(t, err)

	_, _, mine := call(t, s, http.MethodGet, "/autism-profiles", demo, nil)
	assert.Len(t, mine, 1)
	code, _, _ := call(t, s, http.MethodGet, "/autism-profiles/p-1", pro, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, created, _ := call(t, s, http.MethodPost, "/autism-profiles", pro, map[string]any{"name": "Sofía", "birthDate": "2021-04-02", "supportLevel": 1})
	require.Equal(t, http.StatusCreated, code)
	id := created["id"].(string)

	code, _, _ = call(t, s, http.MethodDelete, "/autism-profiles/"+id, pro, nil)
	assert.Equal(t, http.StatusNoContent, code)
	code, _, _ = call(t, s, http.MethodGet, "/autism-profiles/"+id, pro, nil)
	assert.Equal(t, http.StatusNotFound, code)
}
