package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	domainauth "github.com/straycare/straycare/internal/domain/auth"
	"github.com/straycare/straycare/internal/domain/model"
	apperrors "github.com/straycare/straycare/internal/errors"
	"github.com/straycare/straycare/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testPostID = "3b0f9c0e-8a55-4c52-b7a4-1f1f6f1d2a90"

func (a *testApp) expectEmptyNGOFeed() {
	a.animals.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	a.ads.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	a.adoptions.EXPECT().ListPosts(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	a.adoptions.EXPECT().ListRequestsForNGO(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	a.reports.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
}

func (a *testApp) expectEmptyLocalFeed() {
	a.reports.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	a.adoptions.EXPECT().ListRequestsByUser(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
}

func TestRoutes_NGOArea(t *testing.T) {
	a := newTestApp(t)
	a.expectEmptyNGOFeed()

	t.Run("anonymous is redirected to login", func(t *testing.T) {
		rec := a.get("/ngo")
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/auth/login/local", rec.Header().Get("Location"))
	})

	t.Run("local user is forbidden", func(t *testing.T) {
		rec := a.get("/ngo", a.signIn(t, domainauth.RoleLocal))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Only NGOs can access this.", rec.Body.String())
	})

	t.Run("unknown kind is forbidden", func(t *testing.T) {
		require.NoError(t, a.sessions.Set(context.Background(), domainauth.Session{Token: "legacy", UserID: "x", UserKind: "ADMIN"}))
		rec := a.get("/ngo", &http.Cookie{Name: DefaultSessionCookie, Value: "legacy"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("ngo reaches the page", func(t *testing.T) {
		rec := a.get("/ngo", a.signIn(t, domainauth.RoleNGO))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Test NGO")
		assert.Contains(t, rec.Body.String(), `action="/ngo/adoptions"`)
	})

	t.Run("anonymous POST is redirected before the handler runs", func(t *testing.T) {
		rec := a.postForm("/ngo/ads", url.Values{"title": {"x"}, "body": {"y"}})
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/auth/login/local", rec.Header().Get("Location"))
	})
}

func TestRoutes_LocalOnlyGroup(t *testing.T) {
	a := newTestApp(t)

	rec := a.get("/report/new")
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	rec = a.postForm("/adopt/"+testPostID, url.Values{}, a.signIn(t, domainauth.RoleNGO))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Only public users can access this.", rec.Body.String())

	rec = a.get("/report/new", a.signIn(t, domainauth.RoleLocal))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="critical"`)
}

func TestRoutes_Dashboard(t *testing.T) {
	a := newTestApp(t)
	a.expectEmptyLocalFeed()

	rec := a.get("/dashboard")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth/login/local", rec.Header().Get("Location"))

	rec = a.get("/dashboard", a.signIn(t, domainauth.RoleNGO))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/ngo", rec.Header().Get("Location"))

	rec = a.get("/dashboard", a.signIn(t, domainauth.RoleLocal))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Hello, Test LOCAL")
}

func TestRoutes_ReportFailureFlashShowsOnce(t *testing.T) {
	a := newTestApp(t)
	cookie := a.signIn(t, domainauth.RoleLocal)
	a.reports.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	rec := a.postForm("/report", url.Values{
		"location": {"Main St"}, "description": {"limping dog"}, "condition": {"injured"},
	}, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/report/new", rec.Header().Get("Location"))

	rec = a.get("/report/new", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Report failed.")

	rec = a.get("/report/new", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Report failed.")
}

func TestRoutes_ReportValidationFlash(t *testing.T) {
	a := newTestApp(t)
	cookie := a.signIn(t, domainauth.RoleLocal)

	rec := a.postForm("/report", url.Values{"location": {"Main St"}, "description": {"cat"}, "condition": {"fine"}}, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t,
		[]string{"condition must be one of: healthy, injured, critical"},
		a.flashes.Pending(cookie.Value, domainauth.FlashError))
}

func TestRoutes_AnonymousFlashMintsCookie(t *testing.T) {
	a := newTestApp(t)
	a.animals.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	a.ads.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	a.users.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, apperrors.NotFound("user not found"))

	rec := a.postForm("/auth/login/local", url.Values{"email": {"nobody@example.com"}, "password": {"whatever1"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth/login/local", rec.Header().Get("Location"))
	anon := sessionCookie(rec)
	require.NotNil(t, anon)

	rec = a.get("/", anon)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password.")
	assert.Contains(t, rec.Body.String(), `href="/auth/login/local"`)

	rec = a.get("/", anon)
	assert.NotContains(t, rec.Body.String(), "Invalid email or password.")
}

func TestRoutes_LoginAndLogout(t *testing.T) {
	a := newTestApp(t)
	a.expectEmptyLocalFeed()
	hash, err := a.hasher.Hash([]byte("password123"))
	require.NoError(t, err)
	a.users.EXPECT().GetByEmail(gomock.Any(), "ana@example.com").Return(&model.User{
		ID: "u-ana", Kind: domainauth.RoleLocal, Name: "Ana", Email: "ana@example.com", PasswordHash: hash,
	}, nil)

	rec := a.postForm("/auth/login/local", url.Values{"email": {"ana@example.com"}, "password": {"password123"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)

	sess, err := a.sessions.Get(context.Background(), cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "u-ana", sess.UserID)

	rec = a.get("/dashboard", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Welcome back, Ana!")
	assert.Contains(t, rec.Body.String(), "Hello, Ana")

	rec = a.postForm("/auth/logout", url.Values{}, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	_, err = a.sessions.Get(context.Background(), cookie.Value)
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
	assert.Equal(t, []string{"You have been logged out."}, a.flashes.Pending(cookie.Value, domainauth.FlashSuccess))

	rec = a.get("/dashboard", cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestRoutes_LoginWrongKindIsRejected(t *testing.T) {
	a := newTestApp(t)
	hash, err := a.hasher.Hash([]byte("password123"))
	require.NoError(t, err)
	a.users.EXPECT().GetByEmail(gomock.Any(), "paws@example.org").Return(&model.User{
		ID: "n1", Kind: domainauth.RoleNGO, Name: "Paws", Email: "paws@example.org", PasswordHash: hash,
	}, nil)

	rec := a.postForm("/auth/login/local", url.Values{"email": {"paws@example.org"}, "password": {"password123"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth/login/local", rec.Header().Get("Location"))
	assert.Equal(t, 0, a.sessions.Len())
}

func TestRoutes_Adopt(t *testing.T) {
	a := newTestApp(t)
	cookie := a.signIn(t, domainauth.RoleLocal)
	a.adoptions.EXPECT().GetPost(gomock.Any(), testPostID).Return(&model.AdoptionPost{ID: testPostID, Status: model.AdoptionStatusOpen}, nil)
	a.adoptions.EXPECT().CreateRequest(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req *model.CreateAdoptionRequest) (*model.AdoptionRequest, error) {
			assert.Equal(t, "user-tok-local", req.UserID)
			assert.Equal(t, "I have a garden", req.Message)
			return &model.AdoptionRequest{ID: "r1"}, nil
		})

	rec := a.postForm("/adopt/"+testPostID, url.Values{"message": {"I have a garden"}}, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	assert.Equal(t, []string{"Your adoption request has been sent."}, a.flashes.Pending(cookie.Value, domainauth.FlashSuccess))
}

func TestRoutes_PublicPages(t *testing.T) {
	a := newTestApp(t)
	a.adoptions.EXPECT().GetPost(gomock.Any(), testPostID).Return(&model.AdoptionPost{
		ID: testPostID, AnimalName: "Biscuit", Species: "dog", Status: model.AdoptionStatusOpen,
	}, nil)

	rec := a.get("/adoption/" + testPostID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Biscuit")

	rec = a.get("/adoption/not-a-uuid")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.get("/nowhere")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found.")

	rec = a.get("/auth/login/admin")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.get("/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRoutes_SessionStoreDownIs500(t *testing.T) {
	a := newTestApp(t)
	a.sessions.Err = errors.New("redis down")

	rec := a.get("/", &http.Cookie{Name: DefaultSessionCookie, Value: "t1"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = a.get("/healthz", &http.Cookie{Name: DefaultSessionCookie, Value: "t1"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoutes_HomeBackendFailureRendersErrorPage(t *testing.T) {
	a := newTestApp(t)
	a.animals.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
	a.ads.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	rec := a.get("/", a.signIn(t, domainauth.RoleLocal))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went wrong.")
	assert.Contains(t, rec.Body.String(), "Test LOCAL")
}

func TestRoutes_FallbacksCarryViewAndDrainFlash(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		kind   domainauth.Role
		status int
		body   string
	}{
		{name: "PUT on a GET page", method: http.MethodPut, path: "/ads", kind: domainauth.RoleNGO, status: http.StatusMethodNotAllowed, body: "That action is not available here."},
		{name: "DELETE on a GET page", method: http.MethodDelete, path: "/adoption", kind: domainauth.RoleLocal, status: http.StatusMethodNotAllowed, body: "That action is not available here."},
		{name: "GET on a POST-only ngo route", method: http.MethodGet, path: "/ngo/ads", kind: domainauth.RoleNGO, status: http.StatusMethodNotAllowed, body: "That action is not available here."},
		{name: "PUT on an auth route", method: http.MethodPut, path: "/auth/logout", kind: domainauth.RoleLocal, status: http.StatusMethodNotAllowed, body: "That action is not available here."},
		{name: "unknown ngo path", method: http.MethodGet, path: "/ngo/nowhere", kind: domainauth.RoleNGO, status: http.StatusNotFound, body: "Page not found."},
		{name: "unknown auth path", method: http.MethodGet, path: "/auth/nowhere", kind: domainauth.RoleLocal, status: http.StatusNotFound, body: "Page not found."},
		{name: "HEAD on a page is served as GET", method: http.MethodHead, path: "/report/new", kind: domainauth.RoleLocal, status: http.StatusOK, body: `value="critical"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(t)
			cookie := a.signIn(t, tt.kind)
			require.NoError(t, a.flashes.Push(context.Background(), cookie.Value, domainauth.FlashError, "pending notice"))

			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := a.serve(req, []*http.Cookie{cookie})

			require.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
			body := rec.Body.String()
			assert.Contains(t, body, tt.body)
			assert.Contains(t, body, "Test "+string(tt.kind))
			assert.Contains(t, body, "pending notice")
			assert.Empty(t, a.flashes.Pending(cookie.Value, domainauth.FlashError))
		})
	}
}

func TestRoutes_AnonymousMethodNotAllowedUnderNGOIsGated(t *testing.T) {
	a := newTestApp(t)

	rec := a.serve(httptest.NewRequest(http.MethodDelete, "/ngo/ads", nil), nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth/login/local", rec.Header().Get("Location"))
}

func TestRoutes_SSOCallbackExchangeFailureFlashesLogin(t *testing.T) {
	a := newTestApp(t)
	a.provider.ExchangeFunc = func(context.Context, ports.ExchangeInput) (domainauth.Identity, error) {
		return domainauth.Identity{}, errors.New("unknown or already used state")
	}

	rec := a.get("/auth/callback?code=dev&state=s1",
		&http.Cookie{Name: oauthStateCookie, Value: "s1"},
		&http.Cookie{Name: oauthNonceCookie, Value: "n1"},
	)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, DefaultLoginPath, rec.Header().Get("Location"))
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Equal(t, []string{"Sign-in could not be completed."}, a.flashes.Pending(cookie.Value, domainauth.FlashError))
	assert.Zero(t, a.sessions.Len())
}
