package httpx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/straycare/straycare/internal/adapters/authroles"
	domainauth "github.com/straycare/straycare/internal/domain/auth"
	"github.com/straycare/straycare/internal/mocks"
	authmocks "github.com/straycare/straycare/internal/mocks/auth"
	"github.com/straycare/straycare/internal/security"
	"github.com/straycare/straycare/internal/service"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

// RequireTemplateRenderer creates a TemplateRenderer for tests, skipping the test if templates are not available.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
	})
	if err != nil {
		t.Skipf("Templates not available, skipping: %v", err)
		return nil
	}
	return tr
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testApp is the full router over in-memory stores and gomock repositories.
type testApp struct {
	handler   http.Handler
	sessions  *authmocks.MemorySessionStore
	flashes   *authmocks.MemoryFlashStore
	users     *mocks.MockUserRepository
	animals   *mocks.MockAnimalRepository
	ads       *mocks.MockAdRepository
	adoptions *mocks.MockAdoptionRepository
	reports   *mocks.MockReportRepository
	hasher    *security.Hasher
	provider  *authmocks.MockAuthProvider
	metrics   *Metrics
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	renderer := RequireTemplateRenderer(t)
	ctrl := gomock.NewController(t)
	a := &testApp{
		sessions:  authmocks.NewMemorySessionStore(),
		flashes:   authmocks.NewMemoryFlashStore(),
		users:     mocks.NewMockUserRepository(ctrl),
		animals:   mocks.NewMockAnimalRepository(ctrl),
		ads:       mocks.NewMockAdRepository(ctrl),
		adoptions: mocks.NewMockAdoptionRepository(ctrl),
		reports:   mocks.NewMockReportRepository(ctrl),
		hasher:    security.NewHasher(bcrypt.MinCost),
		provider:  authmocks.NewMockAuthProvider(),
	}

	tokens := 0
	newToken := func() string { tokens++; return fmt.Sprintf("minted-%d", tokens) }
	cookie := CookieConfig{Name: DefaultSessionCookie}
	animals := service.NewAnimalService(a.animals)
	ads := service.NewAdService(a.ads)
	adoptions := service.NewAdoptionService(a.adoptions)
	reports := service.NewReportService(a.reports)

	h := &Handlers{
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Users:    a.users,
			Sessions: a.sessions,
			Hasher:   a.hasher,
			Provider: a.provider,
			Roles:    authroles.GroupMapper{NGOGroup: "ngo-staff"},
			Logger:   quietLogger(),
			NewToken: newToken,
		}),
		Feed: service.NewFeedService(service.FeedServiceOptions{
			Animals: animals, Ads: ads, Adoptions: adoptions, Reports: reports,
		}),
		Animals:   animals,
		Ads:       ads,
		Adoptions: adoptions,
		Reports:   reports,
		Renderer:  renderer,
		Flash:     &Flasher{Store: a.flashes, Cookie: cookie, NewToken: newToken},
		Cookie:    cookie,
		Logger:    quietLogger(),
	}
	a.metrics = NewMetrics(prometheus.NewRegistry())
	a.handler = NewRouter(RouterOptions{
		Handlers:    h,
		Sessions:    a.sessions,
		Flashes:     a.flashes,
		Logger:      quietLogger(),
		Metrics:     a.metrics,
		MetricsPath: "/metrics",
	})
	return a
}

// signIn stores a session for kind and returns its cookie.
func (a *testApp) signIn(t *testing.T, kind domainauth.Role) *http.Cookie {
	t.Helper()
	token := "tok-" + strings.ToLower(string(kind))
	sess := domainauth.Session{Token: token, UserID: "user-" + token, UserKind: kind, UserName: "Test " + string(kind)}
	if err := a.sessions.Set(context.Background(), sess); err != nil {
		t.Fatalf("set session: %v", err)
	}
	return &http.Cookie{Name: DefaultSessionCookie, Value: token}
}

func (a *testApp) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	return a.serve(req, cookies)
}

func (a *testApp) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.serve(req, cookies)
}

func (a *testApp) serve(req *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

// sessionCookie returns the session cookie written by rec, if any.
func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == DefaultSessionCookie {
			return c
		}
	}
	return nil
}

// okHandler records that it ran.
func okHandler(ran *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		*ran = true
		w.WriteHeader(http.StatusOK)
	})
}
