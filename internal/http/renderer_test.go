package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	domainauth "github.com/straycare/straycare/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRenderer_ExposesView(t *testing.T) {
	tr := RequireTemplateRenderer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), viewKey{}, ViewContext{
		CurrentUserID:   "n1",
		CurrentUserKind: domainauth.RoleNGO,
		UserName:        "Paws Rescue",
		FlashSuccess:    []string{"Ad published."},
		FlashError:      []string{"Title is required"},
	})
	rec := httptest.NewRecorder()

	require.NoError(t, tr.Render(rec, req.WithContext(ctx), PageSpec{
		Page:   PageError,
		Title:  "Not Found",
		Status: http.StatusNotFound,
		Data:   errorPage{Message: "Page not found."},
	}))

	body := rec.Body.String()
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	for _, want := range []string{"Paws Rescue", `href="/ngo"`, "Ad published.", "Title is required", "Page not found."} {
		assert.Contains(t, body, want)
	}
	assert.NotContains(t, body, `href="/report/new"`)
}

func TestTemplateRenderer_AnonymousNav(t *testing.T) {
	tr := RequireTemplateRenderer(t)
	rec := httptest.NewRecorder()

	require.NoError(t, tr.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), PageSpec{
		Page: PageLogin,
		Data: loginPage{Kind: domainauth.RoleLocal, Slug: "local"},
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/auth/login/local"`)
	assert.NotContains(t, rec.Body.String(), "Log out")
}

func TestNewTemplateRenderer_Errors(t *testing.T) {
	_, err := NewTemplateRenderer(TemplateRendererConfig{})
	assert.Error(t, err)

	_, err = NewTemplateRenderer(TemplateRendererConfig{TemplateFS: fstest.MapFS{
		"layout.tmpl": {Data: []byte(`{{ define "layout" }}{{ .Broken }`)},
	}})
	assert.Error(t, err)
}

func TestContentTemplateFor(t *testing.T) {
	assert.Equal(t, "ngo-content", ContentTemplateFor(PageNGO))
	assert.Equal(t, "home-content", ContentTemplateFor("unknown"))
}
