package httpx

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	domainauth "github.com/straycare/straycare/internal/domain/auth"
	"github.com/straycare/straycare/internal/domain/model"
	"github.com/straycare/straycare/internal/service"
)

type loginPage struct {
	Kind domainauth.Role
	Slug string
	SSO  bool
}

type registerPage struct {
	Kind domainauth.Role
	Slug string
}

// kindParam reads {kind} from the route; unknown kinds render a 404.
func (h *Handlers) kindParam(w http.ResponseWriter, r *http.Request) (domainauth.Role, bool) {
	kind, ok := domainauth.ParseRole(chi.URLParam(r, "kind"))
	if !ok {
		h.NotFound(w, r)
	}
	return kind, ok
}

// LoginForm renders the password login form for one account kind.
// GET /auth/login/{kind}.
func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kindParam(w, r)
	if !ok {
		return
	}
	h.render(w, r, PageSpec{
		Page:  PageLogin,
		Title: "Sign in",
		Data:  loginPage{Kind: kind, Slug: kind.Slug(), SSO: h.Auth.FederationEnabled()},
	})
}

// Login verifies credentials and starts a session.
// POST /auth/login/{kind}.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kindParam(w, r)
	if !ok {
		return
	}
	back := "/auth/login/" + kind.Slug()
	if err := parseForm(w, r); err != nil {
		h.failForm(w, r, err, back)
		return
	}
	sess, err := h.Auth.Login(r.Context(), service.LoginInput{
		Kind:       kind,
		Email:      r.PostFormValue("email"),
		Password:   r.PostFormValue("password"),
		PriorToken: h.Cookie.Token(r),
	})
	if err != nil {
		h.failForm(w, r, err, back)
		return
	}
	h.signedIn(w, r, sess, fmt.Sprintf("Welcome back, %s!", sess.UserName))
}

// RegisterForm renders account creation for one kind.
// GET /auth/register/{kind}.
func (h *Handlers) RegisterForm(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kindParam(w, r)
	if !ok {
		return
	}
	h.render(w, r, PageSpec{
		Page:  PageRegister,
		Title: "Create account",
		Data:  registerPage{Kind: kind, Slug: kind.Slug()},
	})
}

// Register creates an account and signs it in.
// POST /auth/register/{kind}.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kindParam(w, r)
	if !ok {
		return
	}
	back := "/auth/register/" + kind.Slug()
	if err := parseForm(w, r); err != nil {
		h.failForm(w, r, err, back)
		return
	}
	sess, err := h.Auth.Register(r.Context(), model.RegisterUserRequest{
		Kind:     kind,
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}, h.Cookie.Token(r))
	if err != nil {
		h.failForm(w, r, err, back)
		return
	}
	h.signedIn(w, r, sess, fmt.Sprintf("Welcome to StrayCare, %s!", sess.UserName))
}

// Logout destroys the session and keeps the token as an anonymous one so the
// goodbye flash survives the redirect.
// GET|POST /auth/logout.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.Cookie.Token(r)
	if err := h.Auth.Logout(r.Context(), token); err != nil {
		h.serverError(w, r, err)
		return
	}
	if token != "" {
		if err := h.Flash.PushTo(r, token, domainauth.FlashSuccess, "You have been logged out."); err != nil {
			h.logger().WarnContext(r.Context(), "flash push failed", slog.Any("error", err))
		}
	}
	redirect(w, r, "/")
}

// SSOLogin starts the federated sign-in flow.
// GET /auth/login/sso.
func (h *Handlers) SSOLogin(w http.ResponseWriter, r *http.Request) {
	result, err := h.Auth.BeginFederatedLogin(r.Context(), "/")
	if errors.Is(err, service.ErrFederationDisabled) {
		h.NotFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.Cookie.set(w, r, oauthStateCookie, result.State, oauthCookieMaxAge)
	h.Cookie.set(w, r, oauthNonceCookie, result.Nonce, oauthCookieMaxAge)
	http.Redirect(w, r, result.AuthURL, http.StatusFound)
}

// SSOCallback completes the federated sign-in flow.
// GET /auth/callback?code=<code>&state=<state>.
func (h *Handlers) SSOCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	state := q.Get("state")
	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || state == "" || stateCookie.Value != state {
		h.renderError(w, r, http.StatusBadRequest, "Sign-in could not be completed.")
		return
	}
	var nonce string
	if c, cerr := r.Cookie(oauthNonceCookie); cerr == nil {
		nonce = c.Value
	}
	h.Cookie.clear(w, r, oauthStateCookie)
	h.Cookie.clear(w, r, oauthNonceCookie)

	sess, err := h.Auth.CompleteFederatedLogin(r.Context(), service.CompleteLoginInput{
		Code:       q.Get("code"),
		State:      state,
		Nonce:      nonce,
		PriorToken: h.Cookie.Token(r),
	})
	if err != nil {
		h.failForm(w, r, err, DefaultLoginPath)
		return
	}
	h.signedIn(w, r, sess, fmt.Sprintf("Welcome, %s!", sess.UserName))
}

// signedIn sets the new session cookie, greets the user and sends them home.
func (h *Handlers) signedIn(w http.ResponseWriter, r *http.Request, sess domainauth.Session, greeting string) {
	h.Cookie.SetSession(w, r, sess.Token)
	if err := h.Flash.PushTo(r, sess.Token, domainauth.FlashSuccess, greeting); err != nil {
		h.logger().WarnContext(r.Context(), "flash push failed", slog.Any("error", err))
	}
	h.logger().InfoContext(r.Context(), "signed in",
		slog.String("user_id", sess.UserID),
		slog.String("kind", string(sess.UserKind)),
	)
	redirect(w, r, "/dashboard")
}
