package web

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/mmynk/konta/internal/auth"
	"github.com/mmynk/konta/internal/middleware"
	"github.com/mmynk/konta/internal/models"
)

// SessionCookie is the name of the cookie holding the session token.
const SessionCookie = "konta_session"

// requireSession redirects to /login unless the request carries a valid
// session cookie. The session's user is added to the request context.
func (s *Server) requireSession(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil {
			s.redirectToLogin(w, r)
			return
		}
		claims, err := s.guard.Verify(cookie.Value)
		if err != nil {
			s.logger.DebugContext(r.Context(), "Rejected session", "error", err)
			s.clearSession(w)
			s.redirectToLogin(w, r)
			return
		}
		next(w, r.WithContext(middleware.WithClaims(r.Context(), claims)))
	})
}

func (s *Server) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := "/login"
	if next := r.URL.RequestURI(); next != "/" && r.Method == http.MethodGet {
		target += "?next=" + url.QueryEscape(next)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "login.html", &page{
		Title: "Sign in",
		Next:  safeNext(r.URL.Query().Get("next")),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, r, http.StatusBadRequest, "login.html", &page{Title: "Sign in", Error: "Invalid form submission."})
		return
	}
	username := strings.TrimSpace(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")
	next := safeNext(r.PostForm.Get("next"))

	token, _, err := s.guard.Login(r.Context(), username, password)
	if err != nil {
		status, msg := http.StatusUnauthorized, "Invalid username or password."
		if errors.Is(err, auth.ErrTooManyAttempts) {
			status, msg = http.StatusTooManyRequests, "Too many failed attempts. Try again later."
		} else if !errors.Is(err, models.ErrAuth) {
			s.logger.ErrorContext(r.Context(), "Login error", "error", err)
			status, msg = http.StatusInternalServerError, "Something went wrong. Please try again."
		}
		s.render(w, r, status, "login.html", &page{
			Title: "Sign in",
			Error: msg,
			Next:  next,
			Form:  url.Values{"username": {username}},
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.guard.Tokens().TTL().Seconds()),
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, next, http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSession(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// safeNext only allows local redirect targets.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
