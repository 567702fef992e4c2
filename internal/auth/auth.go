// Package auth implementa la sesión con cookie firmada (HMAC-SHA256) y el
// principal de la request. La cookie sólo lleva el id de usuario; username y
// rol se resuelven contra la base en cada request vía el resolver configurado
// en el arranque, así los cambios de rol pegan de inmediato.
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

type ctxKey string

const (
	sessionCookieName = "session"
	principalCtxKey   = ctxKey("principal")
)

// Principal es el contexto de autenticación de una request.
type Principal struct {
	ID       uint
	Username string
	Rol      string
}

func (p *Principal) IsAdmin() bool { return p != nil && p.Rol == "admin" }

// PrincipalResolver carga el principal desde el store. Devuelve nil si el
// usuario de la sesión ya no existe.
type PrincipalResolver func(ctx context.Context, uid uint) *Principal

var resolver PrincipalResolver

// SetResolver configura el resolver global usado por Middleware.
func SetResolver(r PrincipalResolver) { resolver = r }

// Secret devuelve SESSION_SECRET o el valor de desarrollo.
func Secret() string {
	if s := os.Getenv("SESSION_SECRET"); s != "" {
		return s
	}
	return "devsessionsecret"
}

func sign(uidStr string) string {
	mac := hmac.New(sha256.New, []byte(Secret()))
	mac.Write([]byte(uidStr))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// CreateSession setea la cookie firmada con el id de usuario.
func CreateSession(w http.ResponseWriter, userID uint) {
	uidStr := strconv.FormatUint(uint64(userID), 10)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    uidStr + "." + sign(uidStr),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(14 * 24 * time.Hour),
	})
}

// ClearSession borra la cookie de sesión.
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// ParseSession valida la cookie y devuelve el id de usuario.
func ParseSession(r *http.Request) (uint, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return 0, false
	}
	parts := strings.Split(c.Value, ".")
	if len(parts) != 2 {
		return 0, false
	}
	uidStr, sig := parts[0], parts[1]
	if !hmac.Equal([]byte(sig), []byte(sign(uidStr))) {
		return 0, false
	}
	id64, err := strconv.ParseUint(uidStr, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id64), true
}

// WithPrincipal guarda el principal en el contexto.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey, p)
}

// FromContext extrae el principal de la request, si hay sesión válida.
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalCtxKey).(*Principal)
	return p, ok && p != nil
}

// Middleware resuelve la sesión y cuelga el principal del contexto.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if uid, ok := ParseSession(r); ok && resolver != nil {
			if p := resolver(r.Context(), uid); p != nil {
				r = r.WithContext(WithPrincipal(r.Context(), p))
			} else {
				// Sesión de un usuario que ya no existe: limpiar.
				ClearSession(w)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth redirige a /login si no hay principal.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin redirige al dashboard si el principal no es admin.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := FromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if !p.IsAdmin() {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
