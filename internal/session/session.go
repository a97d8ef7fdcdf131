package session

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	// AdminSession is the cookie backing the authoring login.
	AdminSession = "cf_session"
	// ViewerCookie identifies an anonymous viewer across visits.
	ViewerCookie = "viewer_session"

	viewerMaxAge = 60 * 60 * 24 * 365
	adminMaxAge  = 60 * 60 * 24 * 7
)

// NewStore creates the cookie store for admin sessions.
func NewStore(key string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(key))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   adminMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Login writes the admin identity into the session cookie.
func Login(store *sessions.CookieStore, w http.ResponseWriter, r *http.Request, userID, role string) error {
	session, _ := store.Get(r, AdminSession)
	session.Values["user_id"] = userID
	session.Values["role"] = role
	return session.Save(r, w)
}

// Logout expires the admin session cookie.
func Logout(store *sessions.CookieStore, w http.ResponseWriter, r *http.Request) error {
	session, _ := store.Get(r, AdminSession)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// UserID reads the logged-in admin id, empty when not logged in.
func UserID(store *sessions.CookieStore, r *http.Request) (string, string) {
	session, _ := store.Get(r, AdminSession)
	id, _ := session.Values["user_id"].(string)
	role, _ := session.Values["role"].(string)
	return id, role
}

// ViewerID returns the anonymous session id from the viewer cookie,
// minting and setting a new one when absent.
func ViewerID(w http.ResponseWriter, r *http.Request, secure bool) string {
	if cookie, err := r.Cookie(ViewerCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     ViewerCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   viewerMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
