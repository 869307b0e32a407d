package utils

import (
	"net/http"
	"os"

	"github.com/gorilla/sessions"
)

var flashStore = sessions.NewCookieStore([]byte(getenvDefault("SESSION_SECRET", "dev-session-secret")))

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// SetFlash queues a one-shot message in the session cookie. Used by the web
// policy gate so the denial reason survives the redirect.
func SetFlash(w http.ResponseWriter, r *http.Request, message string) {
	session, _ := flashStore.Get(r, "storefront_session")
	session.AddFlash(message)
	_ = session.Save(r, w)
}

// PopFlashes drains and returns queued flash messages.
func PopFlashes(w http.ResponseWriter, r *http.Request) []string {
	session, _ := flashStore.Get(r, "storefront_session")
	raw := session.Flashes()
	_ = session.Save(r, w)
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
