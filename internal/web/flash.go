package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const flashCookie = "muse_flash"

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Level   string `json:"level"` // success | error
	Message string `json:"message"`
}

func Success(message string) Flash { return Flash{Level: "success", Message: message} }
func Error(message string) Flash   { return Flash{Level: "error", Message: message} }

// AddFlash queues flash for the next rendered page, after any flashes
// the request arrived with that have not been shown yet.
func AddFlash(w http.ResponseWriter, r *http.Request, flash Flash) {
	flashes := append(readFlashes(r), flash)
	raw, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlashes returns queued flashes and clears them.
func PopFlashes(w http.ResponseWriter, r *http.Request) []Flash {
	flashes := readFlashes(r)
	if len(flashes) > 0 {
		http.SetCookie(w, &http.Cookie{
			Name:     flashCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return flashes
}

func readFlashes(r *http.Request) []Flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(raw, &flashes); err != nil {
		return nil
	}
	return flashes
}
