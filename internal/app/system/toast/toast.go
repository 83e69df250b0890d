// Package toast carries one-shot user notifications across redirects.
//
// A toast is queued as a session flash before a 303 and consumed by the next
// page render. HTMX responses that do not navigate get the toast in an
// HX-Trigger header instead, which the layout script turns into the same
// on-screen notification.
package toast

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/sessions"
)

// Kinds.
const (
	KindSuccess = "success"
	KindError   = "error"
	KindInfo    = "info"
	KindWarning = "warning"
)

const flashKey = "_toast"

// Toast is a single notification.
type Toast struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func Success(msg string) Toast { return Toast{Kind: KindSuccess, Message: msg} }
func Error(msg string) Toast   { return Toast{Kind: KindError, Message: msg} }
func Info(msg string) Toast    { return Toast{Kind: KindInfo, Message: msg} }
func Warning(msg string) Toast { return Toast{Kind: KindWarning, Message: msg} }

// SessionStore is the part of the session manager toast needs.
type SessionStore interface {
	GetSession(r *http.Request) (*sessions.Session, error)
}

// Push queues t for the next render. Flashes are stored as JSON strings so
// the cookie codec never needs gob registration.
func Push(w http.ResponseWriter, r *http.Request, store SessionStore, t Toast) error {
	if store == nil {
		return nil
	}
	sess, err := store.GetSession(r)
	if sess == nil {
		return err
	}
	raw, err := json.Marshal(t)
	if err != nil {
		return err
	}
	sess.AddFlash(string(raw), flashKey)
	return sess.Save(r, w)
}

// Pop returns and clears queued toasts. Undecodable entries are dropped.
func Pop(w http.ResponseWriter, r *http.Request, store SessionStore) []Toast {
	if store == nil {
		return nil
	}
	sess, err := store.GetSession(r)
	if err != nil {
		return nil
	}
	flashes := sess.Flashes(flashKey)
	if len(flashes) == 0 {
		return nil
	}
	_ = sess.Save(r, w)

	out := make([]Toast, 0, len(flashes))
	for _, f := range flashes {
		s, ok := f.(string)
		if !ok {
			continue
		}
		var t Toast
		if json.Unmarshal([]byte(s), &t) == nil && t.Message != "" {
			out = append(out, t)
		}
	}
	return out
}

// Trigger sets HX-Trigger so htmx raises a "toast" event carrying t, plus any
// extra event names (used to ask tables to refresh).
func Trigger(w http.ResponseWriter, t Toast, events ...string) {
	payload := map[string]any{"toast": t}
	for _, e := range events {
		payload[e] = true
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	w.Header().Set("HX-Trigger", string(raw))
}
