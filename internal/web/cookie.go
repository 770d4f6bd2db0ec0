package web

import (
	"errors"
	"net/http"

	"lawsnap/internal/session"
)

const sessionCookie = "lawsnap_session"

// loadSession returns the visitor's session, starting a new one when the
// cookie is missing, the stored session expired or its data is unreadable.
// Unreadable sessions are deleted.
func (h *Handler) loadSession(w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		s, err := h.deps.Sessions.Get(r.Context(), c.Value)
		switch {
		case err == nil:
			return s, nil
		case errors.Is(err, session.ErrNotFound):
		case errors.Is(err, session.ErrCorrupt):
			h.log.Warn("discarding unreadable session", "session_id", c.Value, "err", err)
			if err := h.deps.Sessions.Delete(r.Context(), c.Value); err != nil {
				h.log.Warn("session delete failed", "session_id", c.Value, "err", err)
			}
		default:
			h.log.Warn("session load failed; starting a new one", "err", err)
		}
	}

	s := session.New()
	if err := h.saveSession(w, r, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (h *Handler) saveSession(w http.ResponseWriter, r *http.Request, s *session.Session) error {
	if err := h.deps.Sessions.Save(r.Context(), s); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    s.ID,
		Path:     "/",
		MaxAge:   int(h.deps.Config.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
