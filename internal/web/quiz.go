package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"lawsnap/internal/httputil"
	"lawsnap/internal/llm"
	"lawsnap/internal/quiz"
	"lawsnap/internal/session"
	"lawsnap/internal/store"
)

type answerForm struct {
	Choice int `validate:"min=1,max=4"`
}

func (h *Handler) quizPage(w http.ResponseWriter, r *http.Request) {
	sess, err := h.loadSession(w, r)
	if err != nil {
		httputil.Fail(h.log, w, "session unavailable", err, http.StatusInternalServerError)
		return
	}
	h.render(w, http.StatusOK, "quiz", h.quizData(r.Context(), sess))
}

func (h *Handler) generateQuiz(w http.ResponseWriter, r *http.Request) {
	sess, err := h.loadSession(w, r)
	if err != nil {
		httputil.Fail(h.log, w, "session unavailable", err, http.StatusInternalServerError)
		return
	}

	profession := strings.TrimSpace(r.FormValue("profession"))
	candidates := h.deps.Laws.All()
	if profession != "" {
		if !h.deps.Laws.HasProfession(profession) {
			data := h.quizData(r.Context(), sess)
			data.Error = "Unknown profession: " + profession
			h.render(w, http.StatusBadRequest, "quiz", data)
			return
		}
		candidates = h.deps.Laws.ByProfession(profession)
	}
	sess.Profession = profession

	q, err := h.quizzes.GenerateFrom(r.Context(), candidates)
	if err != nil {
		data := h.quizData(r.Context(), sess)
		status := http.StatusOK
		if errors.Is(err, quiz.ErrNoQuiz) || errors.Is(err, quiz.ErrNoLaws) {
			data.Error = quiz.RetryMessage
		} else {
			h.log.Error("quiz generation failed", "err", err)
			data.Error = llm.ErrorText(err)
			status = http.StatusBadGateway
		}
		if err := h.saveSession(w, r, sess); err != nil {
			h.log.Warn("session save failed", "err", err)
		}
		h.render(w, status, "quiz", data)
		return
	}

	sess.Begin(q)
	if err := h.saveSession(w, r, sess); err != nil {
		httputil.Fail(h.log, w, "failed to save session", err, http.StatusInternalServerError)
		return
	}
	h.log.Info("quiz generated", "session_id", sess.ID, "quiz_id", q.ID, "law", q.Title)
	h.render(w, http.StatusOK, "quiz", h.quizData(r.Context(), sess))
}

func (h *Handler) answerQuiz(w http.ResponseWriter, r *http.Request) {
	sess, err := h.loadSession(w, r)
	if err != nil {
		httputil.Fail(h.log, w, "session unavailable", err, http.StatusInternalServerError)
		return
	}

	// a missing or non-numeric choice stays 0 and fails validation
	choice, _ := strconv.Atoi(strings.TrimSpace(r.FormValue("choice")))
	form := answerForm{Choice: choice}
	if err := httputil.Validator.Struct(form); err != nil {
		data := h.quizData(r.Context(), sess)
		data.Error = "Please select one of the four options."
		h.render(w, http.StatusBadRequest, "quiz", data)
		return
	}

	outcome, err := sess.Submit(form.Choice)
	if errors.Is(err, session.ErrNoActiveQuiz) {
		data := h.quizData(r.Context(), sess)
		data.Error = "Generate a quiz first."
		h.render(w, http.StatusBadRequest, "quiz", data)
		return
	}
	if err != nil {
		httputil.Fail(h.log, w, "invalid answer", err, http.StatusBadRequest)
		return
	}
	if err := h.saveSession(w, r, sess); err != nil {
		httputil.Fail(h.log, w, "failed to save session", err, http.StatusInternalServerError)
		return
	}

	q := sess.Current
	if err := h.deps.Results.RecordAttempt(r.Context(), store.Attempt{
		SessionID: sess.ID,
		QuizID:    q.ID,
		Title:     q.Title,
		Question:  q.Question,
		Options:   q.Options[:],
		Choice:    outcome.Choice,
		Answer:    outcome.Answer,
		Correct:   outcome.Correct,
		Awarded:   outcome.Awarded,
	}); err != nil {
		h.log.Warn("failed to record quiz attempt", "quiz_id", q.ID, "err", err)
	}

	data := h.quizData(r.Context(), sess)
	data.Outcome = &outcome
	h.render(w, http.StatusOK, "quiz", data)
}

func (h *Handler) quizData(ctx context.Context, sess *session.Session) page {
	history, err := h.deps.Results.History(ctx, sess.ID, historyLimit)
	if err != nil {
		h.log.Warn("failed to load quiz history", "session_id", sess.ID, "err", err)
	}
	return page{
		Title:       "Law Quiz",
		Active:      "quiz",
		Professions: h.deps.Laws.Professions(),
		Session:     sess,
		Answered:    sess.State().Answered,
		History:     history,
	}
}
