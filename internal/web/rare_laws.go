package web

import (
	"errors"
	"net/http"
	"strings"

	"lawsnap/internal/httputil"
	"lawsnap/internal/insight"
	"lawsnap/internal/llm"
)

type rareLawsForm struct {
	Profession string `validate:"required"`
	Language   string `validate:"required,oneof=English Hindi Tamil Telugu Bengali"`
}

func (h *Handler) rareLawsPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "rare_laws", h.rareLawsData(rareLawsForm{Language: insight.DefaultLanguage}))
}

func (h *Handler) findRareLaws(w http.ResponseWriter, r *http.Request) {
	form := rareLawsForm{
		Profession: strings.TrimSpace(r.FormValue("profession")),
		Language:   strings.TrimSpace(r.FormValue("language")),
	}
	if form.Language == "" {
		form.Language = insight.DefaultLanguage
	}
	data := h.rareLawsData(form)

	if err := httputil.Validator.Struct(form); err != nil {
		data.Error = httputil.ValidationMessage(err)
		h.render(w, http.StatusBadRequest, "rare_laws", data)
		return
	}

	text, err := h.finder.Find(r.Context(), form.Profession, form.Language)
	switch {
	case errors.Is(err, insight.ErrUnknownProfession):
		data.Error = "Unknown profession: " + form.Profession
		h.render(w, http.StatusBadRequest, "rare_laws", data)
		return
	case err != nil:
		h.log.Error("rare law lookup failed", "profession", form.Profession, "err", err)
		data.Output = llm.ErrorText(err)
	default:
		data.Output = text
	}
	h.render(w, http.StatusOK, "rare_laws", data)
}

func (h *Handler) rareLawsData(form rareLawsForm) page {
	return page{
		Title:       "Discover Rare Laws Based on Your Profession",
		Active:      "rare-laws",
		Professions: h.deps.Laws.Professions(),
		Languages:   insight.Languages,
		Profession:  form.Profession,
		Language:    form.Language,
	}
}
