package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/badancup/internal/middleware"
	"github.com/mcoot/badancup/internal/services/registration"
	"github.com/mcoot/badancup/internal/web/templates/layout"
	"github.com/mcoot/badancup/internal/web/templates/pages"
)

// RegisterHandler handles the registration form
type RegisterHandler struct {
	service *registration.Service
	logger  *slog.Logger
}

// NewRegisterHandler creates a new RegisterHandler
func NewRegisterHandler(service *registration.Service, logger *slog.Logger) *RegisterHandler {
	return &RegisterHandler{service: service, logger: logger}
}

// Form renders the empty registration form
func (h *RegisterHandler) Form(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "", registration.Form{})
}

// Submit handles a registration form submission. Success redirects to the
// confirmation page; every failure re-renders the form with the submitted
// values and a status matching the failure.
func (h *RegisterHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, registration.MessageValidation, registration.Form{})
		return
	}

	sub := registration.Submission{
		Name:    r.PostFormValue("name"),
		Phone:   r.PostFormValue("phone"),
		Village: r.PostFormValue("village"),
		Team:    r.PostFormValue("team"),
		IP:      middleware.ClientIP(r),
	}

	if _, err := h.service.Register(r.Context(), sub); err != nil {
		var regErr *registration.Error
		if errors.As(err, &regErr) {
			h.render(w, r, regErr.Status(), regErr.Message, regErr.Form)
			return
		}
		h.logger.Error("unexpected registration failure", slog.String("error", err.Error()))
		h.render(w, r, http.StatusInternalServerError, registration.MessagePersistence, sub.Form())
		return
	}

	http.Redirect(w, r, "/thankyou", http.StatusSeeOther)
}

func (h *RegisterHandler) render(w http.ResponseWriter, r *http.Request, status int, message string, old registration.Form) {
	data := pages.RegisterData{
		PageData: layout.PageData{Title: "التسجيل"},
		Villages: h.service.Villages().Names(),
		Error:    message,
		Old:      old,
	}
	templ.Handler(pages.Register(data), templ.WithStatus(status)).ServeHTTP(w, r)
}
