package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/example/booking-portal/internal/application"
)

// ProfessionalLister provides the professionals a client can book.
type ProfessionalLister interface {
	ListProfessionals(ctx context.Context) ([]application.User, error)
}

// ReservationLister provides a professional's reservations.
type ReservationLister interface {
	ListForProfessional(ctx context.Context, actor application.User) ([]application.ReservationView, error)
}

// DashboardHandler serves the role-specific dashboard.
type DashboardHandler struct {
	accounts     ProfessionalLister
	reservations ReservationLister
	renderer     renderer
}

func NewDashboardHandler(accounts ProfessionalLister, reservations ReservationLister, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{accounts: accounts, reservations: reservations, renderer: newRenderer(logger)}
}

type clientDashboardData struct {
	User          application.User
	Professionals []application.User
}

type professionalDashboardData struct {
	User         application.User
	Reservations []application.ReservationView
}

// Dashboard handles GET /dashboard. Anonymous visitors are sent back to
// the landing page.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := handlerLogger(ctx, "dashboard", "dashboard")
	user, ok := SessionUserFromContext(ctx)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if user.IsProfessional() {
		reservations, err := h.reservations.ListForProfessional(ctx, user)
		if err != nil {
			logger.ErrorContext(ctx, "reservation listing failed", "error", err, "error_kind", application.ErrorKind(err))
			h.renderer.message(ctx, w, http.StatusInternalServerError, messageData{Message: "Error cargando reservas."})
			return
		}
		h.renderer.render(ctx, w, http.StatusOK, "dashboard_professional.html", professionalDashboardData{
			User:         user,
			Reservations: reservations,
		})
		return
	}
	professionals, err := h.accounts.ListProfessionals(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "professional listing failed", "error", err, "error_kind", application.ErrorKind(err))
		h.renderer.message(ctx, w, http.StatusInternalServerError, messageData{Message: "Error cargando profesionales."})
		return
	}
	h.renderer.render(ctx, w, http.StatusOK, "dashboard_client.html", clientDashboardData{
		User:          user,
		Professionals: professionals,
	})
}
