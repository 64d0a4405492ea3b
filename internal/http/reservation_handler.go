package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/example/booking-portal/internal/application"
)

// Booker creates reservations on behalf of a client.
type Booker interface {
	Book(ctx context.Context, actor application.User, professionalID int64, date string) (int64, error)
}

// ReservationHandler serves reservation creation.
type ReservationHandler struct {
	reservations Booker
	renderer     renderer
}

func NewReservationHandler(reservations Booker, logger *slog.Logger) *ReservationHandler {
	return &ReservationHandler{reservations: reservations, renderer: newRenderer(logger)}
}

// Reserve handles POST /reservar.
func (h *ReservationHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := handlerLogger(ctx, "reservation", "reserve")
	user, ok := SessionUserFromContext(ctx)
	if !ok || !user.IsClient() {
		h.renderer.message(ctx, w, http.StatusForbidden, messageData{Message: "No autorizado."})
		return
	}
	if err := r.ParseForm(); err != nil {
		logger.WarnContext(ctx, "malformed reservation form", "error", err)
		h.renderer.message(ctx, w, http.StatusBadRequest, messageData{Message: "Error al guardar reserva."})
		return
	}
	professionalID, err := strconv.ParseInt(r.PostFormValue("profesional_id"), 10, 64)
	if err != nil || professionalID <= 0 {
		h.renderer.message(ctx, w, http.StatusBadRequest, messageData{Message: "Error al guardar reserva."})
		return
	}
	date := r.PostFormValue("fecha")
	if date == "" {
		h.renderer.message(ctx, w, http.StatusBadRequest, messageData{Message: "Error al guardar reserva."})
		return
	}
	if _, err := h.reservations.Book(ctx, user, professionalID, date); err != nil {
		if errors.Is(err, application.ErrUnauthorized) {
			h.renderer.message(ctx, w, http.StatusForbidden, messageData{Message: "No autorizado."})
			return
		}
		logger.ErrorContext(ctx, "reservation creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.renderer.message(ctx, w, http.StatusInternalServerError, messageData{Message: "Error al guardar reserva."})
		return
	}
	h.renderer.message(ctx, w, http.StatusOK, messageData{
		Message:  "Reserva creada exitosamente.",
		LinkHref: "/dashboard",
		LinkText: "Volver",
	})
}
