package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/booking-portal/internal/persistence"
)

// ReservationService handles booking creation and dashboard listings.
type ReservationService struct {
	reservations persistence.ReservationRepository
	now          func() time.Time
	logger       *slog.Logger
}

// NewReservationService wires dependencies for the reservation service.
func NewReservationService(reservations persistence.ReservationRepository, now func() time.Time) *ReservationService {
	return NewReservationServiceWithLogger(reservations, now, nil)
}

// NewReservationServiceWithLogger constructs a ReservationService with a specified logger.
func NewReservationServiceWithLogger(reservations persistence.ReservationRepository, now func() time.Time, logger *slog.Logger) *ReservationService {
	if now == nil {
		now = time.Now
	}
	return &ReservationService{
		reservations: reservations,
		now:          now,
		logger:       defaultLogger(logger),
	}
}

func (s *ReservationService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ReservationService", operation, attrs...)
}

// Book creates a reservation for the acting client. Only the actor's role is
// checked; the submitted professional id and date are stored as given, with
// no role verification or conflict detection on the target.
func (s *ReservationService) Book(ctx context.Context, actor User, professionalID int64, date string) (id int64, err error) {
	if s == nil {
		return 0, fmt.Errorf("ReservationService is nil")
	}
	if s.reservations == nil {
		return 0, fmt.Errorf("reservation repository not configured")
	}

	logger := s.loggerWith(ctx, "Book",
		"client_id", actor.ID,
		"professional_id", professionalID,
		"date", date,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "booking failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("reservation_id", id).InfoContext(ctx, "reservation created")
	}()

	if !actor.IsClient() {
		err = ErrUnauthorized
		return
	}

	id, err = s.reservations.CreateReservation(ctx, persistence.Reservation{
		ClientID:       actor.ID,
		ProfessionalID: professionalID,
		Date:           date,
		CreatedAt:      s.now().UTC(),
	})
	return
}

// ListForProfessional returns the acting professional's reservations with
// client names resolved for display.
func (s *ReservationService) ListForProfessional(ctx context.Context, actor User) ([]ReservationView, error) {
	if s == nil {
		return nil, fmt.Errorf("ReservationService is nil")
	}
	if s.reservations == nil {
		return nil, fmt.Errorf("reservation repository not configured")
	}

	if !actor.IsProfessional() {
		return nil, ErrUnauthorized
	}

	entries, err := s.reservations.ListForProfessional(ctx, actor.ID)
	if err != nil {
		s.loggerWith(ctx, "ListForProfessional", "professional_id", actor.ID).
			ErrorContext(ctx, "failed to list reservations", "error", err, "error_kind", ErrorKind(err))
		return nil, err
	}

	views := make([]ReservationView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, ReservationView{
			ID:         entry.ID,
			Date:       entry.Date,
			ClientName: entry.ClientName,
		})
	}
	return views, nil
}
