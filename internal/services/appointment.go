package services

import (
	"context"
	"time"

	"github.com/doctorchannel/apiserver/internal/events"
	"github.com/doctorchannel/apiserver/types"
)

// slotWindow is the half-width of the conflict window around a proposed
// appointment time. It is fixed and independent of the doctor's
// configured slot duration.
const slotWindow = 30 * time.Minute

// AppointmentRepository defines persistence operations for appointments.
type AppointmentRepository interface {
	List(ctx context.Context) ([]types.Appointment, error)
	GetByID(ctx context.Context, id string) (types.Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]types.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]types.Appointment, error)
	ListByStatus(ctx context.Context, status string) ([]types.Appointment, error)
	ListByDoctorBetween(ctx context.Context, doctorID string, start, end time.Time) ([]types.Appointment, error)
	Create(ctx context.Context, appointment types.Appointment) (types.Appointment, error)
	Update(ctx context.Context, appointment types.Appointment) (types.Appointment, error)
	Delete(ctx context.Context, id string) error
}

// AppointmentService encapsulates booking use-cases.
type AppointmentService struct {
	repo      AppointmentRepository
	publisher *events.Publisher
}

func NewAppointmentService(repo AppointmentRepository, publisher *events.Publisher) *AppointmentService {
	return &AppointmentService{repo: repo, publisher: publisher}
}

func (s *AppointmentService) List(ctx context.Context) ([]types.Appointment, error) {
	return s.repo.List(ctx)
}

func (s *AppointmentService) GetByID(ctx context.Context, id string) (types.Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AppointmentService) ListByUser(ctx context.Context, userID string) ([]types.Appointment, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *AppointmentService) ListByDoctor(ctx context.Context, doctorID string) ([]types.Appointment, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

func (s *AppointmentService) ListByStatus(ctx context.Context, status string) ([]types.Appointment, error) {
	return s.repo.ListByStatus(ctx, status)
}

// IsSlotAvailable reports whether the doctor has no appointment within
// 30 minutes either side of the proposed time, bounds inclusive. The
// status of existing appointments is not considered, so a cancelled
// booking still blocks the window.
//
// Callers run this check before Create; Create itself does not
// re-validate, so two concurrent bookings can both pass the check.
func (s *AppointmentService) IsSlotAvailable(ctx context.Context, doctorID string, at time.Time) (bool, error) {
	existing, err := s.repo.ListByDoctorBetween(ctx, doctorID, at.Add(-slotWindow), at.Add(slotWindow))
	if err != nil {
		return false, err
	}
	return len(existing) == 0, nil
}

// Create books an appointment. The status is forced to PENDING and both
// timestamps are stamped to now, whatever the payload carried.
func (s *AppointmentService) Create(ctx context.Context, appointment types.Appointment) (types.Appointment, error) {
	now := time.Now()
	appointment.Status = types.StatusPending
	appointment.CreatedAt = now
	appointment.UpdatedAt = now

	created, err := s.repo.Create(ctx, appointment)
	if err != nil {
		return types.Appointment{}, err
	}
	s.publisher.Created(ctx, created)
	return created, nil
}

// UpdateStatus overwrites the status of an existing appointment and
// re-stamps updatedAt. Any status string is accepted; there is no
// transition table. Every other field is left untouched.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id, status string) (types.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return types.Appointment{}, err
	}

	previous := appointment.Status
	appointment.Status = status
	appointment.UpdatedAt = time.Now()

	updated, err := s.repo.Update(ctx, appointment)
	if err != nil {
		return types.Appointment{}, err
	}
	s.publisher.StatusChanged(ctx, updated, previous)
	return updated, nil
}

// Delete removes an appointment in any status. Deleting an absent id is
// a no-op.
func (s *AppointmentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publisher.Deleted(ctx, id)
	return nil
}
