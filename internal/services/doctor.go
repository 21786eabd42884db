package services

import (
	"context"
	"fmt"

	"github.com/doctorchannel/apiserver/types"
)

// DoctorRepository defines persistence operations for doctors.
type DoctorRepository interface {
	List(ctx context.Context, activeOnly bool) ([]types.Doctor, error)
	GetByID(ctx context.Context, id string) (types.Doctor, error)
	SearchBySpecialty(ctx context.Context, specialty string) ([]types.Doctor, error)
	SearchByName(ctx context.Context, name string) ([]types.Doctor, error)
	SearchByCity(ctx context.Context, city string) ([]types.Doctor, error)
	Create(ctx context.Context, doctor types.Doctor) (types.Doctor, error)
	Update(ctx context.Context, doctor types.Doctor) (types.Doctor, error)
	SetImageURL(ctx context.Context, id, imageURL string) error
	Delete(ctx context.Context, id string) error
}

// DoctorService encapsulates doctor directory use-cases.
type DoctorService struct {
	repo DoctorRepository
}

func NewDoctorService(repo DoctorRepository) *DoctorService {
	return &DoctorService{repo: repo}
}

func (s *DoctorService) List(ctx context.Context, activeOnly bool) ([]types.Doctor, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *DoctorService) GetByID(ctx context.Context, id string) (types.Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DoctorService) SearchBySpecialty(ctx context.Context, specialty string) ([]types.Doctor, error) {
	return s.repo.SearchBySpecialty(ctx, specialty)
}

func (s *DoctorService) SearchByName(ctx context.Context, name string) ([]types.Doctor, error) {
	return s.repo.SearchByName(ctx, name)
}

func (s *DoctorService) SearchByCity(ctx context.Context, city string) ([]types.Doctor, error) {
	return s.repo.SearchByCity(ctx, city)
}

// Create stores a new doctor profile. New profiles always start active.
func (s *DoctorService) Create(ctx context.Context, doctor types.Doctor) (types.Doctor, error) {
	if err := validateDoctor(doctor); err != nil {
		return types.Doctor{}, err
	}
	doctor.IsActive = true
	return s.repo.Create(ctx, doctor)
}

// Update replaces every mutable attribute of the profile with the
// incoming values. Fields omitted from the payload overwrite the stored
// values with their zero value; this is full-replace, not merge-patch.
func (s *DoctorService) Update(ctx context.Context, id string, doctor types.Doctor) (types.Doctor, error) {
	if err := validateDoctor(doctor); err != nil {
		return types.Doctor{}, err
	}
	doctor.ID = id
	return s.repo.Update(ctx, doctor)
}

// SetImageURL records where the profile image is served from.
func (s *DoctorService) SetImageURL(ctx context.Context, id, imageURL string) error {
	return s.repo.SetImageURL(ctx, id, imageURL)
}

// Delete removes a doctor. Deleting an absent id is a no-op.
func (s *DoctorService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func validateDoctor(doctor types.Doctor) error {
	if doctor.ConsultationFee < 0 {
		return fmt.Errorf("%w: consultation fee must not be negative", ErrInvalidInput)
	}
	if doctor.SlotDuration < 0 {
		return fmt.Errorf("%w: slot duration must be a positive number of minutes", ErrInvalidInput)
	}
	return nil
}
