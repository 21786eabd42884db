package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/doctorchannel/apiserver/internal/store"
	"github.com/doctorchannel/apiserver/types"
)

// In-memory repositories mirroring the query semantics of the Mongo
// implementations, shared by the handler tests in this package.

type memUserRepo struct {
	byEmail map[string]types.User
	nextID  int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: make(map[string]types.User)}
}

func (m *memUserRepo) GetByID(ctx context.Context, id string) (types.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (types.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return u, nil
}

func (m *memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

func (m *memUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	if _, ok := m.byEmail[user.Email]; ok {
		return types.User{}, store.ErrDuplicate
	}
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	m.byEmail[user.Email] = user
	return user, nil
}

func (m *memUserRepo) SetPassword(ctx context.Context, email, passwordHash, role string) error {
	u, ok := m.byEmail[email]
	if !ok {
		return store.ErrNotFound
	}
	u.Password = passwordHash
	u.Role = role
	u.IsActive = true
	m.byEmail[email] = u
	return nil
}

type memDoctorRepo struct {
	doctors map[string]types.Doctor
	nextID  int
}

func newMemDoctorRepo() *memDoctorRepo {
	return &memDoctorRepo{doctors: make(map[string]types.Doctor)}
}

func (m *memDoctorRepo) List(ctx context.Context, activeOnly bool) ([]types.Doctor, error) {
	out := []types.Doctor{}
	for _, d := range m.doctors {
		if activeOnly && !d.IsActive {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (m *memDoctorRepo) GetByID(ctx context.Context, id string) (types.Doctor, error) {
	d, ok := m.doctors[id]
	if !ok {
		return types.Doctor{}, store.ErrNotFound
	}
	return d, nil
}

func (m *memDoctorRepo) search(match func(types.Doctor) bool) []types.Doctor {
	out := []types.Doctor{}
	for _, d := range m.doctors {
		if match(d) {
			out = append(out, d)
		}
	}
	return out
}

func (m *memDoctorRepo) SearchBySpecialty(ctx context.Context, specialty string) ([]types.Doctor, error) {
	return m.search(func(d types.Doctor) bool {
		return strings.Contains(strings.ToLower(d.Specialty), strings.ToLower(specialty))
	}), nil
}

func (m *memDoctorRepo) SearchByName(ctx context.Context, name string) ([]types.Doctor, error) {
	return m.search(func(d types.Doctor) bool {
		return strings.Contains(strings.ToLower(d.Name), strings.ToLower(name))
	}), nil
}

func (m *memDoctorRepo) SearchByCity(ctx context.Context, city string) ([]types.Doctor, error) {
	return m.search(func(d types.Doctor) bool {
		return strings.Contains(strings.ToLower(d.City), strings.ToLower(city))
	}), nil
}

func (m *memDoctorRepo) Create(ctx context.Context, doctor types.Doctor) (types.Doctor, error) {
	m.nextID++
	doctor.ID = fmt.Sprintf("doc-%d", m.nextID)
	m.doctors[doctor.ID] = doctor
	return doctor, nil
}

func (m *memDoctorRepo) Update(ctx context.Context, doctor types.Doctor) (types.Doctor, error) {
	if _, ok := m.doctors[doctor.ID]; !ok {
		return types.Doctor{}, store.ErrNotFound
	}
	m.doctors[doctor.ID] = doctor
	return doctor, nil
}

func (m *memDoctorRepo) SetImageURL(ctx context.Context, id, imageURL string) error {
	d, ok := m.doctors[id]
	if !ok {
		return store.ErrNotFound
	}
	d.ImageURL = imageURL
	m.doctors[id] = d
	return nil
}

func (m *memDoctorRepo) Delete(ctx context.Context, id string) error {
	delete(m.doctors, id)
	return nil
}

type memAppointmentRepo struct {
	appointments map[string]types.Appointment
	nextID       int
}

func newMemAppointmentRepo() *memAppointmentRepo {
	return &memAppointmentRepo{appointments: make(map[string]types.Appointment)}
}

func (m *memAppointmentRepo) List(ctx context.Context) ([]types.Appointment, error) {
	out := []types.Appointment{}
	for _, a := range m.appointments {
		out = append(out, a)
	}
	return out, nil
}

func (m *memAppointmentRepo) GetByID(ctx context.Context, id string) (types.Appointment, error) {
	a, ok := m.appointments[id]
	if !ok {
		return types.Appointment{}, store.ErrNotFound
	}
	return a, nil
}

func (m *memAppointmentRepo) ListByUser(ctx context.Context, userID string) ([]types.Appointment, error) {
	out := []types.Appointment{}
	for _, a := range m.appointments {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAppointmentRepo) ListByDoctor(ctx context.Context, doctorID string) ([]types.Appointment, error) {
	out := []types.Appointment{}
	for _, a := range m.appointments {
		if a.DoctorID == doctorID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAppointmentRepo) ListByStatus(ctx context.Context, status string) ([]types.Appointment, error) {
	out := []types.Appointment{}
	for _, a := range m.appointments {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAppointmentRepo) ListByDoctorBetween(ctx context.Context, doctorID string, start, end time.Time) ([]types.Appointment, error) {
	out := []types.Appointment{}
	for _, a := range m.appointments {
		if a.DoctorID != doctorID {
			continue
		}
		t := a.AppointmentDateTime
		if !t.Before(start) && !t.After(end) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAppointmentRepo) Create(ctx context.Context, appointment types.Appointment) (types.Appointment, error) {
	m.nextID++
	appointment.ID = fmt.Sprintf("apt-%d", m.nextID)
	m.appointments[appointment.ID] = appointment
	return appointment, nil
}

func (m *memAppointmentRepo) Update(ctx context.Context, appointment types.Appointment) (types.Appointment, error) {
	if _, ok := m.appointments[appointment.ID]; !ok {
		return types.Appointment{}, store.ErrNotFound
	}
	m.appointments[appointment.ID] = appointment
	return appointment, nil
}

func (m *memAppointmentRepo) Delete(ctx context.Context, id string) error {
	delete(m.appointments, id)
	return nil
}
