package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/doctorchannel/apiserver/internal/services"
	"github.com/doctorchannel/apiserver/types"
	"github.com/go-chi/chi/v5"
)

func newAppointmentRouter() (chi.Router, *memAppointmentRepo) {
	repo := newMemAppointmentRepo()
	r := chi.NewRouter()
	AppointmentRouter(r, services.NewAppointmentService(repo, nil))
	return r, repo
}

func TestCreateAppointmentEndpoint(t *testing.T) {
	router, _ := newAppointmentRouter()

	rec := doRequest(router, http.MethodPost, "/", map[string]any{
		"userId":              "user-1",
		"doctorId":            "doc-1",
		"patientName":         "John Doe",
		"patientEmail":        "john@example.com",
		"appointmentDateTime": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"status":              "CONFIRMED",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var created types.Appointment
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected an assigned id")
	}
	if created.Status != types.StatusPending {
		t.Fatalf("status = %q, want PENDING", created.Status)
	}
}

func TestCreateAppointmentMissingFields(t *testing.T) {
	router, _ := newAppointmentRouter()

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"no doctor", map[string]any{
			"userId":              "user-1",
			"appointmentDateTime": time.Now().Format(time.RFC3339),
		}},
		{"no time", map[string]any{
			"userId":   "user-1",
			"doctorId": "doc-1",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := doRequest(router, http.MethodPost, "/", tt.payload); rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestCreateAppointmentSlotConflict(t *testing.T) {
	router, repo := newAppointmentRouter()

	booked := time.Date(2026, time.September, 3, 10, 0, 0, 0, time.UTC)
	repo.appointments["apt-1"] = types.Appointment{
		ID:                  "apt-1",
		DoctorID:            "doc-1",
		AppointmentDateTime: booked,
		Status:              types.StatusCancelled,
	}

	tests := []struct {
		name   string
		at     time.Time
		doctor string
		want   int
	}{
		{"same slot", booked, "doc-1", http.StatusConflict},
		{"30m boundary", booked.Add(30 * time.Minute), "doc-1", http.StatusConflict},
		{"just outside window", booked.Add(31 * time.Minute), "doc-1", http.StatusCreated},
		{"other doctor", booked, "doc-2", http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(router, http.MethodPost, "/", map[string]any{
				"userId":              "user-1",
				"doctorId":            tt.doctor,
				"patientName":         "John Doe",
				"appointmentDateTime": tt.at.Format(time.RFC3339),
			})
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestUpdateAppointmentStatusEndpoint(t *testing.T) {
	router, repo := newAppointmentRouter()
	repo.appointments["apt-1"] = types.Appointment{
		ID:       "apt-1",
		DoctorID: "doc-1",
		Status:   types.StatusPending,
	}

	rec := doRequest(router, http.MethodPut, "/apt-1/status?status=CONFIRMED", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var updated types.Appointment
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if updated.Status != types.StatusConfirmed {
		t.Fatalf("status = %q, want CONFIRMED", updated.Status)
	}

	if rec := doRequest(router, http.MethodPut, "/apt-1/status", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing param status = %d, want 400", rec.Code)
	}
	if rec := doRequest(router, http.MethodPut, "/missing/status?status=CONFIRMED", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown id status = %d, want 404", rec.Code)
	}
}

func TestListAppointmentsByScope(t *testing.T) {
	router, repo := newAppointmentRouter()
	repo.appointments["apt-1"] = types.Appointment{ID: "apt-1", UserID: "user-1", DoctorID: "doc-1", Status: types.StatusPending}
	repo.appointments["apt-2"] = types.Appointment{ID: "apt-2", UserID: "user-2", DoctorID: "doc-1", Status: types.StatusConfirmed}
	repo.appointments["apt-3"] = types.Appointment{ID: "apt-3", UserID: "user-1", DoctorID: "doc-2", Status: types.StatusPending}

	tests := []struct {
		name string
		path string
		want int
	}{
		{"all", "/", 3},
		{"by user", "/user/user-1", 2},
		{"by doctor", "/doctor/doc-1", 2},
		{"by status", "/status/PENDING", 2},
		{"by status no match", "/status/COMPLETED", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(router, http.MethodGet, tt.path, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			var appointments []types.Appointment
			if err := json.NewDecoder(rec.Body).Decode(&appointments); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if len(appointments) != tt.want {
				t.Fatalf("got %d appointments, want %d", len(appointments), tt.want)
			}
		})
	}
}

func TestDeleteAppointmentEndpoint(t *testing.T) {
	router, repo := newAppointmentRouter()
	repo.appointments["apt-1"] = types.Appointment{ID: "apt-1", DoctorID: "doc-1"}

	if rec := doRequest(router, http.MethodDelete, "/apt-1", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if rec := doRequest(router, http.MethodDelete, "/apt-1", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("repeat delete status = %d, want 204", rec.Code)
	}
}
