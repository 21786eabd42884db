package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/doctorchannel/apiserver/internal/services"
	"github.com/doctorchannel/apiserver/internal/store"
	"github.com/doctorchannel/apiserver/types"
	"github.com/go-chi/chi/v5"
)

// AppointmentHandler provides HTTP handlers for bookings.
type AppointmentHandler struct {
	appointmentService *services.AppointmentService
}

// NewAppointmentHandler constructs a handler with the provided service.
func NewAppointmentHandler(appointmentService *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// AppointmentRouter registers appointment routes on the given router.
func AppointmentRouter(r chi.Router, appointmentService *services.AppointmentService) {
	handler := NewAppointmentHandler(appointmentService)

	r.Get("/", handler.ListAppointments)
	r.Post("/", handler.CreateAppointment)
	r.Get("/user/{userID}", handler.ListByUser)
	r.Get("/doctor/{doctorID}", handler.ListByDoctor)
	r.Get("/status/{status}", handler.ListByStatus)
	r.Route("/{appointmentID}", func(r chi.Router) {
		r.Get("/", handler.GetAppointment)
		r.Put("/status", handler.UpdateStatus)
		r.Delete("/", handler.DeleteAppointment)
	})
}

func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list appointments")
		return
	}
	writeJSON(w, http.StatusOK, appointments)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	appointment, err := h.appointmentService.GetByID(r.Context(), chi.URLParam(r, "appointmentID"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "appointment not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch appointment")
		return
	}
	writeJSON(w, http.StatusOK, appointment)
}

func (h *AppointmentHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentService.ListByUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list appointments")
		return
	}
	writeJSON(w, http.StatusOK, appointments)
}

func (h *AppointmentHandler) ListByDoctor(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentService.ListByDoctor(r.Context(), chi.URLParam(r, "doctorID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list appointments")
		return
	}
	writeJSON(w, http.StatusOK, appointments)
}

func (h *AppointmentHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentService.ListByStatus(r.Context(), chi.URLParam(r, "status"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list appointments")
		return
	}
	writeJSON(w, http.StatusOK, appointments)
}

// CreateAppointment books a slot. The availability check runs here,
// before the create call; creation itself does not re-validate.
func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var appointment types.Appointment
	if err := json.NewDecoder(r.Body).Decode(&appointment); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	appointment.DoctorID = strings.TrimSpace(appointment.DoctorID)
	if appointment.DoctorID == "" || appointment.AppointmentDateTime.IsZero() {
		writeError(w, http.StatusBadRequest, "doctorId and appointmentDateTime are required")
		return
	}

	available, err := h.appointmentService.IsSlotAvailable(
		r.Context(), appointment.DoctorID, appointment.AppointmentDateTime)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check slot availability")
		return
	}
	if !available {
		writeError(w, http.StatusConflict, "time slot is not available")
		return
	}

	created, err := h.appointmentService.Create(r.Context(), appointment)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create appointment")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateStatus overwrites the appointment status with the value of the
// status query parameter.
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if status == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}

	updated, err := h.appointmentService.UpdateStatus(r.Context(), chi.URLParam(r, "appointmentID"), status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "appointment not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update appointment")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	if err := h.appointmentService.Delete(r.Context(), chi.URLParam(r, "appointmentID")); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete appointment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
