package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/doctorchannel/apiserver/internal/services"
	"github.com/doctorchannel/apiserver/internal/storage"
	"github.com/doctorchannel/apiserver/internal/store"
	"github.com/doctorchannel/apiserver/types"
	"github.com/go-chi/chi/v5"
)

const (
	maxImageMemory = 8 << 20
	maxImageBytes  = 16 << 20
	formFieldImage = "image"
)

// DoctorHandler provides HTTP handlers for the doctor directory.
type DoctorHandler struct {
	doctorService *services.DoctorService
	images        *storage.ImageStore
}

// NewDoctorHandler constructs a handler with the provided dependencies.
// images may be nil when no object storage backend is configured.
func NewDoctorHandler(doctorService *services.DoctorService, images *storage.ImageStore) *DoctorHandler {
	return &DoctorHandler{
		doctorService: doctorService,
		images:        images,
	}
}

// DoctorRouter registers doctor routes on the given router.
func DoctorRouter(r chi.Router, doctorService *services.DoctorService, images *storage.ImageStore) {
	handler := NewDoctorHandler(doctorService, images)

	r.Get("/", handler.ListDoctors)
	r.Post("/", handler.CreateDoctor)
	r.Get("/search/specialty", handler.SearchBySpecialty)
	r.Get("/search/name", handler.SearchByName)
	r.Get("/search/city", handler.SearchByCity)
	r.Route("/{doctorID}", func(r chi.Router) {
		r.Get("/", handler.GetDoctor)
		r.Put("/", handler.UpdateDoctor)
		r.Delete("/", handler.DeleteDoctor)
		r.Post("/image", handler.UploadImage)
		r.Get("/image", handler.GetImage)
	})
}

func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	activeOnly := strings.EqualFold(r.URL.Query().Get("active"), "true")

	doctors, err := h.doctorService.List(r.Context(), activeOnly)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list doctors")
		return
	}
	writeJSON(w, http.StatusOK, doctors)
}

func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctor, err := h.doctorService.GetByID(r.Context(), chi.URLParam(r, "doctorID"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "doctor not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch doctor")
		return
	}
	writeJSON(w, http.StatusOK, doctor)
}

func (h *DoctorHandler) SearchBySpecialty(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, "specialty", h.doctorService.SearchBySpecialty)
}

func (h *DoctorHandler) SearchByName(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, "name", h.doctorService.SearchByName)
}

func (h *DoctorHandler) SearchByCity(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, "city", h.doctorService.SearchByCity)
}

func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var doctor types.Doctor
	if err := json.NewDecoder(r.Body).Decode(&doctor); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	created, err := h.doctorService.Create(r.Context(), doctor)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrDuplicate):
			writeJSON(w, http.StatusConflict, DoctorResponse{
				Success: false,
				Message: "A doctor with this email already exists",
			})
		default:
			writeJSON(w, http.StatusInternalServerError, DoctorResponse{
				Success: false,
				Message: "Failed to add doctor",
			})
		}
		return
	}

	writeJSON(w, http.StatusCreated, DoctorResponse{
		Success: true,
		Message: "Doctor added successfully",
		Doctor:  &created,
	})
}

func (h *DoctorHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	var doctor types.Doctor
	if err := json.NewDecoder(r.Body).Decode(&doctor); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	updated, err := h.doctorService.Update(r.Context(), chi.URLParam(r, "doctorID"), doctor)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "doctor not found")
		case errors.Is(err, store.ErrDuplicate):
			writeError(w, http.StatusConflict, "a doctor with this email already exists")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update doctor")
		}
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *DoctorHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	if err := h.doctorService.Delete(r.Context(), chi.URLParam(r, "doctorID")); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete doctor")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadImage stores a profile image in object storage and records the
// serving path on the doctor.
func (h *DoctorHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if h.images == nil {
		writeError(w, http.StatusServiceUnavailable, "image storage is not configured")
		return
	}

	doctorID := chi.URLParam(r, "doctorID")
	if _, err := h.doctorService.GetByID(r.Context(), doctorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "doctor not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch doctor")
		return
	}

	if err := r.ParseMultipartForm(maxImageMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile(formFieldImage)
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	if header.Size > maxImageBytes {
		writeError(w, http.StatusBadRequest, "image is too large")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if err := h.images.PutDoctorImage(r.Context(), doctorID, file, header.Size, contentType); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store image")
		return
	}

	imageURL := fmt.Sprintf("/api/doctors/%s/image", doctorID)
	if err := h.doctorService.SetImageURL(r.Context(), doctorID, imageURL); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update doctor")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"imageUrl": imageURL})
}

// GetImage streams a stored profile image.
func (h *DoctorHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	if h.images == nil {
		writeError(w, http.StatusServiceUnavailable, "image storage is not configured")
		return
	}

	reader, err := h.images.GetDoctorImage(r.Context(), chi.URLParam(r, "doctorID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "image not found")
		return
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read image")
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *DoctorHandler) search(
	w http.ResponseWriter,
	r *http.Request,
	param string,
	query func(ctx context.Context, term string) ([]types.Doctor, error),
) {
	term := strings.TrimSpace(r.URL.Query().Get(param))
	if term == "" {
		writeError(w, http.StatusBadRequest, param+" is required")
		return
	}

	doctors, err := query(r.Context(), term)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to search doctors")
		return
	}
	writeJSON(w, http.StatusOK, doctors)
}

// DoctorResponse is the envelope for doctor creation results.
type DoctorResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Doctor  *types.Doctor `json:"doctor,omitempty"`
}
