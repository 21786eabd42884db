package types

import "time"

// Appointment statuses. Status updates accept arbitrary strings; these
// are the values the rest of the platform understands.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
	StatusCompleted = "COMPLETED"
)

// Appointment links a user and a doctor at a point in time. UserID and
// DoctorID are plain references; nothing cascades on delete.
type Appointment struct {
	ID                  string    `json:"id" bson:"_id,omitempty"`
	UserID              string    `json:"userId" bson:"user_id"`
	DoctorID            string    `json:"doctorId" bson:"doctor_id"`
	PatientName         string    `json:"patientName" bson:"patientName"`
	PatientEmail        string    `json:"patientEmail" bson:"patientEmail"`
	PatientPhone        string    `json:"patientPhone" bson:"patientPhone"`
	AppointmentDateTime time.Time `json:"appointmentDateTime" bson:"appointment_date_time"`
	Status              string    `json:"status" bson:"status"`
	Symptoms            string    `json:"symptoms" bson:"symptoms"`
	CreatedAt           time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt           time.Time `json:"updatedAt" bson:"updated_at"`
}
