package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/doctorchannel/apiserver/internal/mq"
	"github.com/doctorchannel/apiserver/types"
	"github.com/google/uuid"
)

// Channel is the queue/topic appointment lifecycle events go to.
const Channel = "appointment-events"

// Event names.
const (
	AppointmentCreated       = "appointment.created"
	AppointmentStatusChanged = "appointment.status_changed"
	AppointmentDeleted       = "appointment.deleted"
)

// AppointmentEvent is the wire payload for appointment lifecycle events.
// Downstream consumers (notification senders) key off Event and can use
// ID for deduplication on redelivery.
type AppointmentEvent struct {
	ID             string    `json:"id"`
	Event          string    `json:"event"`
	AppointmentID  string    `json:"appointmentId"`
	DoctorID       string    `json:"doctorId,omitempty"`
	UserID         string    `json:"userId,omitempty"`
	PatientEmail   string    `json:"patientEmail,omitempty"`
	Status         string    `json:"status,omitempty"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// Publisher emits appointment events to the configured queue. A nil
// Publisher is valid and drops everything, so callers never have to
// branch on whether messaging is configured. Publishing is best-effort;
// a broker failure never fails the request that triggered it.
type Publisher struct {
	queue *mq.MQ
}

func NewPublisher(queue *mq.MQ) *Publisher {
	if queue == nil {
		return nil
	}
	return &Publisher{queue: queue}
}

// Created announces a freshly booked appointment.
func (p *Publisher) Created(ctx context.Context, appointment types.Appointment) {
	p.publish(ctx, AppointmentEvent{
		Event:         AppointmentCreated,
		AppointmentID: appointment.ID,
		DoctorID:      appointment.DoctorID,
		UserID:        appointment.UserID,
		PatientEmail:  appointment.PatientEmail,
		Status:        appointment.Status,
		OccurredAt:    time.Now(),
	})
}

// StatusChanged announces a status transition.
func (p *Publisher) StatusChanged(ctx context.Context, appointment types.Appointment, previousStatus string) {
	p.publish(ctx, AppointmentEvent{
		Event:          AppointmentStatusChanged,
		AppointmentID:  appointment.ID,
		DoctorID:       appointment.DoctorID,
		UserID:         appointment.UserID,
		PatientEmail:   appointment.PatientEmail,
		Status:         appointment.Status,
		PreviousStatus: previousStatus,
		OccurredAt:     time.Now(),
	})
}

// Deleted announces a removed appointment.
func (p *Publisher) Deleted(ctx context.Context, appointmentID string) {
	p.publish(ctx, AppointmentEvent{
		Event:         AppointmentDeleted,
		AppointmentID: appointmentID,
		OccurredAt:    time.Now(),
	})
}

func (p *Publisher) publish(ctx context.Context, event AppointmentEvent) {
	if p == nil || p.queue == nil {
		return
	}

	event.ID = uuid.NewString()
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("events: marshal %s: %v", event.Event, err)
		return
	}

	attrs := map[string]string{
		"event":          event.Event,
		"appointment_id": event.AppointmentID,
	}
	if _, err := p.queue.Publish(ctx, Channel, data, attrs); err != nil {
		log.Printf("events: publish %s: %v", event.Event, err)
	}
}
