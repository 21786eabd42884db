package store

import (
	"context"
	"errors"
	"time"

	"github.com/doctorchannel/apiserver/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const appointmentsCollection = "appointments"

// AppointmentRepository handles persistence for appointments.
type AppointmentRepository struct {
	col *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{col: db.Collection(appointmentsCollection)}
}

func (r *AppointmentRepository) List(ctx context.Context) ([]types.Appointment, error) {
	return r.find(ctx, bson.M{})
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (types.Appointment, error) {
	var appointment types.Appointment
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&appointment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.Appointment{}, ErrNotFound
		}
		return types.Appointment{}, err
	}
	return appointment, nil
}

func (r *AppointmentRepository) ListByUser(ctx context.Context, userID string) ([]types.Appointment, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *AppointmentRepository) ListByDoctor(ctx context.Context, doctorID string) ([]types.Appointment, error) {
	return r.find(ctx, bson.M{"doctor_id": doctorID})
}

func (r *AppointmentRepository) ListByStatus(ctx context.Context, status string) ([]types.Appointment, error) {
	return r.find(ctx, bson.M{"status": status})
}

// ListByDoctorBetween returns a doctor's appointments whose time falls
// within [start, end], bounds inclusive.
func (r *AppointmentRepository) ListByDoctorBetween(ctx context.Context, doctorID string, start, end time.Time) ([]types.Appointment, error) {
	filter := bson.M{
		"doctor_id":             doctorID,
		"appointment_date_time": bson.M{"$gte": start, "$lte": end},
	}
	return r.find(ctx, filter)
}

// Create inserts an appointment and assigns a store-generated id.
func (r *AppointmentRepository) Create(ctx context.Context, appointment types.Appointment) (types.Appointment, error) {
	appointment.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, appointment); err != nil {
		return types.Appointment{}, mapWriteError(err)
	}
	return appointment, nil
}

// Update replaces the full document.
func (r *AppointmentRepository) Update(ctx context.Context, appointment types.Appointment) (types.Appointment, error) {
	result, err := r.col.ReplaceOne(ctx, bson.M{"_id": appointment.ID}, appointment)
	if err != nil {
		return types.Appointment{}, err
	}
	if result.MatchedCount == 0 {
		return types.Appointment{}, ErrNotFound
	}
	return appointment, nil
}

// Delete removes an appointment by id. Deleting an absent id is a no-op.
func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *AppointmentRepository) find(ctx context.Context, filter bson.M) ([]types.Appointment, error) {
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "appointment_date_time", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	appointments := []types.Appointment{}
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}
