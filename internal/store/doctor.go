package store

import (
	"context"
	"errors"
	"regexp"

	"github.com/doctorchannel/apiserver/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const doctorsCollection = "doctors"

// DoctorRepository handles persistence for doctors.
type DoctorRepository struct {
	col *mongo.Collection
}

func NewDoctorRepository(db *mongo.Database) *DoctorRepository {
	return &DoctorRepository{col: db.Collection(doctorsCollection)}
}

// List returns all doctors, or only active ones when activeOnly is set.
func (r *DoctorRepository) List(ctx context.Context, activeOnly bool) ([]types.Doctor, error) {
	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}
	return r.find(ctx, filter)
}

func (r *DoctorRepository) GetByID(ctx context.Context, id string) (types.Doctor, error) {
	var doctor types.Doctor
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doctor)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.Doctor{}, ErrNotFound
		}
		return types.Doctor{}, err
	}
	return doctor, nil
}

// SearchBySpecialty matches the specialty field by case-insensitive substring.
func (r *DoctorRepository) SearchBySpecialty(ctx context.Context, specialty string) ([]types.Doctor, error) {
	return r.find(ctx, bson.M{"specialty": containsIgnoreCase(specialty)})
}

// SearchByName matches the name field by case-insensitive substring.
func (r *DoctorRepository) SearchByName(ctx context.Context, name string) ([]types.Doctor, error) {
	return r.find(ctx, bson.M{"name": containsIgnoreCase(name)})
}

// SearchByCity matches the city field by case-insensitive substring.
func (r *DoctorRepository) SearchByCity(ctx context.Context, city string) ([]types.Doctor, error) {
	return r.find(ctx, bson.M{"city": containsIgnoreCase(city)})
}

// Create inserts a doctor and assigns a store-generated id.
func (r *DoctorRepository) Create(ctx context.Context, doctor types.Doctor) (types.Doctor, error) {
	doctor.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, doctor); err != nil {
		return types.Doctor{}, mapWriteError(err)
	}
	return doctor, nil
}

// Update replaces the full document. Missing fields in the incoming
// record overwrite the stored values.
func (r *DoctorRepository) Update(ctx context.Context, doctor types.Doctor) (types.Doctor, error) {
	result, err := r.col.ReplaceOne(ctx, bson.M{"_id": doctor.ID}, doctor)
	if err != nil {
		return types.Doctor{}, mapWriteError(err)
	}
	if result.MatchedCount == 0 {
		return types.Doctor{}, ErrNotFound
	}
	return doctor, nil
}

// SetImageURL updates only the stored image reference.
func (r *DoctorRepository) SetImageURL(ctx context.Context, id, imageURL string) error {
	result, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"image_url": imageURL}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a doctor by id. Deleting an absent id is a no-op.
func (r *DoctorRepository) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *DoctorRepository) find(ctx context.Context, filter bson.M) ([]types.Doctor, error) {
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	doctors := []types.Doctor{}
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func containsIgnoreCase(value string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"}
}
