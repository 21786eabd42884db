package store

import (
	"context"
	"errors"

	"github.com/doctorchannel/apiserver/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const usersCollection = "users"

// UserRepository handles persistence for users.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(usersCollection)}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (types.User, error) {
	var user types.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (types.User, error) {
	var user types.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return user, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a user and assigns a store-generated id.
func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	user.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, user); err != nil {
		return types.User{}, mapWriteError(err)
	}
	return user, nil
}

// SetPassword overwrites the stored password hash for the account with
// the given email and forces the role and active flag. Mirrors the
// operational password-reset flow.
func (r *UserRepository) SetPassword(ctx context.Context, email, passwordHash, role string) error {
	update := bson.M{"$set": bson.M{
		"password":  passwordHash,
		"role":      role,
		"is_active": true,
	}}
	result, err := r.col.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
