package db

import (
	"context"
	"errors"
	"strings"

	"github.com/ukydev/transit-fleet/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicateEmail is returned when an operator email is already registered.
var ErrDuplicateEmail = errors.New("email already exists")

// InsertOperator inserts a new operator into the database
func (s *Store) InsertOperator(ctx context.Context, o models.Operator) (int64, error) {
	if s.operators == nil {
		return 0, errNilCollection
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	id, err := s.nextID(ctx, "operators")
	if err != nil {
		return 0, err
	}
	o.ID = id
	o.Email = strings.ToLower(o.Email)
	if _, err := s.operators.InsertOne(ctx, o); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return 0, ErrDuplicateEmail
		}
		return 0, persistErr("insert operator", err)
	}
	return id, nil
}

// FindOperatorByID finds an operator by their ID
func (s *Store) FindOperatorByID(ctx context.Context, id int64) (*models.Operator, error) {
	return s.findOperator(ctx, bson.M{"_id": id}, id)
}

// FindOperatorByEmail finds an operator by their email
func (s *Store) FindOperatorByEmail(ctx context.Context, email string) (*models.Operator, error) {
	email = strings.ToLower(email)
	return s.findOperator(ctx, bson.M{"email": email}, email)
}

func (s *Store) findOperator(ctx context.Context, filter bson.M, key any) (*models.Operator, error) {
	if s.operators == nil {
		return nil, errNilCollection
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var op models.Operator
	if err := s.operators.FindOne(ctx, filter).Decode(&op); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound("operator", key)
		}
		return nil, persistErr("find operator", err)
	}
	return &op, nil
}
