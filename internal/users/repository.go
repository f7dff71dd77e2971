package users

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository defines persistence operations for users
type Repository interface {
	Create(ctx context.Context, u *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
}

// MongoRepository implements Repository using MongoDB. Numeric ids are
// allocated from a counters collection so they stay compatible with the
// wire format.
type MongoRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		col:      db.Collection("users"),
		counters: db.Collection("counters"),
	}
}

func (r *MongoRepository) nextID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": "users"},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

func (r *MongoRepository) Create(ctx context.Context, u *User) (*User, error) {
	id, err := r.nextID(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u.ID = id
	u.CreatedAt = now
	u.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *MongoRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	if err := r.col.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	var u User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
