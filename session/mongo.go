package session

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vinworld/models"
)

const mongoDatabase = "vinworld"

// MongoStore is the mongo-backed remember-me store.
type MongoStore struct {
	DB *mongo.Client
}

func NewMongoStore(db *mongo.Client) *MongoStore {
	return &MongoStore{DB: db}
}

func (r *MongoStore) sessions() *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection("user_session")
}

func (r *MongoStore) preferences() *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection("app_preference")
}

func (r *MongoStore) Save(ctx context.Context, s *models.Session) error {
	_, err := r.sessions().ReplaceOne(ctx,
		bson.M{"_id": s.ID}, s, options.Replace().SetUpsert(true))
	return err
}

func (r *MongoStore) Get(ctx context.Context, id string) (*models.Session, error) {
	s := &models.Session{}
	err := r.sessions().FindOne(ctx, bson.M{"_id": id}).Decode(s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *MongoStore) Delete(ctx context.Context, id string) error {
	_, err := r.sessions().DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *MongoStore) SaveRememberedUsername(ctx context.Context, username string) error {
	_, err := r.preferences().ReplaceOne(ctx,
		bson.M{"_id": "remembered_username"},
		bson.M{"_id": "remembered_username", "value": username},
		options.Replace().SetUpsert(true))
	return err
}

func (r *MongoStore) RememberedUsername(ctx context.Context) (string, error) {
	var doc struct {
		Value string `bson:"value"`
	}
	err := r.preferences().FindOne(ctx, bson.M{"_id": "remembered_username"}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", nil
		}
		return "", err
	}
	return doc.Value, nil
}

func (r *MongoStore) DeleteRememberedUsername(ctx context.Context) error {
	_, err := r.preferences().DeleteOne(ctx, bson.M{"_id": "remembered_username"})
	return err
}
