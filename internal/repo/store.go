package repo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
)

type Store struct {
	Client *mongo.Client
	DB     *mongo.Database

	colUsers     *mongo.Collection
	colStories   *mongo.Collection
	colTutorials *mongo.Collection
}

func NewStore(ctx context.Context, uri, dbname string) (*Store, error) {
	cli, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetRetryWrites(true).
		SetMaxPoolSize(50),
	)
	if err != nil {
		return nil, err
	}
	if err := cli.Ping(ctx, nil); err != nil {
		return nil, err
	}
	db := cli.Database(dbname)
	return &Store{
		Client:       cli,
		DB:           db,
		colUsers:     db.Collection("users"),
		colStories:   db.Collection("stories"),
		colTutorials: db.Collection("tutorials"),
	}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.Client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error { return s.Client.Disconnect(ctx) }

// EnsureIndexes creates the uniqueness and lookup indexes. Sparse where the
// field only exists on one login-method variant.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.colUsers.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("uniq_email"),
		},
		{
			Keys:    bson.D{{Key: "local.id", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("uniq_local_id"),
		},
		{
			Keys:    bson.D{{Key: "nickName", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("uniq_nickname"),
		},
		{
			Keys:    bson.D{{Key: "kakao.id", Value: 1}},
			Options: options.Index().SetSparse(true).SetName("kakao_id"),
		},
		{
			Keys:    bson.D{{Key: "naver.id", Value: 1}},
			Options: options.Index().SetSparse(true).SetName("naver_id"),
		},
		{
			Keys:    bson.D{{Key: "apple.id", Value: 1}},
			Options: options.Index().SetSparse(true).SetName("apple_id"),
		},
		{
			Keys:    bson.D{{Key: "facebook.id", Value: 1}},
			Options: options.Index().SetSparse(true).SetName("facebook_id"),
		},
	})
	if err != nil {
		return err
	}

	_, err = s.colStories.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "creator", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("creator_created_desc"),
		},
	})
	return err
}

// IsDup reports a Mongo duplicate-key error (code 11000).
func IsDup(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	return false
}
