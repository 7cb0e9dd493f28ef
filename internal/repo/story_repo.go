package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zoesbreath/baobab-server/internal/domain"
)

// CreateStory inserts the entry and then pushes its id onto the owner's
// list. Two sequential writes with no compensating rollback; a crash in
// between leaves an orphaned entry.
func (s *Store) CreateStory(ctx context.Context, st *domain.Story) error {
	now := time.Now().UTC()
	st.CreatedAt = now
	st.UpdatedAt = now

	res, err := s.colStories.InsertOne(ctx, st)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		st.ID = oid
	}

	_, err = s.colUsers.UpdateByID(ctx, st.Creator, bson.M{
		"$push": bson.M{"stories": st.ID},
	})
	return err
}

func (s *Store) FindStory(ctx context.Context, id primitive.ObjectID) (*domain.Story, error) {
	var st domain.Story
	err := s.colStories.FindOne(ctx, bson.M{"_id": id}).Decode(&st)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// ListStories returns the creator's entries newest first plus the total.
func (s *Store) ListStories(ctx context.Context, creator primitive.ObjectID, page, perPage int) ([]domain.Story, int64, error) {
	if page < 1 {
		page = 1
	}
	filter := bson.M{"creator": creator}

	total, err := s.colStories.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cur, err := s.colStories.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page-1)*perPage)).
		SetLimit(int64(perPage)),
	)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := []domain.Story{}
	for cur.Next(ctx) {
		var st domain.Story
		if err := cur.Decode(&st); err != nil {
			return nil, 0, err
		}
		out = append(out, st)
	}
	return out, total, cur.Err()
}

func (s *Store) UpdateStoryContent(ctx context.Context, id primitive.ObjectID, content string) error {
	res, err := s.colStories.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"content": content, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteStory removes the entry and pulls its id from the owner's list.
func (s *Store) DeleteStory(ctx context.Context, id, creator primitive.ObjectID) error {
	res, err := s.colStories.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	_, err = s.colUsers.UpdateByID(ctx, creator, bson.M{
		"$pull": bson.M{"stories": id},
	})
	return err
}

// StoryDates returns the creation timestamps of all the creator's entries,
// for the calendar view.
func (s *Store) StoryDates(ctx context.Context, creator primitive.ObjectID) ([]time.Time, error) {
	cur, err := s.colStories.Find(ctx, bson.M{"creator": creator},
		options.Find().SetProjection(bson.M{"createdAt": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var dates []time.Time
	for cur.Next(ctx) {
		var st domain.Story
		if err := cur.Decode(&st); err != nil {
			return nil, err
		}
		dates = append(dates, st.CreatedAt)
	}
	return dates, cur.Err()
}

// StoriesBetween returns the creator's entries with createdAt in [from, to).
func (s *Store) StoriesBetween(ctx context.Context, creator primitive.ObjectID, from, to time.Time) ([]domain.Story, error) {
	cur, err := s.colStories.Find(ctx, bson.M{
		"creator":   creator,
		"createdAt": bson.M{"$gte": from, "$lt": to},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.Story
	for cur.Next(ctx) {
		var st domain.Story
		if err := cur.Decode(&st); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, cur.Err()
}
