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

func (s *Store) InsertTutorial(ctx context.Context, t *domain.Tutorial) error {
	res, err := s.colTutorials.InsertOne(ctx, t)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid
	}
	return nil
}

// FindTutorialPreviews returns list-view projections for the given ids.
func (s *Store) FindTutorialPreviews(ctx context.Context, ids []primitive.ObjectID) ([]domain.TutorialPreview, error) {
	cur, err := s.colTutorials.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"_id": 1, "thumbnailImg": 1, "title": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []domain.TutorialPreview{}
	for cur.Next(ctx) {
		var p domain.TutorialPreview
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, cur.Err()
}

// FindTutorial fetches the detail view with the comment list stripped;
// comments are paginated separately.
func (s *Store) FindTutorial(ctx context.Context, id primitive.ObjectID) (*domain.Tutorial, error) {
	var t domain.Tutorial
	err := s.colTutorials.FindOne(ctx,
		bson.M{"_id": id},
		options.FindOne().SetProjection(bson.M{"comments": 0}),
	).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) TutorialExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := s.colTutorials.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	return n > 0, err
}

// AddComment appends the comment and bumps the redundant count in one
// document update.
func (s *Store) AddComment(ctx context.Context, tutID primitive.ObjectID, c *domain.Comment) error {
	c.ID = primitive.NewObjectID()
	c.CreatedAt = time.Now().UTC()
	res, err := s.colTutorials.UpdateByID(ctx, tutID, bson.M{
		"$push": bson.M{"comments": c},
		"$inc":  bson.M{"commentCount": 1},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// FindComment resolves one embedded comment, for the ownership check before
// deletion. (nil, nil) when either the tutorial or the comment is absent.
func (s *Store) FindComment(ctx context.Context, tutID, commentID primitive.ObjectID) (*domain.Comment, error) {
	var doc struct {
		Comments []domain.Comment `bson:"comments"`
	}
	err := s.colTutorials.FindOne(ctx,
		bson.M{"_id": tutID, "comments._id": commentID},
		options.FindOne().SetProjection(bson.M{"comments.$": 1}),
	).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(doc.Comments) == 0 {
		return nil, nil
	}
	return &doc.Comments[0], nil
}

// RemoveComment pulls the comment and decrements the count.
func (s *Store) RemoveComment(ctx context.Context, tutID, commentID primitive.ObjectID) error {
	res, err := s.colTutorials.UpdateOne(ctx,
		bson.M{"_id": tutID, "comments._id": commentID},
		bson.M{
			"$pull": bson.M{"comments": bson.M{"_id": commentID}},
			"$inc":  bson.M{"commentCount": -1},
		},
	)
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListComments pages through a tutorial's comments newest first, joining
// each author's public profile. A dangling author reference produces an
// empty authorInfo rather than failing the page.
func (s *Store) ListComments(ctx context.Context, tutID primitive.ObjectID, page, perPage int) ([]domain.CommentView, error) {
	if page < 1 {
		page = 1
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": tutID}}},
		{{Key: "$unwind", Value: "$comments"}},
		{{Key: "$sort", Value: bson.M{"comments.createdAt": -1}}},
		{{Key: "$skip", Value: int64((page - 1) * perPage)}},
		{{Key: "$limit", Value: int64(perPage)}},
		{{Key: "$lookup", Value: bson.M{
			"from":         s.colUsers.Name(),
			"localField":   "comments.author",
			"foreignField": "_id",
			"as":           "authorDocs",
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":        "$comments._id",
			"author":     "$comments.author",
			"content":    "$comments.content",
			"createdAt":  "$comments.createdAt",
			"authorInfo": bson.M{"$arrayElemAt": bson.A{"$authorDocs", 0}},
		}}},
	}

	cur, err := s.colTutorials.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []domain.CommentView{}
	for cur.Next(ctx) {
		var v domain.CommentView
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, cur.Err()
}
