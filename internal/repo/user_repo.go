package repo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/zoesbreath/baobab-server/internal/domain"
)

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	res, err := s.colUsers.InsertOne(ctx, u)
	if IsDup(err) {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

// findUser resolves a single user; absent documents come back as (nil, nil).
func (s *Store) findUser(ctx context.Context, filter bson.M) (*domain.User, error) {
	var u domain.User
	err := s.colUsers.FindOne(ctx, filter).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) FindUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

func (s *Store) FindUserByLocalID(ctx context.Context, localID string) (*domain.User, error) {
	return s.findUser(ctx, bson.M{"local.id": localID})
}

func (s *Store) FindUserByNickName(ctx context.Context, nickName string) (*domain.User, error) {
	return s.findUser(ctx, bson.M{"nickName": nickName})
}

// FindUserByProvider looks up a social account by its external id.
func (s *Store) FindUserByProvider(ctx context.Context, method domain.Method, externalID string) (*domain.User, error) {
	return s.findUser(ctx, bson.M{fmt.Sprintf("%s.id", method): externalID})
}

// FindUserByLocalIDOrEmail serves the verification flows, which accept
// either identifier.
func (s *Store) FindUserByLocalIDOrEmail(ctx context.Context, localID, email string) (*domain.User, error) {
	return s.findUser(ctx, bson.M{"$or": bson.A{
		bson.M{"local.id": localID},
		bson.M{"email": email},
	}})
}

func (s *Store) updateUser(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	set["updatedAt"] = time.Now().UTC()
	res, err := s.colUsers.UpdateByID(ctx, id, bson.M{"$set": set})
	if IsDup(err) {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdateNickName(ctx context.Context, id primitive.ObjectID, nickName string) error {
	return s.updateUser(ctx, id, bson.M{"nickName": nickName})
}

// UpdateGamerProfile applies the partial PUT /gamer payload.
func (s *Store) UpdateGamerProfile(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	if len(set) == 0 {
		return nil
	}
	return s.updateUser(ctx, id, set)
}

// SetVerificationCode stores the code hash and its expiry on the user.
func (s *Store) SetVerificationCode(ctx context.Context, id primitive.ObjectID, hash string, expiresAt time.Time) error {
	return s.updateUser(ctx, id, bson.M{"token": hash, "tokenExpiration": expiresAt})
}

func (s *Store) SetEmailVerified(ctx context.Context, id primitive.ObjectID) error {
	return s.updateUser(ctx, id, bson.M{"isEmailVerified": true})
}

func (s *Store) SetLocalPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	return s.updateUser(ctx, id, bson.M{"local.password": passwordHash})
}

// SaveGame persists the full game sub-record in one document update.
func (s *Store) SaveGame(ctx context.Context, id primitive.ObjectID, g domain.Game) error {
	return s.updateUser(ctx, id, bson.M{
		"isInitial":     g.IsInitial,
		"loggedInAt":    g.LoggedInAt,
		"score":         g.Score,
		"itemHave":      g.ItemHave,
		"skins":         g.Skins,
		"dustStage":     g.DustStage,
		"isWithered":    g.IsWithered,
		"itemUpdatedAt": g.ItemUpdatedAt,
		"itemLeft":      g.ItemLeft,
	})
}

// AddFavorite adds the tutorial to the user's favorite set. Returns false
// without mutation when it is already a member.
func (s *Store) AddFavorite(ctx context.Context, userID, tutID primitive.ObjectID) (bool, error) {
	res, err := s.colUsers.UpdateByID(ctx, userID, bson.M{
		"$addToSet": bson.M{"favoriteTuts": tutID},
	})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// RemoveFavorite removes the tutorial from the favorite set. Returns false
// when it was not a member.
func (s *Store) RemoveFavorite(ctx context.Context, userID, tutID primitive.ObjectID) (bool, error) {
	res, err := s.colUsers.UpdateByID(ctx, userID, bson.M{
		"$pull": bson.M{"favoriteTuts": tutID},
	})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}
