package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/zoesbreath/baobab-server/internal/domain"
	"github.com/zoesbreath/baobab-server/internal/repo"
	"github.com/zoesbreath/baobab-server/internal/security"
)

// fakeStore stubs the Store surface per test; calling an unstubbed method
// panics, which is the test telling us it reached an unexpected path.
type fakeStore struct {
	Store

	findUserByID             func(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	findUserByLocalIDOrEmail func(ctx context.Context, localID, email string) (*domain.User, error)
	updateGamerProfile       func(ctx context.Context, id primitive.ObjectID, set bson.M) error
	findStory                func(ctx context.Context, id primitive.ObjectID) (*domain.Story, error)
	tutorialExists           func(ctx context.Context, id primitive.ObjectID) (bool, error)
	addFavorite              func(ctx context.Context, userID, tutID primitive.ObjectID) (bool, error)
	removeFavorite           func(ctx context.Context, userID, tutID primitive.ObjectID) (bool, error)
	findComment              func(ctx context.Context, tutID, commentID primitive.ObjectID) (*domain.Comment, error)
}

func (f *fakeStore) FindUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return f.findUserByID(ctx, id)
}
func (f *fakeStore) FindUserByLocalIDOrEmail(ctx context.Context, localID, email string) (*domain.User, error) {
	return f.findUserByLocalIDOrEmail(ctx, localID, email)
}
func (f *fakeStore) UpdateGamerProfile(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	return f.updateGamerProfile(ctx, id, set)
}
func (f *fakeStore) FindStory(ctx context.Context, id primitive.ObjectID) (*domain.Story, error) {
	return f.findStory(ctx, id)
}
func (f *fakeStore) TutorialExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return f.tutorialExists(ctx, id)
}
func (f *fakeStore) AddFavorite(ctx context.Context, userID, tutID primitive.ObjectID) (bool, error) {
	return f.addFavorite(ctx, userID, tutID)
}
func (f *fakeStore) RemoveFavorite(ctx context.Context, userID, tutID primitive.ObjectID) (bool, error) {
	return f.removeFavorite(ctx, userID, tutID)
}
func (f *fakeStore) FindComment(ctx context.Context, tutID, commentID primitive.ObjectID) (*domain.Comment, error) {
	return f.findComment(ctx, tutID, commentID)
}

func newTestRouter(fs *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{
		Store:      fs,
		JWTSecret:  testSecret,
		SessionTTL: time.Hour,
		UploadDir:  ".",
	}
	return NewRouter(h)
}

func bearer(t *testing.T, uid primitive.ObjectID) string {
	t.Helper()
	tok, err := security.MakeToken(testSecret, uid.Hex(), "gamer@example.com", time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body, auth string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestUpdateGamer_DuplicateNickname(t *testing.T) {
	uid := primitive.NewObjectID()
	fs := &fakeStore{
		updateGamerProfile: func(ctx context.Context, id primitive.ObjectID, set bson.M) error {
			return repo.ErrDuplicate
		},
	}
	w := doJSON(t, newTestRouter(fs), "PUT", "/gamer", `{"nickName":"taken1"}`, bearer(t, uid))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, decodeEnvelope(t, w).IsSuccess)
}

func TestAddFavorite_Conflict(t *testing.T) {
	uid := primitive.NewObjectID()
	tutID := primitive.NewObjectID()
	u := domain.NewUser(domain.MethodLocal, "a@b.com", "zoe")
	u.ID = uid
	u.FavoriteTuts = []primitive.ObjectID{tutID}

	fs := &fakeStore{
		tutorialExists: func(ctx context.Context, id primitive.ObjectID) (bool, error) { return true, nil },
		findUserByID: func(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
			return u, nil
		},
		addFavorite: func(ctx context.Context, userID, id primitive.ObjectID) (bool, error) {
			return false, nil // already a member, no mutation
		},
	}
	w := doJSON(t, newTestRouter(fs), "POST", "/tutorial/add-favorite/"+tutID.Hex(), "", bearer(t, uid))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAddFavorite_UnknownTutorial(t *testing.T) {
	uid := primitive.NewObjectID()
	fs := &fakeStore{
		tutorialExists: func(ctx context.Context, id primitive.ObjectID) (bool, error) { return false, nil },
	}
	w := doJSON(t, newTestRouter(fs), "POST",
		"/tutorial/add-favorite/"+primitive.NewObjectID().Hex(), "", bearer(t, uid))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveFavorite_NotFavorited(t *testing.T) {
	uid := primitive.NewObjectID()
	u := domain.NewUser(domain.MethodLocal, "a@b.com", "zoe")
	u.ID = uid

	fs := &fakeStore{
		tutorialExists: func(ctx context.Context, id primitive.ObjectID) (bool, error) { return true, nil },
		findUserByID: func(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
			return u, nil
		},
		removeFavorite: func(ctx context.Context, userID, id primitive.ObjectID) (bool, error) {
			return false, nil // was not a member
		},
	}
	w := doJSON(t, newTestRouter(fs), "POST",
		"/tutorial/remove-favorite/"+primitive.NewObjectID().Hex(), "", bearer(t, uid))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStoryMutation_NonOwner(t *testing.T) {
	owner := primitive.NewObjectID()
	intruder := primitive.NewObjectID()
	storyID := primitive.NewObjectID()

	fs := &fakeStore{
		findStory: func(ctx context.Context, id primitive.ObjectID) (*domain.Story, error) {
			return &domain.Story{ID: storyID, Creator: owner, Content: "my quiet day"}, nil
		},
	}
	r := newTestRouter(fs)

	w := doJSON(t, r, "PUT", "/story/"+storyID.Hex(), `{"content":"rewritten entry"}`, bearer(t, intruder))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, "DELETE", "/story/"+storyID.Hex(), "", bearer(t, intruder))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, "GET", "/story/detail/"+storyID.Hex(), "", bearer(t, intruder))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteComment_NonOwner(t *testing.T) {
	owner := primitive.NewObjectID()
	intruder := primitive.NewObjectID()
	tutID := primitive.NewObjectID()
	commentID := primitive.NewObjectID()

	fs := &fakeStore{
		findComment: func(ctx context.Context, tid, cid primitive.ObjectID) (*domain.Comment, error) {
			return &domain.Comment{ID: commentID, Author: owner, Content: "so calming"}, nil
		},
	}
	w := doJSON(t, newTestRouter(fs), "DELETE",
		"/tutorial/"+tutID.Hex()+"/comments/"+commentID.Hex(), "", bearer(t, intruder))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestVerifyToken_MismatchBeforeExpiry(t *testing.T) {
	hash, err := security.HashCode("123456")
	require.NoError(t, err)

	u := domain.NewUser(domain.MethodLocal, "a@b.com", "zoe")
	u.ID = primitive.NewObjectID()
	u.Local = &domain.LocalAccount{ID: "zoe12345"}
	u.TokenHash = hash
	u.TokenExpiration = time.Now().Add(-time.Minute) // already expired

	fs := &fakeStore{
		findUserByLocalIDOrEmail: func(ctx context.Context, localID, email string) (*domain.User, error) {
			return u, nil
		},
	}
	r := newTestRouter(fs)

	// A wrong code reports a plain mismatch even though the stored code has
	// expired: the hash comparison runs first.
	w := doJSON(t, r, "POST", "/auth/verify-token", `{"email":"a@b.com","token":"654321"}`, "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.IsSuccess)
	assert.False(t, env.IsTokenExpired)

	// The right code past the window gets the explicit expired flag.
	w = doJSON(t, r, "POST", "/auth/verify-token", `{"email":"a@b.com","token":"123456"}`, "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env = decodeEnvelope(t, w)
	assert.False(t, env.IsSuccess)
	assert.True(t, env.IsTokenExpired)
}

func TestVerifyToken_Success(t *testing.T) {
	hash, err := security.HashCode("123456")
	require.NoError(t, err)

	u := domain.NewUser(domain.MethodLocal, "a@b.com", "zoe")
	u.ID = primitive.NewObjectID()
	u.Local = &domain.LocalAccount{ID: "zoe12345"}
	u.TokenHash = hash
	u.TokenExpiration = time.Now().Add(5 * time.Minute)

	fs := &fakeStore{
		findUserByLocalIDOrEmail: func(ctx context.Context, localID, email string) (*domain.User, error) {
			return u, nil
		},
	}
	w := doJSON(t, newTestRouter(fs), "POST", "/auth/verify-token",
		`{"email":"a@b.com","token":"123456"}`, "")

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	require.True(t, env.IsSuccess)
	data := env.Data.(map[string]any)
	assert.Equal(t, "zoe12345", data["userId"])
	assert.Equal(t, "a@b.com", data["userEmail"])
}

func TestVerifyToken_UnknownUser(t *testing.T) {
	fs := &fakeStore{
		findUserByLocalIDOrEmail: func(ctx context.Context, localID, email string) (*domain.User, error) {
			return nil, nil
		},
	}
	w := doJSON(t, newTestRouter(fs), "POST", "/auth/verify-token",
		`{"email":"ghost@b.com","token":"123456"}`, "")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.False(t, decodeEnvelope(t, w).IsTokenExpired)
}
