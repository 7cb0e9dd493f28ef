package httpapi

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/zoesbreath/baobab-server/internal/domain"
	"github.com/zoesbreath/baobab-server/internal/mail"
	"github.com/zoesbreath/baobab-server/internal/oauth"
	"github.com/zoesbreath/baobab-server/internal/queue"
	"github.com/zoesbreath/baobab-server/internal/repo"
)

// Store is the persistence surface the handlers consume. *repo.Store is the
// production implementation; tests substitute fakes.
type Store interface {
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, u *domain.User) error
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByLocalID(ctx context.Context, localID string) (*domain.User, error)
	FindUserByNickName(ctx context.Context, nickName string) (*domain.User, error)
	FindUserByProvider(ctx context.Context, method domain.Method, externalID string) (*domain.User, error)
	FindUserByLocalIDOrEmail(ctx context.Context, localID, email string) (*domain.User, error)
	UpdateNickName(ctx context.Context, id primitive.ObjectID, nickName string) error
	UpdateGamerProfile(ctx context.Context, id primitive.ObjectID, set bson.M) error
	SetVerificationCode(ctx context.Context, id primitive.ObjectID, hash string, expiresAt time.Time) error
	SetEmailVerified(ctx context.Context, id primitive.ObjectID) error
	SetLocalPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	SaveGame(ctx context.Context, id primitive.ObjectID, g domain.Game) error
	AddFavorite(ctx context.Context, userID, tutID primitive.ObjectID) (bool, error)
	RemoveFavorite(ctx context.Context, userID, tutID primitive.ObjectID) (bool, error)

	CreateStory(ctx context.Context, st *domain.Story) error
	FindStory(ctx context.Context, id primitive.ObjectID) (*domain.Story, error)
	ListStories(ctx context.Context, creator primitive.ObjectID, page, perPage int) ([]domain.Story, int64, error)
	UpdateStoryContent(ctx context.Context, id primitive.ObjectID, content string) error
	DeleteStory(ctx context.Context, id, creator primitive.ObjectID) error
	StoryDates(ctx context.Context, creator primitive.ObjectID) ([]time.Time, error)
	StoriesBetween(ctx context.Context, creator primitive.ObjectID, from, to time.Time) ([]domain.Story, error)

	InsertTutorial(ctx context.Context, t *domain.Tutorial) error
	FindTutorialPreviews(ctx context.Context, ids []primitive.ObjectID) ([]domain.TutorialPreview, error)
	FindTutorial(ctx context.Context, id primitive.ObjectID) (*domain.Tutorial, error)
	TutorialExists(ctx context.Context, id primitive.ObjectID) (bool, error)
	AddComment(ctx context.Context, tutID primitive.ObjectID, c *domain.Comment) error
	FindComment(ctx context.Context, tutID, commentID primitive.ObjectID) (*domain.Comment, error)
	RemoveComment(ctx context.Context, tutID, commentID primitive.ObjectID) error
	ListComments(ctx context.Context, tutID primitive.ObjectID, page, perPage int) ([]domain.CommentView, error)
}

var _ Store = (*repo.Store)(nil)

// Handler carries the injected collaborators of every route. Constructed
// once in main; no package-level state.
type Handler struct {
	Store  Store
	Redis  *repo.Redis // nil disables rate limiting
	Mail   mail.Sender
	Events queue.Publisher
	Kakao  *oauth.KakaoOAuth // nil disables the server-side code flow

	JWTSecret       string
	SessionTTL      time.Duration
	RateLimitPerMin int

	PublicBaseURL string
	AppSchemeURL  string
	UploadDir     string
}

const (
	storiesPerPage  = 10
	commentsPerPage = 10

	// Verification codes stay valid this long after issue.
	codeTTL = 10 * time.Minute
)
