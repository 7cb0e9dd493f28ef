package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/zoesbreath/baobab-server/internal/domain"
	"github.com/zoesbreath/baobab-server/internal/repo"
)

func mustOID(hex string) primitive.ObjectID {
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		panic("bad catalog id: " + hex)
	}
	return oid
}

// tutLists are the fixed home-screen catalog rows, addressed by index. The
// ids come from the seeded catalog documents.
var tutLists = [][]primitive.ObjectID{
	{
		mustOID("5fbd1a2e0745694f74859faf"),
		mustOID("5fbd1c020745694f74859fb3"),
		mustOID("610827e82163f962f57cf8de"),
	},
	{
		mustOID("5fbd1d080745694f74859fbb"),
		mustOID("5fbd1d080745694f74859fbd"),
		mustOID("610828052163f962f57cf8df"),
		mustOID("610828052163f962f57cf8e0"),
	},
	{
		mustOID("5fbd1d060745694f74859fb5"),
		mustOID("5fbd1d070745694f74859fb7"),
		mustOID("5fbd1d070745694f74859fb9"),
	},
	{
		mustOID("5fbd1d090745694f74859fbf"),
		mustOID("5fbd1d1b0745694f74859fc1"),
	},
	{
		mustOID("5fbd2e2b0745694f74859fc5"),
		mustOID("5fbd2e2c0745694f74859fc7"),
		mustOID("6110aea6c322c1a3fb58177a"),
		mustOID("6110af8fc322c1a3fb58177b"),
	},
}

// ListTutorials handles GET /tutorial/list/:listId.
func (h *Handler) ListTutorials(c *gin.Context) {
	listID, err := strconv.Atoi(c.Param("listId"))
	if err != nil || listID < 0 || listID >= len(tutLists) {
		fail(c, http.StatusUnprocessableEntity, "invalid list id")
		return
	}

	previews, err := h.Store.FindTutorialPreviews(c.Request.Context(), tutLists[listID])
	if err != nil {
		internalErr(c, err)
		return
	}
	ok(c, http.StatusOK, "", gin.H{"prevData": previews})
}

// GetTutorial handles GET /tutorial/detail/:tutorialId: the detail view with
// comments stripped.
func (h *Handler) GetTutorial(c *gin.Context) {
	id, okID := oidParam(c, "tutorialId")
	if !okID {
		return
	}
	t, err := h.Store.FindTutorial(c.Request.Context(), id)
	if err != nil {
		internalErr(c, err)
		return
	}
	if t == nil {
		fail(c, http.StatusNotFound, "tutorial not found")
		return
	}
	ok(c, http.StatusOK, "", gin.H{"tutorial": t})
}

// ListComments handles GET /tutorial/comments/:tutorialId?page=.
func (h *Handler) ListComments(c *gin.Context) {
	id, okID := oidParam(c, "tutorialId")
	if !okID {
		return
	}
	comments, err := h.Store.ListComments(c.Request.Context(), id, pageParam(c), commentsPerPage)
	if err != nil {
		internalErr(c, err)
		return
	}
	ok(c, http.StatusOK, "", gin.H{"comments": comments})
}

type commentReq struct {
	Content string `json:"content" binding:"required"`
}

// PostComment handles POST /tutorial/comment/:tutorialId.
func (h *Handler) PostComment(c *gin.Context) {
	id, okID := oidParam(c, "tutorialId")
	if !okID {
		return
	}
	var req commentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "content is required")
		return
	}

	cm := &domain.Comment{Author: userID(c), Content: req.Content}
	if err := h.Store.AddComment(c.Request.Context(), id, cm); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			fail(c, http.StatusNotFound, "tutorial not found")
			return
		}
		internalErr(c, err)
		return
	}
	ok(c, http.StatusCreated, "comment added", cm)
}

// DeleteComment handles DELETE /tutorial/:tutorialId/comments/:commentId.
func (h *Handler) DeleteComment(c *gin.Context) {
	tutID, okTut := oidParam(c, "tutorialId")
	if !okTut {
		return
	}
	commentID, okCm := oidParam(c, "commentId")
	if !okCm {
		return
	}

	cm, err := h.Store.FindComment(c.Request.Context(), tutID, commentID)
	if err != nil {
		internalErr(c, err)
		return
	}
	if cm == nil {
		fail(c, http.StatusNotFound, "comment not found")
		return
	}
	if cm.Author != userID(c) {
		fail(c, http.StatusForbidden, "not your comment")
		return
	}

	if err := h.Store.RemoveComment(c.Request.Context(), tutID, commentID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			fail(c, http.StatusNotFound, "comment not found")
			return
		}
		internalErr(c, err)
		return
	}
	ok(c, http.StatusOK, "comment deleted", nil)
}

// loadUserAndTutorial backs the favorite routes: both sides must exist.
func (h *Handler) loadUserAndTutorial(c *gin.Context, tutID primitive.ObjectID) *domain.User {
	exists, err := h.Store.TutorialExists(c.Request.Context(), tutID)
	if err != nil {
		internalErr(c, err)
		return nil
	}
	if !exists {
		fail(c, http.StatusNotFound, "tutorial not found")
		return nil
	}
	u, err := h.Store.FindUserByID(c.Request.Context(), userID(c))
	if err != nil {
		internalErr(c, err)
		return nil
	}
	if u == nil {
		fail(c, http.StatusNotFound, "user not found")
		return nil
	}
	return u
}

// IsFavorite handles GET /tutorial/is-favorite/:tutorialId: 200 when
// favorited, 409 when not.
func (h *Handler) IsFavorite(c *gin.Context) {
	tutID, okID := oidParam(c, "tutorialId")
	if !okID {
		return
	}
	u := h.loadUserAndTutorial(c, tutID)
	if u == nil {
		return
	}
	if !u.IsFavorite(tutID) {
		fail(c, http.StatusConflict, "not a favorite")
		return
	}
	ok(c, http.StatusOK, "favorite", nil)
}

// AddFavorite handles POST /tutorial/add-favorite/:tutorialId. Re-adding an
// existing favorite is a conflict and performs no mutation.
func (h *Handler) AddFavorite(c *gin.Context) {
	tutID, okID := oidParam(c, "tutorialId")
	if !okID {
		return
	}
	u := h.loadUserAndTutorial(c, tutID)
	if u == nil {
		return
	}

	added, err := h.Store.AddFavorite(c.Request.Context(), u.ID, tutID)
	if err != nil {
		internalErr(c, err)
		return
	}
	if !added {
		fail(c, http.StatusConflict, "already a favorite")
		return
	}
	ok(c, http.StatusCreated, "favorite added", nil)
}

// RemoveFavorite handles POST /tutorial/remove-favorite/:tutorialId.
func (h *Handler) RemoveFavorite(c *gin.Context) {
	tutID, okID := oidParam(c, "tutorialId")
	if !okID {
		return
	}
	u := h.loadUserAndTutorial(c, tutID)
	if u == nil {
		return
	}

	removed, err := h.Store.RemoveFavorite(c.Request.Context(), u.ID, tutID)
	if err != nil {
		internalErr(c, err)
		return
	}
	if !removed {
		fail(c, http.StatusNotFound, "not a favorite")
		return
	}
	ok(c, http.StatusOK, "favorite removed", nil)
}

type createTutorialReq struct {
	Title        string                `json:"title" binding:"required"`
	ThumbnailImg string                `json:"thumbnailImg"`
	MainImg      string                `json:"mainImg"`
	BackImg      string                `json:"backImg"`
	Tags         []string              `json:"tags"`
	Explanation  string                `json:"explanation"`
	TutorialType string                `json:"tutorialType" binding:"required"`
	Items        []domain.TutorialItem `json:"items"`
}

// CreateTutorial handles POST /tutorial: catalog seeding.
func (h *Handler) CreateTutorial(c *gin.Context) {
	var req createTutorialReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "title and tutorialType are required")
		return
	}
	if req.TutorialType != domain.TutorialBreathings && req.TutorialType != domain.TutorialSongs {
		fail(c, http.StatusUnprocessableEntity, "tutorialType must be breathings or songs")
		return
	}

	t := &domain.Tutorial{
		Title:        req.Title,
		ThumbnailImg: req.ThumbnailImg,
		MainImg:      req.MainImg,
		BackImg:      req.BackImg,
		Tags:         req.Tags,
		Explanation:  req.Explanation,
		TutorialType: req.TutorialType,
		Items:        req.Items,
		Comments:     []domain.Comment{},
	}
	if err := h.Store.InsertTutorial(c.Request.Context(), t); err != nil {
		internalErr(c, err)
		return
	}
	ok(c, http.StatusCreated, "tutorial created", t)
}
