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

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func oidParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		fail(c, http.StatusUnprocessableEntity, "invalid "+name)
		return primitive.NilObjectID, false
	}
	return oid, true
}

// ListStories handles GET /story?page=: the caller's own entries, newest
// first, ten per page.
func (h *Handler) ListStories(c *gin.Context) {
	stories, total, err := h.Store.ListStories(c.Request.Context(), userID(c), pageParam(c), storiesPerPage)
	if err != nil {
		internalErr(c, err)
		return
	}
	ok(c, http.StatusOK, "", gin.H{
		"stories":    stories,
		"totalItems": total,
	})
}

type storyReq struct {
	Content string `json:"content" binding:"required"`
}

// CreateStory handles POST /story.
func (h *Handler) CreateStory(c *gin.Context) {
	var req storyReq
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Content) < 5 {
		fail(c, http.StatusUnprocessableEntity, "content must be at least 5 characters")
		return
	}

	st := &domain.Story{Creator: userID(c), Content: req.Content}
	if err := h.Store.CreateStory(c.Request.Context(), st); err != nil {
		internalErr(c, err)
		return
	}
	ok(c, http.StatusCreated, "story created", st)
}

// loadOwnStory fetches the entry and enforces ownership: 404 when absent,
// 403 for anyone but the creator.
func (h *Handler) loadOwnStory(c *gin.Context, id primitive.ObjectID) *domain.Story {
	st, err := h.Store.FindStory(c.Request.Context(), id)
	if err != nil {
		internalErr(c, err)
		return nil
	}
	if st == nil {
		fail(c, http.StatusNotFound, "story not found")
		return nil
	}
	if st.Creator != userID(c) {
		fail(c, http.StatusForbidden, "not your story")
		return nil
	}
	return st
}

// GetStory handles GET /story/detail/:storyId.
func (h *Handler) GetStory(c *gin.Context) {
	id, okID := oidParam(c, "storyId")
	if !okID {
		return
	}
	st := h.loadOwnStory(c, id)
	if st == nil {
		return
	}
	ok(c, http.StatusOK, "", st)
}

// UpdateStory handles PUT /story/:storyId.
func (h *Handler) UpdateStory(c *gin.Context) {
	id, okID := oidParam(c, "storyId")
	if !okID {
		return
	}
	var req storyReq
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Content) < 5 {
		fail(c, http.StatusUnprocessableEntity, "content must be at least 5 characters")
		return
	}

	st := h.loadOwnStory(c, id)
	if st == nil {
		return
	}
	if err := h.Store.UpdateStoryContent(c.Request.Context(), id, req.Content); err != nil {
		internalErr(c, err)
		return
	}
	ok(c, http.StatusOK, "story updated", nil)
}

// DeleteStory handles DELETE /story/:storyId. An absent entry is a 422, the
// contract the mobile client was built against.
func (h *Handler) DeleteStory(c *gin.Context) {
	id, okID := oidParam(c, "storyId")
	if !okID {
		return
	}

	st, err := h.Store.FindStory(c.Request.Context(), id)
	if err != nil {
		internalErr(c, err)
		return
	}
	if st == nil {
		fail(c, http.StatusUnprocessableEntity, "story not found")
		return
	}
	if st.Creator != userID(c) {
		fail(c, http.StatusForbidden, "not your story")
		return
	}

	if err := h.Store.DeleteStory(c.Request.Context(), id, st.Creator); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			fail(c, http.StatusUnprocessableEntity, "story not found")
			return
		}
		internalErr(c, err)
		return
	}
	ok(c, http.StatusOK, "story deleted", nil)
}

// StoryDates handles GET /story/dates: the YYYY-MM-DD strings the calendar
// view marks.
func (h *Handler) StoryDates(c *gin.Context) {
	dates, err := h.Store.StoryDates(c.Request.Context(), userID(c))
	if err != nil {
		internalErr(c, err)
		return
	}
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format("2006-01-02"))
	}
	ok(c, http.StatusOK, "", gin.H{"dates": out})
}
