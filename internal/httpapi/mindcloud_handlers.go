package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zoesbreath/baobab-server/internal/mindcloud"
)

const mindcloudTermCap = 100

// Mindcloud handles GET /mindcloud/:startDate/:endDate (unix millis): word
// frequencies over the caller's diary entries in the period, end date
// inclusive.
func (h *Handler) Mindcloud(c *gin.Context) {
	startMs, err1 := strconv.ParseInt(c.Param("startDate"), 10, 64)
	endMs, err2 := strconv.ParseInt(c.Param("endDate"), 10, 64)
	if err1 != nil || err2 != nil || endMs < startMs {
		fail(c, http.StatusUnprocessableEntity, "startDate and endDate must be unix milliseconds")
		return
	}

	from := time.UnixMilli(startMs).UTC()
	to := time.UnixMilli(endMs).UTC().Add(24 * time.Hour)

	stories, err := h.Store.StoriesBetween(c.Request.Context(), userID(c), from, to)
	if err != nil {
		internalErr(c, err)
		return
	}
	if len(stories) == 0 {
		fail(c, http.StatusConflict, "no stories in that period")
		return
	}

	texts := make([]string, 0, len(stories))
	for _, st := range stories {
		texts = append(texts, st.Content)
	}
	ok(c, http.StatusOK, "", gin.H{
		"terms": mindcloud.Terms(texts, mindcloudTermCap),
	})
}
