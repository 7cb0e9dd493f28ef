package httpapi

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var imageExt = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
}

// UploadImage handles POST /image: a single multipart image field, stored
// under a generated name and served back from /static.
func (h *Handler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		fail(c, http.StatusUnprocessableEntity, "image field is required")
		return
	}

	ext, allowed := imageExt[file.Header.Get("Content-Type")]
	if !allowed {
		fail(c, http.StatusUnprocessableEntity, "only png, jpeg and gif images are accepted")
		return
	}

	name := uuid.NewString() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(h.UploadDir, name)); err != nil {
		internalErr(c, err)
		return
	}

	ok(c, http.StatusCreated, "image uploaded", gin.H{
		"imageUrl": h.PublicBaseURL + "/static/" + name,
	})
}
