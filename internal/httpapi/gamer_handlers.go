package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/zoesbreath/baobab-server/internal/domain"
	"github.com/zoesbreath/baobab-server/internal/game"
	"github.com/zoesbreath/baobab-server/internal/repo"
)

// gamerSnapshot is the game-state payload every /gamer route answers with.
func gamerSnapshot(u *domain.User) gin.H {
	return gin.H{
		"userId":        u.ID.Hex(),
		"nickName":      u.NickName,
		"profileImgUrl": u.ProfileImgURL,
		"isInitial":     u.IsInitial,
		"loggedInAt":    u.LoggedInAt,
		"score":         u.Score,
		"itemHave":      u.ItemHave,
		"skins":         u.Skins,
		"dustStage":     u.DustStage,
		"isWithered":    u.IsWithered,
		"itemUpdatedAt": u.ItemUpdatedAt,
		"itemLeft":      u.ItemLeft,
	}
}

// GetGamer handles GET /gamer. The rollover gate has already reconciled and
// persisted the state; this re-reads the fresh document.
func (h *Handler) GetGamer(c *gin.Context) {
	u, err := h.Store.FindUserByID(c.Request.Context(), userID(c))
	if err != nil {
		internalErr(c, err)
		return
	}
	if u == nil {
		fail(c, http.StatusNotFound, "user not found")
		return
	}
	ok(c, http.StatusOK, "", gamerSnapshot(u))
}

type updateGamerReq struct {
	NickName      *string `json:"nickName"`
	ProfileImgURL *string `json:"profileImgUrl"`
	IsInitial     *bool   `json:"isInitial"`
	IsNotiAllowed *bool   `json:"isNotiAllowed"`
}

// UpdateGamer handles PUT /gamer: a partial profile/settings update. Only
// fields present in the body are written.
func (h *Handler) UpdateGamer(c *gin.Context) {
	var req updateGamerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "malformed body")
		return
	}

	set := bson.M{}
	if req.NickName != nil {
		if !validNickName(*req.NickName) {
			fail(c, http.StatusUnprocessableEntity, "invalid nickname")
			return
		}
		set["nickName"] = *req.NickName
	}
	if req.ProfileImgURL != nil {
		set["profileImgUrl"] = *req.ProfileImgURL
	}
	if req.IsInitial != nil {
		set["isInitial"] = *req.IsInitial
	}
	if req.IsNotiAllowed != nil {
		set["isNotiAllowed"] = *req.IsNotiAllowed
	}
	if len(set) == 0 {
		fail(c, http.StatusUnprocessableEntity, "nothing to update")
		return
	}

	switch err := h.Store.UpdateGamerProfile(c.Request.Context(), userID(c), set); {
	case errors.Is(err, repo.ErrDuplicate):
		fail(c, http.StatusConflict, "nickname already in use")
	case errors.Is(err, repo.ErrNotFound):
		fail(c, http.StatusNotFound, "user not found")
	case err != nil:
		internalErr(c, err)
	default:
		ok(c, http.StatusOK, "gamer updated", nil)
	}
}

type pickItemReq struct {
	ItemKind string `json:"itemKind" binding:"required"`
	Planet   string `json:"planet" binding:"required"`
}

// PickItem handles POST /gamer/pick-item.
func (h *Handler) PickItem(c *gin.Context) {
	var req pickItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "itemKind and planet are required")
		return
	}
	if !domain.ValidItemKind(req.ItemKind) || !domain.ValidPlanet(req.Planet) {
		fail(c, http.StatusUnprocessableEntity, "unknown item kind or planet")
		return
	}

	u, err := h.Store.FindUserByID(c.Request.Context(), userID(c))
	if err != nil {
		internalErr(c, err)
		return
	}
	if u == nil {
		fail(c, http.StatusNotFound, "user not found")
		return
	}

	var exhausted *game.ExhaustedError
	if err := game.PickItem(&u.Game, req.ItemKind, req.Planet); err != nil {
		if errors.As(err, &exhausted) {
			fail(c, http.StatusConflict, "planet "+exhausted.Planet+" is out of items")
			return
		}
		internalErr(c, err)
		return
	}

	if err := h.Store.SaveGame(c.Request.Context(), u.ID, u.Game); err != nil {
		internalErr(c, err)
		return
	}
	ok(c, http.StatusOK, "item picked", gin.H{
		"itemHave": u.ItemHave,
		"itemLeft": u.ItemLeft,
	})
}

type useItemReq struct {
	ItemKind  string `json:"itemKind"`
	PlusScore *int   `json:"plusScore"`
}

// UseItem handles POST /gamer/use-item: the ordered guard chain over
// boosting, cleaning and sprinkling.
func (h *Handler) UseItem(c *gin.Context) {
	var req useItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "malformed body")
		return
	}
	if req.ItemKind != "" && !domain.ValidItemKind(req.ItemKind) {
		fail(c, http.StatusUnprocessableEntity, "unknown item kind")
		return
	}

	u, err := h.Store.FindUserByID(c.Request.Context(), userID(c))
	if err != nil {
		internalErr(c, err)
		return
	}
	if u == nil {
		fail(c, http.StatusNotFound, "user not found")
		return
	}

	switch err := game.UseItem(&u.Game, req.ItemKind, req.PlusScore); {
	case errors.Is(err, game.ErrInsufficientItems):
		fail(c, http.StatusUnprocessableEntity, "no "+req.ItemKind+" left to use")
		return
	case errors.Is(err, game.ErrInvalidItemUse):
		fail(c, http.StatusUnprocessableEntity, "item does not apply to the current state")
		return
	case err != nil:
		internalErr(c, err)
		return
	}

	if err := h.Store.SaveGame(c.Request.Context(), u.ID, u.Game); err != nil {
		internalErr(c, err)
		return
	}
	ok(c, http.StatusOK, "item used", gamerSnapshot(u))
}
