package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zoesbreath/baobab-server/internal/domain"
	"github.com/zoesbreath/baobab-server/internal/log"
	"github.com/zoesbreath/baobab-server/internal/queue"
	"github.com/zoesbreath/baobab-server/internal/repo"
	"github.com/zoesbreath/baobab-server/internal/security"
)

type signupReq struct {
	ID                string `json:"id" binding:"required"`
	Password          string `json:"password" binding:"required"`
	Email             string `json:"email" binding:"required"`
	NickName          string `json:"nickName" binding:"required"`
	AgreeService      bool   `json:"agreeService"`
	AgreePersonalInfo bool   `json:"agreePersonalInfo"`
}

type loginReq struct {
	ID       string `json:"id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type socialLoginReq struct {
	ID       string `json:"id" binding:"required"`
	NickName string `json:"nickName"`
	Email    string `json:"email"`
	Birthday string `json:"birthday"`
	Gender   string `json:"gender"`
}

type sessionData struct {
	Token           string    `json:"token"`
	TokenExpiration time.Time `json:"tokenExpiration"`
	UserID          string    `json:"userId"`
	IsInitial       bool      `json:"isInitial"`
}

func (h *Handler) session(u *domain.User) (sessionData, error) {
	tok, err := security.MakeToken(h.JWTSecret, u.ID.Hex(), u.Email, h.SessionTTL)
	if err != nil {
		return sessionData{}, err
	}
	return sessionData{
		Token:           tok,
		TokenExpiration: time.Now().Add(h.SessionTTL),
		UserID:          u.ID.Hex(),
		IsInitial:       u.IsInitial,
	}, nil
}

// Signup handles POST /user/signup: local account creation.
func (h *Handler) Signup(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "missing required fields")
		return
	}
	switch {
	case !validLocalID(req.ID):
		fail(c, http.StatusUnprocessableEntity, "id must be 5-20 lowercase letters or digits")
		return
	case !validPassword(req.Password):
		fail(c, http.StatusUnprocessableEntity, "password must be 8-20 alphanumeric with a letter and a digit")
		return
	case !validEmail(req.Email):
		fail(c, http.StatusUnprocessableEntity, "invalid email")
		return
	case !validNickName(req.NickName):
		fail(c, http.StatusUnprocessableEntity, "invalid nickname")
		return
	case !req.AgreeService || !req.AgreePersonalInfo:
		fail(c, http.StatusUnprocessableEntity, "service and personal-info consent are required")
		return
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		internalErr(c, err)
		return
	}

	u := domain.NewUser(domain.MethodLocal, req.Email, req.NickName)
	u.Local = &domain.LocalAccount{ID: req.ID, PasswordHash: hash}
	u.AgreeService = req.AgreeService
	u.AgreePersonalInfo = req.AgreePersonalInfo

	if err := h.Store.CreateUser(c.Request.Context(), u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			fail(c, http.StatusConflict, "id, email or nickname already in use")
			return
		}
		internalErr(c, err)
		return
	}

	h.publishRegistered(c, u)

	data, err := h.session(u)
	if err != nil {
		internalErr(c, err)
		return
	}
	ok(c, http.StatusCreated, "signed up", data)
}

// Login handles POST /user/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "missing required fields")
		return
	}

	u, err := h.Store.FindUserByLocalID(c.Request.Context(), req.ID)
	if err != nil {
		internalErr(c, err)
		return
	}
	if u == nil || u.Local == nil || !security.CheckPassword(u.Local.PasswordHash, req.Password) {
		fail(c, http.StatusUnauthorized, "wrong id or password")
		return
	}

	data, err := h.session(u)
	if err != nil {
		internalErr(c, err)
		return
	}
	ok(c, http.StatusOK, "logged in", data)
}

// SocialLogin returns the handler for POST /user/{kakao,naver,apple,facebook}.
// Login and signup are one call: an unknown provider id creates the account.
func (h *Handler) SocialLogin(method domain.Method) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req socialLoginReq
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusUnprocessableEntity, "missing provider id")
			return
		}

		u, err := h.Store.FindUserByProvider(c.Request.Context(), method, req.ID)
		if err != nil {
			internalErr(c, err)
			return
		}
		if u == nil {
			u, err = h.socialSignup(c, method, req)
			if err != nil {
				return // response already written
			}
		}

		data, err := h.session(u)
		if err != nil {
			internalErr(c, err)
			return
		}
		ok(c, http.StatusOK, "logged in", data)
	}
}

// socialSignup creates the account for a first-time social login. It writes
// the error response itself and returns a non-nil error to signal the caller
// to stop.
func (h *Handler) socialSignup(c *gin.Context, method domain.Method, req socialLoginReq) (*domain.User, error) {
	if req.Email != "" {
		existing, err := h.Store.FindUserByEmail(c.Request.Context(), req.Email)
		if err != nil {
			internalErr(c, err)
			return nil, err
		}
		if existing != nil {
			fail(c, http.StatusUnprocessableEntity,
				"email already registered with method "+string(existing.Method))
			return nil, errors.New("email taken")
		}
	}

	nick := req.NickName
	if nick == "" || !validNickName(nick) {
		// Provider nicknames can collide or be absent; fall back to a
		// unique generated one the user can change later.
		nick = "user-" + uuid.NewString()[:6]
	}

	u := domain.NewUser(method, req.Email, nick)
	u.SetProvider(method, req.ID)
	if req.Gender != "" {
		u.Gender = req.Gender
	}
	if t, err := time.Parse("2006-01-02", req.Birthday); err == nil {
		u.Birthday = &t
	}

	if err := h.Store.CreateUser(c.Request.Context(), u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			// Nickname collision on the generated fallback; retry once.
			u.NickName = "user-" + uuid.NewString()[:6]
			err = h.Store.CreateUser(c.Request.Context(), u)
		}
		if err != nil {
			internalErr(c, err)
			return nil, err
		}
	}

	h.publishRegistered(c, u)
	return u, nil
}

func (h *Handler) publishRegistered(c *gin.Context, u *domain.User) {
	reqID := c.GetString(ctxRequestID)
	err := h.Events.Publish(c.Request.Context(), queue.KeyUserRegistered, queue.UserRegistered{
		UserID: u.ID.Hex(),
		Method: string(u.Method),
		Email:  u.Email,
	}, reqID)
	if err != nil {
		log.L().Warn("publish user.registered", zap.Error(err))
	}
}

type nicknameReq struct {
	NickName string `json:"nickName" binding:"required"`
}

// UpdateNickname handles PATCH /user/nickname.
func (h *Handler) UpdateNickname(c *gin.Context) {
	var req nicknameReq
	if err := c.ShouldBindJSON(&req); err != nil || !validNickName(req.NickName) {
		fail(c, http.StatusUnprocessableEntity, "invalid nickname")
		return
	}
	err := h.Store.UpdateNickName(c.Request.Context(), userID(c), req.NickName)
	switch {
	case errors.Is(err, repo.ErrDuplicate):
		fail(c, http.StatusConflict, "nickname already in use")
	case errors.Is(err, repo.ErrNotFound):
		fail(c, http.StatusNotFound, "user not found")
	case err != nil:
		internalErr(c, err)
	default:
		ok(c, http.StatusOK, "nickname updated", gin.H{"nickName": req.NickName})
	}
}

// KakaoAuthorize starts the server-side Kakao code flow for web clients.
func (h *Handler) KakaoAuthorize(c *gin.Context) {
	state := h.Kakao.MakeState(uuid.NewString())
	c.Redirect(http.StatusFound, h.Kakao.AuthURL(state))
}

// KakaoCallback finishes the code flow and funnels into the same
// login-or-signup path as the SDK-based POST /user/kakao.
func (h *Handler) KakaoCallback(c *gin.Context) {
	if !h.Kakao.VerifyState(c.Query("state")) {
		fail(c, http.StatusUnauthorized, "invalid state")
		return
	}
	code := c.Query("code")
	if code == "" {
		fail(c, http.StatusUnprocessableEntity, "missing code")
		return
	}

	p, err := h.Kakao.ExchangeAndFetch(c.Request.Context(), code)
	if err != nil {
		log.L().Warn("kakao code flow", zap.Error(err))
		fail(c, http.StatusUnauthorized, "kakao authentication failed")
		return
	}

	u, err := h.Store.FindUserByProvider(c.Request.Context(), domain.MethodKakao, p.ID)
	if err != nil {
		internalErr(c, err)
		return
	}
	if u == nil {
		u, err = h.socialSignup(c, domain.MethodKakao, socialLoginReq{
			ID: p.ID, NickName: p.NickName, Email: p.Email,
		})
		if err != nil {
			return
		}
	}

	data, err := h.session(u)
	if err != nil {
		internalErr(c, err)
		return
	}
	ok(c, http.StatusOK, "logged in", data)
}
