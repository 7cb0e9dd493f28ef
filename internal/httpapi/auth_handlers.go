package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zoesbreath/baobab-server/internal/domain"
	"github.com/zoesbreath/baobab-server/internal/log"
	"github.com/zoesbreath/baobab-server/internal/mail"
	"github.com/zoesbreath/baobab-server/internal/security"
)

type identifierReq struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// findByIdentifier resolves the verification-flow target by local id or
// email. A missing user is a 422, not a 404, to match the mobile client's
// error handling.
func (h *Handler) findByIdentifier(c *gin.Context, id, email string) *domain.User {
	if id == "" && email == "" {
		fail(c, http.StatusUnprocessableEntity, "id or email is required")
		return nil
	}
	u, err := h.Store.FindUserByLocalIDOrEmail(c.Request.Context(), id, email)
	if err != nil {
		internalErr(c, err)
		return nil
	}
	if u == nil {
		fail(c, http.StatusUnprocessableEntity, "no such user")
		return nil
	}
	return u
}

// SendToken handles POST /auth/send-token: issues a 6-digit verification
// code, stores its hash with a 10-minute expiry, and mails the plaintext.
func (h *Handler) SendToken(c *gin.Context) {
	var req identifierReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "malformed body")
		return
	}
	u := h.findByIdentifier(c, req.ID, req.Email)
	if u == nil {
		return
	}
	if u.Method != domain.MethodLocal {
		fail(c, http.StatusUnprocessableEntity, "account registered via SNS login")
		return
	}

	code, err := security.NewVerificationCode()
	if err != nil {
		internalErr(c, err)
		return
	}
	hash, err := security.HashCode(code)
	if err != nil {
		internalErr(c, err)
		return
	}
	if err := h.Store.SetVerificationCode(c.Request.Context(), u.ID, hash,
		time.Now().UTC().Add(codeTTL)); err != nil {
		internalErr(c, err)
		return
	}

	subject, html := mail.CodeMessage(code)
	if err := h.Mail.Send(c.Request.Context(), u.Email, subject, html); err != nil {
		log.L().Error("send verification code", zap.Error(err))
		fail(c, http.StatusInternalServerError, "could not send the mail")
		return
	}
	ok(c, http.StatusOK, "verification code sent", nil)
}

type verifyTokenReq struct {
	identifierReq
	Token string `json:"token" binding:"required"`
}

// checkToken runs the shared lookup → hash compare → expiry sequence. The
// expiry check runs only after a hash match so the client can distinguish
// "resend" from "retype". Returns nil after writing the failure response.
func (h *Handler) checkToken(c *gin.Context, id, email, code string) *domain.User {
	u := h.findByIdentifier(c, id, email)
	if u == nil {
		return nil
	}
	if u.TokenHash == "" || !security.CheckCode(u.TokenHash, code) {
		fail(c, http.StatusUnprocessableEntity, "verification code does not match")
		return nil
	}
	if time.Now().After(u.TokenExpiration) {
		failExpired(c, "verification code expired")
		return nil
	}
	return u
}

// VerifyToken handles POST /auth/verify-token.
func (h *Handler) VerifyToken(c *gin.Context) {
	var req verifyTokenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "token is required")
		return
	}
	u := h.checkToken(c, req.ID, req.Email, req.Token)
	if u == nil {
		return
	}
	var localID string
	if u.Local != nil {
		localID = u.Local.ID
	}
	ok(c, http.StatusOK, "verified", gin.H{
		"userId":    localID,
		"userEmail": u.Email,
	})
}

type resetPasswordReq struct {
	identifierReq
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// ResetPassword handles POST /auth/reset-password: the verify-token flow
// plus a password swap.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "token and newPassword are required")
		return
	}
	if !validPassword(req.NewPassword) {
		fail(c, http.StatusUnprocessableEntity, "password must be 8-20 alphanumeric with a letter and a digit")
		return
	}
	u := h.checkToken(c, req.ID, req.Email, req.Token)
	if u == nil {
		return
	}

	hash, err := security.HashPassword(req.NewPassword)
	if err != nil {
		internalErr(c, err)
		return
	}
	if err := h.Store.SetLocalPassword(c.Request.Context(), u.ID, hash); err != nil {
		internalErr(c, err)
		return
	}
	ok(c, http.StatusOK, "password updated", nil)
}

// SendLink handles GET /auth/send-link: mails a clickable verification URL
// embedding a signed 1-day token.
func (h *Handler) SendLink(c *gin.Context) {
	u := h.findByIdentifier(c, c.Query("id"), c.Query("email"))
	if u == nil {
		return
	}

	tok, err := security.MakeToken(h.JWTSecret, u.ID.Hex(), u.Email, 24*time.Hour)
	if err != nil {
		internalErr(c, err)
		return
	}
	link := h.PublicBaseURL + "/auth/verify-link?token=" + tok

	subject, html := mail.LinkMessage(link)
	if err := h.Mail.Send(c.Request.Context(), u.Email, subject, html); err != nil {
		log.L().Error("send verification link", zap.Error(err))
		fail(c, http.StatusInternalServerError, "could not send the mail")
		return
	}
	ok(c, http.StatusOK, "verification link sent", nil)
}

// VerifyLink handles GET /auth/verify-link: flips the email-verified flag
// and bounces the browser back into the app.
func (h *Handler) VerifyLink(c *gin.Context) {
	claims, err := security.ParseToken(h.JWTSecret, c.Query("token"))
	if err != nil {
		fail(c, http.StatusUnauthorized, "invalid or expired link")
		return
	}
	u, err := h.Store.FindUserByEmail(c.Request.Context(), claims.Email)
	if err != nil {
		internalErr(c, err)
		return
	}
	if u == nil {
		fail(c, http.StatusUnprocessableEntity, "no such user")
		return
	}
	if err := h.Store.SetEmailVerified(c.Request.Context(), u.ID); err != nil {
		internalErr(c, err)
		return
	}
	c.Redirect(http.StatusFound, h.AppSchemeURL)
}

// CheckID handles GET /auth/check-id/:id: 200 free, 409 taken, 422 invalid.
func (h *Handler) CheckID(c *gin.Context) {
	id := c.Param("id")
	if !validLocalID(id) {
		fail(c, http.StatusUnprocessableEntity, "id must be 5-20 lowercase letters or digits")
		return
	}
	u, err := h.Store.FindUserByLocalID(c.Request.Context(), id)
	if err != nil {
		internalErr(c, err)
		return
	}
	if u != nil {
		fail(c, http.StatusConflict, "id already in use")
		return
	}
	ok(c, http.StatusOK, "id available", nil)
}

// CheckEmail handles GET /auth/check-email/:email.
func (h *Handler) CheckEmail(c *gin.Context) {
	email := c.Param("email")
	if !validEmail(email) {
		fail(c, http.StatusUnprocessableEntity, "invalid email")
		return
	}
	u, err := h.Store.FindUserByEmail(c.Request.Context(), email)
	if err != nil {
		internalErr(c, err)
		return
	}
	if u != nil {
		fail(c, http.StatusConflict, "email already in use")
		return
	}
	ok(c, http.StatusOK, "email available", nil)
}

// CheckNickname handles GET /auth/check-nickname/:nickname.
func (h *Handler) CheckNickname(c *gin.Context) {
	nick := c.Param("nickname")
	if !validNickName(nick) {
		fail(c, http.StatusUnprocessableEntity, "invalid nickname")
		return
	}
	u, err := h.Store.FindUserByNickName(c.Request.Context(), nick)
	if err != nil {
		internalErr(c, err)
		return
	}
	if u != nil {
		fail(c, http.StatusConflict, "nickname already in use")
		return
	}
	ok(c, http.StatusOK, "nickname available", nil)
}

// IsVerified handles GET /auth/is-verified?email=.
func (h *Handler) IsVerified(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		fail(c, http.StatusUnprocessableEntity, "email is required")
		return
	}
	u, err := h.Store.FindUserByEmail(c.Request.Context(), email)
	if err != nil {
		internalErr(c, err)
		return
	}
	if u == nil || u.Method != domain.MethodLocal {
		fail(c, http.StatusConflict, "no local account with that email")
		return
	}
	ok(c, http.StatusOK, "", gin.H{"isEmailVerified": u.IsEmailVerified})
}
