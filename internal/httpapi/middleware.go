package httpapi

import (
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/zoesbreath/baobab-server/internal/game"
	"github.com/zoesbreath/baobab-server/internal/log"
	"github.com/zoesbreath/baobab-server/internal/metrics"
	"github.com/zoesbreath/baobab-server/internal/security"
)

const (
	ctxUserID    = "uid"
	ctxEmail     = "email"
	ctxRequestID = "X-Request-ID"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(ctxRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(ctxRequestID, id)
		c.Next()
	}
}

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.InFlight.Inc()
		c.Next()
		metrics.InFlight.Dec()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestsTotal.WithLabelValues(route, c.Request.Method,
			strconv.Itoa(c.Writer.Status())).Inc()
		metrics.ReqDuration.WithLabelValues(route, c.Request.Method).
			Observe(time.Since(start).Seconds())
	}
}

// AuthJWT validates the bearer credential and attaches the resolved user id
// to the request context. Expiry forces re-login; there is no refresh.
func AuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(strings.ToLower(h), "bearer ") {
			fail(c, http.StatusUnauthorized, "missing bearer token")
			return
		}
		claims, err := security.ParseToken(secret, strings.TrimSpace(h[len("Bearer "):]))
		if err != nil {
			fail(c, http.StatusUnauthorized, "invalid token")
			return
		}
		uid := claims.UID
		if uid == "" {
			uid = claims.Subject
		}
		oid, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			fail(c, http.StatusUnauthorized, "invalid token subject")
			return
		}
		c.Set(ctxUserID, oid)
		c.Set(ctxEmail, claims.Email)
		c.Next()
	}
}

func userID(c *gin.Context) primitive.ObjectID {
	v, _ := c.Get(ctxUserID)
	id, _ := v.(primitive.ObjectID)
	return id
}

// RateLimitMail keeps the mail-sending endpoints within the per-minute
// budget, keyed by client IP. Without Redis the limiter is off.
func (h *Handler) RateLimitMail() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := h.Redis.Allow(c.Request.Context(), c.ClientIP()+":"+c.FullPath(), h.RateLimitPerMin)
		if err != nil {
			// Redis being down must not lock users out of verification.
			log.L().Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			fail(c, http.StatusTooManyRequests, "too many requests, try again later")
			return
		}
		c.Next()
	}
}

// RolloverGate reconciles time-dependent game state before the gated action.
// A persistence failure is a hard stop.
func (h *Handler) RolloverGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := userID(c)
		u, err := h.Store.FindUserByID(c.Request.Context(), uid)
		if err != nil {
			internalErr(c, err)
			return
		}
		if u == nil {
			fail(c, http.StatusUnauthorized, "unknown user")
			return
		}

		game.Rollover(&u.Game, time.Now().UTC(), rand.Intn)

		if err := h.Store.SaveGame(c.Request.Context(), u.ID, u.Game); err != nil {
			internalErr(c, err)
			return
		}
		c.Next()
	}
}
