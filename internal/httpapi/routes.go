package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zoesbreath/baobab-server/internal/domain"
)

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Metrics())

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/static", h.UploadDir)

	auth := AuthJWT(h.JWTSecret)

	user := r.Group("/user")
	{
		user.POST("/signup", h.Signup)
		user.POST("/login", h.Login)
		user.POST("/kakao", h.SocialLogin(domain.MethodKakao))
		user.POST("/naver", h.SocialLogin(domain.MethodNaver))
		user.POST("/apple", h.SocialLogin(domain.MethodApple))
		user.POST("/facebook", h.SocialLogin(domain.MethodFacebook))
		if h.Kakao != nil {
			user.GET("/kakao/authorize", h.KakaoAuthorize)
			user.GET("/kakao/callback", h.KakaoCallback)
		}
		user.PATCH("/nickname", auth, h.UpdateNickname)
	}

	authGrp := r.Group("/auth")
	{
		authGrp.POST("/send-token", h.RateLimitMail(), h.SendToken)
		authGrp.POST("/verify-token", h.VerifyToken)
		authGrp.POST("/reset-password", h.ResetPassword)
		authGrp.GET("/send-link", h.RateLimitMail(), h.SendLink)
		authGrp.GET("/verify-link", h.VerifyLink)
		authGrp.GET("/check-id/:id", h.CheckID)
		authGrp.GET("/check-email/:email", h.CheckEmail)
		authGrp.GET("/check-nickname/:nickname", h.CheckNickname)
		authGrp.GET("/is-verified", h.IsVerified)
	}

	gamer := r.Group("/gamer", auth)
	{
		// The rollover gate sits only on the game-entry fetch; mutating
		// routes act on the state the last fetch reconciled.
		gamer.GET("", h.RolloverGate(), h.GetGamer)
		gamer.PUT("", h.UpdateGamer)
		gamer.POST("/pick-item", h.PickItem)
		gamer.POST("/use-item", h.UseItem)
	}

	story := r.Group("/story", auth)
	{
		story.GET("", h.ListStories)
		story.POST("", h.CreateStory)
		story.GET("/dates", h.StoryDates)
		story.GET("/detail/:storyId", h.GetStory)
		story.PUT("/:storyId", h.UpdateStory)
		story.DELETE("/:storyId", h.DeleteStory)
	}

	tut := r.Group("/tutorial", auth)
	{
		tut.GET("/list/:listId", h.ListTutorials)
		tut.GET("/detail/:tutorialId", h.GetTutorial)
		tut.GET("/comments/:tutorialId", h.ListComments)
		tut.POST("/comment/:tutorialId", h.PostComment)
		tut.DELETE("/:tutorialId/comments/:commentId", h.DeleteComment)
		tut.GET("/is-favorite/:tutorialId", h.IsFavorite)
		tut.POST("/add-favorite/:tutorialId", h.AddFavorite)
		tut.POST("/remove-favorite/:tutorialId", h.RemoveFavorite)
		tut.POST("", h.CreateTutorial)
	}

	r.POST("/image", auth, h.UploadImage)

	r.GET("/mindcloud/:startDate/:endDate", auth, h.Mindcloud)

	return r
}

// Healthz answers liveness checks with a store ping.
func (h *Handler) Healthz(c *gin.Context) {
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
