package router

import (
	"Sierra_Connect/internal/handler"
	"Sierra_Connect/internal/middleware"
	"Sierra_Connect/internal/pkg"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func InitRouter(db *gorm.DB, smtpCfg pkg.SMTPConfig) *gin.Engine {
	r := gin.Default()

	user := handler.NewUserHandler(db)
	email := handler.NewEmailHandler(smtpCfg)
	community := handler.NewCommunityHandler(db)
	event := handler.NewEventHandler(db)
	notification := handler.NewNotificationHandler(db)

	// 邮件验证码
	emailGroup := r.Group("/api/email")
	{
		emailGroup.POST("/:scope/code", email.SendCode)
	}

	// 注册登录等开放接口
	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", user.Register)
		userGroup.POST("/login", user.Login)
		userGroup.POST("/reset", user.ResetPassword)
	}

	// token刷新
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", user.TokenRefresh)
	}

	// 登录态的个人接口
	authGroup := r.Group("/api/auth")
	authGroup.Use(middleware.AuthMiddleware())
	{
		authGroup.POST("/logout", user.Logout)
		authGroup.GET("/me", user.Me)
		authGroup.PUT("/me", user.UpdateMe)
		authGroup.DELETE("/me", user.DeleteMe)
		authGroup.POST("/change-password", user.ChangePassword)
		authGroup.GET("/users", user.List)
		authGroup.GET("/users/:id", user.Get)
	}

	// 社区
	communityGroup := r.Group("/api/community")
	communityGroup.Use(middleware.AuthMiddleware())
	{
		communityGroup.GET("", community.List)
		communityGroup.POST("", community.Create)
		communityGroup.GET("/joined", community.ListJoined)
		communityGroup.GET("/user/:id", community.ListByCreator)
		communityGroup.GET("/:id", community.Get)
		communityGroup.PUT("/:id", community.Update)
		communityGroup.DELETE("/:id", community.Delete)
		communityGroup.POST("/join", community.Join)
		communityGroup.POST("/leave", community.Leave)
	}

	// 活动
	eventGroup := r.Group("/api/event")
	eventGroup.Use(middleware.AuthMiddleware())
	{
		eventGroup.GET("", event.List)
		eventGroup.POST("", event.Create)
		eventGroup.GET("/attending", event.ListAttending)
		eventGroup.GET("/favorites", event.ListLiked)
		eventGroup.GET("/user/:id", event.ListByOrganizer)
		eventGroup.GET("/:id", event.Get)
		eventGroup.PUT("/:id", event.Update)
		eventGroup.DELETE("/:id", event.Delete)
		eventGroup.POST("/attend", event.Attend)
		eventGroup.POST("/unattend", event.Unattend)
		eventGroup.POST("/like", event.Like)
		eventGroup.POST("/unlike", event.Unlike)
	}

	// 通知
	notificationGroup := r.Group("/api/notification")
	notificationGroup.Use(middleware.AuthMiddleware())
	{
		notificationGroup.GET("", notification.List)
		notificationGroup.POST("", notification.Create)
		notificationGroup.POST("/read", notification.MarkRead)
		notificationGroup.POST("/read-all", notification.MarkAllRead)
		notificationGroup.DELETE("/:id", notification.Delete)
	}

	return r
}
