package handler

import (
	"net/http"
	"strconv"

	"Sierra_Connect/internal/middleware"
	"Sierra_Connect/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	svc *service.UserService
}

// RegisterReq 注册请求体
type RegisterReq struct {
	Email                  string   `json:"email" binding:"required,email"`
	Password               string   `json:"password" binding:"required,min=6"`
	Name                   string   `json:"name" binding:"required"`
	Location               string   `json:"location"`
	Interests              []string `json:"interests"`
	NotificationsEnabled   *bool    `json:"notifications_enabled"`
	LocationSharingEnabled *bool    `json:"location_sharing_enabled"`
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileReq 部分更新，没传的字段不动
type UpdateProfileReq struct {
	Name                   *string   `json:"name"`
	Avatar                 *string   `json:"avatar"`
	Bio                    *string   `json:"bio"`
	Location               *string   `json:"location"`
	Interests              *[]string `json:"interests"`
	NotificationsEnabled   *bool     `json:"notifications_enabled"`
	LocationSharingEnabled *bool     `json:"location_sharing_enabled"`
}

// ResetReq 忘记密码请求体
type ResetReq struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type ChangePasswordReq struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{
		svc: service.NewUserService(db),
	}
}

// Register 注册接口
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	user, err := h.svc.Register(service.RegisterInput{
		Email:                  req.Email,
		Password:               req.Password,
		Name:                   req.Name,
		Location:               req.Location,
		Interests:              req.Interests,
		NotificationsEnabled:   req.NotificationsEnabled,
		LocationSharingEnabled: req.LocationSharingEnabled,
	})
	if err != nil {
		abortErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, userJSON(user))
}

// Login 登录接口
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		abortErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token.AccessToken, "refresh_token": token.RefreshToken})
}

func (h *UserHandler) Logout(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "unauthorized"})
		return
	}

	if err := h.svc.Logout(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "logout failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// TokenRefresh 用refresh换新的access
func (h *UserHandler) TokenRefresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	token, err := h.svc.Refresh(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token.AccessToken, "refresh_token": token.RefreshToken})
}

// Me 当前登录用户信息
func (h *UserHandler) Me(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	user, err := h.svc.GetByID(userID)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, userJSON(user))
}

// UpdateMe 更新个人资料
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	var req UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	user, err := h.svc.UpdateProfile(userID, service.ProfileUpdate{
		Name:                   req.Name,
		Avatar:                 req.Avatar,
		Bio:                    req.Bio,
		Location:               req.Location,
		Interests:              req.Interests,
		NotificationsEnabled:   req.NotificationsEnabled,
		LocationSharingEnabled: req.LocationSharingEnabled,
	})
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, userJSON(user))
}

// DeleteMe 注销账号
func (h *UserHandler) DeleteMe(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	if err := h.svc.Delete(userID); err != nil {
		abortErr(c, err)
		return
	}
	_ = h.svc.Logout(userID)
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *UserHandler) List(c *gin.Context) {
	skip, _ := strconv.Atoi(c.Query("skip"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	list, err := h.svc.List(skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": userListJSON(list)})
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, userJSON(user))
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req ResetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	if err := h.svc.ResetPassword(req.Email, req.Code, req.NewPassword); err != nil {
		abortErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "reset password successfully"})
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	var req ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	if err := h.svc.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		abortErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "change password successfully"})
}
