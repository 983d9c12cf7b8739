package handler

import (
	"net/http"
	"strconv"

	"Sierra_Connect/internal/middleware"
	"Sierra_Connect/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NotificationHandler struct {
	svc *service.NotificationService
}

type NotificationCreateReq struct {
	UserID           string `json:"user_id" binding:"required"`
	Message          string `json:"message" binding:"required"`
	NotificationType string `json:"notification_type" binding:"required"`
	ReferenceID      string `json:"reference_id"`
}

type MarkReadReq struct {
	NotificationID string `json:"notification_id" binding:"required"`
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{
		svc: service.NewNotificationService(db),
	}
}

// Create 发给别的用户时当前用户作为sender记录
func (h *NotificationHandler) Create(c *gin.Context) {
	senderID := c.GetString(middleware.ContextUserIDKey)

	var req NotificationCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	n, err := h.svc.Create(req.UserID, req.Message, req.NotificationType, senderID, req.ReferenceID)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

// List 当前用户的通知，unread_only=true只看未读
func (h *NotificationHandler) List(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)
	skip, _ := strconv.Atoi(c.Query("skip"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	unreadOnly := c.Query("unread_only") == "true"

	list, err := h.svc.ListFor(userID, skip, limit, unreadOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	var req MarkReadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	if err := h.svc.MarkRead(req.NotificationID, userID); err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// MarkAllRead 全部置已读，返回影响条数
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	count, err := h.svc.MarkAllRead(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "mark all read failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok", "count": count})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	if err := h.svc.Delete(c.Param("id"), userID); err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}
