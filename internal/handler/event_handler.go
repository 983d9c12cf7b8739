package handler

import (
	"context"
	"net/http"
	"strconv"

	"Sierra_Connect/internal/middleware"
	"Sierra_Connect/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type EventHandler struct {
	svc *service.EventService
}

type EventCreateReq struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	Time        string  `json:"time" binding:"required"`
	Location    string  `json:"location" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Price       float64 `json:"price" binding:"gte=0"`
	Image       string  `json:"image"`
	CommunityID string  `json:"community_id"`
}

type EventUpdateReq struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Date        *string  `json:"date"`
	Time        *string  `json:"time"`
	Location    *string  `json:"location"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
	CommunityID *string  `json:"community_id"`
}

type EventEdgeReq struct {
	EventID string `json:"event_id" binding:"required"`
}

func NewEventHandler(db *gorm.DB) *EventHandler {
	return &EventHandler{
		svc: service.NewEventService(db),
	}
}

func (h *EventHandler) Create(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	var req EventCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	event, err := h.svc.Create(userID, service.EventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		Category:    req.Category,
		Price:       req.Price,
		Image:       req.Image,
		CommunityID: req.CommunityID,
	})
	if err != nil {
		abortErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// List 分类/地点子串/价格过滤，price取free或paid
func (h *EventHandler) List(c *gin.Context) {
	skip, _ := strconv.Atoi(c.Query("skip"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	category := c.Query("category")
	location := c.Query("location")
	priceFilter := c.Query("price")

	list, err := h.svc.List(skip, limit, category, location, priceFilter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

// ListByOrganizer 某用户组织的活动
func (h *EventHandler) ListByOrganizer(c *gin.Context) {
	skip, _ := strconv.Atoi(c.Query("skip"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	list, err := h.svc.ListByOrganizer(c.Param("id"), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

// ListAttending 当前用户参加的活动
func (h *EventHandler) ListAttending(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)
	skip, _ := strconv.Atoi(c.Query("skip"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	list, err := h.svc.ListAttending(userID, skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

// ListLiked 当前用户收藏的活动
func (h *EventHandler) ListLiked(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)
	skip, _ := strconv.Atoi(c.Query("skip"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	list, err := h.svc.ListLiked(userID, skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *EventHandler) Get(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)
	id := c.Param("id")

	event, err := h.svc.Get(id)
	if err != nil {
		abortErr(c, err)
		return
	}

	attendees, _ := h.svc.AttendeeCount(id)
	likes, _ := h.svc.LikeCount(id)
	attending, _ := h.svc.IsAttending(id, userID)
	liked, _ := h.svc.IsLiked(id, userID)

	c.JSON(http.StatusOK, gin.H{
		"event":          event,
		"attendee_count": attendees,
		"like_count":     likes,
		"attending":      attending,
		"liked":          liked,
	})
}

func (h *EventHandler) Update(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	var req EventUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	event, err := h.svc.Update(c.Param("id"), service.EventUpdate{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		Category:    req.Category,
		Price:       req.Price,
		Image:       req.Image,
		CommunityID: req.CommunityID,
	}, userID)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Delete(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	if err := h.svc.Delete(c.Param("id"), userID); err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *EventHandler) Attend(c *gin.Context) {
	h.edgeOp(c, h.svc.Attend)
}

func (h *EventHandler) Unattend(c *gin.Context) {
	h.edgeOp(c, h.svc.Unattend)
}

func (h *EventHandler) Like(c *gin.Context) {
	h.edgeOp(c, h.svc.Like)
}

func (h *EventHandler) Unlike(c *gin.Context) {
	h.edgeOp(c, h.svc.Unlike)
}

// edgeOp 参加/收藏四个接口的公共壳
func (h *EventHandler) edgeOp(c *gin.Context, op func(ctx context.Context, eventID, userID string) error) {
	userID := c.GetString(middleware.ContextUserIDKey)

	var req EventEdgeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	if err := op(c.Request.Context(), req.EventID, userID); err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}
