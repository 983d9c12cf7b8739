package handler

import (
	"net/http"
	"strconv"

	"Sierra_Connect/internal/middleware"
	"Sierra_Connect/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommunityHandler struct {
	svc *service.CommunityService
}

type CommunityCreateReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Location    string `json:"location"`
	Image       string `json:"image"`
	Guidelines  string `json:"guidelines"`
}

type CommunityUpdateReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Location    *string `json:"location"`
	Image       *string `json:"image"`
	Guidelines  *string `json:"guidelines"`
}

type CommunityEdgeReq struct {
	CommunityID string `json:"community_id" binding:"required"`
}

func NewCommunityHandler(db *gorm.DB) *CommunityHandler {
	return &CommunityHandler{
		svc: service.NewCommunityService(db),
	}
}

func (h *CommunityHandler) Create(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	var req CommunityCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	community, err := h.svc.Create(userID, service.CommunityInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Image:       req.Image,
		Guidelines:  req.Guidelines,
	})
	if err != nil {
		abortErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, community)
}

// List 支持分类过滤和成员关系过滤
func (h *CommunityHandler) List(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)
	skip, _ := strconv.Atoi(c.Query("skip"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	category := c.Query("category")
	membershipFilter := c.Query("membership")

	list, err := h.svc.List(skip, limit, category, membershipFilter, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"list": list})
}

// ListByCreator 某用户创建的社区
func (h *CommunityHandler) ListByCreator(c *gin.Context) {
	skip, _ := strconv.Atoi(c.Query("skip"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	list, err := h.svc.ListByCreator(c.Param("id"), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

// ListJoined 当前用户加入的社区
func (h *CommunityHandler) ListJoined(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)
	skip, _ := strconv.Atoi(c.Query("skip"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	list, err := h.svc.ListJoined(userID, skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *CommunityHandler) Get(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)
	id := c.Param("id")

	community, err := h.svc.Get(id)
	if err != nil {
		abortErr(c, err)
		return
	}

	count, _ := h.svc.MemberCount(id)
	joined, _ := h.svc.IsMember(id, userID)

	c.JSON(http.StatusOK, gin.H{
		"community":    community,
		"member_count": count,
		"joined":       joined,
	})
}

func (h *CommunityHandler) Update(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	var req CommunityUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	community, err := h.svc.Update(c.Param("id"), service.CommunityUpdate{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Image:       req.Image,
		Guidelines:  req.Guidelines,
	}, userID)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, community)
}

func (h *CommunityHandler) Delete(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	if err := h.svc.Delete(c.Param("id"), userID); err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *CommunityHandler) Join(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	var req CommunityEdgeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	if err := h.svc.Join(c.Request.Context(), req.CommunityID, userID); err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *CommunityHandler) Leave(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	var req CommunityEdgeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	if err := h.svc.Leave(c.Request.Context(), req.CommunityID, userID); err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}
