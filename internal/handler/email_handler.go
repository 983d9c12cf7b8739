package handler

import (
	"net/http"

	"Sierra_Connect/internal/pkg"
	"Sierra_Connect/internal/service"

	"github.com/gin-gonic/gin"
)

type EmailHandler struct {
	svc *service.EmailService
}

type SendCodeReq struct {
	Email string `json:"email" binding:"required,email"`
}

func NewEmailHandler(cfg pkg.SMTPConfig) *EmailHandler {
	return &EmailHandler{svc: service.NewEmailService(cfg)}
}

// SendCode 按scope发验证码，scope取register或reset
func (h *EmailHandler) SendCode(c *gin.Context) {
	var req SendCodeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	switch c.Param("scope") {
	case "register":
		if err := h.svc.SendRegisterCode(req.Email); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
			return
		}
	case "reset":
		if err := h.svc.SendResetCode(req.Email); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid scope"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "send code successfully"})
}
