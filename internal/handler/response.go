package handler

import (
	"errors"
	"net/http"

	"Sierra_Connect/internal/model"
	"Sierra_Connect/internal/service"

	"github.com/gin-gonic/gin"
)

// abortErr 领域错误统一映射到http状态码
func abortErr(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrDuplicateEmail):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"msg": err.Error()})
}

// userJSON 用户出参，密码哈希不出网
func userJSON(u *model.User) gin.H {
	return gin.H{
		"id":                       u.ID,
		"email":                    u.Email,
		"name":                     u.Name,
		"avatar":                   u.Avatar,
		"bio":                      u.Bio,
		"location":                 u.Location,
		"interests":                u.InterestList(),
		"notifications_enabled":    u.NotificationsEnabled,
		"location_sharing_enabled": u.LocationSharingEnabled,
		"created_at":               u.CreatedAt,
		"updated_at":               u.UpdatedAt,
	}
}

func userListJSON(users []model.User) []gin.H {
	out := make([]gin.H, 0, len(users))
	for i := range users {
		out = append(out, userJSON(&users[i]))
	}
	return out
}
