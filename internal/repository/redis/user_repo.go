package redis

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("token extend failed")
	ErrTokenDeleted     = errors.New("token delete failed")
)

const (
	UserTokenPrefix = "login:user:token"
	UserTokenExpire = time.Minute * 30
)

// UserRepository 单点登录 token 存储
type UserRepository struct{}

func (r *UserRepository) AddUserToken(userID, token string) error {
	key := fmt.Sprintf("%s:%s", UserTokenPrefix, userID)
	if err := Client.Set(context.Background(), key, token, UserTokenExpire).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *UserRepository) GetUserToken(userID string) (string, error) {
	key := fmt.Sprintf("%s:%s", UserTokenPrefix, userID)
	val, err := Client.Get(context.Background(), key).Result()
	if err != nil {
		return "", ErrTokenNotFound
	}
	return val, nil
}

// ExtendUserToken 校验通过后滑动续期
func (r *UserRepository) ExtendUserToken(userID string) error {
	key := fmt.Sprintf("%s:%s", UserTokenPrefix, userID)
	if err := Client.Expire(context.Background(), key, UserTokenExpire).Err(); err != nil {
		return ErrExtendFailed
	}
	return nil
}

func (r *UserRepository) DeleteUserToken(userID string) error {
	key := fmt.Sprintf("%s:%s", UserTokenPrefix, userID)
	if err := Client.Del(context.Background(), key).Err(); err != nil {
		return ErrTokenDeleted
	}
	return nil
}
