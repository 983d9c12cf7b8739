package service

import (
	"testing"

	"Sierra_Connect/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupDB 每个测试一个内存sqlite库
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// 内存库只能单连接，多连接会各开各的库
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Community{},
		&model.Event{},
		&model.Notification{},
		&model.UserCommunity{},
		&model.UserEvent{},
		&model.UserLikedEvent{},
		&model.ActivityOutbox{},
	))
	return db
}

func registerUser(t *testing.T, svc *UserService, email, name string) *model.User {
	t.Helper()
	user, err := svc.Register(RegisterInput{
		Email:    email,
		Password: "password123",
		Name:     name,
	})
	require.NoError(t, err)
	return user
}
