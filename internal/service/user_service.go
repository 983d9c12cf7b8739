package service

import (
	"errors"
	"strings"

	"Sierra_Connect/internal/model"
	"Sierra_Connect/internal/pkg"
	"Sierra_Connect/internal/repository/mysql"
	"Sierra_Connect/internal/repository/redis"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// sessionStore 登录会话token存储
type sessionStore interface {
	AddUserToken(userID, token string) error
	DeleteUserToken(userID string) error
}

// codeVerifier 邮件验证码校验
type codeVerifier interface {
	VerifyCode(scope, email, code string) (bool, error)
}

type UserService struct {
	repo     *mysql.UserRepository
	sessions sessionStore
	codes    codeVerifier
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		repo:     &mysql.UserRepository{DB: db},
		sessions: &redis.UserRepository{},
		codes:    &EmailService{rds: &redis.EmailRepository{}},
	}
}

type RegisterInput struct {
	Email                  string
	Password               string
	Name                   string
	Location               string
	Interests              []string
	NotificationsEnabled   *bool
	LocationSharingEnabled *bool
}

type ProfileUpdate struct {
	Name                   *string
	Avatar                 *string
	Bio                    *string
	Location               *string
	Interests              *[]string
	NotificationsEnabled   *bool
	LocationSharingEnabled *bool
}

// joinInterests 规范化兴趣列表：去空格、丢空项、逗号拼接
func joinInterests(interests []string) string {
	out := make([]string, 0, len(interests))
	for _, it := range interests {
		it = strings.TrimSpace(it)
		if it != "" {
			out = append(out, it)
		}
	}
	return strings.Join(out, ",")
}

func (s *UserService) Register(in RegisterInput) (*model.User, error) {
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return nil, ErrValidation
	}

	// 邮箱唯一。查询出错不能当成"邮箱可用"，只有明确未找到才继续。
	if _, err := s.repo.FindByEmail(in.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:                     uuid.NewString(),
		Email:                  in.Email,
		Password:               string(hash),
		Name:                   in.Name,
		Location:               in.Location,
		Interests:              joinInterests(in.Interests),
		NotificationsEnabled:   true,
		LocationSharingEnabled: true,
	}
	if in.NotificationsEnabled != nil {
		user.NotificationsEnabled = *in.NotificationsEnabled
	}
	if in.LocationSharingEnabled != nil {
		user.LocationSharingEnabled = *in.LocationSharingEnabled
	}

	if err := s.repo.Create(user); err != nil {
		// 并发注册时预检查会漏，唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return user, nil
}

// Authenticate 校验凭证。邮箱不存在和密码错误返回同一个错误，不泄露是哪个错了。
func (s *UserService) Authenticate(email, password string) (*model.User, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) Login(email, password string) (*pkg.Pair, error) {
	user, err := s.Authenticate(email, password)
	if err != nil {
		return nil, err
	}

	token, err := pkg.GeneratePair(user.ID)
	if err != nil {
		return nil, err
	}
	// token写入会话存储，单点登录
	if err = s.sessions.AddUserToken(user.ID, token.AccessToken); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *UserService) Logout(userID string) error {
	return s.sessions.DeleteUserToken(userID)
}

func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	return pkg.Refresh(refreshToken)
}

func (s *UserService) GetByID(id string) (*model.User, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *UserService) GetByEmail(email string) (*model.User, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *UserService) List(skip, limit int) ([]model.User, error) {
	skip, limit = normalizePage(skip, limit)
	return s.repo.List(skip, limit)
}

// UpdateProfile 部分更新，只应用传了的字段
func (s *UserService) UpdateProfile(id string, in ProfileUpdate) (*model.User, error) {
	if _, err := s.repo.FindByID(id); err != nil {
		return nil, ErrNotFound
	}

	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Avatar != nil {
		fields["avatar"] = *in.Avatar
	}
	if in.Bio != nil {
		fields["bio"] = *in.Bio
	}
	if in.Location != nil {
		fields["location"] = *in.Location
	}
	if in.Interests != nil {
		fields["interests"] = joinInterests(*in.Interests)
	}
	if in.NotificationsEnabled != nil {
		fields["notifications_enabled"] = *in.NotificationsEnabled
	}
	if in.LocationSharingEnabled != nil {
		fields["location_sharing_enabled"] = *in.LocationSharingEnabled
	}

	if len(fields) > 0 {
		if err := s.repo.UpdateFields(id, fields); err != nil {
			return nil, err
		}
	}
	return s.repo.FindByID(id)
}

func (s *UserService) Delete(id string) error {
	if _, err := s.repo.FindByID(id); err != nil {
		return ErrNotFound
	}
	return s.repo.DeleteByID(id)
}

// ChangePassword 登录态修改密码，改完强制下线
func (s *UserService) ChangePassword(userID, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return ErrNotFound
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err = s.repo.UpdatePassword(user, string(hash)); err != nil {
		return err
	}
	return s.Logout(userID)
}

// ResetPassword 通过邮件验证码重置密码
func (s *UserService) ResetPassword(email, code, newPassword string) error {
	ok, err := s.codes.VerifyCode("reset", email, code)
	if err != nil || !ok {
		return ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return ErrNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(user, string(hash))
}

// normalizePage 越界的skip返回空列表而不是报错；limit缺省20，超上限压到100
func normalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 20
	} else if limit > 100 {
		limit = 100
	}
	return skip, limit
}
