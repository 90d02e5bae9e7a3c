// Package services содержит логику регистрации и аутентификации пользователей.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/eduhub/eduhub/internal/lib/jwt"
	"github.com/eduhub/eduhub/internal/lib/password"
	"github.com/eduhub/eduhub/internal/models"
	"github.com/eduhub/eduhub/internal/storage/repository"
)

// Доменные ошибки аутентификации.
var (
	// ErrEmailTaken — пользователь с таким email уже зарегистрирован.
	ErrEmailTaken = errors.New("email already exists")
	// ErrUserNotFound — пользователь с указанным email не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials — пароль не подошел.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)
	// GetUserByEmail возвращает пользователя по email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// ExistsUserByEmail проверяет занятость email.
	ExistsUserByEmail(ctx context.Context, email string) (bool, error)
	// ExistsUserByUsername проверяет занятость имени пользователя.
	ExistsUserByUsername(ctx context.Context, username string) (bool, error)
	// ExistsUserByMobile проверяет занятость номера телефона.
	ExistsUserByMobile(ctx context.Context, mobile string) (bool, error)
}

// AuthService отвечает за регистрацию и вход пользователей.
//
// Роль пользователя фиксируется при регистрации и попадает в JWT при входе;
// дальнейшая авторизация опирается только на роль из проверенного токена.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя и сразу выпускает для него токен.
//
// Роль по умолчанию — student. Повторная регистрация на занятый email
// возвращает ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (string, *models.User, error) {
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return "", nil, err
	}
	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}
	user := models.User{
		UserName:     req.UserName,
		Email:        req.Email,
		Mobile:       req.Mobile,
		PasswordHash: hashed,
		Role:         role,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return "", nil, ErrEmailTaken
		}
		return "", nil, fmt.Errorf("register user: %w", err)
	}
	user.UID = uid

	token, err := s.jwtMaker.GenerateToken(user.UserName, user.Role, uid)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, &user, nil
}

// Login проверяет пароль пользователя и выпускает JWT с его ролью.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrUserNotFound
		}
		return "", nil, fmt.Errorf("get user by email: %w", err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.UserName, user.Role, user.UID)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}

// CheckEmail сообщает, зарегистрирован ли пользователь с указанным email.
func (s *AuthService) CheckEmail(ctx context.Context, email string) (bool, error) {
	return s.users.ExistsUserByEmail(ctx, email)
}

// CheckUsername сообщает, занято ли имя пользователя.
func (s *AuthService) CheckUsername(ctx context.Context, username string) (bool, error) {
	return s.users.ExistsUserByUsername(ctx, username)
}

// CheckMobile сообщает, занят ли номер телефона.
func (s *AuthService) CheckMobile(ctx context.Context, mobile string) (bool, error) {
	return s.users.ExistsUserByMobile(ctx, mobile)
}
