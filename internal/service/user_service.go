package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jeanmvides21/academic-back/internal/apperror"
	"github.com/jeanmvides21/academic-back/internal/model"
)

const defaultUserRole = "student"

// UserService CRUD пользователей с проверкой уникальности
// цедулы и email
type UserService struct {
	users  UserStore
	logger *zap.Logger
}

func NewUserService(users UserStore, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger,
	}
}

type CreateUserInput struct {
	Cedula   string `json:"cedula"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

type UpdateUserInput struct {
	Cedula   *string `json:"cedula"`
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role"`
	Password *string `json:"password"`
}

// ensureCedulaFree страж уникальности цедулы
func (s *UserService) ensureCedulaFree(ctx context.Context, cedula string, excludeID int64) error {
	inUse, err := s.users.CedulaInUse(ctx, cedula, excludeID)
	if err != nil {
		return err
	}
	if inUse {
		return apperror.Conflictf("a user with cedula %s already exists", cedula)
	}
	return nil
}

// ensureEmailFree страж уникальности email
func (s *UserService) ensureEmailFree(ctx context.Context, email string, excludeID int64) error {
	inUse, err := s.users.EmailInUse(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if inUse {
		return apperror.Conflictf("a user with email %s already exists", email)
	}
	return nil
}

// Create создаёт нового пользователя
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*model.User, error) {
	if in.Cedula == "" || in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, apperror.Validationf("cedula, name, email and password are required")
	}

	if err := s.ensureCedulaFree(ctx, in.Cedula, 0); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, in.Email, 0); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	role := in.Role
	if role == "" {
		role = defaultUserRole
	}

	user := &model.User{
		Cedula:       in.Cedula,
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		Role:         role,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.Int64("user_id", user.ID),
		zap.String("role", user.Role))

	return user, nil
}

// Get получает пользователя по ID
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFoundf("user with id %d not found", id)
	}
	return user, nil
}

// List получает всех пользователей
func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	return s.users.GetAll(ctx)
}

// Update обновляет заполненные поля пользователя
func (s *UserService) Update(ctx context.Context, id int64, in UpdateUserInput) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFoundf("user with id %d not found", id)
	}

	if in.Cedula != nil && *in.Cedula != user.Cedula {
		if err := s.ensureCedulaFree(ctx, *in.Cedula, id); err != nil {
			return nil, err
		}
		user.Cedula = *in.Cedula
	}
	if in.Email != nil && *in.Email != user.Email {
		if err := s.ensureEmailFree(ctx, *in.Email, id); err != nil {
			return nil, err
		}
		user.Email = *in.Email
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User updated", zap.Int64("user_id", id))
	return user, nil
}

// Remove удаляет пользователя
func (s *UserService) Remove(ctx context.Context, id int64) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NotFoundf("user with id %d not found", id)
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("User deleted", zap.Int64("user_id", id))
	return nil
}
