package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jeanmvides21/academic-back/internal/apperror"
	"github.com/jeanmvides21/academic-back/internal/model"
)

func newUserService() (*UserService, *mockUserStore) {
	users := newMockUserStore()
	return NewUserService(users, zap.NewNop()), users
}

func TestUserService_Create(t *testing.T) {
	svc, _ := newUserService()

	user, err := svc.Create(context.Background(), CreateUserInput{
		Cedula:   "100200300",
		Name:     "Ana Torres",
		Email:    "ana@example.com",
		Phone:    "3001234567",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "student", user.Role, "role defaults to student")
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
}

func TestUserService_Create_RequiredFields(t *testing.T) {
	svc, _ := newUserService()

	for _, in := range []CreateUserInput{
		{Name: "Ana", Email: "ana@example.com", Password: "x"},
		{Cedula: "1", Email: "ana@example.com", Password: "x"},
		{Cedula: "1", Name: "Ana", Password: "x"},
		{Cedula: "1", Name: "Ana", Email: "ana@example.com"},
	} {
		_, err := svc.Create(context.Background(), in)
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	}
}

func TestUserService_Create_Duplicates(t *testing.T) {
	svc, users := newUserService()
	users.add(model.User{Cedula: "100200300", Name: "Ana", Email: "ana@example.com"})

	_, err := svc.Create(context.Background(), CreateUserInput{
		Cedula: "100200300", Name: "Otra", Email: "otra@example.com", Password: "x",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
	assert.Contains(t, err.Error(), "cedula 100200300")

	_, err = svc.Create(context.Background(), CreateUserInput{
		Cedula: "999", Name: "Otra", Email: "ana@example.com", Password: "x",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
	assert.Contains(t, err.Error(), "email ana@example.com")
}

func TestUserService_Update(t *testing.T) {
	svc, users := newUserService()
	users.add(model.User{Cedula: "1", Name: "Ana", Email: "ana@example.com", Role: "student"})
	users.add(model.User{Cedula: "2", Name: "Luis", Email: "luis@example.com", Role: "student"})

	// Чужой email занят
	email := "luis@example.com"
	_, err := svc.Update(context.Background(), 1, UpdateUserInput{Email: &email})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))

	// Свой собственный email конфликтом не считается
	email = "ana@example.com"
	role := "teacher"
	user, err := svc.Update(context.Background(), 1, UpdateUserInput{Email: &email, Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "teacher", user.Role)
	assert.Equal(t, "ana@example.com", user.Email)
}

func TestUserService_Update_Password(t *testing.T) {
	svc, users := newUserService()
	users.add(model.User{Cedula: "1", Name: "Ana", Email: "ana@example.com"})

	password := "newsecret"
	user, err := svc.Update(context.Background(), 1, UpdateUserInput{Password: &password})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newsecret")))
}

func TestUserService_GetAndRemove(t *testing.T) {
	svc, users := newUserService()
	users.add(model.User{Cedula: "1", Name: "Ana", Email: "ana@example.com"})

	user, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)

	_, err = svc.Get(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	require.NoError(t, svc.Remove(context.Background(), 1))

	err = svc.Remove(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
