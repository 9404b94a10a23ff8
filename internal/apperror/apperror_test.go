package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFoundf("user with id %d not found", 7)))
	assert.Equal(t, KindValidation, KindOf(Validationf("bad input")))
	assert.Equal(t, KindConflict, KindOf(Conflictf("already exists")))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))

	// Класс сохраняется сквозь обёртки fmt.Errorf
	wrapped := fmt.Errorf("check quota: %w", Conflictf("already exists"))
	assert.Equal(t, KindConflict, KindOf(wrapped))
	assert.True(t, IsConflict(wrapped))
	assert.False(t, IsNotFound(wrapped))
}

func TestInternalWrapping(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)

	assert.Equal(t, KindInternal, KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "internal error")
}
