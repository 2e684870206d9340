package helper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestWithReadRetry_SuccessAfterTransientError(t *testing.T) {
	calls := 0
	err := WithReadRetry(3, func() error {
		calls++
		if calls < 2 {
			return errors.New("connection reset")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithReadRetry_TransientErrorExhaustsAttempts(t *testing.T) {
	calls := 0
	sentinel := errors.New("timeout")
	err := WithReadRetry(3, func() error {
		calls++
		return sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 3, calls)
}

// Not found adalah hasil, bukan gangguan — tidak boleh di-retry.
func TestWithReadRetry_NotFoundBailsImmediately(t *testing.T) {
	calls := 0
	err := WithReadRetry(3, func() error {
		calls++
		return gorm.ErrRecordNotFound
	})

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Equal(t, 1, calls)
}

func TestWithReadRetry_AttemptsFloorIsOne(t *testing.T) {
	calls := 0
	err := WithReadRetry(0, func() error {
		calls++
		return errors.New("boom")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
