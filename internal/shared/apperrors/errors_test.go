package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	detailed := ErrInvalidSlotSpec.WithDetail("slot %d: start must be before end", 2)

	assert.True(t, errors.Is(detailed, ErrInvalidSlotSpec))
	assert.False(t, errors.Is(detailed, ErrEmptySlotList))
	assert.Equal(t, "slot specification is invalid: slot 2: start must be before end", detailed.Error())
	assert.Empty(t, ErrInvalidSlotSpec.Detail, "sentinel must not be mutated")
}

func TestErrorIsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("reserve: %w", ErrSoldOut)

	assert.True(t, errors.Is(err, ErrSoldOut))
	assert.Equal(t, KindCapacityExhausted, KindOf(err))
	assert.Equal(t, "sold_out", CodeOf(err))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("deadlock detected")
	err := ErrStoreUnavailable.Wrap(cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.True(t, IsRetryable(err))
	assert.False(t, IsRetryable(ErrTicketNotFound))
}

func TestKindOfUnclassified(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, "internal_error", CodeOf(errors.New("boom")))
}
