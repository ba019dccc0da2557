package errs_test

import (
	"errors"
	"testing"

	"deliveryportal/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("should format without cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", "PED-000042")

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, "object not found: PED-000042", err.Error())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should format with cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewObjectNotFoundErrorWithCause("order", "42", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "object not found: param is: order, ID is: 42 (cause: connection reset)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	err := errs.NewValueIsInvalidErrorWithCause("status is invalid", errors.New("shipped is not a valid status"))

	assert.Equal(t, "value is invalid: status is invalid (cause: shipped is not a valid status)", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, "value is invalid: city", errs.NewValueIsInvalidError("city").Error())
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("should format bounds", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("limit", 500, 1, 100)

		assert.Equal(t, "value is invalid: 500 is limit, min value is 1, max value is 100", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should strip newlines from the value", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeErrorWithCause("notes", "line one\nline two", 0, 10, errors.New("too long"))

		assert.NotContains(t, err.Error(), "\n")
		assert.Contains(t, err.Error(), "line one line two")
		assert.Contains(t, err.Error(), "(cause: too long)")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("pickup city")

	assert.Equal(t, "value is required: pickup city", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	withCause := errs.NewValueIsRequiredErrorWithCause("pickup city", errors.New("blank"))
	assert.Equal(t, "value is required: pickup city (cause: blank)", withCause.Error())
}

func TestVersionIsInvalidError(t *testing.T) {
	err := errs.NewVersionIsInvalidError("status", errors.New("expected received"))

	assert.Equal(t, "version is invalid: status (cause: expected received)", err.Error())
	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	assert.Equal(t, "version is invalid: status", errs.NewVersionIsInvalidErrorWithCause("status").Error())
}

func TestErrorsAreDistinguishable(t *testing.T) {
	var target *errs.ValueIsRequiredError
	err := error(errs.NewValueIsRequiredError("dropoff city"))

	require.ErrorAs(t, err, &target)
	assert.Equal(t, "dropoff city", target.ParamName)
	assert.NotErrorIs(t, err, errs.ErrValueIsInvalid)
}
