package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindClassification(t *testing.T) {
	assert.True(t, IsValidation(Validation("bad input")))
	assert.True(t, IsNotFound(NotFound("author")))
	assert.True(t, IsConflict(Conflict("duplicate")))

	// Unclassified errors fall through to internal.
	assert.Equal(t, KindInternal, KindOf(errors.New("driver exploded")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestKindSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("while updating: %w", NotFound("book"))
	assert.True(t, IsNotFound(wrapped))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(wrapped))
}

func TestHTTPStatusAndCode(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{Validation("x"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{NotFound("x"), http.StatusNotFound, "NOT_FOUND"},
		{Conflict("x"), http.StatusConflict, "CONFLICT"},
		{errors.New("x"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, c := range cases {
		assert.Equal(t, c.status, HTTPStatus(c.err))
		assert.Equal(t, c.code, Code(c.err))
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "author not found", NotFound("author").Error())
	assert.Equal(t, "limit: out of range", ValidationField("limit", "out of range").Error())
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internalf(cause, "query authors")
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "query authors", err.Error())
}
