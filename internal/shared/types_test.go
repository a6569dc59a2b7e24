package shared

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalUnmarshal(t *testing.T) {
	type payload struct {
		Bio Optional[string] `json:"bio,omitzero"`
	}

	t.Run("absent field stays unset", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
		assert.False(t, p.Bio.Set)
	})

	t.Run("explicit null is set but not valid", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"bio":null}`), &p))
		assert.True(t, p.Bio.Set)
		assert.False(t, p.Bio.Valid)
	})

	t.Run("value is set and valid", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"bio":"hello"}`), &p))
		assert.True(t, p.Bio.Set)
		assert.True(t, p.Bio.Valid)
		assert.Equal(t, "hello", p.Bio.Value)
	})

	t.Run("type mismatch errors", func(t *testing.T) {
		var p payload
		assert.Error(t, json.Unmarshal([]byte(`{"bio":42}`), &p))
	})
}

func TestValidatePageWindow(t *testing.T) {
	assert.NoError(t, ValidatePageWindow(1, 0))
	assert.NoError(t, ValidatePageWindow(MaxLimit, 500))

	assert.Error(t, ValidatePageWindow(0, 0))
	assert.Error(t, ValidatePageWindow(-1, 0))
	assert.Error(t, ValidatePageWindow(MaxLimit+1, 0))
	assert.Error(t, ValidatePageWindow(10, -1))
}
