package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredValidator(t *testing.T) {
	t.Parallel()
	require.NoError(t, ValueRequired("abc"))
	assert.Equal(t, "value is required", ValueRequired("").Error())
	assert.Equal(t, "value is required", ValueRequired("\t").Error())
	assert.Equal(t, "value is required", ValueRequired(" ").Error())
	assert.Equal(t, "value is required", ValueRequired(123).Error())
}
