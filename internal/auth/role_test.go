package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	learner, err := ParseRole("learner")
	require.NoError(t, err)
	assert.Equal(t, RoleLearner, learner)

	trainer, err := ParseRole("trainer")
	require.NoError(t, err)
	assert.Equal(t, RoleTrainer, trainer)

	for _, bad := range []string{"", "admin", "Trainer", "LEARNER"} {
		_, err := ParseRole(bad)
		assert.Error(t, err, "role=%q", bad)
	}
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "learner", RoleLearner.String())
	assert.Equal(t, "trainer", RoleTrainer.String())
}

func TestCanIngest(t *testing.T) {
	assert.True(t, RoleTrainer.CanIngest())
	assert.False(t, RoleLearner.CanIngest())
}
