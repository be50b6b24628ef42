package config

// Role strings accepted in user account configuration.
// The auth package converts them into its closed Role enumeration.
const (
	RoleTrainer = "trainer"
	RoleLearner = "learner"
)

// User is a configured account. Passwords are plaintext in the config source
// (env-provisioned per deployment) and bcrypt-hashed at startup by the auth
// package; they are never logged and never persisted.
type User struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"` // SENSITIVE
	Role     string `mapstructure:"role"`
}
