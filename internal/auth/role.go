// Package auth provides the authentication boundary for the lab tutor
// service: configured accounts, a closed role enumeration, and JWT
// issuance/verification. The core hint and ingestion services never see
// credentials — only an authenticated Principal.
package auth

import "fmt"

// Role is the closed set of principal roles. Free-form role strings from
// tokens or config are validated into this enumeration at the boundary.
type Role int

const (
	// RoleLearner may ask for hints.
	RoleLearner Role = iota

	// RoleTrainer may additionally mutate the knowledge index.
	RoleTrainer
)

// ParseRole validates a role string into the closed enumeration.
func ParseRole(s string) (Role, error) {
	switch s {
	case "learner":
		return RoleLearner, nil
	case "trainer":
		return RoleTrainer, nil
	default:
		return 0, fmt.Errorf("unknown role %q", s)
	}
}

// String returns the wire form of the role.
func (r Role) String() string {
	if r == RoleTrainer {
		return "trainer"
	}
	return "learner"
}

// CanIngest reports whether the role carries the index-mutation capability.
// Ingestion gating checks this flag, never the role string.
func (r Role) CanIngest() bool {
	return r == RoleTrainer
}

// Principal is an authenticated caller.
type Principal struct {
	Username string
	Role     Role
}
