package domain

// Built-in role and policy names.
const (
	RoleAdmin   = "Admin"
	PolicyAdmin = "AdminPolicy"
)

// DefaultPolicies is used when no policies are configured.
func DefaultPolicies() map[string][]string {
	return map[string][]string{
		PolicyAdmin: {RoleAdmin},
	}
}
