package pipeline

import "strings"

// Requirement is an authorization requirement attached to a request type at registration.
// A requirement with no roles and no policies only demands an authenticated principal.
type Requirement struct {
	// Roles are alternatives: the principal needs at least one role listed across all
	// requirements. Entries may hold comma-separated lists.
	Roles []string
	// Policies are cumulative: every policy listed across all requirements must pass.
	Policies []string
}

// RequireAuthenticated demands an authenticated principal.
func RequireAuthenticated() Requirement {
	return Requirement{}
}

// RequireRoles demands one of the comma-separated roles.
func RequireRoles(roles string) Requirement {
	return Requirement{Roles: splitRoles(roles)}
}

// RequirePolicies demands every named policy.
func RequirePolicies(policies ...string) Requirement {
	return Requirement{Policies: policies}
}

func splitRoles(roles string) []string {
	var result []string
	for _, role := range strings.Split(roles, ",") {
		if role = strings.TrimSpace(role); role != "" {
			result = append(result, role)
		}
	}
	return result
}

// flattenRequirements collects the distinct roles and policies of reqs in declaration order.
func flattenRequirements(reqs []Requirement) (roles, policies []string) {
	seenRoles := map[string]bool{}
	seenPolicies := map[string]bool{}

	for _, req := range reqs {
		for _, entry := range req.Roles {
			for _, role := range splitRoles(entry) {
				if !seenRoles[role] {
					seenRoles[role] = true
					roles = append(roles, role)
				}
			}
		}
		for _, policy := range req.Policies {
			policy = strings.TrimSpace(policy)
			if policy != "" && !seenPolicies[policy] {
				seenPolicies[policy] = true
				policies = append(policies, policy)
			}
		}
	}

	return roles, policies
}
