package roles

import (
	"testing"

	"lenddesk-service/internal/domain/auth"
)

func officer() *auth.User {
	return &auth.User{ID: "mary@lend.dk", Roles: []string{"Loan Officer", "Accounts User"}}
}

// Requirement: an unrestricted gate opens for anyone, even a missing user; a
// restricted gate never opens for a missing user.
func TestGate_Allows(t *testing.T) {
	tests := []struct {
		name string
		gate Gate
		user *auth.User
		want bool
	}{
		{
			name: "empty gate opens for a user",
			gate: Gate{},
			user: officer(),
			want: true,
		},
		{
			name: "empty gate opens for no user",
			gate: Gate{},
			want: true,
		},
		{
			name: "restricted gate closed for no user",
			gate: Gate{Roles: []string{"Loan Officer"}},
			want: false,
		},
		{
			name: "any-of gate opens on one match",
			gate: Gate{Roles: []string{"Loan Manager", "Loan Officer"}},
			user: officer(),
			want: true,
		},
		{
			name: "any-of gate closed with no match",
			gate: Gate{Roles: []string{"Loan Manager", "System Manager"}},
			user: officer(),
			want: false,
		},
		{
			name: "require-all gate closed on a partial match",
			gate: Gate{Roles: []string{"Loan Officer", "Loan Manager"}, RequireAll: true},
			user: officer(),
			want: false,
		},
		{
			name: "require-all gate opens on a full match",
			gate: Gate{Roles: []string{"Loan Officer", "Accounts User"}, RequireAll: true},
			user: officer(),
			want: true,
		},
		{
			name: "role names match exactly, case-sensitive",
			gate: Gate{Roles: []string{"loan officer"}},
			user: officer(),
			want: false,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if got := test.gate.Allows(test.user); got != test.want {
				t.Errorf("Allows() = %v, want %v", got, test.want)
			}
		})
	}
}

// Requirement: Resolve hands back the gated payload when the gate opens and
// the fallback otherwise.
func TestGate_Resolve(t *testing.T) {
	gate := Gate{Roles: []string{"Loan Manager"}}

	if got := gate.Resolve(officer(), "secret", "denied"); got != "denied" {
		t.Errorf("Resolve() = %v, want fallback", got)
	}
	if got := (Gate{}).Resolve(nil, "secret", "denied"); got != "secret" {
		t.Errorf("Resolve() = %v, want children", got)
	}
}

// Requirement: the role predicates treat a missing user as holding no roles.
func TestRolePredicates(t *testing.T) {
	u := officer()

	if !HasRole(u, "Loan Officer") {
		t.Error("HasRole() should find a held role")
	}
	if HasRole(nil, "Loan Officer") {
		t.Error("HasRole() must be false for a missing user")
	}
	if !HasAnyRole(u, "Loan Manager", "Accounts User") {
		t.Error("HasAnyRole() should match on any held role")
	}
	if HasAnyRole(nil, "Loan Manager") {
		t.Error("HasAnyRole() must be false for a missing user")
	}
	if !HasAllRoles(u, "Loan Officer", "Accounts User") {
		t.Error("HasAllRoles() should match when every role is held")
	}
	if HasAllRoles(u, "Loan Officer", "Loan Manager") {
		t.Error("HasAllRoles() must require every role")
	}
	if HasAllRoles(nil, "Loan Officer") {
		t.Error("HasAllRoles() must be false for a missing user")
	}
}
