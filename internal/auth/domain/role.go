package domain

import (
	"fmt"
	"strings"
)

// Role is the single functional capacity an account holds.
type Role string

const (
	RoleClient Role = "CLIENT"
	RoleLawyer Role = "LAWYER"
	RoleJudge  Role = "JUDGE"
)

// roleTransitions whitelists every allowed role change. Anything absent is rejected.
var roleTransitions = map[Role][]Role{
	RoleClient: {RoleLawyer, RoleJudge},
}

// ParseRole accepts a stored or user-supplied role name, ignoring case and surrounding space.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleClient, RoleLawyer, RoleJudge:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// CanTransitionTo reports whether an account in role r may be promoted to next.
func (r Role) CanTransitionTo(next Role) bool {
	for _, allowed := range roleTransitions[r] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (r Role) String() string { return string(r) }

// LawyerType is the practice area of a lawyer. Values match the stored smallint codes.
type LawyerType int

const (
	LawyerTypeCivil LawyerType = iota + 1
	LawyerTypeCriminal
	LawyerTypeFamily
	LawyerTypeCorporate
)

var lawyerTypeNames = map[LawyerType]string{
	LawyerTypeCivil:     "CIVIL",
	LawyerTypeCriminal:  "CRIMINAL",
	LawyerTypeFamily:    "FAMILY",
	LawyerTypeCorporate: "CORPORATE",
}

// ParseLawyerType accepts either the numeric code ("1".."4") or the name, case-insensitively.
// An empty string yields LawyerTypeCivil.
func ParseLawyerType(s string) (LawyerType, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return LawyerTypeCivil, nil
	}
	for t, name := range lawyerTypeNames {
		if s == name || s == fmt.Sprint(int(t)) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown lawyer type %q", s)
}

func (t LawyerType) Valid() bool {
	_, ok := lawyerTypeNames[t]
	return ok
}

func (t LawyerType) String() string {
	if name, ok := lawyerTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("LawyerType(%d)", int(t))
}

func (t LawyerType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid lawyer type %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *LawyerType) UnmarshalText(b []byte) error {
	v, err := ParseLawyerType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
