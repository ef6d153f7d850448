// Package authroles maps identity-provider groups onto application roles.
package authroles

import (
	"strings"

	domainauth "github.com/straycare/straycare/internal/domain/auth"
)

// GroupMapper grants RoleNGO to members of NGOGroup and RoleLocal to everyone else.
// Group names compare case-insensitively. An empty NGOGroup never grants NGO.
type GroupMapper struct {
	NGOGroup string
}

func (m GroupMapper) Map(groups []string) domainauth.Role {
	if m.NGOGroup == "" {
		return domainauth.RoleLocal
	}
	for _, g := range groups {
		if strings.EqualFold(strings.TrimSpace(g), m.NGOGroup) {
			return domainauth.RoleNGO
		}
	}
	return domainauth.RoleLocal
}
