package auth

import (
	"fmt"
	"strconv"
	"strings"
)

type Role int

const (
	RoleCliente Role = iota
	RoleFuncionario
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleCliente:
		return "Cliente"
	case RoleFuncionario:
		return "Funcionario"
	case RoleAdmin:
		return "Admin"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

func (r Role) Valid() bool {
	return r >= RoleCliente && r <= RoleAdmin
}

// IsStaff reports whether the role can see and move every order.
func (r Role) IsStaff() bool {
	return r == RoleFuncionario || r == RoleAdmin
}

// ParseRole accepts a role name or its numeric value.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		r := Role(n)
		if !r.Valid() {
			return 0, fmt.Errorf("invalid role %d", n)
		}
		return r, nil
	}
	for r := RoleCliente; r <= RoleAdmin; r++ {
		if strings.EqualFold(r.String(), s) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("invalid role %q", s)
}
