package enums

import (
	"fmt"
	"strings"
)

// Nivel is the user access level stored on usuarios.nivel.
type Nivel string

const (
	NivelAdmin    Nivel = "Admin"
	NivelVendedor Nivel = "Vendedor"
)

// ParseNivel validates a nivel string, accepting any casing.
func ParseNivel(value string) (Nivel, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "admin":
		return NivelAdmin, nil
	case "vendedor":
		return NivelVendedor, nil
	}
	return "", fmt.Errorf("unknown nivel %q", value)
}

func (n Nivel) IsValid() bool {
	return n == NivelAdmin || n == NivelVendedor
}

func (n Nivel) String() string {
	return string(n)
}
