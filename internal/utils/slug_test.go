// internal/utils/slug_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Remera Oversize", "remera-oversize"},
		{"Camisón Ñandú", "camison-nandu"},
		{"  Buzo   Canguro  ", "buzo-canguro"},
		{"Edición Cápsula 2026", "edicion-capsula-2026"},
		{"Remera 100% Algodón", "remera-100-algodon"},
		{"ZAPATILLA/URBANA", "zapatilla-urbana"},
		{"---", ""},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "input %q", tc.in)
	}
}
