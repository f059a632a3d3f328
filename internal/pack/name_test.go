package pack_test

import (
	"errors"
	"strings"
	"testing"

	"agentpacks-registry/internal/pack"
)

func TestNamePolicyValidate(t *testing.T) {
	p := pack.NewNamePolicy(nil)

	cases := []struct {
		name string
		want error
	}{
		{"my-cool-pack", nil},
		{"ab", nil},
		{"pack2", nil},
		{"a", pack.ErrNameTooShort},
		{"", pack.ErrNameTooShort},
		{"A", pack.ErrNameTooShort},
		{"MyPack", pack.ErrNameInvalid},
		{"my_pack", pack.ErrNameInvalid},
		{"-pack", pack.ErrNameInvalid},
		{"pack-", pack.ErrNameInvalid},
		{"my--pack", pack.ErrNameInvalid},
		{"my pack", pack.ErrNameInvalid},
		{strings.Repeat("a", pack.MaxNameLength+1), pack.ErrNameInvalid},
		{"agentpacks", pack.ErrNameReserved},
		{"admin", pack.ErrNameReserved},
		{"undefined", pack.ErrNameReserved},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := p.Validate(tc.name)
			if !errors.Is(err, tc.want) {
				t.Errorf("Validate(%q) = %v, want %v", tc.name, err, tc.want)
			}
		})
	}
}

func TestNamePolicyCustomReservedList(t *testing.T) {
	p := pack.NewNamePolicy([]string{"Internal-Tools"})

	if err := p.Validate("internal-tools"); !errors.Is(err, pack.ErrNameReserved) {
		t.Errorf("expected reserved, got %v", err)
	}
	if err := p.Validate("agentpacks"); err != nil {
		t.Errorf("custom list should replace defaults, got %v", err)
	}
}
