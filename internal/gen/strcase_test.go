package gen

import "testing"

func TestToCamel(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"no_ai", "NoAi"},
		{"armor_stand", "ArmorStand"},
		{"health", "Health"},
		{"abstract_fish_from_bucket", "AbstractFishFromBucket"},
	}
	for _, c := range cases {
		if got := toCamel(c.in); got != c.want {
			t.Errorf("toCamel(%q) = %q; want %q", c.in, got, c.want)
		}
	}
}

func TestToLowerCamel(t *testing.T) {
	if got := toLowerCamel("shift_key_down"); got != "shiftKeyDown" {
		t.Errorf("toLowerCamel(shift_key_down) = %q", got)
	}
	if got := toLowerCamel("kind"); got != "kind" {
		t.Errorf("toLowerCamel(kind) = %q", got)
	}
}
