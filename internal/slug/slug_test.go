package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/podryad/podryad/internal/slug"
)

func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Fix my kitchen sink", "fix-my-kitchen-sink"},
		{"Починить кран на кухне", "pochinit-kran-na-kuhne"},
		{"  Скидка 50%!  ", "skidka-50"},
		{"Объявление", "obyavlenie"},
		{"C++ developer (remote)", "c-developer-remote"},
		{"---", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, slug.Make(tc.in), "input %q", tc.in)
	}
}
