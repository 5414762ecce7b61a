package normalize

import "strings"

// Slug turns a title into a fandom wiki subdomain guess
// Accents are folded away, then everything except ASCII letters, digits and '_' is dropped
// "Attack on Titan!" -> "attackontitan", "Pokémon" -> "pokemon"
func Slug(title string) string {
	f := Fold(title)
	if f == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(f))
	for _, r := range f {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}
