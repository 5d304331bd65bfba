package prefs

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// LoadTheme returns the stored theme; anything unrecognised reads as light.
func LoadTheme(s Store) Theme {
	if v, ok := s.Get(KeyTheme); ok && Theme(v) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// ToggleTheme flips the theme and persists it. On a failed write the
// previous theme is returned with the error.
func ToggleTheme(s Store) (Theme, error) {
	cur := LoadTheme(s)
	next := ThemeDark
	if cur == ThemeDark {
		next = ThemeLight
	}
	if err := s.Set(KeyTheme, string(next)); err != nil {
		return cur, err
	}
	return next, nil
}
