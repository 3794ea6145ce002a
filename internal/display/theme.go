// Package display turns parsed review nodes into something a user can look
// at: an HTML fragment for the browser UI or styled text for terminals.
package display

import "github.com/charmbracelet/lipgloss"

type ThemeName string

const (
	ThemeMatrix    ThemeName = "matrix"
	ThemeAmber     ThemeName = "amber"
	ThemeCyberpunk ThemeName = "cyberpunk"
	ThemeIceBlue   ThemeName = "ice"
	ThemeDracula   ThemeName = "dracula"
	ThemeFire      ThemeName = "fire"
	ThemeCyan      ThemeName = "cyan"
)

// Palette is the set of colors a theme contributes to terminal output.
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Inactive  lipgloss.Color
	CodeFg    lipgloss.Color
	CodeBg    lipgloss.Color
}

var palettes = map[ThemeName]Palette{
	ThemeCyan: {
		Primary:   lipgloss.Color("51"),
		Secondary: lipgloss.Color("33"),
		Success:   lipgloss.Color("46"),
		Warning:   lipgloss.Color("226"),
		Error:     lipgloss.Color("196"),
		Inactive:  lipgloss.Color("240"),
		CodeFg:    lipgloss.Color("217"),
		CodeBg:    lipgloss.Color("237"),
	},
	ThemeMatrix: {
		Primary:   lipgloss.Color("82"),
		Secondary: lipgloss.Color("46"),
		Success:   lipgloss.Color("82"),
		Warning:   lipgloss.Color("190"),
		Error:     lipgloss.Color("196"),
		Inactive:  lipgloss.Color("240"),
		CodeFg:    lipgloss.Color("120"),
		CodeBg:    lipgloss.Color("234"),
	},
	ThemeAmber: {
		Primary:   lipgloss.Color("220"),
		Secondary: lipgloss.Color("214"),
		Success:   lipgloss.Color("220"),
		Warning:   lipgloss.Color("208"),
		Error:     lipgloss.Color("196"),
		Inactive:  lipgloss.Color("240"),
		CodeFg:    lipgloss.Color("223"),
		CodeBg:    lipgloss.Color("236"),
	},
	ThemeCyberpunk: {
		Primary:   lipgloss.Color("201"),
		Secondary: lipgloss.Color("141"),
		Success:   lipgloss.Color("51"),
		Warning:   lipgloss.Color("213"),
		Error:     lipgloss.Color("196"),
		Inactive:  lipgloss.Color("240"),
		CodeFg:    lipgloss.Color("219"),
		CodeBg:    lipgloss.Color("235"),
	},
	ThemeIceBlue: {
		Primary:   lipgloss.Color("159"),
		Secondary: lipgloss.Color("39"),
		Success:   lipgloss.Color("51"),
		Warning:   lipgloss.Color("159"),
		Error:     lipgloss.Color("196"),
		Inactive:  lipgloss.Color("240"),
		CodeFg:    lipgloss.Color("195"),
		CodeBg:    lipgloss.Color("236"),
	},
	ThemeDracula: {
		Primary:   lipgloss.Color("141"),
		Secondary: lipgloss.Color("117"),
		Success:   lipgloss.Color("84"),
		Warning:   lipgloss.Color("212"),
		Error:     lipgloss.Color("203"),
		Inactive:  lipgloss.Color("240"),
		CodeFg:    lipgloss.Color("228"),
		CodeBg:    lipgloss.Color("236"),
	},
	ThemeFire: {
		Primary:   lipgloss.Color("9"),
		Secondary: lipgloss.Color("196"),
		Success:   lipgloss.Color("226"),
		Warning:   lipgloss.Color("208"),
		Error:     lipgloss.Color("196"),
		Inactive:  lipgloss.Color("240"),
		CodeFg:    lipgloss.Color("216"),
		CodeBg:    lipgloss.Color("235"),
	},
}

// GetPalette returns the palette for theme, falling back to cyan.
func GetPalette(theme ThemeName) Palette {
	if p, ok := palettes[theme]; ok {
		return p
	}
	return palettes[ThemeCyan]
}

// IsTheme reports whether theme names a known palette.
func IsTheme(theme ThemeName) bool {
	_, ok := palettes[theme]
	return ok
}

func ListThemes() []ThemeName {
	return []ThemeName{
		ThemeCyan,
		ThemeMatrix,
		ThemeAmber,
		ThemeCyberpunk,
		ThemeIceBlue,
		ThemeDracula,
		ThemeFire,
	}
}
