package theme

import "github.com/charmbracelet/lipgloss"

func c(dark, light string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: dark, Light: light}
}

func init() {
	Register("catppuccin", Palette{
		Primary:             c("#89b4fa", "#1e66f5"),
		Secondary:           c("#cba6f7", "#8839ef"),
		Accent:              c("#fab387", "#fe640b"),
		Error:               c("#f38ba8", "#d20f39"),
		Warning:             c("#fab387", "#fe640b"),
		Success:             c("#a6e3a1", "#40a02b"),
		Info:                c("#89b4fa", "#1e66f5"),
		Text:                c("#cdd6f4", "#4c4f69"),
		TextMuted:           c("#6c7086", "#9ca0b0"),
		Background:          c("#1e1e2e", "#eff1f5"),
		BackgroundSecondary: c("#313244", "#e6e9ef"),
		BorderNormal:        c("#6c7086", "#9ca0b0"),
		BorderFocused:       c("#89b4fa", "#1e66f5"),
		BorderDim:           c("#45475a", "#ccd0da"),
	})

	// https://draculatheme.com/contribute
	Register("dracula", Palette{
		Primary:             c("#bd93f9", "#7e57c2"),
		Secondary:           c("#8be9fd", "#0097a7"),
		Accent:              c("#f1fa8c", "#f9a825"),
		Error:               c("#ff5555", "#d32f2f"),
		Warning:             c("#ffb86c", "#ef6c00"),
		Success:             c("#50fa7b", "#388e3c"),
		Info:                c("#8be9fd", "#1976d2"),
		Text:                c("#f8f8f2", "#212121"),
		TextMuted:           c("#6272a4", "#757575"),
		Background:          c("#282a36", "#ffffff"),
		BackgroundSecondary: c("#44475a", "#e0e0e0"),
		BorderNormal:        c("#6272a4", "#bdbdbd"),
		BorderFocused:       c("#bd93f9", "#7e57c2"),
		BorderDim:           c("#44475a", "#e0e0e0"),
	})

	// https://www.nordtheme.com/docs/colors-and-palettes
	Register("nord", Palette{
		Primary:             c("#88C0D0", "#5E81AC"),
		Secondary:           c("#81A1C1", "#81A1C1"),
		Accent:              c("#8FBCBB", "#8FBCBB"),
		Error:               c("#BF616A", "#BF616A"),
		Warning:             c("#D08770", "#D08770"),
		Success:             c("#A3BE8C", "#A3BE8C"),
		Info:                c("#88C0D0", "#5E81AC"),
		Text:                c("#ECEFF4", "#2E3440"),
		TextMuted:           c("#8B95A7", "#3B4252"),
		Background:          c("#2E3440", "#ECEFF4"),
		BackgroundSecondary: c("#3B4252", "#E5E9F0"),
		BorderNormal:        c("#434C5E", "#4C566A"),
		BorderFocused:       c("#4C566A", "#434C5E"),
		BorderDim:           c("#434C5E", "#4C566A"),
	})

	Register("solarized", Palette{
		Primary:             c("#268bd2", "#268bd2"),
		Secondary:           c("#6c71c4", "#6c71c4"),
		Accent:              c("#2aa198", "#2aa198"),
		Error:               c("#dc322f", "#dc322f"),
		Warning:             c("#b58900", "#b58900"),
		Success:             c("#859900", "#859900"),
		Info:                c("#cb4b16", "#cb4b16"),
		Text:                c("#839496", "#657b83"),
		TextMuted:           c("#586e75", "#93a1a1"),
		Background:          c("#002b36", "#fdf6e3"),
		BackgroundSecondary: c("#073642", "#eee8d5"),
		BorderNormal:        c("#073642", "#eee8d5"),
		BorderFocused:       c("#586e75", "#93a1a1"),
		BorderDim:           c("#073642", "#eee8d5"),
	})

	Register("tokyonight", Palette{
		Primary:             c("#82aaff", "#2e7de9"),
		Secondary:           c("#c099ff", "#9854f1"),
		Accent:              c("#ff966c", "#b15c00"),
		Error:               c("#ff757f", "#f52a65"),
		Warning:             c("#ff966c", "#b15c00"),
		Success:             c("#c3e88d", "#587539"),
		Info:                c("#7dcfff", "#0db9d7"),
		Text:                c("#c8d3f5", "#3760bf"),
		TextMuted:           c("#636da6", "#848cb5"),
		Background:          c("#222436", "#e1e2e7"),
		BackgroundSecondary: c("#2f334d", "#c8c9ce"),
		BorderNormal:        c("#3b4261", "#a8aecb"),
		BorderFocused:       c("#82aaff", "#2e7de9"),
		BorderDim:           c("#292e42", "#c8c9ce"),
	})
}
