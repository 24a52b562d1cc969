package theme

// Styling for the preview window. InitStyles activates a base theme and
// configures the semantic widget styles referenced by the views.

import (
	tk "modernc.org/tk9.0"
)

// Palette defines core semantic colors used across widgets.
const (
	ColorBg       = "#f7f9fb" // app background
	ColorSurface  = "#ffffff" // panels, cards
	ColorPrimary  = "#2563eb" // buttons, accents
	ColorDanger   = "#dc2626"
	ColorAccent   = "#10b981" // idle gate
	ColorCooldown = "#f59e0b" // cooldown gate
	ColorText     = "#1e293b"
)

// PaletteSnapshot represents resolved colors for the active mode.
type PaletteSnapshot struct {
	AppBg    string
	Surface  string
	Primary  string
	Danger   string
	Accent   string
	Cooldown string
	Text     string
}

// Palette returns the colors for light or dark mode.
func Palette(dark bool) PaletteSnapshot {
	if dark {
		return PaletteSnapshot{
			AppBg:    "#0f172a",
			Surface:  "#1e293b",
			Primary:  "#3b82f6",
			Danger:   "#ef4444",
			Accent:   "#10b981",
			Cooldown: "#d97706",
			Text:     "#f1f5f9",
		}
	}
	return PaletteSnapshot{
		AppBg:    ColorBg,
		Surface:  ColorSurface,
		Primary:  ColorPrimary,
		Danger:   ColorDanger,
		Accent:   ColorAccent,
		Cooldown: ColorCooldown,
		Text:     ColorText,
	}
}

// style names used with Style("primary.TButton") etc.
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleIdleLabel     = "idle.TLabel"
	StyleCooldownLabel = "cooldown.TLabel"
	StyleInfoLabel     = "info.TLabel"
)

// StateStyle returns the label style for a gate state name.
func StateStyle(state string) string {
	if state == "cooldown" {
		return StyleCooldownLabel
	}
	return StyleIdleLabel
}

// InitStyles applies the palette for the given mode.
func InitStyles(dark bool) {
	p := Palette(dark)
	_ = tk.ActivateTheme("azure light") // baseline metrics
	tk.App.Configure(tk.Background(p.AppBg))

	tk.StyleConfigure(StylePrimaryButton,
		tk.Background(p.Primary),
		tk.Foreground("white"),
		tk.Padding("4p 3p"),
		tk.Borderwidth(1),
		tk.Relief("ridge"),
	)
	tk.StyleConfigure(StyleDangerButton,
		tk.Background(p.Danger),
		tk.Foreground("white"),
		tk.Padding("4p 3p"),
		tk.Borderwidth(1),
		tk.Relief("ridge"),
	)
	tk.StyleConfigure(StyleIdleLabel,
		tk.Foreground("white"),
		tk.Background(p.Accent),
		tk.Padding("4p 2p"),
		tk.Borderwidth(1),
		tk.Relief("groove"),
	)
	tk.StyleConfigure(StyleCooldownLabel,
		tk.Foreground("white"),
		tk.Background(p.Cooldown),
		tk.Padding("4p 2p"),
		tk.Borderwidth(1),
		tk.Relief("groove"),
	)
	tk.StyleConfigure(StyleInfoLabel,
		tk.Foreground(p.Text),
		tk.Background(p.Surface),
		tk.Padding("2p 1p"),
	)
}
