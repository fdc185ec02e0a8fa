package api

// ThemeMode is the light/dark selection. ThemeModeSystem is a meta-value
// that mirrors the viewer's ambient appearance at resolution time.
type ThemeMode string

const (
	ThemeModeLight  ThemeMode = "light"
	ThemeModeDark   ThemeMode = "dark"
	ThemeModeSystem ThemeMode = "system"
)

type ThemeColor string

type ThemeRadius string

const (
	ThemeRadiusNone   ThemeRadius = "none"
	ThemeRadiusSmall  ThemeRadius = "small"
	ThemeRadiusMedium ThemeRadius = "medium"
	ThemeRadiusLarge  ThemeRadius = "large"
	ThemeRadiusFull   ThemeRadius = "full"
)

type ThemeFont string

const (
	ThemeFontSans  ThemeFont = "sans"
	ThemeFontSerif ThemeFont = "serif"
	ThemeFontMono  ThemeFont = "mono"
)

var (
	// ThemeModeValue is the set of selectable modes.
	ThemeModeValue = []string{"light", "dark", "system"}
	// ThemeColorValue is the closed set of accent color identifiers
	// understood by the storefront stylesheet.
	ThemeColorValue = []string{
		"default", "blue", "green", "red", "purple", "orange", "pink",
		"teal", "indigo", "yellow", "amber", "lime", "emerald", "cyan",
		"sky", "violet", "fuchsia", "rose", "slate", "gray", "zinc",
		"neutral", "stone", "brown", "crimson", "midnight", "coffee",
		"royal", "forest",
	}
	ThemeRadiusValue = []string{"none", "small", "medium", "large", "full"}
	// ThemeFontValue includes the arabic-script families the storefront
	// switches to alongside RTL.
	ThemeFontValue = []string{"sans", "serif", "mono", "cairo", "tajawal", "readex", "noto-sans-arabic"}
	ThemeRTLValue  = []string{"true", "false"}
)

// PreferenceSet is a user's persisted visual configuration. Every field
// always holds a valid member of its enumeration.
type PreferenceSet struct {
	Mode   ThemeMode   `json:"mode"`
	Color  ThemeColor  `json:"color"`
	Radius ThemeRadius `json:"radius"`
	Font   ThemeFont   `json:"font"`
	RTL    bool        `json:"rtl"`
}

// DefaultPreferenceSet returns the built-in defaults applied on first load
// and whenever a persisted value is missing or unrecognized.
func DefaultPreferenceSet() *PreferenceSet {
	return &PreferenceSet{
		Mode:   ThemeModeSystem,
		Color:  "default",
		Radius: ThemeRadiusMedium,
		Font:   ThemeFontSans,
		RTL:    false,
	}
}
