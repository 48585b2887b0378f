package icons

// Nerd Font icons for the lazyicons UI.
// These require a Nerd Font to display correctly.
// See: https://www.nerdfonts.com/cheat-sheet

var enabled = true

// IsEnabled returns whether icons are enabled
func IsEnabled() bool {
	return enabled
}

// SetEnabled enables or disables icons globally
func SetEnabled(e bool) {
	enabled = e
	if !e {
		disableAllIcons()
	}
}

// Configure applies the ui.showIcons and ui.nerdFontsVersion settings.
// Unknown versions disable icons.
func Configure(show bool, nerdFontsVersion string) {
	if !show {
		SetEnabled(false)
		return
	}
	switch nerdFontsVersion {
	case "2":
		PatchForNerdFontsV2()
	case "3":
	default:
		SetEnabled(false)
	}
}

var (
	// Panel title icons
	APP_ICON      = "\U000f0ecb" // 󰻋 (shape)
	GROUPS_ICON   = "\U000f02e9" // 󰋩 (image-multiple)
	NAMES_ICON    = "\U000f04fc" // 󰓼 (tag-multiple)
	PREVIEW_ICON  = "\U000f0208" // 󰈈 (eye)
	COMMAND_ICON  = "\U000f018d" // 󰆍 (console)
	KEYBOARD_ICON = "\U000f030c" // 󰌌 (keyboard)

	// List icons
	GLYPH  = "\U000f021f" // 󰈟 (file-image)
	ALIAS  = "\U000f04f9" // 󰓹 (tag)
	FOLDER = "\U000f024b" // 󰉋

	// Status icons
	SELECTED = "\U000f012c" // 󰄬 (check)
	LOADING  = "\U000f0772" // 󰝲 (loading)
	ERROR    = "\U000f0159" // 󰅙 (close-circle)
	SUCCESS  = "\U000f0134" // 󰄴 (check-circle)
	WARNING  = "\U000f0026" // 󰀦 (alert)

	// Action icons
	EXPORT = "\U000f0193" // 󰆓 (content-save)
	SEARCH = "\U000f0349" // 󰍉 (magnify)
)

// disableAllIcons sets all icons to empty strings for graceful fallback
func disableAllIcons() {
	APP_ICON = ""
	GROUPS_ICON = ""
	NAMES_ICON = ""
	PREVIEW_ICON = ""
	COMMAND_ICON = ""
	KEYBOARD_ICON = ""
	GLYPH = ""
	ALIAS = ""
	FOLDER = ""
	SELECTED = "✓"
	LOADING = "…"
	ERROR = "✗"
	SUCCESS = "✓"
	WARNING = "!"
	EXPORT = ""
	SEARCH = ""
}

// PatchForNerdFontsV2 updates icons for Nerd Fonts v2 compatibility
func PatchForNerdFontsV2() {
	GROUPS_ICON = "\uf03e"
	GLYPH = "\uf1c5"
	ALIAS = "\uf02b"
	FOLDER = "\uf07b"
	EXPORT = "\uf0c7"
}
