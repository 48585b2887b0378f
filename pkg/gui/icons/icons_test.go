package icons

import "testing"

// snapshot saves every mutable icon so tests can restore them.
func snapshot() func() {
	saved := []*string{&APP_ICON, &GROUPS_ICON, &NAMES_ICON, &PREVIEW_ICON, &COMMAND_ICON,
		&KEYBOARD_ICON, &GLYPH, &ALIAS, &FOLDER, &SELECTED, &LOADING, &ERROR, &SUCCESS,
		&WARNING, &EXPORT, &SEARCH}
	values := make([]string, len(saved))
	for i, p := range saved {
		values[i] = *p
	}
	wasEnabled := enabled
	return func() {
		for i, p := range saved {
			*p = values[i]
		}
		enabled = wasEnabled
	}
}

func TestSetEnabled(t *testing.T) {
	defer snapshot()()

	SetEnabled(true)
	if !IsEnabled() {
		t.Error("IsEnabled() should be true after SetEnabled(true)")
	}

	SetEnabled(false)
	if IsEnabled() {
		t.Error("IsEnabled() should be false after SetEnabled(false)")
	}

	// Verify icons are cleared when disabled
	if GROUPS_ICON != "" {
		t.Error("GROUPS_ICON should be empty when disabled")
	}
	if GLYPH != "" {
		t.Error("GLYPH should be empty when disabled")
	}

	// Verify fallback icons are set
	if SUCCESS != "✓" {
		t.Errorf("SUCCESS should be '✓' when disabled, got %q", SUCCESS)
	}
	if ERROR != "✗" {
		t.Errorf("ERROR should be '✗' when disabled, got %q", ERROR)
	}
	if SELECTED != "✓" {
		t.Errorf("SELECTED should be '✓' when disabled, got %q", SELECTED)
	}
}

func TestPatchForNerdFontsV2(t *testing.T) {
	defer snapshot()()

	PatchForNerdFontsV2()

	if GLYPH != "\uf1c5" {
		t.Errorf("GLYPH should be patched for v2, got %q", GLYPH)
	}
	if FOLDER != "\uf07b" {
		t.Errorf("FOLDER should be patched for v2, got %q", FOLDER)
	}
	if EXPORT != "\uf0c7" {
		t.Errorf("EXPORT should be patched for v2, got %q", EXPORT)
	}
}

func TestConfigure(t *testing.T) {
	tests := []struct {
		name        string
		show        bool
		version     string
		wantEnabled bool
		wantGlyph   string
	}{
		{"v3", true, "3", true, "\U000f021f"},
		{"v2", true, "2", true, "\uf1c5"},
		{"hidden", false, "3", false, ""},
		{"unknown version", true, "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer snapshot()()
			enabled = true
			GLYPH = "\U000f021f"

			Configure(tt.show, tt.version)

			if IsEnabled() != tt.wantEnabled {
				t.Errorf("IsEnabled() = %v, want %v", IsEnabled(), tt.wantEnabled)
			}
			if GLYPH != tt.wantGlyph {
				t.Errorf("GLYPH = %q, want %q", GLYPH, tt.wantGlyph)
			}
		})
	}
}
