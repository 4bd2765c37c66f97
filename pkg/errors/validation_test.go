package errors

import "testing"

func TestValidateLegendName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple name", "default", false},
		{"with spaces", "right hand legend", false},
		{"empty", "", true},
		{"control character", "bad\x01name", true},
		{"too long", string(make([]byte, 200)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLegendName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLegendName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty means default", "", false},
		{"six digit", "#4C9AFF", false},
		{"three digit", "#fff", false},
		{"missing hash", "4C9AFF", true},
		{"bad digits", "#GGHHII", true},
		{"wrong length", "#12345", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSpacingPercent(t *testing.T) {
	tests := []struct {
		name    string
		pct     int
		wantErr bool
	}{
		{"zero", 0, false},
		{"mid range", 50, false},
		{"full", 100, false},
		{"negative", -1, true},
		{"over 100", 101, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSpacingPercent("column", tt.pct)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSpacingPercent(%d) error = %v, wantErr %v", tt.pct, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSpacing) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidSpacing)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative path", "examples/quarterly.toml", false},
		{"absolute path", "/etc/charts/quarterly.toml", false},
		{"empty", "", true},
		{"traversal", "../secrets.toml", true},
		{"backslash", "charts\\quarterly.toml", true},
		{"null byte", "chart\x00.toml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
