package errors

import (
	"strings"
	"testing"
)

func TestValidateElementName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Valid", "l_wrist", false},
		{"ValidWithDigits", "joint_02", false},
		{"Empty", "", true},
		{"ControlChar", "elbow\x01", true},
		{"NullByte", "elbow\x00", true},
		{"TooLong", strings.Repeat("a", 257), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateElementName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateElementName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && GetCode(err) != ErrCodeInvalidName {
				t.Errorf("code = %q, want %q", GetCode(err), ErrCodeInvalidName)
			}
		})
	}
}

func TestValidateResourceURI(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"BarePath", "meshes/arm.dae", false},
		{"File", "file:///opt/robot/meshes/arm.dae", false},
		{"Package", "package://romeo_description/meshes/torso.dae", false},
		{"HTTP", "http://example.com/arm.dae", false},
		{"HTTPS", "https://example.com/arm.dae", false},
		{"Empty", "", true},
		{"UnknownScheme", "ftp://example.com/arm.dae", true},
		{"PackageTraversal", "package://desc/../../etc/passwd", true},
		{"PackageEmpty", "package://", true},
		{"TooLong", "file://" + strings.Repeat("a", 500), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResourceURI(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateResourceURI(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
