package domain

import "testing"

func TestIsDataDocument(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"./spec.yaml", true},
		{"./spec.yml", true},
		{"./SPEC.YAML", true},
		{"../config/App.Yml", true},
		{"/abs/path/openapi.yaml", true},
		{"./spec.yaml.ts", false},
		{"./spec.json", false},
		{"yaml", false},
		{"./module", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDataDocument(tt.name); got != tt.want {
				t.Errorf("IsDataDocument(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
