package manifest

import "testing"

func TestCheckRequires(t *testing.T) {
	tests := []struct {
		name     string
		requires string
		engine   string
		wantErr  bool
	}{
		{"no constraint", "", "0.1.0", false},
		{"satisfied", ">= 0.1.0", "0.2.3", false},
		{"satisfied with v prefix", ">= 0.1.0", "v0.2.3", false},
		{"too old", ">= 0.3.0", "0.2.0", true},
		{"range satisfied", ">= 0.1.0, < 1.0.0", "0.5.0", false},
		{"range exceeded", ">= 0.1.0, < 1.0.0", "1.2.0", true},
		{"dev build bypasses", ">= 99.0.0", "dev", false},
		{"bad constraint", "not-a-range!!", "0.1.0", true},
		{"bad engine version", ">= 0.1.0", "garbage", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &File{Name: "stock", Requires: tt.requires}
			err := f.CheckRequires(tt.engine)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
