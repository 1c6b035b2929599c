package utils

import (
	"errors"
	"testing"
)

func TestPackageFromCmdline(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    string
		wantErr bool
	}{
		{"只有包名", "com.decker.wheel\x00", "com.decker.wheel", false},
		{"带参数", "com.decker.wheel\x00--flag\x00", "com.decker.wheel", false},
		{"没有结尾 NUL", "com.decker.wheel\n", "com.decker.wheel", false},
		{"空", "", "", true},
		{"只有 NUL", "\x00\x00", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := packageFromCmdline([]byte(tt.data))
			if tt.wantErr {
				if !errors.Is(err, errNoPackage) {
					t.Fatalf("err = %v, want errNoPackage", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("packageFromCmdline(%q) = %q, %v, want %q", tt.data, got, err, tt.want)
			}
		})
	}
}
