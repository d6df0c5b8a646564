package utils

import "testing"

func TestIsNetworkDrive(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"//server/share/frames", true},
		{"\\\\server\\share\\frames", true},
		{"/mnt/radar/sweeps", true},
		{"/media/usb/frames", true},
		{"/Volumes/archive/frames", true},
		{"/srv/nfs-export/frames", true},
		{"/home/user/frames", false},
		{"/tmp/frames", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsNetworkDrive(tt.path); got != tt.want {
				t.Errorf("IsNetworkDrive(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
