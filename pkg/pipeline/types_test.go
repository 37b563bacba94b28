package pipeline

import "testing"

func TestIntermediatePath(t *testing.T) {
	tests := []struct {
		output string
		want   string
	}{
		{"C:/out/shot.mp4", "C:/out/shot.avi"},
		{"/tmp/take.v2.mp4", "/tmp/take.v2.avi"},
		{"/tmp/noext", "/tmp/noext.avi"},
	}
	for _, tt := range tests {
		if got := IntermediatePath(tt.output); got != tt.want {
			t.Errorf("IntermediatePath(%q) = %q, want %q", tt.output, got, tt.want)
		}
	}
}

func TestParseTimeMode(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeMode
		wantErr bool
	}{
		{"", TimePlayback, false},
		{"playback", TimePlayback, false},
		{"Explicit", TimeExplicit, false},
		{"custom", TimeExplicit, false},
		{"sometimes", TimePlayback, true},
	}
	for _, tt := range tests {
		got, err := ParseTimeMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTimeMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseTimeMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTimeRange_Frames(t *testing.T) {
	if got := (TimeRange{Start: 0, End: 120}).Frames(); got != 121 {
		t.Errorf("Frames() = %v, want 121", got)
	}
}
