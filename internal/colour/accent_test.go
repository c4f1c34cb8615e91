package colour

import "testing"

func TestNewAccent(t *testing.T) {
	tests := []struct {
		name   string
		c      HSL
		bright bool
		want   Accent
	}{
		{
			name: "pure red",
			c:    HSL{H: 0, S: 1, L: 0.5},
			want: Accent{Hue: 0, Saturation: 100, Lightness: 50},
		},
		{
			name: "rounds to nearest",
			c:    HSL{H: 210.5, S: 0.756, L: 0.446},
			want: Accent{Hue: 211, Saturation: 76, Lightness: 45},
		},
		{
			name: "hue near 360 wraps",
			c:    HSL{H: 359.7, S: 0.8, L: 0.4},
			want: Accent{Hue: 0, Saturation: 80, Lightness: 40},
		},
		{
			name:   "bright inverts dark lightness",
			c:      HSL{H: 200, S: 0.6, L: 0.2},
			bright: true,
			want:   Accent{Hue: 200, Saturation: 60, Lightness: 80, Inverted: true},
		},
		{
			name:   "bright keeps light lightness",
			c:      HSL{H: 200, S: 0.6, L: 0.7},
			bright: true,
			want:   Accent{Hue: 200, Saturation: 60, Lightness: 70},
		},
		{
			name: "zero triple",
			c:    HSL{},
			want: Accent{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewAccent(tt.c, tt.bright); got != tt.want {
				t.Errorf("NewAccent(%+v, %v) = %+v, want %+v", tt.c, tt.bright, got, tt.want)
			}
		})
	}
}

func TestAccentDarkText(t *testing.T) {
	dark := HSL{H: 200, S: 0.6, L: 0.2}

	if NewAccent(dark, true).DarkText() != true {
		t.Error("inverted lightness 80 should use dark text")
	}
	if NewAccent(dark, false).DarkText() != false {
		t.Error("lightness 20 should use light text")
	}
	if (Accent{Lightness: 50}).DarkText() != true {
		t.Error("lightness 50 should use dark text")
	}
}

func TestAccentString(t *testing.T) {
	a := Accent{Hue: 12, Saturation: 34, Lightness: 56}
	if got, want := a.String(), "hsl(12, 34%, 56%)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
