package theme

import "testing"

func TestParseRoundTrip(t *testing.T) {
	tests := []string{
		"",
		"\n",
		"single line",
		"a\nb\n\nc",
		"crlf\r\nlines\r\n",
		sampleTheme,
	}

	for _, text := range tests {
		if got := Parse(text).String(); got != text {
			t.Errorf("Parse(%q).String() = %q", text, got)
		}
	}
}

func TestParseClassifiesDirectives(t *testing.T) {
	doc := Parse(sampleTheme)

	want := map[Key]string{
		KeyBackground:       `    --app-bg: url("vencord:///themes/Hintergrundbild/a.png");`,
		KeyAccentHue:        "    --accent-hue: 60;",
		KeyAccentSaturation: "    --accent-saturation: 100%;",
		KeyAccentLightness:  "    --accent-lightness: 99%;",
		KeyAccentTextColor:  "    --accent-text-color: hsl(0,0%,100%);",
	}

	got := doc.Directives()
	if len(got) != len(want) {
		t.Fatalf("Directives() returned %d keys, want %d: %v", len(got), len(want), got)
	}
	for k, w := range want {
		if got[k] != w {
			t.Errorf("Directives()[%s] = %q, want %q", k, got[k], w)
		}
	}
}

func TestParseMatchesWithoutIndent(t *testing.T) {
	doc := Parse("--accent-hue:12;")
	if _, ok := doc.Find(KeyAccentHue); !ok {
		t.Error("unindented directive not recognised")
	}
}

func TestDocumentSetFirstMatchOnly(t *testing.T) {
	doc := Parse("--accent-hue: 1;\n--accent-hue: 2;")
	if !doc.Set(KeyAccentHue, "    --accent-hue: 3;") {
		t.Fatal("Set() reported key missing")
	}

	want := "    --accent-hue: 3;\n--accent-hue: 2;"
	if got := doc.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestDocumentSetMissing(t *testing.T) {
	doc := Parse("body {}")
	if doc.Set(KeyAccentLightness, "x") {
		t.Error("Set() reported success for a missing key")
	}
	if doc.String() != "body {}" {
		t.Errorf("document changed: %q", doc.String())
	}
}

func TestDocumentReplaceAllRetags(t *testing.T) {
	doc := Parse("--old-name: 1;")
	doc.ReplaceAll("--old-name", string(KeyAccentHue))

	if _, ok := doc.Find(KeyAccentHue); !ok {
		t.Error("line not re-tagged after ReplaceAll")
	}
}

func TestDocumentReplaceAllNewContainsOld(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "plain", text: "a.png", want: "ba.png"},
		{name: "already replaced", text: "ba.png", want: "ba.png"},
		{name: "mixed", text: "a.png ba.png a.png", want: "ba.png ba.png ba.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Parse(tt.text)
			doc.ReplaceAll("a.png", "ba.png")
			if got := doc.String(); got != tt.want {
				t.Errorf("ReplaceAll() = %q, want %q", got, tt.want)
			}
		})
	}
}
