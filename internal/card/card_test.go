package card

import (
	"bytes"
	"database/sql"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/lox/barocast/internal/forecast"
	"github.com/lox/barocast/internal/models"
)

func testSnapshot(t *testing.T, lang forecast.Language, at time.Time, isNight bool) *forecast.Snapshot {
	t.Helper()
	engine := forecast.NewEngine(forecast.Options{PressureIsSeaLevel: true, Northern: true, Language: lang})
	snap, err := engine.Refresh(at, models.Reading{
		Pressure:    sql.NullFloat64{Float64: 995, Valid: true},
		Temperature: sql.NullFloat64{Float64: 18.4, Valid: true},
	}, isNight)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	return snap
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#0f0f1a", color.RGBA{R: 0x0f, G: 0x0f, B: 0x1a, A: 255}},
		{"ffffff", color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{"#fff", color.RGBA{A: 255}},
		{"#zzzzzz", color.RGBA{A: 255}},
	}
	for _, tt := range tests {
		if got := parseHex(tt.in); got != tt.want {
			t.Errorf("parseHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	for _, isNight := range []bool{false, true} {
		snap := testSnapshot(t, forecast.LangEN, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), isNight)

		data, err := Render(Data{Snapshot: snap, Station: "Home"})
		if err != nil {
			t.Fatalf("Render: %v", err)
		}

		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if b := img.Bounds(); b.Dx() != Width || b.Dy() != Height {
			t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), Width, Height)
		}

		want := parseHex(forecast.GetPalette(snap.Zambretti.Forecast[0], isNight).Background)
		r, g, b, _ := img.At(5, 5).RGBA()
		if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
			t.Errorf("night=%v background = %v/%v/%v, want %v", isNight, r>>8, g>>8, b>>8, want)
		}
	}
}

func TestRender_AllLanguages(t *testing.T) {
	for _, lang := range []forecast.Language{forecast.LangDE, forecast.LangEN, forecast.LangEL, forecast.LangIT, forecast.LangFR} {
		snap := testSnapshot(t, lang, time.Date(2025, 1, 15, 6, 0, 0, 0, time.UTC), false)
		if _, err := Render(Data{Snapshot: snap}); err != nil {
			t.Errorf("Render(%s): %v", lang.Code(), err)
		}
	}
}

func TestRender_NoSnapshot(t *testing.T) {
	if _, err := Render(Data{}); err == nil {
		t.Error("expected error without a snapshot")
	}
}

func TestLabelsFor(t *testing.T) {
	if got := labelsFor(forecast.LangDE).now; got != "Jetzt" {
		t.Errorf("de now = %q", got)
	}
	if got := labelsFor(forecast.Language(42)).unavailable; got != "unavailable" {
		t.Errorf("invalid language fallback = %q", got)
	}
}

func TestTempText(t *testing.T) {
	l := labelsFor(forecast.LangEN)
	if got := tempText(forecast.TempProjection{Value: 19.2, Available: true}, l); got != "19.2°C" {
		t.Errorf("tempText = %q", got)
	}
	if got := tempText(forecast.TempProjection{Selector: -1}, l); got != "unavailable" {
		t.Errorf("tempText unavailable = %q", got)
	}
}

func TestWrapText(t *testing.T) {
	loadFonts()
	if fontErr != nil {
		t.Fatalf("fonts: %v", fontErr)
	}

	if got := wrapText("Settled fine", faceRegular, 1000); len(got) != 1 || got[0] != "Settled fine" {
		t.Errorf("short text = %q", got)
	}
	if got := wrapText("", faceRegular, 1000); got != nil {
		t.Errorf("empty text = %q", got)
	}

	long := strings.Repeat("Unsettled, rain later ", 20)
	lines := wrapText(long, faceRegular, 400)
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if !strings.HasSuffix(lines[1], "…") {
		t.Errorf("second line not truncated: %q", lines[1])
	}
}

func TestCache(t *testing.T) {
	c := NewCache(time.Minute)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	snap := testSnapshot(t, forecast.LangEN, now, false)
	first, err := c.Render(Data{Snapshot: snap})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if _, ok := c.Get(snap.ComputedAt); !ok {
		t.Fatal("rendered card not cached")
	}

	second, err := c.Render(Data{Snapshot: snap})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if &first[0] != &second[0] {
		t.Error("cache hit re-rendered the card")
	}

	if _, ok := c.Get(snap.ComputedAt.Add(time.Second)); ok {
		t.Error("different snapshot time served from cache")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get(snap.ComputedAt); ok {
		t.Error("expired entry served from cache")
	}
}
