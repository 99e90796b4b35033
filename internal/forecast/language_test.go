package forecast

import "testing"

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		code string
		want Language
	}{
		{"", LangEN},
		{"en", LangEN},
		{"en-GB", LangEN},
		{"de", LangDE},
		{"de-AT", LangDE},
		{"el", LangEL},
		{"it", LangIT},
		{"fr-CH", LangFR},
		{"ja", LangEN},
		{"not a language", LangEN},
	}

	for _, tt := range tests {
		if got := ParseLanguage(tt.code); got != tt.want {
			t.Errorf("ParseLanguage(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestLanguageCodeAndTitle(t *testing.T) {
	tests := []struct {
		lang  Language
		code  string
		title string
	}{
		{LangDE, "de", "Lokale Wettervorhersage"},
		{LangEN, "en", "12hr Local Weather Forecast"},
		{LangFR, "fr", "Prévisions météorologiques locales"},
		{Language(-1), "en", "12hr Local Weather Forecast"},
	}

	for _, tt := range tests {
		if got := tt.lang.Code(); got != tt.code {
			t.Errorf("Language(%d).Code() = %q, want %q", tt.lang, got, tt.code)
		}
		if got := tt.lang.Title(); got != tt.title {
			t.Errorf("Language(%d).Title() = %q, want %q", tt.lang, got, tt.title)
		}
	}
}
