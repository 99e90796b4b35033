package forecast

import (
	"golang.org/x/text/language"
)

// Language selects a column in the parallel text tables. The order is fixed.
type Language int

const (
	LangDE Language = iota
	LangEN
	LangEL
	LangIT
	LangFR
)

const DefaultLanguage = LangEN

var languageTags = []language.Tag{
	language.German,
	language.English,
	language.Greek,
	language.Italian,
	language.French,
}

var languageMatcher = language.NewMatcher(languageTags)

// ParseLanguage resolves a BCP 47 code such as "de", "en-GB" or "fr-CH" to one
// of the supported languages. Anything unrecognised falls back to English.
func ParseLanguage(code string) Language {
	if code == "" {
		return DefaultLanguage
	}
	tag, err := language.Parse(code)
	if err != nil {
		return DefaultLanguage
	}
	_, idx, conf := languageMatcher.Match(tag)
	if conf == language.No {
		return DefaultLanguage
	}
	return Language(idx)
}

func (l Language) Valid() bool {
	return l >= LangDE && l <= LangFR
}

// Code returns the two-letter code, e.g. "en".
func (l Language) Code() string {
	base, _ := languageTags[l.index()].Base()
	return base.String()
}

func (l Language) index() int {
	if !l.Valid() {
		return int(DefaultLanguage)
	}
	return int(l)
}

// Title is the headline published as the main forecast state.
func (l Language) Title() string {
	return titles[l.index()]
}
