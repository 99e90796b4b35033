package card

import "github.com/lox/barocast/internal/forecast"

type labels struct {
	now         string
	forecast    string
	pressure    string
	rain        string
	in3h        string
	unavailable string
}

// cardLabels follows the language order de, en, el, it, fr.
var cardLabels = [5]labels{
	{now: "Jetzt", forecast: "Vorhersage", pressure: "Luftdruck", rain: "Regen", in3h: "in 3 Std.", unavailable: "nicht verfügbar"},
	{now: "Now", forecast: "Forecast", pressure: "Pressure", rain: "Rain", in3h: "in 3h", unavailable: "unavailable"},
	{now: "Τώρα", forecast: "Πρόγνωση", pressure: "Πίεση", rain: "Βροχή", in3h: "σε 3 ώρες", unavailable: "μη διαθέσιμο"},
	{now: "Adesso", forecast: "Previsione", pressure: "Pressione", rain: "Pioggia", in3h: "tra 3 ore", unavailable: "non disponibile"},
	{now: "Maintenant", forecast: "Prévision", pressure: "Pression", rain: "Pluie", in3h: "dans 3 h", unavailable: "indisponible"},
}

func labelsFor(l forecast.Language) labels {
	if !l.Valid() {
		return cardLabels[forecast.DefaultLanguage]
	}
	return cardLabels[l]
}
