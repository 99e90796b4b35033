package forecast

import (
	"math"
	"time"
)

// Conditions is the classifier input shared by both forecast methods.
type Conditions struct {
	SeaLevelPressure float64 // hPa
	PressureChange3h float64 // hPa
	WindDirection    float64 // degrees
	WindSpeed        float64 // km/h
	Northern         bool
	Now              time.Time
}

// Result is one classifier's output: localized text, the numeric code and the
// display letter. For Zambretti the code is the severity type; for
// Negretti-Zambra it is the raw forecast number.
type Result struct {
	Text   string
	Code   int
	Letter string
}

// DefaultSeverityType is used for raw Zambretti codes outside the table
// ("Changeable, Mending").
const DefaultSeverityType = 9

// severityZCodes lists the classical Zambretti numbers folded into each
// severity type.
var severityZCodes = [26][]int{
	0:  {1, 10, 20},
	1:  {2, 11, 21},
	2:  {22},
	3:  {3},
	4:  {12},
	5:  {23},
	6:  {24},
	7:  {4},
	8:  {25},
	9:  {26},
	10: {13},
	11: {27},
	12: {28},
	13: {14},
	14: {5},
	15: {15},
	16: {29},
	17: {6},
	18: {16},
	19: {30},
	20: {7},
	21: {8},
	22: {17},
	23: {9, 18},
	24: {31},
	25: {19, 32},
}

var zCodeToType = func() map[int]int {
	m := make(map[int]int, 32)
	for t, codes := range severityZCodes {
		for _, z := range codes {
			m[z] = t
		}
	}
	return m
}()

const typeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// SeverityType maps a raw Zambretti number to its severity type.
func SeverityType(z int) int {
	if t, ok := zCodeToType[z]; ok {
		return t
	}
	return DefaultSeverityType
}

// TypeLetter returns the display letter A..Z of a severity type.
func TypeLetter(severityType int) string {
	if severityType < 0 || severityType >= len(typeLetters) {
		severityType = DefaultSeverityType
	}
	return typeLetters[severityType : severityType+1]
}

// ForecastLetterFromNumber returns the letter for a raw forecast number. Only
// zero is special-cased, as "none".
func ForecastLetterFromNumber(n int) string {
	if n == 0 {
		return "none"
	}
	return TypeLetter(SeverityType(n))
}

// ZambrettiCode computes the raw Zambretti number before the severity mapping.
func ZambrettiCode(c Conditions) int {
	summer := IsSummer(c.Now.Month(), c.Northern)
	p0 := c.SeaLevelPressure

	var z int
	switch ClassifyTrend(c.PressureChange3h) {
	case TrendFalling:
		z = int(math.RoundToEven(127 - 0.12*p0))
	case TrendSteady:
		z = int(math.RoundToEven(144 - 0.13*p0))
		if !summer {
			z--
		}
	case TrendRising:
		z = int(math.RoundToEven(185 - 0.16*p0))
		if summer {
			z++
		}
	}

	return z + WindDirectionFactor(c.WindDirection)*WindSpeedFactor(c.WindSpeed)
}

// Zambretti classifies the conditions with the Zambretti method.
func Zambretti(c Conditions, lang Language) Result {
	t := SeverityType(ZambrettiCode(c))
	return Result{
		Text:   forecastTexts[t][lang.index()],
		Code:   t,
		Letter: TypeLetter(t),
	}
}
