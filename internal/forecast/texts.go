package forecast

// Text tables are indexed [row][language] with languages ordered de, en, el, it, fr.

var titles = [5]string{
	"Lokale Wettervorhersage",
	"12hr Local Weather Forecast",
	"Τοπική πρόγνωση καιρού",
	"Previsioni meteorologiche locali",
	"Prévisions météorologiques locales",
}

// forecastTexts is indexed by severity type (0..25).
var forecastTexts = [26][5]string{
	{"Beständiges Schönwetter!", "Settled Fine", "Σταθερός καλός καιρός!", "Bel tempo stabile!", "Beau temps stable!"},
	{"Schönes Wetter!", "Fine", "Ωραίος καιρός!", "Bel tempo!", "Beau temps!"},
	{"Es wird schöner.", "Becoming Fine", "Θα καλυτερεύσει.", "Miglioramento in corso.", "Le temps s'améliore."},
	{"Schön, wird wechselhaft.", "Fine, Becoming Less Settled", "Μεταβλητός.", "Bello, ma diventa instabile.", "Beau, devient instable."},
	{"Schön, Regenschauer möglich.", "Fine, Possibly Showers", "Πιθανή βροχή.", "Bello, possibili rovesci.", "Beau, averses possibles."},
	{"Heiter bis wolkig, Besserung zu erwarten.", "Fairly Fine, Improving", "Αίθριος έως νεφελώδης, αναμένεται βελτίωση.", "Sereno con nuvole, miglioramento atteso.", "Éclaircies avec nuages, amélioration attendue."},
	{"Heiter bis wolkig, anfangs evtl. Schauer.", "Fairly Fine, Possibly Showers, Early", "Αίθριος έως συννεφιασμένος, πιθανώς βροχές στην αρχή.", "Sereno con nuvole, possibili rovesci all'inizio.", "Éclaircies avec nuages, averses possibles au début."},
	{"Heiter bis wolkig, später Regen.", "Fairly Fine, Showery Later", "Αίθριος έως συννεφιασμένος, αργότερα βροχή.", "Sereno con nuvole, pioggia in arrivo.", "Éclaircies avec nuages, pluie plus tard."},
	{"Anfangs noch Schauer, dann Besserung.", "Showery Early, Improving", "Βροχόπτωση στην αρχή και μετά βελτίωση.", "Rovesci iniziali, poi miglioramento.", "Averses au début, puis amélioration."},
	{"Wechselhaft mit Schauern", "Changeable, Mending", "Εναλλαγή με βροχόπτωση.", "Variabile con rovesci.", "Variable avec averses."},
	{"Heiter bis wolkig, vereinzelt Regen.", "Fairly Fine, Showers Likely", "Αίθριος έως συννεφιασμένος, κατά διαστήματα βροχή.", "Sereno con nuvole, pioggia probabile.", "Éclaircies avec nuages, averses probables."},
	{"Unbeständig, später Aufklarung.", "Rather Unsettled, Clearing Later", "Ασταθής, αργότερα καθάρος.", "Instabile, schiarite più tardi.", "Instable, éclaircies plus tard."},
	{"Unbeständig, evtl. Besserung.", "Unsettled, Probably Improving", "Ασταθής, πιθανώς βελτίωση.", "Instabile, probabile miglioramento.", "Instable, amélioration possible."},
	{"Regnerisch mit heiteren Phasen.", "Showery, Bright Intervals", "Καθαρός με διαστήματα βροχής.", "Rovesci con schiarite.", "Pluvieux avec éclaircies."},
	{"Regnerisch, wird unbeständiger.", "Showery, Becoming More Unsettled", "Βροχερό, όλο και πιο ασταθές.", "Rovesci, sempre più instabile.", "Pluvieux, devient plus instable."},
	{"Wechselhaft mit etwas Regen.", "Changeable, Some Rain", "Αλλάζει με λίγη βροχή.", "Variabile con qualche pioggia.", "Variable avec un peu de pluie."},
	{"Unbeständig mit heiteren Phasen.", "Unsettled, Short Fine Intervals", "Άστατα, μικρά καθαρά διαστήματα", "Instabile con brevi schiarite.", "Instable avec courtes éclaircies."},
	{"Unbeständig, später Regen.", "Unsettled, Rain Later", "Άστατη, αργότερα βροχή.", "Instabile, pioggia più tardi.", "Instable, pluie plus tard."},
	{"Unbeständig mit etwas Regen.", "Unsettled, Rain At Times", "Άστατος με λίγη βροχή.", "Instabile con qualche pioggia.", "Instable avec quelques pluies."},
	{"Wechselhaft und regnerisch", "Very Unsettled, Finer At Times", "Μεταβλητός και βροχερός.", "Variabile e piovoso.", "Variable et pluvieux."},
	{"Gelegentlich Regen, Verschlechterung.", "Rain At Times, Worse Later", "Περιστασιακές βροχές, επιδείνωση.", "Pioggia occasionale, peggiora più tardi.", "Pluie occasionnelle, dégradation ensuite."},
	{"Zuweilen Regen, sehr unbeständig.", "Rain At Times, Becoming Very Unsettled", "Βροχή κατά περιόδους, πολύ ασταθής.", "Pioggia a tratti, molto instabile.", "Pluie par moments, devient très instable."},
	{"Häufiger Regen.", "Rain At Frequent Intervals", "Συχνή βροχή.", "Pioggia frequente.", "Pluie fréquente."},
	{"Regen, sehr unbeständig.", "Very Unsettled, Rain", "Βροχή, πολύ ασταθής.", "Molto instabile, pioggia.", "Très instable, pluie."},
	{"Stürmisch, evtl. Besserung.", "Stormy, Possibly Improving", "Θυελλώδης, πιθανώς βελτίωση.", "Tempestoso, possibile miglioramento.", "Orageux, amélioration possible."},
	{"Stürmisch mit viel Regen.", "Stormy, Much Rain", "Καταιγίδα με πολλές βροχές.", "Tempestoso con molta pioggia.", "Orageux avec beaucoup de pluie."},
}

var shortConditions = [5][5]string{
	{"stürmisch", "Stormy", "θυελλώδης", "Tempestoso", "Orageux"},
	{"regnerisch", "Rainy", "Βροχερός", "Piovoso", "Pluvieux"},
	{"wechselhaft", "Mixed", "Μεταβλητός", "Variabile", "Variable"},
	{"sonnig", "Sunny", "Ηλιόλουστος", "Soleggiato", "Ensoleillé"},
	{"sehr trocken", "Extra Dry", "Πολύ ξηρός", "Molto Secco", "Très Sec"},
}

var pressureSystems = [3][5]string{
	{"Tiefdruckgebiet", "Low Pressure System", "σύστημα χαμηλής πίεσης", "Bassa Pressione", "Système de basse pression"},
	{"Normal", "Normal", "φυσιολογικός", "Normale", "Normal"},
	{"Hochdruckgebiet", "High Pressure System", "σύστημα υψηλής πίεσης", "Zona Alta Pressione", "Système de haute pression"},
}

var exceptionalTexts = [5]string{"außergewöhnliches Wetter,", "Exceptional Weather,", "Εξαιρετικός καιρός,", "Tempo eccezionale,", "Temps exceptionnel,"}

// trendTexts rows: falling, rising, steady.
var trendTexts = [3][5]string{
	{"fallend", "Falling", "πέφτοντας", "in calo", "en baisse"},
	{"steigend", "Rising", "αυξανόμενη", "in aumento", "en hausse"},
	{"stabil", "Steady", "σταθερή", "stabile", "stable"},
}
