package slang

import "viola/internal/domain"

// defaultTerms maps slang forms to canonical phrases per language. Kept
// deliberately small; unknown languages simply pass through.
var defaultTerms = map[domain.LanguageCode]map[string]string{
	"en": {
		"gonna":  "going to",
		"wanna":  "want to",
		"gotta":  "have to",
		"kinda":  "kind of",
		"dunno":  "do not know",
		"brb":    "be right back",
		"btw":    "by the way",
		"imo":    "in my opinion",
		"lemme":  "let me",
		"y'all":  "you all",
		"gimme":  "give me",
		"cuz":    "because",
		"tho":    "though",
		"thx":    "thanks",
		"np":     "no problem",
		"idk":    "I do not know",
		"rn":     "right now",
		"u":      "you",
		"ur":     "your",
		"pls":    "please",
	},
	"es": {
		"q":      "que",
		"xq":     "porque",
		"pq":     "porque",
		"tqm":    "te quiero mucho",
		"d nada": "de nada",
		"finde":  "fin de semana",
		"porfa":  "por favor",
		"ntp":    "no te preocupes",
	},
	"fr": {
		"bcp":  "beaucoup",
		"pk":   "pourquoi",
		"stp":  "s'il te plaît",
		"svp":  "s'il vous plaît",
		"jsp":  "je ne sais pas",
		"auj":  "aujourd'hui",
		"qqch": "quelque chose",
		"dsl":  "désolé",
	},
}
