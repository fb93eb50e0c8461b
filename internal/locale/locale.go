// Package locale holds the display strings for the supported languages.
package locale

import (
	"golang.org/x/text/language"
)

// Labels is the set of display strings for one language
type Labels struct {
	Language string // name shown in the language selector

	Title       string
	Inputs      string
	Span        string
	UniformLoad string
	PointLoad   string
	BeamType    string
	Simply      string
	Cantilever  string
	Width       string
	Height      string
	Cover       string
	BarDiameter string
	Fck         string
	Fyk         string

	Summary           string
	MomentMax         string
	ShearMax          string
	SteelRequired     string
	SteelProvided     string
	Bars              string
	DevelopmentLength string
	EffectiveDepth    string
	ShearCapacity     string
	ShearCheck        string
	DeflectionCheck   string
	SpanDepth         string
	OK                string
	NotOK             string
	Yes               string
	No                string

	MomentDiagram string
	CrossSection  string
	Length        string
	Moment        string
	Results       string
	Date          string
	Footer        string
}

var english = Labels{
	Language:          "English",
	Title:             "Beam Designer Pro (Eurocode)",
	Inputs:            "Beam Inputs",
	Span:              "Span Length L [m]",
	UniformLoad:       "Uniform Load [kN/m]",
	PointLoad:         "Point Load [kN]",
	BeamType:          "Beam Type",
	Simply:            "Simply Supported",
	Cantilever:        "Cantilever",
	Width:             "Beam Width b [mm]",
	Height:            "Beam Height h [mm]",
	Cover:             "Concrete Cover [mm]",
	BarDiameter:       "Rebar Diameter [mm]",
	Fck:               "Concrete fck [MPa]",
	Fyk:               "Steel fyk [MPa]",
	Summary:           "Design Summary",
	MomentMax:         "M_max [kNm]",
	ShearMax:          "V_max [kN]",
	SteelRequired:     "As,req [mm²]",
	SteelProvided:     "As,prov [mm²]",
	Bars:              "Bars",
	DevelopmentLength: "Development Length [mm]",
	EffectiveDepth:    "Effective Depth d [mm]",
	ShearCapacity:     "V_Rd,c [kN]",
	ShearCheck:        "Shear Check",
	DeflectionCheck:   "Deflection Check",
	SpanDepth:         "Span/Depth",
	OK:                "OK",
	NotOK:             "Not OK",
	Yes:               "Yes",
	No:                "No",
	MomentDiagram:     "Bending Moment Diagram",
	CrossSection:      "Beam Cross-Section",
	Length:            "Length [m]",
	Moment:            "Moment [kNm]",
	Results:           "Results",
	Date:              "Date",
	Footer:            "Designed according to Eurocode 2. Always confirm with a qualified structural engineer.",
}

var german = Labels{
	Language:          "Deutsch",
	Title:             "Balkendesigner Pro (Eurocode)",
	Inputs:            "Balken-Eingaben",
	Span:              "Stützweite L [m]",
	UniformLoad:       "Gleichlast [kN/m]",
	PointLoad:         "Einzellast [kN]",
	BeamType:          "Balkentyp",
	Simply:            "Einfeldträger",
	Cantilever:        "Kragarm",
	Width:             "Balkenbreite b [mm]",
	Height:            "Balkenhöhe h [mm]",
	Cover:             "Betondeckung [mm]",
	BarDiameter:       "Stabdurchmesser [mm]",
	Fck:               "Beton fck [MPa]",
	Fyk:               "Stahl fyk [MPa]",
	Summary:           "Bemessungsübersicht",
	MomentMax:         "M_max [kNm]",
	ShearMax:          "V_max [kN]",
	SteelRequired:     "As,erf [mm²]",
	SteelProvided:     "As,vorh [mm²]",
	Bars:              "Stäbe",
	DevelopmentLength: "Verankerungslänge [mm]",
	EffectiveDepth:    "Statische Höhe d [mm]",
	ShearCapacity:     "V_Rd,c [kN]",
	ShearCheck:        "Querkraftnachweis",
	DeflectionCheck:   "Durchbiegungsnachweis",
	SpanDepth:         "Biegeschlankheit",
	OK:                "OK",
	NotOK:             "Nicht OK",
	Yes:               "Ja",
	No:                "Nein",
	MomentDiagram:     "Momentenlinie",
	CrossSection:      "Balkenquerschnitt",
	Length:            "Länge [m]",
	Moment:            "Moment [kNm]",
	Results:           "Ergebnisse",
	Date:              "Datum",
	Footer:            "Entworfen nach Eurocode 2. Immer mit Statiker überprüfen.",
}

var french = Labels{
	Language:          "Français",
	Title:             "Concepteur de poutre Pro (Eurocode)",
	Inputs:            "Entrées de poutre",
	Span:              "Portée L [m]",
	UniformLoad:       "Charge uniforme [kN/m]",
	PointLoad:         "Charge ponctuelle [kN]",
	BeamType:          "Type de poutre",
	Simply:            "Poutre sur appuis simples",
	Cantilever:        "Console",
	Width:             "Largeur b [mm]",
	Height:            "Hauteur h [mm]",
	Cover:             "Enrobage [mm]",
	BarDiameter:       "Diamètre des barres [mm]",
	Fck:               "Béton fck [MPa]",
	Fyk:               "Acier fyk [MPa]",
	Summary:           "Résumé du dimensionnement",
	MomentMax:         "M_max [kNm]",
	ShearMax:          "V_max [kN]",
	SteelRequired:     "As,req [mm²]",
	SteelProvided:     "As,prov [mm²]",
	Bars:              "Barres",
	DevelopmentLength: "Longueur d'ancrage [mm]",
	EffectiveDepth:    "Hauteur utile d [mm]",
	ShearCapacity:     "V_Rd,c [kN]",
	ShearCheck:        "Vérification à l'effort tranchant",
	DeflectionCheck:   "Vérification de la flèche",
	SpanDepth:         "Élancement",
	OK:                "OK",
	NotOK:             "Non OK",
	Yes:               "Oui",
	No:                "Non",
	MomentDiagram:     "Diagramme des moments",
	CrossSection:      "Section de la poutre",
	Length:            "Longueur [m]",
	Moment:            "Moment [kNm]",
	Results:           "Résultats",
	Date:              "Date",
	Footer:            "Conçu selon l'Eurocode 2. À vérifier avec un ingénieur.",
}

var italian = Labels{
	Language:          "Italiano",
	Title:             "Progettista di travi Pro (Eurocodice)",
	Inputs:            "Input trave",
	Span:              "Luce L [m]",
	UniformLoad:       "Carico uniforme [kN/m]",
	PointLoad:         "Carico puntuale [kN]",
	BeamType:          "Tipo di trave",
	Simply:            "Semplicemente appoggiata",
	Cantilever:        "Mensola",
	Width:             "Larghezza b [mm]",
	Height:            "Altezza h [mm]",
	Cover:             "Copriferro [mm]",
	BarDiameter:       "Diametro barre [mm]",
	Fck:               "Calcestruzzo fck [MPa]",
	Fyk:               "Acciaio fyk [MPa]",
	Summary:           "Riepilogo progettazione",
	MomentMax:         "M_max [kNm]",
	ShearMax:          "V_max [kN]",
	SteelRequired:     "As,req [mm²]",
	SteelProvided:     "As,eff [mm²]",
	Bars:              "Barre",
	DevelopmentLength: "Lunghezza di ancoraggio [mm]",
	EffectiveDepth:    "Altezza utile d [mm]",
	ShearCapacity:     "V_Rd,c [kN]",
	ShearCheck:        "Verifica a taglio",
	DeflectionCheck:   "Verifica di freccia",
	SpanDepth:         "Snellezza",
	OK:                "OK",
	NotOK:             "Non OK",
	Yes:               "Sì",
	No:                "No",
	MomentDiagram:     "Diagramma del momento flettente",
	CrossSection:      "Sezione trasversale",
	Length:            "Lunghezza [m]",
	Moment:            "Momento [kNm]",
	Results:           "Risultati",
	Date:              "Data",
	Footer:            "Progettato secondo l'Eurocodice 2. Verificare con un ingegnere strutturista.",
}

// tags and tables share an index; the first entry is the fallback
var (
	tags   = []language.Tag{language.English, language.German, language.French, language.Italian}
	tables = []Labels{english, german, french, italian}

	matcher = language.NewMatcher(tags)
)

// Lookup resolves a language tag ("de", "fr-CH", "Italiano", ...) to its
// labels. Unknown or empty tags fall back to English.
func Lookup(tag string) Labels {
	for _, l := range tables {
		if l.Language == tag {
			return l
		}
	}
	_, i := language.MatchStrings(matcher, tag)
	return tables[i]
}

// Supported returns the base language codes in selector order
func Supported() []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		base, _ := t.Base()
		out[i] = base.String()
	}
	return out
}

// Next returns the code of the language after tag in selector order
func Next(tag string) string {
	codes := Supported()
	current := Lookup(tag).Language
	for i, l := range tables {
		if l.Language == current {
			return codes[(i+1)%len(codes)]
		}
	}
	return codes[0]
}

// CheckMark renders a pass/fail outcome
func (l Labels) CheckMark(ok bool) string {
	if ok {
		return "✓ " + l.OK
	}
	return "✗ " + l.NotOK
}

// YesNo renders a boolean for tabular output
func (l Labels) YesNo(ok bool) string {
	if ok {
		return l.Yes
	}
	return l.No
}

// SupportName returns the localized name of a support condition
func (l Labels) SupportName(cantilever bool) string {
	if cantilever {
		return l.Cantilever
	}
	return l.Simply
}
