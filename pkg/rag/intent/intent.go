// Package intent classifies conversational filler (greetings, farewells,
// thanks) so the pipeline can answer it with a canned response instead of
// wasting embedding or generation calls.
package intent

import (
	"strings"

	"campus-assistant-be/pkg/lexical"
)

type Intent string

const (
	IntentGreeting Intent = "saludo"
	IntentFarewell Intent = "despedida"
	IntentThanks   Intent = "agradecimiento"
)

// category order is fixed: the first matching category wins, no scoring.
var categories = []struct {
	intent   Intent
	phrases  []string
	response string
}{
	{
		intent:   IntentGreeting,
		phrases:  []string{"hola", "buenos dias", "buenas tardes", "buenas noches", "hi", "hello", "que tal"},
		response: "¡Hola! ¿En qué puedo ayudarte hoy?",
	},
	{
		intent:   IntentFarewell,
		phrases:  []string{"adios", "hasta luego", "nos vemos", "bye", "chao"},
		response: "¡Hasta luego! No dudes en volver si tienes más preguntas.",
	},
	{
		intent:   IntentThanks,
		phrases:  []string{"gracias", "muchas gracias", "thanks", "te agradezco"},
		response: "¡De nada! Estoy aquí para ayudarte.",
	},
}

type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify matches the lowercased, trimmed query against the phrase sets.
// It returns the canned response for the first matching category, or ok=false
// when the query is a real question.
func (c *Classifier) Classify(query string) (intent Intent, response string, ok bool) {
	normalized := lexical.Normalize(query)
	if normalized == "" {
		return "", "", false
	}
	for _, cat := range categories {
		for _, phrase := range cat.phrases {
			if containsPhrase(normalized, phrase) {
				return cat.intent, cat.response, true
			}
		}
	}
	return "", "", false
}

// containsPhrase reports whether phrase occurs in s on word boundaries, so
// "hola" does not fire on "hiperbola".
func containsPhrase(s, phrase string) bool {
	for from := 0; from < len(s); {
		i := strings.Index(s[from:], phrase)
		if i < 0 {
			return false
		}
		i += from
		beforeOK := i == 0 || s[i-1] == ' '
		after := i + len(phrase)
		afterOK := after == len(s) || s[after] == ' '
		if beforeOK && afterOK {
			return true
		}
		from = i + 1
	}
	return false
}
