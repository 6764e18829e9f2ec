package intent

import "testing"

func TestClassify(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		query      string
		wantIntent Intent
		wantOK     bool
	}{
		{"hola", IntentGreeting, true},
		{"Buenos días", IntentGreeting, true},
		{"  HOLA  ", IntentGreeting, true},
		{"adiós", IntentFarewell, true},
		{"hasta luego", IntentFarewell, true},
		{"gracias", IntentThanks, true},
		{"muchas gracias", IntentThanks, true},
		{"¿Qué es el DCCO?", "", false},
		{"¿cuál es el horario de atención?", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			intent, response, ok := c.Classify(tt.query)
			if ok != tt.wantOK {
				t.Fatalf("Classify(%q) ok = %v, want %v", tt.query, ok, tt.wantOK)
			}
			if intent != tt.wantIntent {
				t.Errorf("Classify(%q) intent = %q, want %q", tt.query, intent, tt.wantIntent)
			}
			if ok && response == "" {
				t.Errorf("Classify(%q) returned empty canned response", tt.query)
			}
		})
	}
}

func TestClassifyFirstCategoryWins(t *testing.T) {
	c := NewClassifier()

	// Greeting and thanks in one message: category order decides.
	intent, _, ok := c.Classify("hola y gracias")
	if !ok || intent != IntentGreeting {
		t.Errorf("Classify = %q ok=%v, want greeting to win", intent, ok)
	}
}

func TestClassifyWordBoundaries(t *testing.T) {
	c := NewClassifier()

	if _, _, ok := c.Classify("convenios con holanda"); ok {
		t.Error("Classify matched a greeting inside another word")
	}
}
