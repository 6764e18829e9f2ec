package gate

import "testing"

func newDefaultGate(t *testing.T) *Gate {
	t.Helper()
	g, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New(DefaultConfig()) error = %v", err)
	}
	return g
}

func TestEvaluateInDomain(t *testing.T) {
	g := newDefaultGate(t)

	queries := []string{
		"¿Qué es el DCCO?",
		"¿Dónde queda la ESPE?",
		"¿Quién es el director de software?",
		"¿Qué materias tiene la carrera?",
		"¿Cómo inscribirse en la universidad?",
		"¿Cuál es el horario de la biblioteca?",
	}

	for _, q := range queries {
		if v := g.Evaluate(q); !v.InDomain {
			t.Errorf("Evaluate(%q).InDomain = false, want true", q)
		}
	}
}

func TestEvaluateOutOfDomain(t *testing.T) {
	g := newDefaultGate(t)

	queries := []string{
		"¿Quién ganó el mundial?",
		"¿Quién es el presidente?",
		"¿Qué película recomiendas?",
		"dame una receta para cocinar pasta",
		"¿Cómo está el clima?",
	}

	for _, q := range queries {
		v := g.Evaluate(q)
		if v.InDomain {
			t.Errorf("Evaluate(%q).InDomain = true, want false", q)
		}
		if v.OverrideValid {
			t.Errorf("Evaluate(%q).OverrideValid = true, want false", q)
		}
	}
}

// An allow-list term always overrides a deny-list hit.
func TestEvaluateAllowOverridesDeny(t *testing.T) {
	g := newDefaultGate(t)

	q := "¿la universidad tiene equipo de fútbol?"
	if v := g.Evaluate(q); !v.InDomain {
		t.Errorf("Evaluate(%q).InDomain = false, want true (allow term present)", q)
	}
}

func TestEvaluatePatternOverride(t *testing.T) {
	g := newDefaultGate(t)

	tests := []struct {
		query string
		want  bool
	}{
		{"¿dónde queda la espe?", true},
		{"¿de qué trata la materia de redes?", true},
		{"¿cómo llego a la universidad?", true},
		{"quiero aprender sobre aplicaciones distribuidas", true},
		{"¿quién ganó el mundial?", false},
	}

	for _, tt := range tests {
		if got := g.Evaluate(tt.query).OverrideValid; got != tt.want {
			t.Errorf("Evaluate(%q).OverrideValid = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestEvaluateNoListsHit(t *testing.T) {
	g := newDefaultGate(t)

	// Neither list matches: the query stays in-domain and is left for the
	// retrieval stages to resolve or refuse.
	q := "necesito ayuda con un trámite"
	if v := g.Evaluate(q); !v.InDomain {
		t.Errorf("Evaluate(%q).InDomain = false, want true", q)
	}
}

func TestNewRejectsBadPattern(t *testing.T) {
	_, err := New(Config{Patterns: []string{"("}})
	if err == nil {
		t.Fatal("New with invalid pattern: want error, got nil")
	}
}
