package lexical

import "testing"

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		min  float64
		max  float64
	}{
		{
			name: "identical strings",
			a:    "hola mundo",
			b:    "hola mundo",
			min:  1.0,
			max:  1.0,
		},
		{
			name: "accents and punctuation ignored",
			a:    "¿Cuál es el horario de atención?",
			b:    "cual es el horario de atencion",
			min:  1.0,
			max:  1.0,
		},
		{
			name: "case insensitive",
			a:    "¿Qué es el DCCO?",
			b:    "¿que es el dcco?",
			min:  0.95,
			max:  1.0,
		},
		{
			name: "unrelated strings score low",
			a:    "hola",
			b:    "adiós",
			min:  0.0,
			max:  0.5,
		},
		{
			name: "both empty",
			a:    "",
			b:    "",
			min:  1.0,
			max:  1.0,
		},
		{
			name: "one empty",
			a:    "pregunta",
			b:    "",
			min:  0.0,
			max:  0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ratio(tt.a, tt.b)
			if got < tt.min || got > tt.max {
				t.Errorf("Ratio(%q, %q) = %.3f, want in [%.2f, %.2f]", tt.a, tt.b, got, tt.min, tt.max)
			}
		})
	}
}

func TestRatioSymmetric(t *testing.T) {
	a := "¿Dónde queda la biblioteca del campus?"
	b := "donde esta la biblioteca"
	if Ratio(a, b) != Ratio(b, a) {
		t.Errorf("Ratio is not symmetric: %.4f vs %.4f", Ratio(a, b), Ratio(b, a))
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize("  ¿Cuál   es el Horario? ")
	want := "cual es el horario"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestPrefix(t *testing.T) {
	if got := Prefix("abcdef", 3); got != "abc" {
		t.Errorf("Prefix = %q, want %q", got, "abc")
	}
	if got := Prefix("ab", 10); got != "ab" {
		t.Errorf("Prefix = %q, want %q", got, "ab")
	}
}
