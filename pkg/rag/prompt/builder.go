// Package prompt builds the generation prompts the pipeline sends to the
// provider fallback chain. Every prompt restricts the model to supplied
// context; none of them permits outside knowledge.
package prompt

import (
	"fmt"
	"strings"
)

// Excerpt is one piece of retrieved content included in a synthesis prompt.
type Excerpt struct {
	Title string
	Text  string
}

// RestrictedDocument builds a prompt that answers from exactly one document.
func RestrictedDocument(query string, excerpt Excerpt) string {
	var b strings.Builder
	b.WriteString("Eres el asistente del Departamento de Ciencias de la Computación.\n\n")
	b.WriteString("CONTEXTO (única fuente permitida):\n")
	if excerpt.Title != "" {
		fmt.Fprintf(&b, "[%s]\n", excerpt.Title)
	}
	b.WriteString(excerpt.Text)
	b.WriteString("\n\nINSTRUCCIONES:\n")
	b.WriteString("- Responde SOLO con la información del contexto anterior.\n")
	b.WriteString("- Si el contexto no es suficiente, responde exactamente: \"No tengo esa información\".\n")
	b.WriteString("- No inventes datos ni uses conocimiento externo.\n\n")
	fmt.Fprintf(&b, "PREGUNTA: %s\nRESPUESTA:", query)
	return b.String()
}

// RestrictedContext builds the final-fallback prompt over every retrieved
// excerpt, with an explicit instruction to decline when the context is
// insufficient.
func RestrictedContext(query string, excerpts []Excerpt) string {
	var b strings.Builder
	b.WriteString("Eres el asistente del Departamento de Ciencias de la Computación.\n\n")
	b.WriteString("CONTEXTO RECUPERADO (única fuente permitida):\n")
	for i, e := range excerpts {
		fmt.Fprintf(&b, "--- Fragmento %d", i+1)
		if e.Title != "" {
			fmt.Fprintf(&b, " (%s)", e.Title)
		}
		b.WriteString(" ---\n")
		b.WriteString(e.Text)
		b.WriteString("\n")
	}
	b.WriteString("\nINSTRUCCIONES:\n")
	b.WriteString("- Responde ÚNICAMENTE con la información del contexto recuperado.\n")
	b.WriteString("- Si la información no es suficiente para responder, dilo claramente y no agregues nada más.\n")
	b.WriteString("- Nunca uses conocimiento externo ni inventes datos.\n\n")
	fmt.Fprintf(&b, "PREGUNTA: %s\nRESPUESTA:", query)
	return b.String()
}

// Reformulation builds the style-only rewrite prompt: the model may adjust
// phrasing but must preserve every fact of the original answer.
func Reformulation(originalAnswer, query string) string {
	var b strings.Builder
	b.WriteString("Reformula ÚNICAMENTE el estilo de la siguiente respuesta, ")
	b.WriteString("manteniendo EXACTAMENTE la misma información.\n\n")
	b.WriteString("REGLAS:\n")
	b.WriteString("- Conserva todos los datos: horarios, nombres, lugares, números.\n")
	b.WriteString("- No agregues información nueva ni omitas nada.\n")
	b.WriteString("- Usa un tono natural y claro, en español.\n")
	b.WriteString("- Devuelve solo la respuesta reformulada, sin comentarios.\n\n")
	fmt.Fprintf(&b, "PREGUNTA DEL ESTUDIANTE: %s\n", query)
	fmt.Fprintf(&b, "RESPUESTA ORIGINAL: %s\nRESPUESTA REFORMULADA:", originalAnswer)
	return b.String()
}
