// Package response holds the canned user-facing messages of the pipeline.
// Worst case the system answers with one of these; raw provider errors or
// stack traces never reach the user.
package response

const (
	// OutOfContext answers queries the context gate rejected.
	OutOfContext = "Lo siento, solo puedo responder preguntas relacionadas con el " +
		"Departamento de Ciencias de la Computación y la universidad. " +
		"¿Tienes alguna consulta académica en la que pueda ayudarte?"

	// NoValidMatches answers in-domain queries no stage could resolve.
	NoValidMatches = "No encontré información relevante para tu pregunta. " +
		"¿Podrías reformularla o ser más específico?"
)
