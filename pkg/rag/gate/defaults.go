package gate

// DefaultConfig returns the built-in keyword lists for the computer-science
// department deployment. Deployments override them with a JSON file; the
// lists here are the curated set the department validated against its
// labeled question log.
func DefaultConfig() Config {
	return Config{
		Allow: []string{
			"espe", "universidad", "dcco", "departamento",
			"ciencias de la computacion", "computacion", "software",
			"tecnologias de la informacion", "sistemas de informacion",
			"carrera", "materia", "curso", "semestre", "creditos",
			"matricula", "inscripcion", "silabo", "horario",
			"biblioteca", "laboratorio", "secretaria", "coordinador",
			"director", "docente", "profesor", "campus", "sangolqui",
			"bienestar", "beca", "titulacion", "practicas", "vinculacion",
			"aplicaciones distribuidas", "aplicaciones basadas en el conocimiento",
		},
		Deny: []string{
			"futbol", "mundial", "deporte", "partido",
			"politica", "presidente", "elecciones", "gobierno",
			"pelicula", "serie", "cantante", "actor", "famoso",
			"receta", "cocinar", "restaurante",
			"clima", "capital de", "pais", "turismo", "viaje",
			"astrologia", "horoscopo", "loteria",
		},
		Pairs: [][2]string{
			{"materia", "espe"},
			{"curso", "espe"},
			{"carrera", "espe"},
			{"carrera", "universidad"},
			{"aplicaciones", "conocimiento"},
			{"aplicaciones", "distribuidas"},
		},
		Patterns: []string{
			`(donde)\s+(esta|queda|se encuentra)\s+.*(espe|universidad|campus)`,
			`(que)\s+(es|trata|significa)\s+.*(espe|dcco|carrera|materia|curso)`,
			`(como)\s+(llegar|llego)\s+a\s+.*(espe|universidad|campus)`,
			`(quien)\s+(es|dirige)\s+.*(director|coordinador|decano)`,
		},
	}
}
