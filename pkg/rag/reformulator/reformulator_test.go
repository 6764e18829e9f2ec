package reformulator

import (
	"context"
	"errors"
	"testing"
	"time"

	"campus-assistant-be/pkg/llm"
	"campus-assistant-be/pkg/llm/chain"
)

type scriptedProvider struct {
	answer string
	err    error
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return p.answer, p.err
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.answer, p.err
}

func newChain(p llm.Provider) *chain.Chain {
	return chain.New([]llm.Provider{p}, time.Second, nil)
}

func TestReformulateSuccess(t *testing.T) {
	original := "La atención es de 8:00 a 17:00 en el edificio central."
	rewritten := "El horario de atención va de 8:00 a 17:00, en el edificio central."
	r := New(newChain(&scriptedProvider{answer: rewritten}), nil)

	got := r.Reformulate(context.Background(), original, "¿cuál es el horario?")
	if got != rewritten {
		t.Errorf("Reformulate = %q, want rewritten answer", got)
	}
}

func TestReformulateFallsBackOnChainFailure(t *testing.T) {
	original := "La atención es de 8:00 a 17:00."
	r := New(newChain(&scriptedProvider{err: errors.New("provider down")}), nil)

	got := r.Reformulate(context.Background(), original, "horario")
	if got != original {
		t.Errorf("Reformulate = %q, want verbatim original", got)
	}
}

func TestReformulateRejectsDroppedNumbers(t *testing.T) {
	original := "El horario es de 8:00 a 17:00."
	r := New(newChain(&scriptedProvider{answer: "El departamento atiende durante el día laborable."}), nil)

	got := r.Reformulate(context.Background(), original, "horario")
	if got != original {
		t.Errorf("Reformulate = %q, want verbatim (rewrite dropped 8:00/17:00)", got)
	}
}

func TestReformulateRejectsTruncation(t *testing.T) {
	original := "La matrícula se realiza en línea a través del portal académico durante la primera semana de cada semestre."
	r := New(newChain(&scriptedProvider{answer: "En línea."}), nil)

	got := r.Reformulate(context.Background(), original, "matrícula")
	if got != original {
		t.Errorf("Reformulate = %q, want verbatim (rewrite too short)", got)
	}
}

func TestReformulateWithoutChain(t *testing.T) {
	r := New(nil, nil)
	original := "Respuesta curada."
	if got := r.Reformulate(context.Background(), original, "q"); got != original {
		t.Errorf("Reformulate without chain = %q, want original", got)
	}
}
