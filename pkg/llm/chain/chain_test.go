package chain

import (
	"context"
	"errors"
	"testing"
	"time"

	"campus-assistant-be/pkg/llm"
)

// fakeProvider returns a fixed answer or error and records invocations.
type fakeProvider struct {
	name   string
	answer string
	err    error
	calls  int
	delay  time.Duration
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.calls++
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.answer, f.err
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, nil, options...)
}

func TestGeneratePrimarySucceeds(t *testing.T) {
	primary := &fakeProvider{name: "primary", answer: "respuesta principal"}
	secondary := &fakeProvider{name: "secondary", answer: "respuesta secundaria"}
	c := New([]llm.Provider{primary, secondary}, time.Second, nil)

	got, err := c.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "respuesta principal" {
		t.Errorf("Generate() = %q, want primary answer", got)
	}
	if secondary.calls != 0 {
		t.Errorf("secondary was called %d times, want 0", secondary.calls)
	}
}

func TestGenerateFallsBackToSecondary(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: errors.New("status 500")}
	secondary := &fakeProvider{name: "secondary", answer: "respuesta secundaria"}
	c := New([]llm.Provider{primary, secondary}, time.Second, nil)

	got, err := c.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "respuesta secundaria" {
		t.Errorf("Generate() = %q, want secondary answer", got)
	}
	if primary.calls != 1 {
		t.Errorf("primary called %d times, want exactly 1 (no retries)", primary.calls)
	}
}

func TestGenerateAllFail(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: errors.New("timeout")}
	secondary := &fakeProvider{name: "secondary", err: errors.New("bad credentials")}
	c := New([]llm.Provider{primary, secondary}, time.Second, nil)

	_, err := c.Generate(context.Background(), "prompt")
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Errorf("Generate() error = %v, want ErrAllProvidersFailed", err)
	}
}

func TestGenerateEmptyAnswerTreatedAsFailure(t *testing.T) {
	primary := &fakeProvider{name: "primary", answer: ""}
	secondary := &fakeProvider{name: "secondary", answer: "ok"}
	c := New([]llm.Provider{primary, secondary}, time.Second, nil)

	got, err := c.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "ok" {
		t.Errorf("Generate() = %q, want %q", got, "ok")
	}
}

func TestGenerateEmptyChain(t *testing.T) {
	c := New(nil, time.Second, nil)
	_, err := c.Generate(context.Background(), "prompt")
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Errorf("Generate() error = %v, want ErrAllProvidersFailed", err)
	}
}

func TestGenerateRespectsDeadline(t *testing.T) {
	slow := &fakeProvider{name: "slow", answer: "tarde", delay: 200 * time.Millisecond}
	fast := &fakeProvider{name: "fast", answer: "rapido"}
	c := New([]llm.Provider{slow, fast}, 50*time.Millisecond, nil)

	got, err := c.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "rapido" {
		t.Errorf("Generate() = %q, want fallback after per-call timeout", got)
	}
}
