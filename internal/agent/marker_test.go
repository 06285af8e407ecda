package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RomanEngeler1805/deep-research-agent/internal/schema"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		final string
		want  Signal
	}{
		{
			name:  "plain text continues",
			text:  "Let me think about this.",
			final: MarkerFinalAnswer,
			want:  Signal{Kind: SignalContinue, Text: "Let me think about this."},
		},
		{
			name:  "final answer is trimmed",
			text:  "Done.\nFINAL_ANSWER:   42 \n",
			final: MarkerFinalAnswer,
			want:  Signal{Kind: SignalFinal, Text: "Done.\nFINAL_ANSWER:   42 \n", Result: "42"},
		},
		{
			name:  "first occurrence wins",
			text:  "REASONING_COMPLETE: a REASONING_COMPLETE: b",
			final: MarkerReasoningComplete,
			want:  Signal{Kind: SignalFinal, Text: "REASONING_COMPLETE: a REASONING_COMPLETE: b", Result: "a REASONING_COMPLETE: b"},
		},
		{
			name:  "other agents' markers are ignored",
			text:  "SEARCH_COMPLETE: found it",
			final: MarkerReasoningComplete,
			want:  Signal{Kind: SignalContinue, Text: "SEARCH_COMPLETE: found it"},
		},
		{
			name: "empty final marker never matches",
			text: "FINAL_ANSWER: x",
			want: Signal{Kind: SignalContinue, Text: "FINAL_ANSWER: x"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text, tt.final, nil))
		})
	}
}

func TestClassifyDelegationBeatsFinalAnswer(t *testing.T) {
	text := "FINAL_ANSWER: maybe\nDELEGATE_REASONING:  compute 2+2 "
	sig := Classify(text, MarkerFinalAnswer, OrchestratorDelegations)

	assert.Equal(t, SignalDelegate, sig.Kind)
	assert.Equal(t, schema.TaskReasoning, sig.Target)
	assert.Equal(t, "compute 2+2", sig.Task)
}

func TestClassifySearchDelegationCheckedFirst(t *testing.T) {
	text := "DELEGATE_REASONING: b DELEGATE_SEARCH: a"
	sig := Classify(text, MarkerFinalAnswer, OrchestratorDelegations)

	assert.Equal(t, schema.TaskSearch, sig.Target)
	assert.Equal(t, "a", sig.Task)
}

func TestClassifyIsPure(t *testing.T) {
	text := "DELEGATE_SEARCH: population of Tokyo"
	first := Classify(text, MarkerFinalAnswer, OrchestratorDelegations)
	second := Classify(text, MarkerFinalAnswer, OrchestratorDelegations)
	assert.Equal(t, first, second)
	assert.Equal(t, "delegate", first.Kind.String())
}
