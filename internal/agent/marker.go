package agent

import (
	"strings"

	"github.com/RomanEngeler1805/deep-research-agent/internal/schema"
)

// Completion and delegation markers the models are prompted to emit.
const (
	MarkerFinalAnswer       = "FINAL_ANSWER:"
	MarkerReasoningComplete = "REASONING_COMPLETE:"
	MarkerSearchComplete    = "SEARCH_COMPLETE:"
	MarkerDelegateSearch    = "DELEGATE_SEARCH:"
	MarkerDelegateReasoning = "DELEGATE_REASONING:"
)

// SignalKind is what one model turn asks the loop to do next.
type SignalKind int

const (
	SignalContinue SignalKind = iota
	SignalFinal
	SignalDelegate
)

func (k SignalKind) String() string {
	switch k {
	case SignalFinal:
		return "final"
	case SignalDelegate:
		return "delegate"
	default:
		return "continue"
	}
}

// Delegation maps a marker to the agent it hands work to.
type Delegation struct {
	Marker string
	Target schema.TaskType
}

// OrchestratorDelegations are the delegation markers in precedence order.
var OrchestratorDelegations = []Delegation{
	{Marker: MarkerDelegateSearch, Target: schema.TaskSearch},
	{Marker: MarkerDelegateReasoning, Target: schema.TaskReasoning},
}

// Signal is the classified form of a model turn's text.
type Signal struct {
	Kind SignalKind
	// Text is the unmodified model text.
	Text string
	// Result is the trimmed text after the completion marker (SignalFinal).
	Result string
	// Target and Task describe the hand-off (SignalDelegate).
	Target schema.TaskType
	Task   string
}

// Classify inspects model text for markers. Delegation markers are checked
// first, in the order given, then the completion marker. In both cases only
// the first occurrence counts and everything after it, trimmed, is the
// payload. An empty final marker never matches.
func Classify(text, final string, delegations []Delegation) Signal {
	for _, d := range delegations {
		if _, after, ok := strings.Cut(text, d.Marker); ok {
			return Signal{
				Kind:   SignalDelegate,
				Text:   text,
				Target: d.Target,
				Task:   strings.TrimSpace(after),
			}
		}
	}
	if final != "" {
		if _, after, ok := strings.Cut(text, final); ok {
			return Signal{Kind: SignalFinal, Text: text, Result: strings.TrimSpace(after)}
		}
	}
	return Signal{Kind: SignalContinue, Text: text}
}
