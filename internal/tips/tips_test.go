package tips

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexiz/internal/llm"
	"github.com/abhisek/lexiz/internal/quiz"
	"github.com/abhisek/lexiz/internal/vocab"
)

func missedWords() []vocab.WordRecord {
	return []vocab.WordRecord{
		{Index: 3, Term: "abandon", Meaning: "to leave behind", Example: "They abandoned the car."},
		{Index: 7, Term: "candid", Meaning: "honest"},
	}
}

func TestService_Generate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"tips":[
		{"index":7,"tip":"Candid camera shows the honest truth."},
		{"index":3,"tip":"A band on the road leaves everyone behind."},
		{"index":99,"tip":"not asked"}
	]}`)})
	svc := NewService(mock, DefaultConfig(), nil)

	got, err := svc.Generate(t.Context(), quiz.TermToMeaning, missedWords())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, Tip{Index: 3, Term: "abandon", Text: "A band on the road leaves everyone behind."}, got[0])
	assert.Equal(t, 7, got[1].Index)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, Schema, calls[0].Schema)
	assert.Contains(t, calls[0].Prompt, "#3 abandon = to leave behind")
	assert.Contains(t, calls[0].Prompt, "They abandoned the car.")
}

func TestService_NothingMissed(t *testing.T) {
	mock := llm.NewMockProvider()
	got, err := NewService(mock, DefaultConfig(), nil).Generate(t.Context(), quiz.TermToMeaning, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, mock.Calls())
}

func TestService_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	_, err := NewService(mock, DefaultConfig(), nil).Generate(t.Context(), quiz.MeaningToTerm, missedWords())

	var unavail *llm.ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavail))
}

func TestService_SchemaViolation(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"hints":[]}`)})
	_, err := NewService(mock, DefaultConfig(), nil).Generate(t.Context(), quiz.TermToMeaning, missedWords())

	var inv *llm.ErrInvalidResponse
	assert.True(t, errors.As(err, &inv))
}

func TestService_NoMatchingTips(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"tips":[{"index":1,"tip":"x"}]}`)})
	_, err := NewService(mock, DefaultConfig(), nil).Generate(t.Context(), quiz.TermToMeaning, missedWords())
	assert.Error(t, err)
}

func TestService_CapsItems(t *testing.T) {
	var missed []vocab.WordRecord
	for i := 1; i <= MaxItems+5; i++ {
		missed = append(missed, vocab.WordRecord{Index: i, Term: "w", Meaning: "m"})
	}
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"tips":[{"index":1,"tip":"x"}]}`)})
	_, err := NewService(mock, DefaultConfig(), nil).Generate(t.Context(), quiz.TermToMeaning, missed)
	require.NoError(t, err)

	prompt := mock.Calls()[0].Prompt
	assert.Contains(t, prompt, "#10 w")
	assert.NotContains(t, prompt, "#11 w")
}

func TestMissedRecords(t *testing.T) {
	records := []vocab.WordRecord{{Index: 1, Term: "a"}, {Index: 2, Term: "b"}, {Index: 3, Term: "c"}}
	mistakes := []quiz.Mistake{{Index: 3}, {Index: 42}, {Index: 1}}

	got := MissedRecords(records, mistakes)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].Term)
	assert.Equal(t, "a", got[1].Term)
}
