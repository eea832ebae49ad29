package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/operacional-pcba/simulado/internal/quiz"
)

// geminiStub serves canned generateContent payloads.
func geminiStub(t *testing.T, payload string, capture *generateRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":generateContent") {
			http.NotFound(w, r)
			return
		}
		if capture != nil {
			_ = json.NewDecoder(r.Body).Decode(capture)
		}
		resp := generateResponse{}
		resp.Candidates = []struct {
			Content content `json:"content"`
		}{{Content: content{Parts: []part{{Text: payload}}}}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func fixedClock() func() time.Time {
	return func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
}

func TestGenerateQuestionPostProcessing(t *testing.T) {
	payload := `{
		"text": "Qual o prazo do inquérito com indiciado preso?",
		"options": [
			{"id": "A", "text": "5 dias"},
			{"id": "B", "text": "10 dias"},
			{"id": "C", "text": "30 dias"}
		],
		"correctOptionId": "B",
		"comment": "Art. 10 do CPP."
	}`
	var captured generateRequest
	srv := geminiStub(t, payload, &captured)
	defer srv.Close()

	c := NewClient("test-key", "gemini-3-pro-preview", srv.URL).WithClock(fixedClock())
	q, err := c.GenerateQuestion(context.Background(), "FGV", "Direito Processual Penal", quiz.DifficultyMedium, "PC-BA")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(q.ID, "ai-"))
	assert.True(t, q.IsAI)
	assert.Equal(t, "b", q.CorrectOptionID)
	require.Len(t, q.Options, 3)
	assert.Equal(t, "a", q.Options[0].ID)
	assert.Equal(t, "A", q.Options[0].Label)
	assert.Equal(t, "FGV", q.Board)
	assert.Equal(t, "PC-BA", q.Institution)
	assert.Equal(t, "2025", q.Year)
	assert.Equal(t, "Operador de Inteligência", q.Position)
	assert.Equal(t, "Especializada", q.ContestClass)
	assert.EqualValues(t, fixedClock()().UnixMilli(), q.CreatedAt)

	// The prompt goes out as a single text part with JSON output forced.
	require.Len(t, captured.Contents, 1)
	assert.Contains(t, captured.Contents[0].Parts[0].Text, "FGV")
	require.NotNil(t, captured.GenerationConfig)
	assert.Equal(t, "application/json", captured.GenerationConfig.ResponseMIMEType)
}

func TestExtractFromPDFPostProcessing(t *testing.T) {
	payload := `[
		{
			"text": "Questão 1",
			"options": [{"id": "a", "text": "um"}, {"id": "b", "text": "dois"}],
			"correctOptionId": "A",
			"discipline": "Direito Penal",
			"topic": "Crimes Funcionais",
			"difficulty": "Médio",
			"position": "Investigador",
			"contestClass": "Operacional"
		},
		{
			"text": "Questão 2",
			"options": [{"id": "a", "label": "A", "text": "um"}],
			"correctOptionId": "a",
			"discipline": "Informática",
			"topic": "Redes",
			"difficulty": "Fácil",
			"contestClass": "Operacional"
		}
	]`
	var captured generateRequest
	srv := geminiStub(t, payload, &captured)
	defer srv.Close()

	c := NewClient("test-key", "gemini-3-pro-preview", srv.URL).WithClock(fixedClock())
	qs, err := c.ExtractFromPDF(context.Background(), "JVBERi0=", "FGV", "PC-BA", "2018")
	require.NoError(t, err)
	require.Len(t, qs, 2)

	for _, q := range qs {
		assert.True(t, strings.HasPrefix(q.ID, "pdf-"), "id=%s", q.ID)
		assert.Equal(t, "FGV", q.Board)
		assert.Equal(t, "PC-BA", q.Institution)
		assert.Equal(t, "2018", q.Year)
		assert.False(t, q.IsAI)
	}
	assert.Equal(t, "a", qs[0].CorrectOptionID)
	assert.Equal(t, "B", qs[0].Options[1].Label) // label derived from id

	// The document travels as inline data ahead of the prompt.
	require.Len(t, captured.Contents, 1)
	require.NotNil(t, captured.Contents[0].Parts[0].InlineData)
	assert.Equal(t, "application/pdf", captured.Contents[0].Parts[0].InlineData.MimeType)
	assert.Equal(t, "JVBERi0=", captured.Contents[0].Parts[0].InlineData.Data)
}

func TestGenerateQuestionUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("test-key", "gemini-3-pro-preview", srv.URL)
	_, err := c.GenerateQuestion(context.Background(), "FGV", "Informática", quiz.DifficultyEasy, "PC-BA")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerateQuestionBadPayload(t *testing.T) {
	srv := geminiStub(t, "not json at all", nil)
	defer srv.Close()

	c := NewClient("test-key", "gemini-3-pro-preview", srv.URL)
	_, err := c.GenerateQuestion(context.Background(), "FGV", "Informática", quiz.DifficultyEasy, "PC-BA")
	assert.Error(t, err)
}
