// Package ai wraps the Gemini generateContent API for question
// synthesis and exam-PDF extraction. The model output is treated as an
// opaque, schema-validated black box; this package only owns the
// post-processing (id assignment, option relabeling, timestamping).
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/operacional-pcba/simulado/internal/quiz"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

type Client struct {
	http  *resty.Client
	model string
	now   func() time.Time
}

func NewClient(apiKey, model, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("x-goog-api-key", apiKey).
		SetHeader("Content-Type", "application/json")
	return &Client{http: rc, model: model, now: time.Now}
}

// WithClock overrides the timestamp source. Test hook.
func (c *Client) WithClock(now func() time.Time) *Client {
	c.now = now
	return c
}

// --- wire types (generateContent) ---

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, req generateRequest) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post("/v1beta/models/" + c.model + ":generateContent")
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("gemini: status %d: %s", resp.StatusCode(), resp.String())
	}
	var out generateResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini: empty response")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// generatedQuestion is the JSON shape the model is asked to emit for a
// single synthesized question.
type generatedQuestion struct {
	Text            string        `json:"text"`
	Options         []quiz.Option `json:"options"`
	CorrectOptionID string        `json:"correctOptionId"`
	Comment         string        `json:"comment"`
}

// GenerateQuestion synthesizes one unpublished question for the given
// classification. The returned Question is fully post-processed and
// ready for storage.
func (c *Client) GenerateQuestion(ctx context.Context, board, discipline string, difficulty quiz.Difficulty, institution string) (quiz.Question, error) {
	prompt := fmt.Sprintf(`Gere uma questão INÉDITA e técnica de concurso de POLÍCIA CIVIL.
Banca: %s | Disciplina: %s | Nível: %s | Órgão: %s.
Use terminologia jurídica e policial técnica. Responda APENAS em JSON com os campos
text, options (array de {id, text} com ids a..e), correctOptionId e comment.`,
		board, discipline, difficulty, institution)

	payload, err := c.generate(ctx, generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{ResponseMIMEType: "application/json"},
	})
	if err != nil {
		return quiz.Question{}, err
	}

	var gen generatedQuestion
	if err := json.Unmarshal([]byte(payload), &gen); err != nil {
		return quiz.Question{}, fmt.Errorf("gemini: bad question payload: %w", err)
	}

	now := c.now()
	q := quiz.Question{
		ID:              "ai-" + uuid.NewString(),
		Text:            gen.Text,
		Options:         quiz.FillLabels(gen.Options),
		CorrectOptionID: gen.CorrectOptionID,
		Comment:         gen.Comment,
		Discipline:      discipline,
		Topic:           "Tópico Geral",
		Difficulty:      difficulty,
		Institution:     institution,
		Position:        "Operador de Inteligência",
		Board:           board,
		Year:            fmt.Sprintf("%d", now.Year()),
		ContestClass:    "Especializada",
		CreatedAt:       now.UnixMilli(),
		IsAI:            true,
	}
	return normalizeCorrect(q), nil
}

// extractedQuestion is one element of the array the model emits when
// scanning an exam document.
type extractedQuestion struct {
	Text            string        `json:"text"`
	Options         []quiz.Option `json:"options"`
	CorrectOptionID string        `json:"correctOptionId"`
	Comment         string        `json:"comment"`
	Discipline      string        `json:"discipline"`
	Topic           string        `json:"topic"`
	Difficulty      string        `json:"difficulty"`
	Position        string        `json:"position"`
	ContestClass    string        `json:"contestClass"`
}

// ExtractFromPDF scans a base64-encoded exam document and returns every
// question found in it, stamped with the supplied board, institution
// and year.
func (c *Client) ExtractFromPDF(ctx context.Context, pdfBase64, board, institution, year string) ([]quiz.Question, error) {
	prompt := fmt.Sprintf(`Você é um perito em extração de dados de concursos da área policial.
Analise este PDF da prova da %s (%s) realizada pela banca %s.

INSTRUÇÕES:
1. Varra o documento e localize todas as questões numeradas.
2. Extraia: Enunciado (text), Alternativas (options: a a e), Gabarito (correctOptionId).
3. Identifique a Disciplina e o Assunto (topic) específico.
4. Categorize a Carreira (contestClass) entre: 'Operacional', 'Delta', 'Perícia' ou 'Administrativo'.
5. Defina a Dificuldade (difficulty) entre 'Fácil', 'Médio' ou 'Difícil'.

IMPORTANTE: Ignore cabeçalhos, rodapés e textos motivadores longos.
Responda APENAS com um array JSON.`, institution, year, board)

	payload, err := c.generate(ctx, generateRequest{
		Contents: []content{{Parts: []part{
			{InlineData: &inlineData{MimeType: "application/pdf", Data: pdfBase64}},
			{Text: prompt},
		}}},
		GenerationConfig: &generationConfig{ResponseMIMEType: "application/json"},
	})
	if err != nil {
		return nil, err
	}

	var raw []extractedQuestion
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("gemini: bad extraction payload: %w", err)
	}

	now := c.now()
	out := make([]quiz.Question, 0, len(raw))
	for _, e := range raw {
		q := quiz.Question{
			ID:              "pdf-" + uuid.NewString(),
			Text:            e.Text,
			Options:         quiz.FillLabels(e.Options),
			CorrectOptionID: e.CorrectOptionID,
			Comment:         e.Comment,
			Discipline:      e.Discipline,
			Topic:           e.Topic,
			Difficulty:      quiz.Difficulty(e.Difficulty),
			Institution:     institution,
			Position:        e.Position,
			Board:           board,
			Year:            year,
			ContestClass:    e.ContestClass,
			CreatedAt:       now.UnixMilli(),
		}
		out = append(out, normalizeCorrect(q))
	}
	return out, nil
}

func normalizeCorrect(q quiz.Question) quiz.Question {
	norm, ok := quiz.NormalizeQuestion(q, mustJSON(q.Options))
	if !ok {
		// Keep the raw question; the load-time normalizer will drop it
		// if it is still unusable after admin review.
		return q
	}
	return norm
}

func mustJSON(v any) []byte {
	b, _ := json.Marshal(v)
	return b
}
