package quiz_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/operacional-pcba/simulado/internal/db"
	"github.com/operacional-pcba/simulado/internal/quiz"
)

var dbSeq int

func openTestStore(t *testing.T) *quiz.SQLStore {
	t.Helper()
	dbSeq++
	dsn := fmt.Sprintf("file:quizstore%d?mode=memory&cache=shared", dbSeq)
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbh.Close() })
	return quiz.NewSQLStore(dbh, "sqlite")
}

func TestSQLStoreQuestionRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	q := quiz.Question{
		ID:              "q1",
		Text:            "Pergunta",
		Options:         []quiz.Option{{ID: "a", Label: "A", Text: "um"}, {ID: "b", Label: "B", Text: "dois"}},
		CorrectOptionID: "b",
		Comment:         "comentário",
		Discipline:      "Direito Penal",
		Topic:           "Crimes Funcionais",
		Difficulty:      quiz.DifficultyMedium,
		Institution:     "PC-BA",
		Position:        "Investigador",
		Board:           "FGV",
		Year:            "2018",
		ContestClass:    "Operacional",
		CreatedAt:       100,
		IsAI:            true,
	}
	require.NoError(t, store.PutQuestion(ctx, q))

	got, err := store.ListQuestions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, q, got[0])

	// Upsert replaces on id conflict.
	q.Text = "Pergunta editada"
	require.NoError(t, store.PutQuestion(ctx, q))
	got, err = store.ListQuestions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Pergunta editada", got[0].Text)

	require.NoError(t, store.DeleteQuestion(ctx, "q1"))
	got, err = store.ListQuestions(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLStoreListOrderAndNormalization(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutQuestion(ctx, quiz.Question{
		ID: "old", Text: "antiga", CreatedAt: 100,
		Options:         []quiz.Option{{ID: "a", Label: "A", Text: "um"}},
		CorrectOptionID: "A", // stored uppercase, normalized on read
	}))
	require.NoError(t, store.PutQuestion(ctx, quiz.Question{
		ID: "new", Text: "recente", CreatedAt: 200,
		Options:         []quiz.Option{{ID: "a", Label: "A", Text: "um"}},
		CorrectOptionID: "a",
	}))
	// A row with no usable options never reaches the playable set.
	require.NoError(t, store.PutQuestion(ctx, quiz.Question{
		ID: "broken", Text: "sem opções", CreatedAt: 300, CorrectOptionID: "a",
	}))

	got, err := store.ListQuestions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].ID)
	assert.Equal(t, "old", got[1].ID)
	assert.Equal(t, "a", got[1].CorrectOptionID)
}

func TestSQLStoreLeadUpsertIdempotent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertLead(ctx, "user@test.com"))
	require.NoError(t, store.UpsertLead(ctx, "user@test.com")) // conflict is a no-op
}

func TestSQLStoreLeadAnswers(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	answers, err := store.ListLeadAnswers(ctx, "user@test.com")
	require.NoError(t, err)
	assert.Empty(t, answers)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.InsertLeadAnswer(ctx, quiz.LeadAnswer{
			LeadEmail:   "user@test.com",
			QuestionID:  fmt.Sprintf("q%d", i),
			IsCorrect:   i != 1,
			TimeSpentMs: int64(1000 * (i + 1)),
		}))
	}
	require.NoError(t, store.InsertLeadAnswer(ctx, quiz.LeadAnswer{
		LeadEmail: "other@test.com", QuestionID: "q0", IsCorrect: true,
	}))

	answers, err = store.ListLeadAnswers(ctx, "user@test.com")
	require.NoError(t, err)
	require.Len(t, answers, 3)
	assert.Equal(t, "q0", answers[0].QuestionID)
	assert.False(t, answers[1].IsCorrect)
	assert.EqualValues(t, 3000, answers[2].TimeSpentMs)
}

func TestSQLStoreAttempts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertAttempt(ctx, quiz.UserAttempt{
		ID: "a1", UserEmail: "user@test.com", QuestionID: "q1", SelectedOptionID: "a",
		IsCorrect: true, Timestamp: 100, TimeSpentMs: 1500, Discipline: "Direito Penal", Topic: "Dolo",
	}))
	require.NoError(t, store.InsertAttempt(ctx, quiz.UserAttempt{
		ID: "a2", UserEmail: "user@test.com", QuestionID: "q2", SelectedOptionID: "b",
		IsCorrect: false, Timestamp: 200, TimeSpentMs: 2500, Discipline: "Informática", Topic: "Redes", IsAI: true,
	}))
	require.NoError(t, store.InsertAttempt(ctx, quiz.UserAttempt{
		ID: "a3", UserEmail: "other@test.com", QuestionID: "q1", SelectedOptionID: "a",
		IsCorrect: true, Timestamp: 300,
	}))

	// Empty email lists everyone, newest first.
	got, err := store.ListAttempts(ctx, "")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "a3", got[0].ID)

	// A concrete email only sees its own rows.
	got, err = store.ListAttempts(ctx, "user@test.com")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a2", got[0].ID)
	assert.True(t, got[0].IsAI)
	assert.True(t, got[1].IsCorrect)
}

func TestSQLStorePackages(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	p := quiz.QuestionPackage{
		ID: "p1", Name: "Simulado FGV", Description: "treino",
		QuestionIDs: []string{"q3", "q1"}, CreatedAt: 100,
	}
	require.NoError(t, store.PutPackage(ctx, p))

	got, err := store.GetPackage(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, p, got)

	_, err = store.GetPackage(ctx, "missing")
	assert.Error(t, err)

	all, err := store.ListPackages(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSQLStoreComments(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertComment(ctx, quiz.QuestionComment{
		ID: "c1", QuestionID: "q1", UserEmail: "a@test.com", Text: "primeiro", CreatedAt: 100,
	}))
	require.NoError(t, store.InsertComment(ctx, quiz.QuestionComment{
		ID: "c2", QuestionID: "q1", UserEmail: "b@test.com", Text: "segundo", CreatedAt: 200,
	}))
	require.NoError(t, store.InsertComment(ctx, quiz.QuestionComment{
		ID: "c3", QuestionID: "q2", UserEmail: "c@test.com", Text: "outro", CreatedAt: 300,
	}))

	got, err := store.ListComments(ctx, "q1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Newest first.
	assert.Equal(t, "c2", got[0].ID)
	assert.Equal(t, "c1", got[1].ID)
}

func TestSQLStoreTagsSingleton(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, ok, err := store.LoadTags(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	tags := quiz.Tags{
		Boards: []string{"FGV"}, Years: []string{"2022", "2018"},
		Topics: map[string][]string{"Direito Penal": {"Dolo"}},
	}
	require.NoError(t, store.SaveTags(ctx, tags))
	// Saving again replaces the singleton row.
	tags.Boards = []string{"CESPE", "FGV"}
	require.NoError(t, store.SaveTags(ctx, tags))

	got, ok, err := store.LoadTags(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, tags, got)
}
