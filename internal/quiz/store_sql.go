package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// SQLStore persists the quiz collections on database/sql. Works against
// sqlite and postgres; the schema lives in internal/db.
type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) PutQuestion(ctx context.Context, q Question) error {
	oj, err := json.Marshal(q.Options)
	if err != nil {
		return err
	}
	createdAt := q.CreatedAt
	if createdAt == 0 {
		createdAt = time.Now().UnixMilli()
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO lead_questions
		(id,text,options_json,correct_option_id,comment,discipline,topic,difficulty,institution,position,board,year,contest_class,is_ai,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		ON CONFLICT (id) DO UPDATE SET
			text=EXCLUDED.text, options_json=EXCLUDED.options_json,
			correct_option_id=EXCLUDED.correct_option_id, comment=EXCLUDED.comment,
			discipline=EXCLUDED.discipline, topic=EXCLUDED.topic,
			difficulty=EXCLUDED.difficulty, institution=EXCLUDED.institution,
			position=EXCLUDED.position, board=EXCLUDED.board, year=EXCLUDED.year,
			contest_class=EXCLUDED.contest_class, is_ai=EXCLUDED.is_ai`,
		q.ID, q.Text, string(oj), q.CorrectOptionID, q.Comment, q.Discipline, q.Topic,
		string(q.Difficulty), q.Institution, q.Position, q.Board, q.Year, q.ContestClass,
		q.IsAI, createdAt)
	return err
}

func (s *SQLStore) DeleteQuestion(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM lead_questions WHERE id=$1`, id)
	return err
}

func (s *SQLStore) ListQuestions(ctx context.Context) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
		id,text,options_json,correct_option_id,comment,discipline,topic,difficulty,institution,position,board,year,contest_class,is_ai,created_at
		FROM lead_questions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Question
	for rows.Next() {
		var q Question
		var optionsJSON, difficulty string
		if err := rows.Scan(&q.ID, &q.Text, &optionsJSON, &q.CorrectOptionID, &q.Comment,
			&q.Discipline, &q.Topic, &difficulty, &q.Institution, &q.Position, &q.Board,
			&q.Year, &q.ContestClass, &q.IsAI, &q.CreatedAt); err != nil {
			return nil, err
		}
		q.Difficulty = Difficulty(difficulty)
		// Malformed option payloads drop the row, not the load.
		norm, ok := NormalizeQuestion(q, []byte(optionsJSON))
		if !ok {
			continue
		}
		out = append(out, norm)
	}
	return out, rows.Err()
}

func (s *SQLStore) UpsertLead(ctx context.Context, email string) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO leads (email, created_at)
		VALUES ($1,$2) ON CONFLICT (email) DO NOTHING`,
		email, time.Now().UnixMilli())
	return err
}

func (s *SQLStore) InsertLeadAnswer(ctx context.Context, a LeadAnswer) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO lead_answers
		(lead_email, question_id, is_correct, time_spent, created_at)
		VALUES ($1,$2,$3,$4,$5)`,
		a.LeadEmail, a.QuestionID, a.IsCorrect, a.TimeSpentMs, time.Now().UnixMilli())
	return err
}

func (s *SQLStore) ListLeadAnswers(ctx context.Context, email string) ([]LeadAnswer, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT lead_email, question_id, is_correct, time_spent
		FROM lead_answers WHERE lead_email=$1 ORDER BY created_at ASC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LeadAnswer
	for rows.Next() {
		var a LeadAnswer
		if err := rows.Scan(&a.LeadEmail, &a.QuestionID, &a.IsCorrect, &a.TimeSpentMs); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLStore) InsertAttempt(ctx context.Context, a UserAttempt) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO attempts
		(id, user_email, question_id, selected_option_id, is_correct, timestamp, time_spent, discipline, topic, is_ai)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		a.ID, a.UserEmail, a.QuestionID, a.SelectedOptionID, a.IsCorrect, a.Timestamp,
		a.TimeSpentMs, a.Discipline, a.Topic, a.IsAI)
	return err
}

func (s *SQLStore) ListAttempts(ctx context.Context, userEmail string) ([]UserAttempt, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
		id, user_email, question_id, selected_option_id, is_correct, timestamp, time_spent, discipline, topic, is_ai
		FROM attempts WHERE ($1 = '' OR user_email = $1) ORDER BY timestamp DESC`, userEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []UserAttempt
	for rows.Next() {
		var a UserAttempt
		if err := rows.Scan(&a.ID, &a.UserEmail, &a.QuestionID, &a.SelectedOptionID, &a.IsCorrect,
			&a.Timestamp, &a.TimeSpentMs, &a.Discipline, &a.Topic, &a.IsAI); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLStore) PutPackage(ctx context.Context, p QuestionPackage) error {
	ids, err := json.Marshal(p.QuestionIDs)
	if err != nil {
		return err
	}
	createdAt := p.CreatedAt
	if createdAt == 0 {
		createdAt = time.Now().UnixMilli()
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO packages
		(id, name, description, question_ids_json, created_at)
		VALUES ($1,$2,$3,$4,$5)`,
		p.ID, p.Name, p.Description, string(ids), createdAt)
	return err
}

func (s *SQLStore) GetPackage(ctx context.Context, id string) (QuestionPackage, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, description, question_ids_json, created_at
		FROM packages WHERE id=$1`, id)
	var p QuestionPackage
	var idsJSON string
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &idsJSON, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return QuestionPackage{}, errors.New("package not found")
		}
		return QuestionPackage{}, err
	}
	if err := json.Unmarshal([]byte(idsJSON), &p.QuestionIDs); err != nil {
		return QuestionPackage{}, err
	}
	return p, nil
}

func (s *SQLStore) ListPackages(ctx context.Context) ([]QuestionPackage, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, description, question_ids_json, created_at
		FROM packages ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []QuestionPackage
	for rows.Next() {
		var p QuestionPackage
		var idsJSON string
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &idsJSON, &p.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(idsJSON), &p.QuestionIDs); err != nil {
			continue
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLStore) InsertComment(ctx context.Context, c QuestionComment) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO comments
		(id, question_id, user_id, user_email, text, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		c.ID, c.QuestionID, c.UserID, c.UserEmail, c.Text, c.CreatedAt)
	return err
}

func (s *SQLStore) ListComments(ctx context.Context, questionID string) ([]QuestionComment, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, question_id, user_id, user_email, text, created_at
		FROM comments WHERE question_id=$1 ORDER BY created_at DESC`, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []QuestionComment
	for rows.Next() {
		var c QuestionComment
		if err := rows.Scan(&c.ID, &c.QuestionID, &c.UserID, &c.UserEmail, &c.Text, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

const tagsConfigID = "global_config"

func (s *SQLStore) SaveTags(ctx context.Context, t Tags) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO tags (id, data_json, updated_at)
		VALUES ($1,$2,$3)
		ON CONFLICT (id) DO UPDATE SET data_json=EXCLUDED.data_json, updated_at=EXCLUDED.updated_at`,
		tagsConfigID, string(data), time.Now().UnixMilli())
	return err
}

func (s *SQLStore) LoadTags(ctx context.Context) (Tags, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT data_json FROM tags WHERE id=$1`, tagsConfigID)
	var data string
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Tags{}, false, nil
		}
		return Tags{}, false, err
	}
	var t Tags
	if err := json.Unmarshal([]byte(data), &t); err != nil {
		return Tags{}, false, err
	}
	return t, true, nil
}
