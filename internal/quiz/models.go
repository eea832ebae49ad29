package quiz

// Difficulty levels follow the Portuguese labels used throughout the
// question bank and the AI extraction contract.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Fácil"
	DifficultyMedium Difficulty = "Médio"
	DifficultyHard   Difficulty = "Difícil"
)

// Option is a single answer alternative. IDs are lowercase tokens
// ("a".."e"); Label is the uppercase display form.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	Text  string `json:"text"`
}

type Question struct {
	ID              string     `json:"id"`
	Text            string     `json:"text"`
	Options         []Option   `json:"options"`
	CorrectOptionID string     `json:"correctOptionId"`
	Comment         string     `json:"comment,omitempty"`
	Discipline      string     `json:"discipline"`
	Topic           string     `json:"topic"`
	Difficulty      Difficulty `json:"difficulty"`
	Institution     string     `json:"institution"`
	Position        string     `json:"position"`
	Board           string     `json:"board"`
	Year            string     `json:"year"`
	ContestClass    string     `json:"contestClass"`
	CreatedAt       int64      `json:"createdAt"`
	IsAI            bool       `json:"isAI,omitempty"`
}

// Tags is the derived filter vocabulary. It is a snapshot computed from
// the question collection, never edited incrementally.
type Tags struct {
	Boards         []string            `json:"boards"`
	Institutions   []string            `json:"institutions"`
	ContestClasses []string            `json:"contestClasses"`
	Positions      []string            `json:"positions"`
	Disciplines    []string            `json:"disciplines"`
	Years          []string            `json:"years"`
	Topics         map[string][]string `json:"topics"`
}

// QuestionPackage is a curated simulation: a fixed list of question ids.
type QuestionPackage struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	QuestionIDs []string `json:"questionIds"`
	CreatedAt   int64    `json:"createdAt"`
}

// UserAttempt is one answered question on the student dashboard side.
// Immutable once recorded; UserEmail comes from the authenticated
// subject, never the payload.
type UserAttempt struct {
	ID               string `json:"id"`
	UserEmail        string `json:"userEmail,omitempty"`
	QuestionID       string `json:"questionId"`
	SelectedOptionID string `json:"selectedOptionId"`
	IsCorrect        bool   `json:"isCorrect"`
	Timestamp        int64  `json:"timestamp"`
	TimeSpentMs      int64  `json:"timeSpent,omitempty"`
	Discipline       string `json:"discipline"`
	Topic            string `json:"topic"`
	IsAI             bool   `json:"isAI,omitempty"`
}

// QuestionComment is a community "bizu" attached to a question.
type QuestionComment struct {
	ID         string `json:"id"`
	QuestionID string `json:"questionId"`
	UserID     string `json:"userId"`
	UserEmail  string `json:"userEmail"`
	Text       string `json:"text"`
	CreatedAt  int64  `json:"createdAt"`
}

// LeadAnswer is the append-only record of one lead-simulator answer.
type LeadAnswer struct {
	LeadEmail   string `json:"lead_email"`
	QuestionID  string `json:"question_id"`
	IsCorrect   bool   `json:"is_correct"`
	TimeSpentMs int64  `json:"time_spent"`
}
