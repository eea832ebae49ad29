package quiz

import "context"

// Store is the narrow surface the app needs from the row store: insert,
// filtered select, ordered select and keyed upsert. No transactions or
// joins.
type Store interface {
	PutQuestion(ctx context.Context, q Question) error
	DeleteQuestion(ctx context.Context, id string) error
	// ListQuestions returns the playable set newest-first: rows are
	// normalized on read and malformed ones are silently dropped.
	ListQuestions(ctx context.Context) ([]Question, error)

	UpsertLead(ctx context.Context, email string) error
	InsertLeadAnswer(ctx context.Context, a LeadAnswer) error
	ListLeadAnswers(ctx context.Context, email string) ([]LeadAnswer, error)

	InsertAttempt(ctx context.Context, a UserAttempt) error
	// ListAttempts returns attempts newest-first, filtered to one
	// user's rows; an empty email lists everyone's.
	ListAttempts(ctx context.Context, userEmail string) ([]UserAttempt, error)

	PutPackage(ctx context.Context, p QuestionPackage) error
	GetPackage(ctx context.Context, id string) (QuestionPackage, error)
	ListPackages(ctx context.Context) ([]QuestionPackage, error)

	InsertComment(ctx context.Context, c QuestionComment) error
	ListComments(ctx context.Context, questionID string) ([]QuestionComment, error)

	SaveTags(ctx context.Context, t Tags) error
	LoadTags(ctx context.Context) (Tags, bool, error)
}
