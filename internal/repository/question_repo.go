package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"skillsprint/internal/database"
	"skillsprint/internal/models"
)

const questionColumns = "id, topic, difficulty, question_text, options, correct_option, explanation, created_at"

// QuestionRepository handles database operations for the shared question pool
type QuestionRepository struct {
	db database.DBTX
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db database.DBTX) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *QuestionRepository) WithTx(tx database.DBTX) *QuestionRepository {
	return &QuestionRepository{db: tx}
}

// CreateQuestion persists a question and sets its ID
func (r *QuestionRepository) CreateQuestion(ctx context.Context, q *models.Question) error {
	options, err := json.Marshal(q.Options)
	if err != nil {
		return fmt.Errorf("failed to encode options: %w", err)
	}

	query := `
		INSERT INTO questions (topic, difficulty, question_text, options, correct_option, explanation, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(ctx, query,
		q.Topic, q.Difficulty, q.QuestionText, string(options), q.CorrectOption, q.Explanation, q.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}

	q.ID = id
	return nil
}

// GetQuestionByID retrieves a question by ID
func (r *QuestionRepository) GetQuestionByID(ctx context.Context, id int64) (*models.Question, error) {
	query := "SELECT " + questionColumns + " FROM questions WHERE id = ?"
	q, err := scanQuestion(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return q, nil
}

// RandomQuestions returns up to limit questions for topic and difficulty in random order
func (r *QuestionRepository) RandomQuestions(ctx context.Context, topic, difficulty string, limit int) ([]models.Question, error) {
	query := "SELECT " + questionColumns + " FROM questions WHERE topic = ? AND difficulty = ? ORDER BY " +
		r.db.GetDialect().RandomFunc() + " LIMIT ?"
	return r.list(ctx, query, topic, difficulty, limit)
}

// RandomAnyQuestions returns up to limit questions of any topic in random order
func (r *QuestionRepository) RandomAnyQuestions(ctx context.Context, limit int) ([]models.Question, error) {
	query := "SELECT " + questionColumns + " FROM questions ORDER BY " + r.db.GetDialect().RandomFunc() + " LIMIT ?"
	return r.list(ctx, query, limit)
}

// ListQuestions returns every persisted question ordered by ID
func (r *QuestionRepository) ListQuestions(ctx context.Context) ([]models.Question, error) {
	query := "SELECT " + questionColumns + " FROM questions ORDER BY id"
	return r.list(ctx, query)
}

// QuestionTexts returns the set of question texts persisted for topic and difficulty
func (r *QuestionRepository) QuestionTexts(ctx context.Context, topic, difficulty string) (map[string]bool, error) {
	query := "SELECT question_text FROM questions WHERE topic = ? AND difficulty = ?"
	rows, err := r.db.QueryContext(ctx, query, topic, difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to list question texts: %w", err)
	}
	defer rows.Close()

	texts := make(map[string]bool)
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("failed to scan question text: %w", err)
		}
		texts[text] = true
	}
	return texts, rows.Err()
}

func (r *QuestionRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Question, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanQuestion(row rowScanner) (*models.Question, error) {
	q := &models.Question{}
	var options string
	if err := row.Scan(
		&q.ID,
		&q.Topic,
		&q.Difficulty,
		&q.QuestionText,
		&options,
		&q.CorrectOption,
		&q.Explanation,
		&q.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(options), &q.Options); err != nil {
		return nil, fmt.Errorf("failed to decode options for question %d: %w", q.ID, err)
	}
	return q, nil
}
