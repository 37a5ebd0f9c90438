package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"skillsprint/internal/database"
	"skillsprint/internal/models"
)

const userColumns = `id, email, password_hash, current_streak, longest_streak, timezone, is_pro,
	COALESCE(stripe_customer_id, ''), COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''), created_at`

// UserRepository handles database operations for users
type UserRepository struct {
	db database.DBTX
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *UserRepository) WithTx(tx database.DBTX) *UserRepository {
	return &UserRepository{db: tx}
}

// CreateUser inserts a new user. The caller assigns the ID.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, current_streak, longest_streak, timezone, is_pro, oauth_provider, oauth_subject, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.CurrentStreak,
		user.LongestStreak,
		user.Timezone,
		user.IsPro,
		nullString(user.OAuthProvider),
		nullString(user.OAuthSubject),
		user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by email address
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE email = ?"
	return r.getOne(ctx, query, strings.ToLower(email))
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = ?"
	return r.getOne(ctx, query, id)
}

// GetUserByIDForUpdate retrieves a user and locks the row until the surrounding transaction ends
func (r *UserRepository) GetUserByIDForUpdate(ctx context.Context, id string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = ?" + r.db.GetDialect().LockClause()
	return r.getOne(ctx, query, id)
}

// GetUserByOAuth retrieves a user linked to an OAuth identity
func (r *UserRepository) GetUserByOAuth(ctx context.Context, provider, subject string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE oauth_provider = ? AND oauth_subject = ?"
	return r.getOne(ctx, query, provider, subject)
}

// LinkOAuth attaches an OAuth identity to an existing user
func (r *UserRepository) LinkOAuth(ctx context.Context, userID, provider, subject string) error {
	query := "UPDATE users SET oauth_provider = ?, oauth_subject = ? WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, query, provider, subject, userID); err != nil {
		return fmt.Errorf("failed to link oauth identity: %w", err)
	}
	return nil
}

// UpdateStreaks stores the running and longest streak of a user
func (r *UserRepository) UpdateStreaks(ctx context.Context, userID string, current, longest int) error {
	query := "UPDATE users SET current_streak = ?, longest_streak = ? WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, query, current, longest, userID); err != nil {
		return fmt.Errorf("failed to update streaks: %w", err)
	}
	return nil
}

// MarkPro upgrades a user to the paid tier. Returns false when the user does not exist.
func (r *UserRepository) MarkPro(ctx context.Context, userID, customerID string) (bool, error) {
	user, err := r.GetUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}

	query := "UPDATE users SET is_pro = ?, stripe_customer_id = ? WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, query, true, nullString(customerID), userID); err != nil {
		return false, fmt.Errorf("failed to mark user pro: %w", err)
	}
	return true, nil
}

func (r *UserRepository) getOne(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CurrentStreak,
		&user.LongestStreak,
		&user.Timezone,
		&user.IsPro,
		&user.StripeCustomerID,
		&user.OAuthProvider,
		&user.OAuthSubject,
		&user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.CreatedAt = user.CreatedAt.UTC()
	return user, nil
}

// nullString stores empty strings as NULL so unique and lookup columns stay sparse
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
