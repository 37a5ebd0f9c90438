package repository

import (
	"context"
	"database/sql"
	"fmt"

	"skillsprint/internal/database"
	"skillsprint/internal/models"
)

// SkillRepository handles skills, their topics and per-user progress
type SkillRepository struct {
	db database.DBTX
}

// NewSkillRepository creates a new skill repository
func NewSkillRepository(db database.DBTX) *SkillRepository {
	return &SkillRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *SkillRepository) WithTx(tx database.DBTX) *SkillRepository {
	return &SkillRepository{db: tx}
}

// CreateSkill inserts a skill and sets its ID. Topics are not inserted.
func (r *SkillRepository) CreateSkill(ctx context.Context, skill *models.Skill) error {
	query := "INSERT INTO skills (name, icon, description) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(ctx, query, skill.Name, skill.Icon, skill.Description)
	if err != nil {
		return fmt.Errorf("failed to create skill: %w", err)
	}
	skill.ID = id
	return nil
}

// GetSkill retrieves a skill with its topics, or nil if it does not exist
func (r *SkillRepository) GetSkill(ctx context.Context, id int64) (*models.Skill, error) {
	return r.getOne(ctx, "SELECT id, name, icon, description FROM skills WHERE id = ?", id)
}

// GetSkillByName retrieves a skill by name, ignoring case
func (r *SkillRepository) GetSkillByName(ctx context.Context, name string) (*models.Skill, error) {
	return r.getOne(ctx, "SELECT id, name, icon, description FROM skills WHERE LOWER(name) = LOWER(?)", name)
}

func (r *SkillRepository) getOne(ctx context.Context, query string, args ...interface{}) (*models.Skill, error) {
	skill := &models.Skill{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&skill.ID, &skill.Name, &skill.Icon, &skill.Description)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get skill: %w", err)
	}

	topics, err := r.topicsBySkill(ctx, "WHERE skill_id = ?", skill.ID)
	if err != nil {
		return nil, err
	}
	skill.Topics = nonNilTopics(topics[skill.ID])
	return skill, nil
}

// ListSkills returns every skill with its ordered topics
func (r *SkillRepository) ListSkills(ctx context.Context) ([]models.Skill, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, icon, description FROM skills ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()

	var skills []models.Skill
	for rows.Next() {
		var skill models.Skill
		if err := rows.Scan(&skill.ID, &skill.Name, &skill.Icon, &skill.Description); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		skills = append(skills, skill)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	topics, err := r.topicsBySkill(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range skills {
		skills[i].Topics = nonNilTopics(topics[skills[i].ID])
	}
	return skills, nil
}

// CountSkills returns the number of skills
func (r *SkillRepository) CountSkills(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM skills").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count skills: %w", err)
	}
	return count, nil
}

// DeleteSkill removes a skill together with its topics and progress rows
func (r *SkillRepository) DeleteSkill(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM topics WHERE skill_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete topics: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM user_skill_progress WHERE skill_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete skill progress: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM skills WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete skill: %w", err)
	}
	return nil
}

// CreateTopic inserts a topic with an explicit order and sets its ID
func (r *SkillRepository) CreateTopic(ctx context.Context, topic *models.Topic) error {
	query := "INSERT INTO topics (skill_id, name, description, topic_order) VALUES (?, ?, ?, ?)"
	id, err := r.db.ExecReturningID(ctx, query, topic.SkillID, topic.Name, topic.Description, topic.Order)
	if err != nil {
		return fmt.Errorf("failed to create topic: %w", err)
	}
	topic.ID = id
	return nil
}

// MaxTopicOrder returns the highest topic order of a skill, 0 when it has none
func (r *SkillRepository) MaxTopicOrder(ctx context.Context, skillID int64) (int, error) {
	var maxOrder sql.NullInt64
	if err := r.db.QueryRowContext(ctx, "SELECT MAX(topic_order) FROM topics WHERE skill_id = ?", skillID).Scan(&maxOrder); err != nil {
		return 0, fmt.Errorf("failed to get topic order: %w", err)
	}
	return int(maxOrder.Int64), nil
}

func (r *SkillRepository) topicsBySkill(ctx context.Context, where string, args ...interface{}) (map[int64][]models.Topic, error) {
	query := "SELECT id, skill_id, name, description, topic_order FROM topics " + where + " ORDER BY skill_id, topic_order, id"
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	defer rows.Close()

	topics := make(map[int64][]models.Topic)
	for rows.Next() {
		var t models.Topic
		if err := rows.Scan(&t.ID, &t.SkillID, &t.Name, &t.Description, &t.Order); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		topics[t.SkillID] = append(topics[t.SkillID], t)
	}
	return topics, rows.Err()
}

func nonNilTopics(topics []models.Topic) []models.Topic {
	if topics == nil {
		return []models.Topic{}
	}
	return topics
}

// GetProgress retrieves the user's progress for a skill, or nil
func (r *SkillRepository) GetProgress(ctx context.Context, userID string, skillID int64) (*models.SkillProgress, error) {
	query := "SELECT completion_pct, topics_done FROM user_skill_progress WHERE user_id = ? AND skill_id = ?"
	progress := &models.SkillProgress{}
	err := r.db.QueryRowContext(ctx, query, userID, skillID).Scan(&progress.CompletionPct, &progress.TopicsDone)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get skill progress: %w", err)
	}
	return progress, nil
}

// ProgressByUser returns the user's progress keyed by skill ID
func (r *SkillRepository) ProgressByUser(ctx context.Context, userID string) (map[int64]models.SkillProgress, error) {
	query := "SELECT skill_id, completion_pct, topics_done FROM user_skill_progress WHERE user_id = ?"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list skill progress: %w", err)
	}
	defer rows.Close()

	progress := make(map[int64]models.SkillProgress)
	for rows.Next() {
		var skillID int64
		var p models.SkillProgress
		if err := rows.Scan(&skillID, &p.CompletionPct, &p.TopicsDone); err != nil {
			return nil, fmt.Errorf("failed to scan skill progress: %w", err)
		}
		progress[skillID] = p
	}
	return progress, rows.Err()
}

// SaveProgress creates or replaces the user's progress for a skill
func (r *SkillRepository) SaveProgress(ctx context.Context, userID string, skillID int64, progress models.SkillProgress) error {
	existing, err := r.GetProgress(ctx, userID, skillID)
	if err != nil {
		return err
	}

	if existing == nil {
		query := `
			INSERT INTO user_skill_progress (user_id, skill_id, completion_pct, topics_done)
			VALUES (?, ?, ?, ?)
		`
		if _, err := r.db.ExecContext(ctx, query, userID, skillID, progress.CompletionPct, progress.TopicsDone); err != nil {
			return fmt.Errorf("failed to create skill progress: %w", err)
		}
		return nil
	}

	query := `
		UPDATE user_skill_progress
		SET completion_pct = ?, topics_done = ?
		WHERE user_id = ? AND skill_id = ?
	`
	if _, err := r.db.ExecContext(ctx, query, progress.CompletionPct, progress.TopicsDone, userID, skillID); err != nil {
		return fmt.Errorf("failed to update skill progress: %w", err)
	}
	return nil
}
