package service

import (
	"context"
	"strings"

	"skillsprint/internal/apperr"
	"skillsprint/internal/database"
	"skillsprint/internal/logger"
	"skillsprint/internal/models"
	"skillsprint/internal/repository"
	"skillsprint/internal/validation"
)

const defaultSkillIcon = "📚"

// SkillSeed is a skill created at startup when the catalogue is empty
type SkillSeed struct {
	Name        string
	Icon        string
	Description string
	Topics      []string
}

// DefaultSkills is the starter catalogue
var DefaultSkills = []SkillSeed{
	{Name: "Python", Icon: "🐍", Description: "Master Python programming fundamentals",
		Topics: []string{"Basics", "Functions", "OOP", "Modules", "Async"}},
	{Name: "SQL", Icon: "🗄️", Description: "Learn database queries and optimization",
		Topics: []string{"SELECT", "Joins", "Aggregation", "Indexing", "Transactions"}},
	{Name: "Networking", Icon: "🌐", Description: "Understand networking concepts and protocols",
		Topics: []string{"TCP/IP", "DNS", "HTTP/HTTPS", "Sockets", "Security"}},
	{Name: "Linux", Icon: "🐧", Description: "Master Linux command line and administration",
		Topics: []string{"Commands", "File System", "Permissions", "Processes", "Scripting"}},
	{Name: "AWS", Icon: "☁️", Description: "Learn Amazon Web Services and cloud computing",
		Topics: []string{"EC2", "S3", "Lambda", "RDS", "VPC"}},
	{Name: "JavaScript", Icon: "⚡", Description: "Master JavaScript for web development",
		Topics: []string{"Basics", "DOM", "Async", "ES6+", "Testing"}},
}

// SkillService manages the skill catalogue and per-user progress
type SkillService struct {
	db        *database.DB
	skillRepo *repository.SkillRepository
	log       *logger.Logger
}

// NewSkillService creates a new skill service
func NewSkillService(db *database.DB, log *logger.Logger) *SkillService {
	return &SkillService{
		db:        db,
		skillRepo: repository.NewSkillRepository(db),
		log:       log,
	}
}

// List returns every skill with the user's progress, zero when none is recorded
func (s *SkillService) List(ctx context.Context, userID string) ([]models.SkillWithProgress, error) {
	skills, err := s.skillRepo.ListSkills(ctx)
	if err != nil {
		return nil, err
	}
	progress, err := s.skillRepo.ProgressByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]models.SkillWithProgress, 0, len(skills))
	for _, skill := range skills {
		result = append(result, models.SkillWithProgress{Skill: skill, Progress: progress[skill.ID]})
	}
	return result, nil
}

// Create adds a skill with optional topics. The second return value is false
// when a skill with the same name (case-insensitively) already existed and was returned instead.
func (s *SkillService) Create(ctx context.Context, name, icon, description string, topics []string) (*models.Skill, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, apperr.Validation("Skill name is required")
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, false, err
	}

	existing, err := s.skillRepo.GetSkillByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	if icon == "" {
		icon = defaultSkillIcon
	}
	skill := &models.Skill{Name: name, Icon: icon, Description: description, Topics: []models.Topic{}}

	err = s.db.WithTx(ctx, func(tx *database.Tx) error {
		repo := s.skillRepo.WithTx(tx)
		if err := repo.CreateSkill(ctx, skill); err != nil {
			return err
		}
		order := 0
		for _, t := range topics {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			order++
			topic := models.Topic{SkillID: skill.ID, Name: t, Order: order}
			if err := repo.CreateTopic(ctx, &topic); err != nil {
				return err
			}
			skill.Topics = append(skill.Topics, topic)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return skill, true, nil
}

// Delete removes a skill with its topics and all progress
func (s *SkillService) Delete(ctx context.Context, skillID int64) error {
	if _, err := s.get(ctx, skillID); err != nil {
		return err
	}
	return s.db.WithTx(ctx, func(tx *database.Tx) error {
		return s.skillRepo.WithTx(tx).DeleteSkill(ctx, skillID)
	})
}

// AddTopic appends a topic after the skill's current last topic
func (s *SkillService) AddTopic(ctx context.Context, skillID int64, name, description string) (*models.Topic, error) {
	if _, err := s.get(ctx, skillID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("Topic name is required")
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}

	maxOrder, err := s.skillRepo.MaxTopicOrder(ctx, skillID)
	if err != nil {
		return nil, err
	}
	topic := &models.Topic{SkillID: skillID, Name: name, Description: description, Order: maxOrder + 1}
	if err := s.skillRepo.CreateTopic(ctx, topic); err != nil {
		return nil, err
	}
	return topic, nil
}

// Progress returns a skill and the user's progress in it
func (s *SkillService) Progress(ctx context.Context, userID string, skillID int64) (*models.Skill, models.SkillProgress, error) {
	skill, err := s.get(ctx, skillID)
	if err != nil {
		return nil, models.SkillProgress{}, err
	}
	progress, err := s.skillRepo.GetProgress(ctx, userID, skillID)
	if err != nil {
		return nil, models.SkillProgress{}, err
	}
	if progress == nil {
		return skill, models.SkillProgress{}, nil
	}
	return skill, *progress, nil
}

// UpdateProgress applies the provided fields to the user's progress, creating it if needed
func (s *SkillService) UpdateProgress(ctx context.Context, userID string, skillID int64, completionPct *float64, topicsDone *int) (models.SkillProgress, error) {
	if _, err := s.get(ctx, skillID); err != nil {
		return models.SkillProgress{}, err
	}

	var progress models.SkillProgress
	existing, err := s.skillRepo.GetProgress(ctx, userID, skillID)
	if err != nil {
		return progress, err
	}
	if existing != nil {
		progress = *existing
	}
	if completionPct != nil {
		progress.CompletionPct = *completionPct
	}
	if topicsDone != nil {
		progress.TopicsDone = *topicsDone
	}
	if err := validation.ValidateProgress(progress.CompletionPct, progress.TopicsDone); err != nil {
		return progress, err
	}

	if err := s.skillRepo.SaveProgress(ctx, userID, skillID, progress); err != nil {
		return progress, err
	}
	return progress, nil
}

// SeedDefaults creates the starter catalogue when no skills exist yet
func (s *SkillService) SeedDefaults(ctx context.Context) (int, error) {
	count, err := s.skillRepo.CountSkills(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	created := 0
	for _, seed := range DefaultSkills {
		if _, ok, err := s.Create(ctx, seed.Name, seed.Icon, seed.Description, seed.Topics); err != nil {
			return created, err
		} else if ok {
			created++
		}
	}
	s.log.Info("seeded default skills", "count", created)
	return created, nil
}

func (s *SkillService) get(ctx context.Context, skillID int64) (*models.Skill, error) {
	skill, err := s.skillRepo.GetSkill(ctx, skillID)
	if err != nil {
		return nil, err
	}
	if skill == nil {
		return nil, apperr.NotFound("Skill not found")
	}
	return skill, nil
}
