package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"skillsprint/internal/database"
	"skillsprint/internal/logger"
	"skillsprint/internal/models"
	"skillsprint/internal/repository"
)

const backupVersion = "1.0"

// BackupData is the content backup file: the shared catalogue and question pool, no user data
type BackupData struct {
	Version      string           `json:"version"`
	ExportedAt   time.Time        `json:"exported_at"`
	DatabaseType string           `json:"database_type"`
	Skills       []SkillBackup    `json:"skills"`
	Questions    []QuestionBackup `json:"questions"`
}

// SkillBackup represents a skill and its ordered topics
type SkillBackup struct {
	Name        string        `json:"name"`
	Icon        string        `json:"icon"`
	Description string        `json:"description"`
	Topics      []TopicBackup `json:"topics"`
}

// TopicBackup represents a topic within a skill
type TopicBackup struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

// QuestionBackup represents a stored question including its answer
type QuestionBackup struct {
	Topic         string            `json:"topic"`
	Difficulty    string            `json:"difficulty"`
	QuestionText  string            `json:"question_text"`
	Options       map[string]string `json:"options"`
	CorrectOption string            `json:"correct_option"`
	Explanation   string            `json:"explanation"`
}

// ImportReport counts what an import added and skipped
type ImportReport struct {
	SkillsAdded      int
	SkillsSkipped    int
	QuestionsAdded   int
	QuestionsSkipped int
}

// BackupService exports and imports skills, topics and questions
type BackupService struct {
	db  *database.DB
	log *logger.Logger
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB, log *logger.Logger) *BackupService {
	return &BackupService{db: db, log: log}
}

// Export writes a backup to a file
func (s *BackupService) Export(ctx context.Context, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(ctx, file); err != nil {
		return err
	}
	s.log.Info("content exported", "path", outputPath)
	return nil
}

// ExportToWriter writes a backup as indented JSON
func (s *BackupService) ExportToWriter(ctx context.Context, w io.Writer) error {
	skills, err := repository.NewSkillRepository(s.db).ListSkills(ctx)
	if err != nil {
		return fmt.Errorf("failed to export skills: %w", err)
	}
	questions, err := repository.NewQuestionRepository(s.db).ListQuestions(ctx)
	if err != nil {
		return fmt.Errorf("failed to export questions: %w", err)
	}

	backup := &BackupData{
		Version:      backupVersion,
		ExportedAt:   time.Now().UTC(),
		DatabaseType: s.db.Dialect.DriverName(),
		Skills:       make([]SkillBackup, 0, len(skills)),
		Questions:    make([]QuestionBackup, 0, len(questions)),
	}
	for _, sk := range skills {
		sb := SkillBackup{Name: sk.Name, Icon: sk.Icon, Description: sk.Description, Topics: make([]TopicBackup, 0, len(sk.Topics))}
		for _, t := range sk.Topics {
			sb.Topics = append(sb.Topics, TopicBackup{Name: t.Name, Description: t.Description, Order: t.Order})
		}
		backup.Skills = append(backup.Skills, sb)
	}
	for _, q := range questions {
		backup.Questions = append(backup.Questions, QuestionBackup{
			Topic:         q.Topic,
			Difficulty:    q.Difficulty,
			QuestionText:  q.QuestionText,
			Options:       q.Options,
			CorrectOption: q.CorrectOption,
			Explanation:   q.Explanation,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	s.log.Info("export finished", "skills", len(backup.Skills), "questions", len(backup.Questions))
	return nil
}

// Import restores content from a backup file
func (s *BackupService) Import(ctx context.Context, inputPath string) (ImportReport, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		return ImportReport{}, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(ctx, file)
}

// ImportFromReader merges a backup into the database in one transaction.
// Skills whose name already exists and questions whose text already exists
// for the same topic and difficulty are skipped.
func (s *BackupService) ImportFromReader(ctx context.Context, r io.Reader) (ImportReport, error) {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return ImportReport{}, fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != backupVersion {
		return ImportReport{}, fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	var report ImportReport
	err := s.db.WithTx(ctx, func(tx *database.Tx) error {
		skills := repository.NewSkillRepository(tx)
		questions := repository.NewQuestionRepository(tx)

		for _, sb := range backup.Skills {
			existing, err := skills.GetSkillByName(ctx, sb.Name)
			if err != nil {
				return err
			}
			if existing != nil {
				report.SkillsSkipped++
				continue
			}
			skill := &models.Skill{Name: sb.Name, Icon: sb.Icon, Description: sb.Description}
			if err := skills.CreateSkill(ctx, skill); err != nil {
				return err
			}
			for _, tb := range sb.Topics {
				topic := &models.Topic{SkillID: skill.ID, Name: tb.Name, Description: tb.Description, Order: tb.Order}
				if err := skills.CreateTopic(ctx, topic); err != nil {
					return err
				}
			}
			report.SkillsAdded++
		}

		known := make(map[string]map[string]bool)
		for _, qb := range backup.Questions {
			pair := qb.Topic + "\x00" + qb.Difficulty
			if known[pair] == nil {
				texts, err := questions.QuestionTexts(ctx, qb.Topic, qb.Difficulty)
				if err != nil {
					return err
				}
				known[pair] = texts
			}
			if known[pair][qb.QuestionText] {
				report.QuestionsSkipped++
				continue
			}
			q := &models.Question{
				Topic:         qb.Topic,
				Difficulty:    qb.Difficulty,
				QuestionText:  qb.QuestionText,
				Options:       qb.Options,
				CorrectOption: qb.CorrectOption,
				Explanation:   qb.Explanation,
				CreatedAt:     time.Now().UTC(),
			}
			if err := questions.CreateQuestion(ctx, q); err != nil {
				return err
			}
			known[pair][qb.QuestionText] = true
			report.QuestionsAdded++
		}
		return nil
	})
	if err != nil {
		return ImportReport{}, err
	}

	s.log.Info("import finished",
		"skills_added", report.SkillsAdded, "skills_skipped", report.SkillsSkipped,
		"questions_added", report.QuestionsAdded, "questions_skipped", report.QuestionsSkipped)
	return report, nil
}
