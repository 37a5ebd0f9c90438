package models

// Skill is a top level learning area
type Skill struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
	Topics      []Topic `json:"topics"`
}

// Topic is an ordered unit within a skill
type Topic struct {
	ID          int64  `json:"id"`
	SkillID     int64  `json:"skill_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

// SkillProgress tracks how far a user is through a skill
type SkillProgress struct {
	CompletionPct float64 `json:"completion_pct"`
	TopicsDone    int     `json:"topics_done"`
}

// SkillWithProgress pairs a skill with the requesting user's progress
type SkillWithProgress struct {
	Skill
	Progress SkillProgress `json:"progress"`
}
