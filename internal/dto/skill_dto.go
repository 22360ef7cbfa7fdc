package dto

type SkillGapRequest struct {
	CurrentSkills []string `json:"current_skills" validate:"required,max=100,dive,max=100"`
	TargetCareer  string   `json:"target_career" validate:"required,max=255"`
}
