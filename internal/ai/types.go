package ai

// Result wraps a gateway payload. Degraded is set when Data is a fallback
// mock rather than parsed model output; Reason then says why.
type Result[T any] struct {
	Data     T
	Degraded bool
	Reason   error
}

type TopCareer struct {
	Title         string   `json:"title"`
	MatchScore    int      `json:"match_score"`
	Why           string   `json:"why"`
	AvgSalary     string   `json:"avg_salary"`
	Growth        string   `json:"growth"`
	EducationPath string   `json:"education_path"`
	TopSkills     []string `json:"top_skills"`
}

type AssessmentAnalysis struct {
	PersonalitySummary string         `json:"personality_summary"`
	Strengths          []string       `json:"strengths"`
	WorkStyle          string         `json:"work_style"`
	TopCareers         []TopCareer    `json:"top_careers"`
	PersonalityTraits  map[string]int `json:"personality_traits"`
	Advice             string         `json:"advice"`
}

// AssessmentInput is the profile sent to the model alongside the raw answers.
type AssessmentInput struct {
	Answers        map[string]int `json:"answers"`
	TraitScores    map[string]int `json:"trait_scores"`
	UserAge        *int           `json:"user_age"`
	EducationLevel *string        `json:"education_level"`
}

type RequiredSkill struct {
	Skill      string `json:"skill"`
	Importance string `json:"importance"`
	Has        bool   `json:"has"`
}

type LearningStep struct {
	Step     int    `json:"step"`
	Skill    string `json:"skill"`
	Resource string `json:"resource"`
	Duration string `json:"duration"`
	Type     string `json:"type"`
	Free     bool   `json:"free"`
}

type SkillGapAnalysis struct {
	TargetCareer         string          `json:"target_career"`
	RequiredSkills       []RequiredSkill `json:"required_skills"`
	SkillMatchPercentage int             `json:"skill_match_percentage"`
	MissingCritical      []string        `json:"missing_critical"`
	LearningPath         []LearningStep  `json:"learning_path"`
	TimelineMonths       int             `json:"timeline_months"`
	EstimatedReadiness   string          `json:"estimated_readiness"`
	QuickWins            []string        `json:"quick_wins"`
}

type SectionFeedback struct {
	Summary    string `json:"summary"`
	Experience string `json:"experience"`
	Skills     string `json:"skills"`
	Education  string `json:"education"`
}

type Improvement struct {
	Section   string `json:"section"`
	Current   string `json:"current"`
	Suggested string `json:"suggested"`
	Impact    string `json:"impact"`
}

type ResumeFeedback struct {
	ATSScore        int             `json:"ats_score"`
	OverallFeedback string          `json:"overall_feedback"`
	SectionFeedback SectionFeedback `json:"section_feedback"`
	Improvements    []Improvement   `json:"improvements"`
	MissingKeywords []string        `json:"missing_keywords"`
	ActionVerbs     []string        `json:"action_verbs"`
	Tips            []string        `json:"tips"`
}

// ChatTurn is one prior message of a conversation.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
