package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ChatHistoryWindow is how many messages the model sees per chat turn,
// counting the new user message.
const ChatHistoryWindow = 6

func AssessmentPrompt(in AssessmentInput) string {
	profile, _ := json.MarshalIndent(in, "", "  ")
	return fmt.Sprintf(`You are an expert career counselor AI for Indian students.

Analyze these psychometric assessment answers and provide career guidance.

Assessment Answers:
%s

Return a JSON response with this EXACT structure (no markdown, just raw JSON):
{
    "personality_summary": "2-3 sentence personality description",
    "strengths": ["strength1", "strength2", "strength3", "strength4", "strength5"],
    "work_style": "description of ideal work environment",
    "top_careers": [
        {
            "title": "Career Title",
            "match_score": 92,
            "why": "Why this career matches their profile",
            "avg_salary": "₹X-Y LPA",
            "growth": "high/medium/low",
            "education_path": "Required education",
            "top_skills": ["skill1", "skill2", "skill3"]
        }
    ],
    "personality_traits": {
        "analytical": 75,
        "creative": 60,
        "social": 45,
        "enterprising": 80,
        "conventional": 30,
        "realistic": 55
    },
    "advice": "Personalized career advice paragraph"
}

Provide exactly 5 career recommendations sorted by match_score (highest first).
Focus on careers relevant to Indian job market.
Be specific with salary ranges in Indian Rupees (LPA format).
`, profile)
}

func SkillGapPrompt(currentSkills []string, targetCareer string) string {
	if currentSkills == nil {
		currentSkills = []string{}
	}
	skills, _ := json.Marshal(currentSkills)
	target, _ := json.Marshal(targetCareer)
	return fmt.Sprintf(`You are an expert career skills advisor for Indian students.

Current Skills: %s
Target Career: %s

Analyze the skill gap and return JSON (no markdown, raw JSON only):
{
    "target_career": %s,
    "required_skills": [
        {"skill": "name", "importance": "critical/important/nice-to-have", "has": true}
    ],
    "skill_match_percentage": 65,
    "missing_critical": ["skill1", "skill2"],
    "learning_path": [
        {
            "step": 1,
            "skill": "skill name",
            "resource": "course/platform name",
            "duration": "X weeks",
            "type": "course/project/certification",
            "free": true
        }
    ],
    "timeline_months": 6,
    "estimated_readiness": "description of when they'll be job-ready",
    "quick_wins": ["easy skills to acquire first"]
}

Recommend real Indian-accessible resources (Coursera, Udemy, NPTEL, YouTube, etc).
Be realistic with timelines.
`, skills, target, target)
}

func ResumePrompt(content json.RawMessage, targetRole string) string {
	if len(content) == 0 {
		content = json.RawMessage("{}")
	}
	role, _ := json.Marshal(targetRole)
	return fmt.Sprintf(`You are an expert resume reviewer specializing in Indian job market.

Resume Data: %s
Target Role: %s

Provide improvement suggestions. Return JSON (no markdown):
{
    "ats_score": 72,
    "overall_feedback": "summary feedback",
    "section_feedback": {
        "summary": "feedback on summary/objective",
        "experience": "feedback on experience section",
        "skills": "feedback on skills section",
        "education": "feedback on education"
    },
    "improvements": [
        {"section": "summary", "current": "what they wrote", "suggested": "improved version", "impact": "high/medium/low"}
    ],
    "missing_keywords": ["keyword1", "keyword2"],
    "action_verbs": ["verb1", "verb2", "verb3"],
    "tips": ["tip1", "tip2", "tip3"]
}
`, content, role)
}

// ChatPrompt replays the most recent history so that, with message, the
// model sees at most ChatHistoryWindow messages.
func ChatPrompt(message string, history []ChatTurn) string {
	if keep := ChatHistoryWindow - 1; len(history) > keep {
		history = history[len(history)-keep:]
	}

	var b strings.Builder
	b.WriteString(`You are SkillSync AI, a friendly and expert career guidance counselor for Indian students.

You help students with:
- Career exploration and discovery
- Skill development advice
- Education path guidance
- Job market insights
- Resume and interview tips
- Course and college recommendations

Be conversational, supportive, and specific to India's job market.
Keep responses concise (2-4 paragraphs max).
Use relevant data points when possible.

`)
	if len(history) > 0 {
		b.WriteString("Previous conversation:\n")
		for _, turn := range history {
			role := "Assistant"
			if turn.Role == "user" {
				role = "User"
			}
			fmt.Fprintf(&b, "%s: %s\n", role, turn.Content)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "User: %s\n\nRespond naturally as SkillSync AI:", message)
	return b.String()
}
