package ai

import (
	"math"
	"strings"
)

const (
	chatUnavailableReply = "I'm SkillSync AI, your career guidance assistant. I can help you explore careers, analyze skills, and plan your future. What would you like to know?"
	chatFailureReply     = "I'm having trouble connecting right now. Please try again in a moment!"
)

func mockAssessment() AssessmentAnalysis {
	return AssessmentAnalysis{
		PersonalitySummary: "You show strong analytical thinking combined with creative problem-solving abilities. Your responses indicate a preference for structured environments with room for innovation.",
		Strengths:          []string{"Analytical Thinking", "Problem Solving", "Attention to Detail", "Communication", "Adaptability"},
		WorkStyle:          "You thrive in environments that blend structured processes with creative freedom. You prefer teams but can work independently when needed.",
		TopCareers: []TopCareer{
			{
				Title:         "Software Developer",
				MatchScore:    92,
				Why:           "Your analytical skills and problem-solving ability are perfectly suited for software development",
				AvgSalary:     "₹6-25 LPA",
				Growth:        "high",
				EducationPath: "B.Tech CS/IT or BCA + certifications",
				TopSkills:     []string{"Python", "JavaScript", "System Design"},
			},
			{
				Title:         "Data Analyst",
				MatchScore:    87,
				Why:           "Your attention to detail and analytical nature align well with data analysis work",
				AvgSalary:     "₹4-15 LPA",
				Growth:        "high",
				EducationPath: "B.Tech/B.Sc Statistics/CS + Data Analytics certification",
				TopSkills:     []string{"SQL", "Python", "Tableau"},
			},
			{
				Title:         "Product Manager",
				MatchScore:    82,
				Why:           "Your mix of analytical and communication skills makes you an excellent PM candidate",
				AvgSalary:     "₹8-30 LPA",
				Growth:        "high",
				EducationPath: "B.Tech + MBA or Product Management certification",
				TopSkills:     []string{"Product Strategy", "Analytics", "Stakeholder Management"},
			},
			{
				Title:         "UX Designer",
				MatchScore:    78,
				Why:           "Your creative side combined with analytical thinking is ideal for user experience design",
				AvgSalary:     "₹5-20 LPA",
				Growth:        "high",
				EducationPath: "Any degree + UX Design bootcamp/certification",
				TopSkills:     []string{"Figma", "User Research", "Prototyping"},
			},
			{
				Title:         "Business Analyst",
				MatchScore:    75,
				Why:           "Your problem-solving and communication skills are key for bridging business and technology",
				AvgSalary:     "₹5-18 LPA",
				Growth:        "medium",
				EducationPath: "B.Tech/BBA/MBA with analytics focus",
				TopSkills:     []string{"Requirements Analysis", "SQL", "Process Mapping"},
			},
		},
		PersonalityTraits: map[string]int{
			"analytical":   78,
			"creative":     62,
			"social":       55,
			"enterprising": 70,
			"conventional": 40,
			"realistic":    58,
		},
		Advice: "Based on your profile, you have a strong foundation for technology-driven careers. I recommend exploring software development or data analytics as your primary path. Start by building small projects, contributing to open source, and pursuing relevant certifications. Your communication skills give you an edge. Consider roles that blend technical and business aspects like Product Management as you grow.",
	}
}

// mockSkillGap marks which of a fixed skill set the user already has, matching
// case-insensitively, and derives the percentage and missing list from those flags.
func mockSkillGap(currentSkills []string, targetCareer string) SkillGapAnalysis {
	required := []RequiredSkill{
		{Skill: "Python", Importance: "critical"},
		{Skill: "Data Analysis", Importance: "critical"},
		{Skill: "SQL", Importance: "critical"},
		{Skill: "Machine Learning", Importance: "important"},
		{Skill: "Communication", Importance: "important"},
	}

	matched := 0
	missing := []string{}
	for i := range required {
		required[i].Has = hasSkill(currentSkills, required[i].Skill)
		if required[i].Has {
			matched++
		} else if required[i].Importance == "critical" {
			missing = append(missing, required[i].Skill)
		}
	}

	return SkillGapAnalysis{
		TargetCareer:         targetCareer,
		RequiredSkills:       required,
		SkillMatchPercentage: int(math.Round(float64(matched) / float64(len(required)) * 100)),
		MissingCritical:      missing,
		LearningPath: []LearningStep{
			{Step: 1, Skill: "Python Basics", Resource: "NPTEL Python Course", Duration: "4 weeks", Type: "course", Free: true},
			{Step: 2, Skill: "SQL", Resource: "Khan Academy SQL", Duration: "2 weeks", Type: "course", Free: true},
			{Step: 3, Skill: "Data Analysis", Resource: "Google Data Analytics Certificate (Coursera)", Duration: "8 weeks", Type: "certification", Free: false},
			{Step: 4, Skill: "Portfolio Project", Resource: "Kaggle Competitions", Duration: "4 weeks", Type: "project", Free: true},
		},
		TimelineMonths:     5,
		EstimatedReadiness: "With consistent effort of 2 hours daily, you can be job-ready for entry-level positions in about 5 months.",
		QuickWins:          []string{"Start with Python basics", "Practice SQL on HackerRank", "Build a small data project on GitHub"},
	}
}

func hasSkill(currentSkills []string, skill string) bool {
	want := strings.ToLower(skill)
	for _, s := range currentSkills {
		if strings.Contains(strings.ToLower(strings.TrimSpace(s)), want) {
			return true
		}
	}
	return false
}

func mockResumeFeedback() ResumeFeedback {
	return ResumeFeedback{
		ATSScore:        68,
		OverallFeedback: "Your resume has a good structure but needs stronger action verbs and quantified achievements.",
		SectionFeedback: SectionFeedback{
			Summary:    "Add a strong professional summary highlighting your key skills and career goal",
			Experience: "Use action verbs and quantify your achievements with numbers",
			Skills:     "Group skills by category (Technical, Tools, Soft Skills)",
			Education:  "Include relevant coursework and academic achievements",
		},
		Improvements:    []Improvement{},
		MissingKeywords: []string{"data-driven", "collaborated", "optimized", "led"},
		ActionVerbs:     []string{"Developed", "Implemented", "Analyzed", "Designed", "Optimized", "Led"},
		Tips: []string{
			"Keep resume to 1 page for freshers",
			"Add links to GitHub/portfolio",
			"Include certifications with dates",
		},
	}
}
