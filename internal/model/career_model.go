package model

import (
	"fmt"

	"gorm.io/datatypes"
)

type EducationPath struct {
	Degree   string `json:"degree" yaml:"degree"`
	Field    string `json:"field" yaml:"field"`
	Duration string `json:"duration" yaml:"duration"`
}

type Career struct {
	Base
	Title             string                              `gorm:"type:varchar(255);not null;index" json:"title"`
	Slug              string                              `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Category          string                              `gorm:"type:varchar(50);not null;index" json:"category"`
	Description       string                              `gorm:"type:text;not null" json:"description"`
	DayInLife         string                              `gorm:"type:text" json:"day_in_life"`
	RequiredSkills    datatypes.JSONSlice[string]         `json:"required_skills"`
	RequiredEducation datatypes.JSONSlice[EducationPath]  `json:"required_education"`
	SalaryRangeMin    *int                                `json:"salary_range_min"` // annual, INR
	SalaryRangeMax    *int                                `json:"salary_range_max"`
	GrowthOutlook     string                              `gorm:"type:varchar(20)" json:"growth_outlook"` // "high", "medium", "low"
	DemandScore       int                                 `gorm:"index" json:"demand_score"`              // 1-100
	TopCompanies      datatypes.JSONSlice[string]         `json:"top_companies"`
	EntranceExams     datatypes.JSONSlice[string]         `json:"entrance_exams"`
	RelatedCourses    datatypes.JSONSlice[string]         `json:"related_courses"`
	Icon              string                              `gorm:"type:varchar(32)" json:"icon"`
}

func (Career) TableName() string {
	return "careers"
}

// FormattedSalary renders the salary band in lakhs, e.g. "₹6L - ₹25L".
func (c *Career) FormattedSalary() string {
	if c.SalaryRangeMin == nil || c.SalaryRangeMax == nil {
		return "N/A"
	}
	return fmt.Sprintf("₹%dL - ₹%dL", *c.SalaryRangeMin/100000, *c.SalaryRangeMax/100000)
}
