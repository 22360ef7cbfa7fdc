package seed

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed market.yaml
var marketYAML []byte

type TrendingSkill struct {
	Name      string `yaml:"name" json:"name"`
	Growth    string `yaml:"growth" json:"growth"`
	Category  string `yaml:"category" json:"category"`
	AvgSalary string `yaml:"avg_salary" json:"avg_salary"`
}

type SalaryBand struct {
	Role      string   `yaml:"role" json:"-"`
	Fresher   string   `yaml:"fresher" json:"fresher"`
	Mid       string   `yaml:"mid" json:"mid"`
	Senior    string   `yaml:"senior" json:"senior"`
	TopCities []string `yaml:"top_cities" json:"top_cities"`
}

// CategoryStyle decorates a career category key for display.
type CategoryStyle struct {
	Name  string `yaml:"name" json:"name"`
	Icon  string `yaml:"icon" json:"icon"`
	Color string `yaml:"color" json:"color"`
}

type MarketData struct {
	LastUpdated    string                   `yaml:"last_updated"`
	TrendingSkills []TrendingSkill          `yaml:"trending_skills"`
	SalaryInsights []SalaryBand             `yaml:"salary_insights"`
	Categories     map[string]CategoryStyle `yaml:"categories"`
}

var (
	market     MarketData
	marketErr  error
	marketOnce sync.Once
)

// Market returns the static job-market tables. The result is shared; callers must not modify it.
func Market() (*MarketData, error) {
	marketOnce.Do(func() {
		if err := yaml.Unmarshal(marketYAML, &market); err != nil {
			marketErr = fmt.Errorf("parse market data: %w", err)
		}
	})
	return &market, marketErr
}
