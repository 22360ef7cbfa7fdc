package usecase

import (
	"github.com/fadilmartias/skillsync-api/internal/seed"
)

type MarketUsecase struct{}

func NewMarketUsecase() *MarketUsecase {
	return &MarketUsecase{}
}

func (uc *MarketUsecase) TrendingSkills() (string, []seed.TrendingSkill, error) {
	m, err := seed.Market()
	if err != nil {
		return "", nil, err
	}
	return m.LastUpdated, m.TrendingSkills, nil
}

// SalaryInsights returns every role's band keyed by role name.
func (uc *MarketUsecase) SalaryInsights() (map[string]seed.SalaryBand, error) {
	m, err := seed.Market()
	if err != nil {
		return nil, err
	}
	out := make(map[string]seed.SalaryBand, len(m.SalaryInsights))
	for _, band := range m.SalaryInsights {
		out[band.Role] = band
	}
	return out, nil
}

// SalaryForRole looks up one role by exact name.
func (uc *MarketUsecase) SalaryForRole(role string) (*seed.SalaryBand, error) {
	m, err := seed.Market()
	if err != nil {
		return nil, err
	}
	available := make([]string, 0, len(m.SalaryInsights))
	for i := range m.SalaryInsights {
		if m.SalaryInsights[i].Role == role {
			band := m.SalaryInsights[i]
			return &band, nil
		}
		available = append(available, m.SalaryInsights[i].Role)
	}
	return nil, &RoleNotFoundError{Role: role, AvailableRoles: available}
}
