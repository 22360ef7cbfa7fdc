package model

type User struct {
	Base
	Email          string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name           string  `gorm:"type:varchar(255);not null" json:"name"`
	HashedPassword string  `gorm:"type:varchar(255);not null" json:"-"`
	Age            *int    `json:"age"`
	EducationLevel *string `gorm:"type:varchar(50)" json:"education_level"` // "10th", "12th", "undergraduate", "graduate"
	CurrentField   *string `gorm:"type:varchar(255)" json:"current_field"`
	City           *string `gorm:"type:varchar(255)" json:"city"`
	AvatarURL      *string `gorm:"type:text" json:"avatar_url"`
}

func (User) TableName() string {
	return "users"
}
