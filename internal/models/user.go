package models

type User struct {
	BaseModel
	Name         string `gorm:"type:varchar(120);not null" json:"name"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	Projects      []Project          `gorm:"foreignKey:UserID" json:"-"`
	Subscriptions []UserSubscription `gorm:"foreignKey:UserID" json:"-"`
}
