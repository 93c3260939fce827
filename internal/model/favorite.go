package model

// swagger:model Favorite
type Favorite struct {
	UUIDBase
	UserID   string  `gorm:"size:36;uniqueIndex:uniq_favorite;not null" json:"user_id"`
	CourseID string  `gorm:"size:36;uniqueIndex:uniq_favorite;not null" json:"course_id"`
	Course   *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Favorite) TableName() string {
	return "favorites"
}
