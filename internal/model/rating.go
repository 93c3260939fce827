package model

// swagger:model CourseRating
type CourseRating struct {
	UUIDBase
	UserID   string `gorm:"size:36;not null;uniqueIndex:idx_ratings_user_course" json:"user_id"`
	CourseID string `gorm:"size:36;not null;uniqueIndex:idx_ratings_user_course" json:"course_id"`
	Rating   int    `gorm:"not null" json:"rating"`
	Comment  string `gorm:"type:text" json:"comment"`
	User     *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (CourseRating) TableName() string {
	return "course_ratings"
}
