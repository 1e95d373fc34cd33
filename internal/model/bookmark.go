package model

// Bookmark is the per-user saved-resource relation. The (user, resource)
// pair is unique; row existence is the "is bookmarked" signal and the
// resource keeps a denormalized count of these rows.
// swagger:model Bookmark
type Bookmark struct {
	BaseModel
	UserID     uint      `gorm:"not null;uniqueIndex:idx_bookmark_user_resource" json:"userId"`
	ResourceID uint      `gorm:"not null;uniqueIndex:idx_bookmark_user_resource" json:"resourceId"`
	User       *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Resource   *Resource `gorm:"foreignKey:ResourceID;constraint:OnDelete:CASCADE" json:"resource,omitempty"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}
