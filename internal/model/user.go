package model

type UserRole string

const (
	Viewer      UserRole = "VIEWER"
	Contributor UserRole = "CONTRIBUTOR"
	Admin       UserRole = "ADMIN"
)

// User mirrors the profile the external identity provider knows about.
// A row is created lazily on the first authenticated request; the service
// never stores credentials.
// swagger:model User
type User struct {
	BaseModel
	ExternalID   string   `gorm:"size:191;uniqueIndex;not null" json:"externalId"`
	Email        string   `gorm:"size:191;uniqueIndex;not null" json:"email"`
	Name         string   `gorm:"size:100;not null" json:"name"`
	Role         UserRole `gorm:"size:20;default:'VIEWER'" json:"role"`
	Institution  string   `gorm:"size:191" json:"institution"`
	Verified     bool     `gorm:"default:false" json:"verified"`
	Phone        *string  `gorm:"size:30" json:"phone,omitempty"`
	ContactEmail *string  `gorm:"size:191" json:"contactEmail,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// CanContribute reports whether the user may create resources.
func (u *User) CanContribute() bool {
	return u.Role == Contributor || u.Role == Admin
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == Admin
}
