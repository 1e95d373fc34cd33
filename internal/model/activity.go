package model

type ActivityAction string

const (
	ActionView     ActivityAction = "VIEW"
	ActionDownload ActivityAction = "DOWNLOAD"
	ActionBookmark ActivityAction = "BOOKMARK"
	ActionShare    ActivityAction = "SHARE"
	ActionUpload   ActivityAction = "UPLOAD"
)

// ValidActivityAction reports whether a is a known activity action.
func ValidActivityAction(a ActivityAction) bool {
	switch a {
	case ActionView, ActionDownload, ActionBookmark, ActionShare, ActionUpload:
		return true
	}
	return false
}

// Activity is an append-only engagement record. Rows are written
// best-effort and only ever read back for recent-activity listings and
// per-day aggregation.
// swagger:model Activity
type Activity struct {
	BaseModel
	UserID     uint           `gorm:"not null;index" json:"userId"`
	ResourceID uint           `gorm:"not null;index" json:"resourceId"`
	Action     ActivityAction `gorm:"size:20;not null;index" json:"action"`
	User       *User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Resource   *Resource      `gorm:"foreignKey:ResourceID;constraint:OnDelete:CASCADE" json:"resource,omitempty"`
}

func (Activity) TableName() string {
	return "activities"
}
