package model

// ContactMessage backs the frontend contact form. Messages are stored
// for later review; delivery is out of scope.
// swagger:model ContactMessage
type ContactMessage struct {
	BaseModel
	Name    string `gorm:"size:100;not null" json:"name"`
	Email   string `gorm:"size:191;not null" json:"email"`
	Subject string `gorm:"size:255;not null" json:"subject"`
	Body    string `gorm:"type:text;not null" json:"body"`
	UserID  *uint  `gorm:"index" json:"userId,omitempty"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}
