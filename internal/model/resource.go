package model

type ResourceType string

const (
	TypePDF   ResourceType = "PDF"
	TypeDOC   ResourceType = "DOC"
	TypeDOCX  ResourceType = "DOCX"
	TypePPT   ResourceType = "PPT"
	TypePPTX  ResourceType = "PPTX"
	TypeOther ResourceType = "OTHER"
	TypeLink  ResourceType = "LINK"
	TypePYQ   ResourceType = "PYQ"
)

// ValidResourceType reports whether t is one of the known resource types.
func ValidResourceType(t ResourceType) bool {
	switch t {
	case TypePDF, TypeDOC, TypeDOCX, TypePPT, TypePPTX, TypeOther, TypeLink, TypePYQ:
		return true
	}
	return false
}

// Resource is a shared learning material. Exactly one of the file branch
// (FileName/FilePath/FileSize/MimeType) and the link branch (URL) is
// populated: LINK resources carry a URL and IsExternal=true, every other
// type carries a stored file reference. PYQ resources additionally carry
// the exam year.
// swagger:model Resource
type Resource struct {
	BaseModel
	Title        string       `gorm:"size:255;not null" json:"title"`
	Description  string       `gorm:"type:text;not null" json:"description"`
	Subject      string       `gorm:"size:100;not null;index" json:"subject"`
	ResourceType ResourceType `gorm:"size:10;not null;index" json:"resourceType"`
	Semester     *string      `gorm:"size:20" json:"semester,omitempty"`
	Year         *int         `gorm:"index" json:"year,omitempty"`
	IsPrivate    bool         `gorm:"default:false;index" json:"isPrivate"`
	AllowContact bool         `gorm:"default:false" json:"allowContact"`

	FileName *string `gorm:"size:255" json:"fileName,omitempty"`
	FilePath *string `gorm:"size:512" json:"filePath,omitempty"`
	FileSize *int64  `json:"fileSize,omitempty"`
	MimeType *string `gorm:"size:100" json:"mimeType,omitempty"`

	URL        *string `gorm:"size:2048" json:"url,omitempty"`
	IsExternal bool    `gorm:"default:false" json:"isExternal"`

	Views     int `gorm:"default:0" json:"views"`
	Downloads int `gorm:"default:0" json:"downloads"`
	Bookmarks int `gorm:"default:0" json:"bookmarks"`

	UploaderID uint  `gorm:"not null;index" json:"uploaderId"`
	Uploader   *User `gorm:"foreignKey:UploaderID" json:"uploader,omitempty"`
	Tags       []Tag `gorm:"many2many:resource_tags;constraint:OnDelete:CASCADE" json:"tags"`
}

func (Resource) TableName() string {
	return "resources"
}

// OwnedBy reports whether the given user may act as the resource owner.
func (r *Resource) OwnedBy(u *User) bool {
	if u == nil {
		return false
	}
	return r.UploaderID == u.ID || u.IsAdmin()
}
