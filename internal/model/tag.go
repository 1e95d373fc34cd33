package model

import "strings"

// Tag is a normalized label. Names are stored lowercased and trimmed and
// created idempotently via find-or-create; orphaned tags are kept.
// swagger:model Tag
type Tag struct {
	BaseModel
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

func (Tag) TableName() string {
	return "tags"
}

// NormalizeTagName lowercases and trims a raw tag name. An empty result
// means the input was not a usable tag.
func NormalizeTagName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
