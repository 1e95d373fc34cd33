package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTagName(t *testing.T) {
	assert.Equal(t, "calculus", NormalizeTagName("  Calculus "))
	assert.Equal(t, "data structures", NormalizeTagName("Data Structures"))
	assert.Equal(t, "", NormalizeTagName("   "))
}

func TestValidResourceType(t *testing.T) {
	for _, rt := range []ResourceType{TypePDF, TypeDOC, TypeDOCX, TypePPT, TypePPTX, TypeOther, TypeLink, TypePYQ} {
		assert.True(t, ValidResourceType(rt), string(rt))
	}
	assert.False(t, ValidResourceType("VIDEO"))
	assert.False(t, ValidResourceType("pdf"))
}

func TestValidActivityAction(t *testing.T) {
	for _, a := range []ActivityAction{ActionView, ActionDownload, ActionBookmark, ActionShare, ActionUpload} {
		assert.True(t, ValidActivityAction(a), string(a))
	}
	assert.False(t, ValidActivityAction("LIKE"))
	assert.False(t, ValidActivityAction("view"))
}

func TestResourceOwnedBy(t *testing.T) {
	owner := &User{BaseModel: BaseModel{ID: 1}, Role: Contributor}
	other := &User{BaseModel: BaseModel{ID: 2}, Role: Contributor}
	admin := &User{BaseModel: BaseModel{ID: 3}, Role: Admin}
	resource := &Resource{UploaderID: 1}

	assert.True(t, resource.OwnedBy(owner))
	assert.False(t, resource.OwnedBy(other))
	assert.True(t, resource.OwnedBy(admin))
	assert.False(t, resource.OwnedBy(nil))
}

func TestUserRoleHelpers(t *testing.T) {
	assert.False(t, (&User{Role: Viewer}).CanContribute())
	assert.True(t, (&User{Role: Contributor}).CanContribute())
	assert.True(t, (&User{Role: Admin}).CanContribute())
	assert.True(t, (&User{Role: Admin}).IsAdmin())
	assert.False(t, (&User{Role: Contributor}).IsAdmin())
}
