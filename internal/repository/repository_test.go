package repository

import (
	"fmt"
	"testing"

	"studystack_backend/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A second connection would see its own empty in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Resource{},
		&model.Tag{},
		&model.Bookmark{},
		&model.Activity{},
		&model.ContactMessage{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string, role model.UserRole) *model.User {
	t.Helper()
	user := &model.User{
		ExternalID: fmt.Sprintf("ext-%s", name),
		Email:      fmt.Sprintf("%s@example.com", name),
		Name:       name,
		Role:       role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedResource(t *testing.T, db *gorm.DB, uploaderID uint) *model.Resource {
	t.Helper()
	resource := &model.Resource{
		Title:        "Linear Algebra Notes",
		Description:  "Lecture notes covering chapters 1-4",
		Subject:      "Mathematics",
		ResourceType: model.TypePDF,
		FileName:     strPtr("notes.pdf"),
		FilePath:     strPtr("uploads/1/notes.pdf"),
		FileSize:     int64Ptr(1024),
		MimeType:     strPtr("application/pdf"),
		UploaderID:   uploaderID,
	}
	require.NoError(t, db.Create(resource).Error)
	return resource
}

func strPtr(s string) *string { return &s }
func int64Ptr(n int64) *int64 { return &n }
func intPtr(n int) *int       { return &n }
