package service

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"testing"

	"studystack_backend/internal/config"
	"studystack_backend/internal/model"
	"studystack_backend/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	db *gorm.DB

	userRepo     *repository.UserRepository
	resourceRepo *repository.ResourceRepository
	tagRepo      *repository.TagRepository
	bookmarkRepo *repository.BookmarkRepository
	activityRepo *repository.ActivityRepository
	contactRepo  *repository.ContactRepository

	storage   *StorageService
	resources *ResourceService
	users     *UserService
	analytics *AnalyticsService
	contact   *ContactService
}

func newTestEnv(t *testing.T) *testEnv {
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

	env := &testEnv{
		db:           db,
		userRepo:     repository.NewUserRepository(db),
		resourceRepo: repository.NewResourceRepository(db),
		tagRepo:      repository.NewTagRepository(db),
		bookmarkRepo: repository.NewBookmarkRepository(db),
		activityRepo: repository.NewActivityRepository(db),
		contactRepo:  repository.NewContactRepository(db),
	}

	env.storage = &StorageService{
		Provider: &LocalStorageProvider{
			Config: &config.StorageConfig{Type: "local", LocalPath: t.TempDir()},
		},
	}
	env.resources = NewResourceService(env.resourceRepo, env.tagRepo, env.bookmarkRepo, env.activityRepo, env.userRepo, env.storage)
	env.users = NewUserService(env.userRepo, env.resourceRepo, env.bookmarkRepo, env.activityRepo)
	env.analytics = NewAnalyticsService(env.resourceRepo, env.activityRepo, nil)
	env.contact = NewContactService(env.contactRepo)
	return env
}

func (e *testEnv) newUser(t *testing.T, name string, role model.UserRole) *model.User {
	t.Helper()
	user := &model.User{
		ExternalID: fmt.Sprintf("ext-%s", name),
		Email:      fmt.Sprintf("%s@example.com", name),
		Name:       name,
		Role:       role,
	}
	require.NoError(t, e.userRepo.Create(user))
	return user
}

// fileHeader builds a real multipart file header the way gin would hand
// one to a controller.
func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(int64(len(content)) + 10240)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func pdfBytes() []byte {
	return append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("studystack "), 64)...)
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
