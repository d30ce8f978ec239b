package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/sidus-backend/internal/repo"
)

// ---------- test helpers ----------

func newSvcDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// seq returns a Rand func that yields vals in order and then repeats the
// last one.
func seq(vals ...float64) func() float64 {
	var mu sync.Mutex
	i := 0
	return func() float64 {
		mu.Lock()
		defer mu.Unlock()
		v := vals[i]
		if i < len(vals)-1 {
			i++
		}
		return v
	}
}

type fakeImages struct {
	url    string
	err    error
	calls  int
	prompt string
}

func (f *fakeImages) GenerateImage(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.url, f.err
}

type fakeAnalyst struct {
	text  string
	err   error
	calls int
	args  []string
}

func (f *fakeAnalyst) CompatibilityAnalysis(_ context.Context, userSign, soulmateSign, gender string, ethnicities []string) (string, error) {
	f.calls++
	f.args = []string{userSign, soulmateSign, gender}
	return f.text, f.err
}

type fakeUploader struct {
	err      error
	calls    int
	src      string
	fileName string
}

func (f *fakeUploader) UploadFromURL(_ context.Context, src, fileName string) (string, error) {
	f.calls++
	f.src = src
	f.fileName = fileName
	if f.err != nil {
		return "", f.err
	}
	return "https://storage.googleapis.com/bucket/soulmates/" + fileName, nil
}
