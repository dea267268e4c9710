package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/R3MiX9002/my-gemini-app/internal/model"
	"github.com/R3MiX9002/my-gemini-app/internal/platform/sqlite"
	"github.com/R3MiX9002/my-gemini-app/internal/store"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("sqlite.New() error = %v", err)
	}
	if err := store.InitSchema(db); err != nil {
		t.Fatalf("InitSchema() error = %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestUserRepository_EnsureDefault(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	first, err := repo.EnsureDefault(ctx, model.DefaultUserName)
	if err != nil {
		t.Fatalf("EnsureDefault() error = %v", err)
	}
	second, err := repo.EnsureDefault(ctx, model.DefaultUserName)
	if err != nil {
		t.Fatalf("EnsureDefault() error = %v", err)
	}
	if first.ID == 0 || first.ID != second.ID {
		t.Fatalf("EnsureDefault() ids = %d, %d, want same non-zero id", first.ID, second.ID)
	}

	got, err := repo.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got == nil || got.Name != model.DefaultUserName {
		t.Fatalf("GetByID() = %+v, want default user", got)
	}

	missing, err := repo.GetByID(ctx, 999)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByID(999) = %+v, want nil", missing)
	}
}

func TestUserSettingRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	settings := NewUserSettingRepository(db)

	user, err := users.EnsureDefault(ctx, model.DefaultUserName)
	if err != nil {
		t.Fatalf("EnsureDefault() error = %v", err)
	}

	if _, err := settings.Upsert(ctx, user.ID, "theme", "dark"); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	updated, err := settings.Upsert(ctx, user.ID, "theme", "light")
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if updated.Value != "light" {
		t.Fatalf("Upsert() value = %q, want light", updated.Value)
	}
	if _, err := settings.Upsert(ctx, user.ID, "lang", "de"); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	list, err := settings.ListByUserID(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListByUserID() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("ListByUserID() len = %d, want 2", len(list))
	}

	got, err := settings.Get(ctx, user.ID, "theme")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil || got.Value != "light" {
		t.Fatalf("Get() = %+v, want light", got)
	}

	none, err := settings.Get(ctx, user.ID, "missing")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if none != nil {
		t.Fatalf("Get(missing) = %+v, want nil", none)
	}
}

func TestSessionRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	sessions := NewSessionRepository(db)
	points := NewContextPointRepository(db)

	session := &model.Session{UserID: 1, StartTime: time.Now()}
	if err := sessions.Create(ctx, session); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	now := time.Now()
	for i, typ := range []string{"goal", "decision"} {
		point := &model.ContextPoint{
			SessionID: session.ID,
			Type:      typ,
			Content:   typ + " text",
			Timestamp: now.Add(time.Duration(i) * time.Second),
		}
		if err := points.Create(ctx, point); err != nil {
			t.Fatalf("ContextPoint Create() error = %v", err)
		}
	}

	ok, err := sessions.End(ctx, session.ID, "done", now)
	if err != nil {
		t.Fatalf("End() error = %v", err)
	}
	if !ok {
		t.Fatal("End() = false, want true")
	}
	ok, err = sessions.End(ctx, 999, "none", now)
	if err != nil {
		t.Fatalf("End() error = %v", err)
	}
	if ok {
		t.Fatal("End(999) = true, want false")
	}

	got, err := sessions.GetByID(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.EndTime == nil || got.Summary != "done" {
		t.Fatalf("GetByID() = %+v, want ended session", got)
	}

	list, err := sessions.ListByUserID(ctx, 1)
	if err != nil {
		t.Fatalf("ListByUserID() error = %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("ListByUserID() len = %d, want 1", len(list))
	}

	timeline, err := points.ListBySessionID(ctx, session.ID)
	if err != nil {
		t.Fatalf("ListBySessionID() error = %v", err)
	}
	if len(timeline) != 2 || timeline[0].Type != "goal" || timeline[1].Type != "decision" {
		t.Fatalf("ListBySessionID() = %+v, want goal then decision", timeline)
	}
}

func TestProjectElementAndRelationshipRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	elements := NewProjectElementRepository(db)
	rels := NewRelationshipRepository(db)

	a := &model.ProjectElement{Path: "cmd/server/main.go", Type: "file"}
	b := &model.ProjectElement{Path: "internal/app", Type: "package"}
	for _, e := range []*model.ProjectElement{a, b} {
		if err := elements.Create(ctx, e); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	files, err := elements.List(ctx, "file")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(files) != 1 || files[0].ID != a.ID {
		t.Fatalf("List(file) = %+v, want only a", files)
	}
	all, err := elements.List(ctx, "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("List(\"\") len = %d, want 2", len(all))
	}

	if err := rels.Create(ctx, &model.Relationship{FromElementID: a.ID, ToElementID: b.ID, Type: "imports"}); err != nil {
		t.Fatalf("Relationship Create() error = %v", err)
	}
	// dangling edge: foreign keys are not enforced
	if err := rels.Create(ctx, &model.Relationship{FromElementID: 404, ToElementID: b.ID, Type: "imports"}); err != nil {
		t.Fatalf("Relationship Create() dangling error = %v", err)
	}

	fromA, err := rels.ListByElementID(ctx, a.ID)
	if err != nil {
		t.Fatalf("ListByElementID() error = %v", err)
	}
	if len(fromA) != 1 {
		t.Fatalf("ListByElementID(a) len = %d, want 1", len(fromA))
	}
	toB, err := rels.ListByElementID(ctx, b.ID)
	if err != nil {
		t.Fatalf("ListByElementID() error = %v", err)
	}
	if len(toB) != 2 {
		t.Fatalf("ListByElementID(b) len = %d, want 2", len(toB))
	}

	missing, err := elements.GetByID(ctx, 404)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByID(404) = %+v, want nil", missing)
	}
}

func TestUploadedFileRepository_TransactionRollback(t *testing.T) {
	ctx := context.Background()
	repo := NewUploadedFileRepository(newTestDB(t))
	errBoom := errors.New("boom")

	err := repo.Transaction(ctx, func(tx *UploadedFileRepository) error {
		file := &model.UploadedFile{UserID: 1, OriginalName: "a.txt", SavedPath: "uploads/a.txt", Size: 1, UploadTime: time.Now()}
		if err := tx.Create(ctx, file); err != nil {
			return err
		}
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("Transaction() error = %v, want boom", err)
	}
	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Fatalf("Count() = %d after rollback, want 0", count)
	}

	err = repo.Transaction(ctx, func(tx *UploadedFileRepository) error {
		for _, name := range []string{"a.txt", "b.txt"} {
			file := &model.UploadedFile{UserID: 1, OriginalName: name, SavedPath: "uploads/" + name, Hash: name + "-hash", UploadTime: time.Now()}
			if err := tx.Create(ctx, file); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Transaction() error = %v", err)
	}

	files, err := repo.ListByUserID(ctx, 1)
	if err != nil {
		t.Fatalf("ListByUserID() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("ListByUserID() len = %d, want 2", len(files))
	}

	byHash, err := repo.GetByHash(ctx, "b.txt-hash")
	if err != nil {
		t.Fatalf("GetByHash() error = %v", err)
	}
	if byHash == nil || byHash.OriginalName != "b.txt" {
		t.Fatalf("GetByHash() = %+v, want b.txt", byHash)
	}
}
