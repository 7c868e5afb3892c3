package aggregates

import (
	"context"
	"testing"

	"github.com/google/uuid"
	repotest "github.com/yungbote/lingo-backend/internal/data/repos/testutil"
	types "github.com/yungbote/lingo-backend/internal/domain"
	"github.com/yungbote/lingo-backend/internal/platform/dbctx"
)

func TestRequireCASSuccess(t *testing.T) {
	if err := RequireCASSuccess(true, "ok"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := RequireCASSuccess(false, "stale"); err == nil {
		t.Fatalf("expected conflict error")
	}
}

func TestUpdateByVersion(t *testing.T) {
	db := repotest.DB(t)
	ctx := context.Background()
	userID := uuid.New()
	repotest.SeedUserProgress(t, ctx, db, userID, nil, 5, 0)

	guard := NewCASGuard(db)
	dbc := dbctx.Context{Ctx: ctx}

	ok, err := guard.UpdateByVersion(dbc, "user_progress", "user_id", userID, 0, map[string]any{"hearts": 4})
	if err != nil {
		t.Fatalf("UpdateByVersion: %v", err)
	}
	if !ok {
		t.Fatalf("UpdateByVersion: expected first write to win")
	}

	ok, err = guard.UpdateByVersion(dbc, "user_progress", "user_id", userID, 0, map[string]any{"hearts": 3})
	if err != nil {
		t.Fatalf("UpdateByVersion(stale): %v", err)
	}
	if ok {
		t.Fatalf("UpdateByVersion(stale): expected stale version to lose")
	}

	var row types.UserProgress
	if err := db.Where("user_id = ?", userID).First(&row).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if row.Hearts != 4 || row.Version != 1 {
		t.Fatalf("row: want hearts=4 version=1 got hearts=%d version=%d", row.Hearts, row.Version)
	}
}

func TestUpdateByVersionValidation(t *testing.T) {
	guard := NewCASGuard(nil)
	if _, err := guard.UpdateByVersion(dbctx.Context{Ctx: context.Background()}, "user_progress", "user_id", uuid.New(), 0, nil); err == nil {
		t.Fatalf("expected error without db")
	}
}
