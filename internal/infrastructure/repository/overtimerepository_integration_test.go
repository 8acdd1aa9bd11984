package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"dutywire/internal/domain/overtime"
	vo "dutywire/internal/domain/overtime/valueobjects"
	"dutywire/internal/infrastructure/persistence/models"
	"dutywire/internal/shared/biztime"
	"dutywire/internal/shared/db"
	"dutywire/internal/shared/errors"
	"dutywire/internal/shared/id"
	"dutywire/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = gdb.AutoMigrate(
		&models.OvertimePostingModel{},
		&models.OvertimeSignupModel{},
		&models.OvertimeAuditEventModel{},
	)
	require.NoError(t, err)

	return gdb
}

func createTestPosting(t *testing.T, orgID string, capacity int) *overtime.Posting {
	starts := biztime.NowUTC().Add(24 * time.Hour)
	p, err := overtime.NewPosting(
		orgID,
		"Stadium detail",
		nil,
		vo.ScenarioSpecialEvent,
		starts,
		starts.Add(8*time.Hour),
		capacity,
		vo.PolicyFirstComeFirstServed,
		nil,
		nil,
		"sup-1",
	)
	require.NoError(t, err)
	require.NoError(t, p.SetSID(id.MustGenerate(16)))
	return p
}

func createTestSignup(t *testing.T, postingID uint, officerID string) *overtime.Signup {
	s, err := overtime.NewSignup(postingID, "org-1", officerID, nil, nil,
		overtime.DefaultRankTable(), biztime.NowUTC())
	require.NoError(t, err)
	require.NoError(t, s.SetSID(id.MustGenerate(16)))
	return s
}

func TestOvertimePostingRepository_Save(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewOvertimePostingRepository(gdb, logger.NewLogger())
	ctx := context.Background()

	t.Run("save new posting successfully", func(t *testing.T) {
		p := createTestPosting(t, "org-1", 4)

		err := repo.Save(ctx, p)
		assert.NoError(t, err)
		assert.NotZero(t, p.ID())
	})

	t.Run("duplicate sid should fail", func(t *testing.T) {
		p1 := createTestPosting(t, "org-1", 2)
		require.NoError(t, repo.Save(ctx, p1))

		p2 := createTestPosting(t, "org-1", 2)
		require.NoError(t, p2.SetSID(p1.SID()))
		err := repo.Save(ctx, p2)
		assert.Error(t, err)
	})
}

func TestOvertimePostingRepository_GetBySID(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewOvertimePostingRepository(gdb, logger.NewLogger())
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		p := createTestPosting(t, "org-1", 3)
		require.NoError(t, repo.Save(ctx, p))

		found, err := repo.GetBySID(ctx, p.SID())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, p.ID(), found.ID())
		assert.Equal(t, p.Title(), found.Title())
		assert.Equal(t, vo.StateOpen, found.State())
		assert.Equal(t, 3, found.Capacity())
	})

	t.Run("missing returns nil without error", func(t *testing.T) {
		found, err := repo.GetBySID(ctx, "does-not-exist")
		assert.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestOvertimePostingRepository_Update(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewOvertimePostingRepository(gdb, logger.NewLogger())
	ctx := context.Background()

	t.Run("persists field changes and state", func(t *testing.T) {
		p := createTestPosting(t, "org-1", 4)
		require.NoError(t, repo.Save(ctx, p))

		title := "Parade detail"
		capacity := 6
		require.NoError(t, p.ApplyUpdate(overtime.PostingUpdate{
			Title:    &title,
			Capacity: &capacity,
		}, false))
		p.Close()

		require.NoError(t, repo.Update(ctx, p))

		found, err := repo.GetBySID(ctx, p.SID())
		require.NoError(t, err)
		assert.Equal(t, "Parade detail", found.Title())
		assert.Equal(t, 6, found.Capacity())
		assert.Equal(t, vo.StateClosed, found.State())
	})

	t.Run("unsaved posting reports not found", func(t *testing.T) {
		p := createTestPosting(t, "org-1", 2)
		require.NoError(t, p.SetID(9999))

		err := repo.Update(ctx, p)
		assert.True(t, errors.IsNotFoundError(err))
	})
}

func TestOvertimePostingRepository_List(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewOvertimePostingRepository(gdb, logger.NewLogger())
	ctx := context.Background()

	open1 := createTestPosting(t, "org-1", 2)
	require.NoError(t, repo.Save(ctx, open1))

	closed := createTestPosting(t, "org-1", 2)
	closed.Close()
	require.NoError(t, repo.Save(ctx, closed))

	other := createTestPosting(t, "org-2", 2)
	require.NoError(t, repo.Save(ctx, other))

	t.Run("all postings for org", func(t *testing.T) {
		postings, total, err := repo.List(ctx, "org-1", overtime.FilterAll)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, postings, 2)
	})

	t.Run("open filter", func(t *testing.T) {
		postings, total, err := repo.List(ctx, "org-1", overtime.FilterOpen)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, postings, 1)
		assert.Equal(t, open1.SID(), postings[0].SID())
	})

	t.Run("closed filter", func(t *testing.T) {
		postings, total, err := repo.List(ctx, "org-1", overtime.FilterClosed)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, postings, 1)
		assert.Equal(t, closed.SID(), postings[0].SID())
	})

	t.Run("org isolation", func(t *testing.T) {
		postings, total, err := repo.List(ctx, "org-2", overtime.FilterAll)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, postings, 1)
		assert.Equal(t, other.SID(), postings[0].SID())
	})
}

func TestOvertimePostingRepository_Delete(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewOvertimePostingRepository(gdb, logger.NewLogger())
	ctx := context.Background()

	p := createTestPosting(t, "org-1", 2)
	require.NoError(t, repo.Save(ctx, p))

	require.NoError(t, repo.Delete(ctx, p.ID()))

	found, err := repo.GetByID(ctx, p.ID())
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestOvertimeSignupRepository(t *testing.T) {
	gdb := setupTestDB(t)
	log := logger.NewLogger()
	postings := NewOvertimePostingRepository(gdb, log)
	signups := NewOvertimeSignupRepository(gdb, log)
	ctx := context.Background()

	posting := createTestPosting(t, "org-1", 4)
	require.NoError(t, postings.Save(ctx, posting))

	t.Run("save and fetch by sid", func(t *testing.T) {
		s := createTestSignup(t, posting.ID(), "off-1")
		require.NoError(t, signups.Save(ctx, s))
		assert.NotZero(t, s.ID())

		found, err := signups.GetBySID(ctx, s.SID())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "off-1", found.OfficerID())
		assert.Equal(t, vo.SignupPending, found.Status())
	})

	t.Run("update persists withdrawal", func(t *testing.T) {
		s := createTestSignup(t, posting.ID(), "off-2")
		require.NoError(t, signups.Save(ctx, s))

		require.True(t, s.Withdraw())
		require.NoError(t, signups.Update(ctx, s))

		found, err := signups.GetBySID(ctx, s.SID())
		require.NoError(t, err)
		assert.Equal(t, vo.SignupWithdrawn, found.Status())
	})

	t.Run("active listing skips withdrawn", func(t *testing.T) {
		all, err := signups.ListByPosting(ctx, posting.ID())
		require.NoError(t, err)
		assert.Len(t, all, 2)

		active, err := signups.ListActiveByPosting(ctx, posting.ID())
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, "off-1", active[0].OfficerID())
	})

	t.Run("forced signup counts as active", func(t *testing.T) {
		forced, err := overtime.NewForcedSignup(posting.ID(), "org-1", "off-3",
			nil, nil, "sup-1", "understaffed shift", overtime.DefaultRankTable(),
			biztime.NowUTC())
		require.NoError(t, err)
		require.NoError(t, forced.SetSID(id.MustGenerate(16)))
		require.NoError(t, signups.Save(ctx, forced))

		counts, err := signups.CountActiveByPostings(ctx, []uint{posting.ID()})
		require.NoError(t, err)
		assert.Equal(t, 2, counts[posting.ID()])
	})

	t.Run("count with empty input", func(t *testing.T) {
		counts, err := signups.CountActiveByPostings(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, counts)
	})

	t.Run("delete by posting", func(t *testing.T) {
		require.NoError(t, signups.DeleteByPosting(ctx, posting.ID()))

		all, err := signups.ListByPosting(ctx, posting.ID())
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestOvertimeAuditRepository(t *testing.T) {
	gdb := setupTestDB(t)
	log := logger.NewLogger()
	postings := NewOvertimePostingRepository(gdb, log)
	audits := NewOvertimeAuditRepository(gdb, log)
	ctx := context.Background()

	posting := createTestPosting(t, "org-1", 4)
	require.NoError(t, postings.Save(ctx, posting))

	t.Run("save and list oldest first", func(t *testing.T) {
		created, err := overtime.NewAuditEvent(posting.ID(), overtime.AuditPostingCreated,
			"sup-1", "posting created")
		require.NoError(t, err)
		require.NoError(t, created.SetSID(id.MustGenerate(16)))
		require.NoError(t, audits.Save(ctx, created))
		assert.NotZero(t, created.ID())

		forced, err := overtime.NewForcedAssignmentAudit(posting.ID(), "sup-1",
			"off-9", "sig-9", "understaffed shift")
		require.NoError(t, err)
		require.NoError(t, forced.SetSID(id.MustGenerate(16)))
		require.NoError(t, audits.Save(ctx, forced))

		trail, err := audits.ListByPosting(ctx, posting.ID())
		require.NoError(t, err)
		require.Len(t, trail, 2)
		assert.Equal(t, overtime.AuditPostingCreated, trail[0].Kind())
		assert.Equal(t, overtime.AuditForcedAssignment, trail[1].Kind())
		require.NotNil(t, trail[1].OfficerID())
		assert.Equal(t, "off-9", *trail[1].OfficerID())
	})

	t.Run("delete by posting", func(t *testing.T) {
		require.NoError(t, audits.DeleteByPosting(ctx, posting.ID()))

		trail, err := audits.ListByPosting(ctx, posting.ID())
		require.NoError(t, err)
		assert.Empty(t, trail)
	})
}

func TestTransactionManagerRollback(t *testing.T) {
	gdb := setupTestDB(t)
	log := logger.NewLogger()
	postings := NewOvertimePostingRepository(gdb, log)
	txm := db.NewTransactionManager(gdb)
	ctx := context.Background()

	p := createTestPosting(t, "org-1", 2)

	err := txm.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := postings.Save(txCtx, p); err != nil {
			return err
		}
		return errors.NewInternalError("boom")
	})
	require.Error(t, err)

	found, err := postings.GetBySID(ctx, p.SID())
	assert.NoError(t, err)
	assert.Nil(t, found)
}
