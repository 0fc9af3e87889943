package client

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/acadium/dashboard/internal/client/models"
	"github.com/acadium/dashboard/internal/dbx"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// IdentitySource reports the currently signed-in identity. AuthSession
// implements it.
type IdentitySource interface {
	Identity() *models.Identity
}

// Database is what PostgresClient needs from a connection pool.
type Database interface {
	dbx.DBTX
	dbx.TxBeginner
	Close() error
}

// PostgresClient is the Client backed by the dashboard's Postgres schema.
type PostgresClient struct {
	db     Database
	auth   IdentitySource
	now    func() time.Time
	newID  func() string
	writes *writeLog
}

func NewPostgresClient(db Database, auth IdentitySource) *PostgresClient {
	return &PostgresClient{
		db:     db,
		auth:   auth,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
		writes: newWriteLog(),
	}
}

// OpenPostgres opens a pgx-backed *sql.DB for dsn and checks connectivity.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, wrapDBError(err)
	}
	return db, nil
}

// wrapDBError tags connectivity failures with ErrUnavailable and everything
// else as a plain db error.
func wrapDBError(err error) error {
	var connErr *pgconn.ConnectError
	if errors.Is(err, driver.ErrBadConn) || errors.As(err, &connErr) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return fmt.Errorf("db error: %w", err)
}

func requireUser(userID string) error {
	if userID == "" {
		return ErrUnauthorized
	}
	return nil
}

func (c *PostgresClient) Close() error {
	return c.db.Close()
}

func (c *PostgresClient) CurrentUser(ctx context.Context) (*models.Identity, error) {
	id := c.auth.Identity()
	if id == nil {
		return nil, nil
	}

	query :=
		`SELECT id, email, created_at FROM users
		 WHERE id = $1
		 `

	u := &models.Identity{}
	err := c.db.QueryRowContext(ctx, query, id.ID).Scan(&u.ID, &u.Email, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDBError(err)
	}

	return u, nil
}

func (c *PostgresClient) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	query :=
		`SELECT user_id, name, mission, focus, skill_level, COALESCE(referral_code, ''),
		        COALESCE(avatar_url, ''), onboarding_completed, created_at, updated_at
		 FROM profiles
		 WHERE user_id = $1
		 `

	p := &models.Profile{}
	err := c.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID, &p.Name, &p.Mission, &p.Focus, &p.SkillLevel, &p.ReferralCode,
		&p.AvatarURL, &p.OnboardingCompleted, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDBError(err)
	}

	return p, nil
}

func (c *PostgresClient) UpsertProfile(ctx context.Context, p *models.Profile) error {
	if err := requireUser(p.UserID); err != nil {
		return err
	}

	query :=
		`INSERT INTO profiles (user_id, name, mission, focus, skill_level, referral_code,
		                       avatar_url, onboarding_completed, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9, $10)
		 ON CONFLICT (user_id) DO UPDATE SET
		     name = EXCLUDED.name,
		     mission = EXCLUDED.mission,
		     focus = EXCLUDED.focus,
		     skill_level = EXCLUDED.skill_level,
		     referral_code = EXCLUDED.referral_code,
		     avatar_url = EXCLUDED.avatar_url,
		     onboarding_completed = EXCLUDED.onboarding_completed,
		     updated_at = EXCLUDED.updated_at
		 `

	updatedAt := p.UpdatedAt.Truncate(time.Microsecond)
	c.writes.record(p.UserID, stamp(updatedAt))

	_, err := c.db.ExecContext(ctx, query,
		p.UserID, p.Name, string(p.Mission), string(p.Focus), string(p.SkillLevel), p.ReferralCode,
		p.AvatarURL, p.OnboardingCompleted, p.CreatedAt, updatedAt)
	if err != nil {
		c.writes.forget(p.UserID, stamp(updatedAt))
		return wrapDBError(err)
	}

	return nil
}

// OwnProfileWrite reports whether a profile notification for userID stamped
// updatedAt (microseconds since epoch) was caused by UpsertProfile on this
// client. A match is consumed.
func (c *PostgresClient) OwnProfileWrite(userID string, updatedAt int64) bool {
	return c.writes.consume(userID, updatedAt)
}

func (c *PostgresClient) Subscription(ctx context.Context, userID string) (*models.Subscription, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	query :=
		`SELECT user_id, plan_id, status, current_period_end, cancel_at_period_end
		 FROM subscriptions
		 WHERE user_id = $1 AND status = 'active'
		 ORDER BY created_at DESC
		 LIMIT 1
		 `

	s := &models.Subscription{}
	var periodEnd sql.NullTime
	err := c.db.QueryRowContext(ctx, query, userID).Scan(
		&s.UserID, &s.PlanID, &s.Status, &periodEnd, &s.CancelAtPeriodEnd)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDBError(err)
	}
	if periodEnd.Valid {
		t := periodEnd.Time
		s.CurrentPeriodEnd = &t
	}

	return s, nil
}

func (c *PostgresClient) Favorites(ctx context.Context, userID string) ([]models.FavoritePage, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	query :=
		`SELECT id, user_id, page_path, page_title, page_icon, created_at
		 FROM favorite_pages
		 WHERE user_id = $1
		 ORDER BY created_at ASC
		 `

	rows, err := c.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var list []models.FavoritePage
	for rows.Next() {
		var f models.FavoritePage
		if err := rows.Scan(&f.ID, &f.UserID, &f.Path, &f.Title, &f.Icon, &f.CreatedAt); err != nil {
			return nil, wrapDBError(err)
		}
		list = append(list, f)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err)
	}

	return list, nil
}

func (c *PostgresClient) InsertFavorite(ctx context.Context, userID, path, title, icon string) error {
	if err := requireUser(userID); err != nil {
		return err
	}

	query :=
		`INSERT INTO favorite_pages (id, user_id, page_path, page_title, page_icon, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id, page_path) DO NOTHING
		 `

	_, err := c.db.ExecContext(ctx, query, c.newID(), userID, path, title, icon, c.now().UTC())
	if err != nil {
		return wrapDBError(err)
	}

	return nil
}

func (c *PostgresClient) DeleteFavorite(ctx context.Context, userID, path string) error {
	if err := requireUser(userID); err != nil {
		return err
	}

	_, err := c.db.ExecContext(ctx,
		`DELETE FROM favorite_pages WHERE user_id = $1 AND page_path = $2`, userID, path)
	if err != nil {
		return wrapDBError(err)
	}

	return nil
}

func (c *PostgresClient) DeleteAllFavorites(ctx context.Context, userID string) error {
	if err := requireUser(userID); err != nil {
		return err
	}

	_, err := c.db.ExecContext(ctx, `DELETE FROM favorite_pages WHERE user_id = $1`, userID)
	if err != nil {
		return wrapDBError(err)
	}

	return nil
}

func (c *PostgresClient) RecentPages(ctx context.Context, userID string, limit int) ([]models.RecentPage, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	query :=
		`SELECT id, user_id, page_path, page_title, page_icon, visited_at, visit_count
		 FROM recent_pages
		 WHERE user_id = $1
		 ORDER BY visited_at DESC
		 LIMIT $2
		 `

	rows, err := c.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var list []models.RecentPage
	for rows.Next() {
		var r models.RecentPage
		if err := rows.Scan(&r.ID, &r.UserID, &r.Path, &r.Title, &r.Icon, &r.VisitedAt, &r.VisitCount); err != nil {
			return nil, wrapDBError(err)
		}
		list = append(list, r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err)
	}

	return list, nil
}

// UpsertRecentPage bumps an existing (user, path) row or inserts a new one,
// then trims the history to the stored maximum, all in one transaction.
func (c *PostgresClient) UpsertRecentPage(ctx context.Context, userID, path, title, icon string) error {
	if err := requireUser(userID); err != nil {
		return err
	}

	upsert :=
		`INSERT INTO recent_pages (id, user_id, page_path, page_title, page_icon, visited_at, visit_count)
		 VALUES ($1, $2, $3, $4, $5, $6, 1)
		 ON CONFLICT (user_id, page_path) DO UPDATE SET
		     page_title = EXCLUDED.page_title,
		     page_icon = EXCLUDED.page_icon,
		     visited_at = EXCLUDED.visited_at,
		     visit_count = recent_pages.visit_count + 1
		 `

	trim :=
		`DELETE FROM recent_pages
		 WHERE user_id = $1 AND id NOT IN (
		     SELECT id FROM recent_pages
		     WHERE user_id = $1
		     ORDER BY visited_at DESC
		     LIMIT $2
		 )
		 `

	err := dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, upsert, c.newID(), userID, path, title, icon, c.now().UTC()); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, trim, userID, models.MaxStoredRecentPages)
		return err
	})
	if err != nil {
		return wrapDBError(err)
	}

	return nil
}

func (c *PostgresClient) DeleteAllRecent(ctx context.Context, userID string) error {
	if err := requireUser(userID); err != nil {
		return err
	}

	_, err := c.db.ExecContext(ctx, `DELETE FROM recent_pages WHERE user_id = $1`, userID)
	if err != nil {
		return wrapDBError(err)
	}

	return nil
}

func (c *PostgresClient) Progress(ctx context.Context, userID, toolID string) (models.ToolProgress, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	query :=
		`SELECT step_id, completed, completed_at, notes
		 FROM step_progress
		 WHERE user_id = $1 AND tool_id = $2
		 `

	rows, err := c.db.QueryContext(ctx, query, userID, toolID)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	out := models.ToolProgress{}
	for rows.Next() {
		var (
			stepID string
			p      models.StepProgress
			at     sql.NullTime
		)
		if err := rows.Scan(&stepID, &p.Completed, &at, &p.Notes); err != nil {
			return nil, wrapDBError(err)
		}
		if at.Valid {
			t := at.Time
			p.CompletedAt = &t
		}
		out[stepID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err)
	}

	return out, nil
}

func (c *PostgresClient) SetStepCompletion(ctx context.Context, userID, toolID, stepID string, p models.StepProgress) error {
	if err := requireUser(userID); err != nil {
		return err
	}

	query :=
		`INSERT INTO step_progress (user_id, tool_id, step_id, completed, completed_at, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id, tool_id, step_id) DO UPDATE SET
		     completed = EXCLUDED.completed,
		     completed_at = EXCLUDED.completed_at,
		     notes = EXCLUDED.notes
		 `

	_, err := c.db.ExecContext(ctx, query, userID, toolID, stepID, p.Completed, nullTime(p.CompletedAt), p.Notes)
	if err != nil {
		return wrapDBError(err)
	}

	return nil
}

func (c *PostgresClient) Checklist(ctx context.Context, userID string) (models.ToolProgress, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	query :=
		`SELECT item_id, completed, completed_at
		 FROM checklist_items
		 WHERE user_id = $1
		 `

	rows, err := c.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	out := models.ToolProgress{}
	for rows.Next() {
		var (
			itemID string
			p      models.StepProgress
			at     sql.NullTime
		)
		if err := rows.Scan(&itemID, &p.Completed, &at); err != nil {
			return nil, wrapDBError(err)
		}
		if at.Valid {
			t := at.Time
			p.CompletedAt = &t
		}
		out[itemID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err)
	}

	return out, nil
}

func (c *PostgresClient) SetChecklistItem(ctx context.Context, userID, itemID string, p models.StepProgress) error {
	if err := requireUser(userID); err != nil {
		return err
	}

	query :=
		`INSERT INTO checklist_items (user_id, item_id, completed, completed_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, item_id) DO UPDATE SET
		     completed = EXCLUDED.completed,
		     completed_at = EXCLUDED.completed_at
		 `

	_, err := c.db.ExecContext(ctx, query, userID, itemID, p.Completed, nullTime(p.CompletedAt))
	if err != nil {
		return wrapDBError(err)
	}

	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
var _ Client = (*PostgresClient)(nil)
