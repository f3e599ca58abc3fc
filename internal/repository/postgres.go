package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devffery/task-two/internal/domain"
)

// Compile-time interface assertions.
var (
	_ UserRepository = (*PostgresUserRepo)(nil)
	_ OrgRepository  = (*PostgresOrgRepo)(nil)
)

const uniqueViolation = "23505"

// PostgresUserRepo implements UserRepository on a pgx pool.
type PostgresUserRepo struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepo(pool *pgxpool.Pool) *PostgresUserRepo {
	return &PostgresUserRepo{db: pool}
}

const userColumns = `id, first_name, last_name, email, phone, password_hash, is_superuser, is_admin, is_staff, created_at, updated_at`

const insertUserSQL = `INSERT INTO users (id, first_name, last_name, email, phone, password_hash, is_superuser, is_admin, is_staff)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + userColumns

func (r *PostgresUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	row := r.db.QueryRow(ctx, insertUserSQL,
		user.ID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.IsSuperuser,
		user.IsAdmin,
		user.IsStaff,
	)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.User{}, domain.ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func (r *PostgresUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

func (r *PostgresUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

const visibleUserSQL = `SELECT ` + userColumns + ` FROM users
WHERE id = $2
  AND ($1 = $2 OR EXISTS (
    SELECT 1
    FROM organization_users viewer
    JOIN organization_users target ON viewer.organization_id = target.organization_id
    WHERE viewer.user_id = $1 AND target.user_id = $2
  ))`

func (r *PostgresUserRepo) GetVisible(ctx context.Context, viewerID, targetID uuid.UUID) (domain.User, error) {
	row := r.db.QueryRow(ctx, visibleUserSQL, viewerID, targetID)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, fmt.Errorf("get visible user: %w", err)
	}
	return user, nil
}

// PostgresOrgRepo implements OrgRepository on a pgx pool.
type PostgresOrgRepo struct {
	db *pgxpool.Pool
}

func NewPostgresOrgRepo(pool *pgxpool.Pool) *PostgresOrgRepo {
	return &PostgresOrgRepo{db: pool}
}

const orgColumns = `id, name, description, created_at, updated_at`

const insertOrgSQL = `INSERT INTO organizations (id, name, description)
VALUES ($1, $2, $3)
RETURNING ` + orgColumns

const insertMemberSQL = `INSERT INTO organization_users (organization_id, user_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING`

func (r *PostgresOrgRepo) CreateWithMember(ctx context.Context, org domain.Organization, creatorID uuid.UUID) (domain.Organization, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("begin create org: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, insertOrgSQL, org.ID, org.Name, org.Description)
	created, err := scanOrg(row)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("create org: %w", err)
	}

	if _, err := tx.Exec(ctx, insertMemberSQL, created.ID, creatorID); err != nil {
		return domain.Organization{}, fmt.Errorf("attach creator: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Organization{}, fmt.Errorf("commit create org: %w", err)
	}
	return created, nil
}

const orgForUserSQL = `SELECT o.id, o.name, o.description, o.created_at, o.updated_at
FROM organizations o
JOIN organization_users m ON m.organization_id = o.id
WHERE m.user_id = $1 AND o.id = $2`

func (r *PostgresOrgRepo) GetForUser(ctx context.Context, userID, orgID uuid.UUID) (domain.Organization, error) {
	row := r.db.QueryRow(ctx, orgForUserSQL, userID, orgID)
	org, err := scanOrg(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Organization{}, domain.ErrNotFound
		}
		return domain.Organization{}, fmt.Errorf("get org for user: %w", err)
	}
	return org, nil
}

const orgsForUserSQL = `SELECT o.id, o.name, o.description, o.created_at, o.updated_at
FROM organizations o
JOIN organization_users m ON m.organization_id = o.id
WHERE m.user_id = $1
ORDER BY o.created_at`

func (r *PostgresOrgRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Organization, error) {
	rows, err := r.db.Query(ctx, orgsForUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list orgs: %w", err)
	}
	defer rows.Close()

	orgs := make([]domain.Organization, 0)
	for rows.Next() {
		org, err := scanOrg(rows)
		if err != nil {
			return nil, fmt.Errorf("scan org: %w", err)
		}
		orgs = append(orgs, org)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orgs: %w", err)
	}
	return orgs, nil
}

func (r *PostgresOrgRepo) AddMember(ctx context.Context, orgID, userID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, insertMemberSQL, orgID, userID); err != nil {
		return fmt.Errorf("add member: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.Phone,
		&u.PasswordHash,
		&u.IsSuperuser,
		&u.IsAdmin,
		&u.IsStaff,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func scanOrg(row pgx.Row) (domain.Organization, error) {
	var o domain.Organization
	err := row.Scan(&o.ID, &o.Name, &o.Description, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}
