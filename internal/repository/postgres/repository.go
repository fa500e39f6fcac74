package postgres

import (
	"context"
	"database/sql"
	"errors"

	"mailmate/internal/model"

	_ "github.com/lib/pq"
)

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, google_id, email, name, access_token, refresh_token, token_expiry, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (google_id) DO UPDATE SET
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			token_expiry = EXCLUDED.token_expiry,
			updated_at = NOW()`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.GoogleID, user.Email, user.Name,
		user.AccessToken, user.RefreshToken, user.TokenExpiry,
		user.CreatedAt, user.UpdatedAt)
	return err
}

const userColumns = `id, google_id, email, name, access_token, refresh_token, token_expiry, created_at, updated_at`

func (r *PostgresUserRepository) scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.GoogleID, &user.Email, &user.Name,
		&user.AccessToken, &user.RefreshToken, &user.TokenExpiry,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}
	return user, nil
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE google_id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, googleID))
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresUserRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users SET google_id=$1, email=$2, name=$3, access_token=$4,
		refresh_token=$5, token_expiry=$6, updated_at=NOW() WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query,
		user.GoogleID, user.Email, user.Name,
		user.AccessToken, user.RefreshToken, user.TokenExpiry,
		user.ID)
	return err
}

// Postgres Email repository implementation
type PostgresEmailRepository struct {
	db *sql.DB
}

func NewPostgresEmailRepository(db *sql.DB) *PostgresEmailRepository {
	return &PostgresEmailRepository{db: db}
}

const emailColumns = `id, user_id, message_id, sender, subject, body, direction, received_at,
	summary, category, priority_score, suggested_action, created_at, updated_at`

func (r *PostgresEmailRepository) Create(ctx context.Context, email *model.Email) error {
	query := `
		INSERT INTO emails (id, user_id, message_id, sender, subject, body, direction, received_at,
			summary, category, priority_score, suggested_action, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id, message_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query,
		email.ID, email.UserID, email.MessageID, email.Sender, email.Subject,
		email.Body, email.Direction, email.ReceivedAt,
		email.Summary, email.Category, email.PriorityScore, email.SuggestedAction,
		email.CreatedAt, email.UpdatedAt)
	return err
}

func scanEmail(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.Email, error) {
	email := &model.Email{}
	var summary, category, action sql.NullString
	var score sql.NullInt64

	err := scanner.Scan(
		&email.ID, &email.UserID, &email.MessageID, &email.Sender, &email.Subject,
		&email.Body, &email.Direction, &email.ReceivedAt,
		&summary, &category, &score, &action,
		&email.CreatedAt, &email.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if summary.Valid {
		email.Summary = &summary.String
	}
	if category.Valid {
		email.Category = &category.String
	}
	if score.Valid {
		v := int(score.Int64)
		email.PriorityScore = &v
	}
	if action.Valid {
		email.SuggestedAction = &action.String
	}
	return email, nil
}

func (r *PostgresEmailRepository) queryEmails(ctx context.Context, query string, args ...interface{}) ([]*model.Email, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []*model.Email
	for rows.Next() {
		email, err := scanEmail(rows)
		if err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

func (r *PostgresEmailRepository) FindByID(ctx context.Context, id string) (*model.Email, error) {
	query := `SELECT ` + emailColumns + ` FROM emails WHERE id = $1`
	email, err := scanEmail(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("email not found")
		}
		return nil, err
	}
	return email, nil
}

func (r *PostgresEmailRepository) FindByMessageID(ctx context.Context, userID, messageID string) (*model.Email, error) {
	query := `SELECT ` + emailColumns + ` FROM emails WHERE user_id = $1 AND message_id = $2`
	email, err := scanEmail(r.db.QueryRowContext(ctx, query, userID, messageID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("email not found")
		}
		return nil, err
	}
	return email, nil
}

func (r *PostgresEmailRepository) FindUnprocessed(ctx context.Context, userID string) ([]*model.Email, error) {
	query := `SELECT ` + emailColumns + ` FROM emails
		WHERE user_id = $1 AND summary IS NULL
		ORDER BY received_at ASC`
	return r.queryEmails(ctx, query, userID)
}

func (r *PostgresEmailRepository) FindProcessed(ctx context.Context, userID, category string) ([]*model.Email, error) {
	if category != "" {
		query := `SELECT ` + emailColumns + ` FROM emails
			WHERE user_id = $1 AND summary IS NOT NULL AND LOWER(category) = LOWER($2)
			ORDER BY priority_score DESC, received_at DESC`
		return r.queryEmails(ctx, query, userID, category)
	}
	query := `SELECT ` + emailColumns + ` FROM emails
		WHERE user_id = $1 AND summary IS NOT NULL
		ORDER BY priority_score DESC, received_at DESC`
	return r.queryEmails(ctx, query, userID)
}

func (r *PostgresEmailRepository) Search(ctx context.Context, userID, query string) ([]*model.Email, error) {
	stmt := `SELECT ` + emailColumns + ` FROM emails
		WHERE user_id = $1 AND summary IS NOT NULL
		AND (sender ILIKE $2 OR subject ILIKE $2 OR body ILIKE $2)
		ORDER BY received_at DESC`
	return r.queryEmails(ctx, stmt, userID, "%"+query+"%")
}

func (r *PostgresEmailRepository) CountBySender(ctx context.Context, userID, sender string) (int, error) {
	query := `SELECT COUNT(*) FROM emails WHERE user_id = $1 AND sender ILIKE $2`
	var count int
	err := r.db.QueryRowContext(ctx, query, userID, "%"+sender+"%").Scan(&count)
	return count, err
}

func (r *PostgresEmailRepository) UpdateEnrichment(ctx context.Context, emailID string, enrichment model.Enrichment) error {
	// All four fields in one statement so an email is never partially
	// enriched.
	query := `
		UPDATE emails SET summary=$1, category=$2, priority_score=$3, suggested_action=$4, updated_at=NOW()
		WHERE id=$5`
	result, err := r.db.ExecContext(ctx, query,
		enrichment.Summary, enrichment.Category, enrichment.PriorityScore, enrichment.SuggestedAction,
		emailID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.New("email not found")
	}
	return nil
}

// InitializeDatabase creates the tables if they do not exist yet.
func InitializeDatabase(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		google_id TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		access_token TEXT NOT NULL DEFAULT '',
		refresh_token TEXT NOT NULL DEFAULT '',
		token_expiry TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS emails (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		message_id TEXT NOT NULL,
		sender TEXT NOT NULL DEFAULT '',
		subject TEXT NOT NULL DEFAULT '',
		body TEXT NOT NULL DEFAULT '',
		direction TEXT NOT NULL DEFAULT 'incoming',
		received_at TIMESTAMPTZ,
		summary TEXT,
		category TEXT,
		priority_score INTEGER,
		suggested_action TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, message_id)
	);

	CREATE INDEX IF NOT EXISTS idx_emails_user_id ON emails(user_id);
	CREATE INDEX IF NOT EXISTS idx_emails_category ON emails(category);
	CREATE INDEX IF NOT EXISTS idx_emails_received_at ON emails(received_at);
	`
	_, err := db.Exec(schema)
	return err
}
