package database

import (
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

func Connect() (*sql.DB, error) {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "studyforge_user")
	password := getEnv("DB_PASSWORD", "studyforge_password")
	dbname := getEnv("DB_NAME", "studyforge")
	sslmode := getEnv("DB_SSLMODE", "disable")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func Migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		username VARCHAR(50) UNIQUE,
		password VARCHAR(255) NOT NULL,
		xp BIGINT NOT NULL DEFAULT 0,
		level INT NOT NULL DEFAULT 1,
		rank VARCHAR(20) NOT NULL DEFAULT 'Bronze',
		day_streak INT NOT NULL DEFAULT 0,
		last_active_date DATE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

	CREATE TABLE IF NOT EXISTS documents (
		id            BIGSERIAL PRIMARY KEY,
		user_id       BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title         VARCHAR(255) NOT NULL,
		filename      VARCHAR(255),
		content_text  TEXT NOT NULL DEFAULT '',
		status        VARCHAR(20) NOT NULL DEFAULT 'processing',
		created_at    TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at    TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_documents_user ON documents(user_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_documents_status ON documents(status);

	CREATE TABLE IF NOT EXISTS quiz_attempts (
		id              UUID PRIMARY KEY,
		document_id     BIGINT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
		user_id         BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		score           INT NOT NULL,
		total_questions INT NOT NULL,
		percentage      INT NOT NULL,
		qa_pairs        JSONB NOT NULL,
		created_at      TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_attempts_document ON quiz_attempts(document_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_attempts_user ON quiz_attempts(user_id, created_at DESC);

	CREATE TABLE IF NOT EXISTS xp_events (
		id          BIGSERIAL PRIMARY KEY,
		user_id     BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		event_type  VARCHAR(50) NOT NULL,
		xp_amount   BIGINT NOT NULL,
		metadata    JSONB,
		created_at  TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_xp_events_user ON xp_events(user_id, created_at);
	`

	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// Run ALTER TABLE statements to add columns to existing tables
	// These are idempotent for databases created before this migration
	alterStatements := []string{
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS username VARCHAR(50) UNIQUE`,
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS xp BIGINT NOT NULL DEFAULT 0`,
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS level INT NOT NULL DEFAULT 1`,
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS rank VARCHAR(20) NOT NULL DEFAULT 'Bronze'`,
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS day_streak INT NOT NULL DEFAULT 0`,
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS last_active_date DATE`,
		`ALTER TABLE documents ADD COLUMN IF NOT EXISTS filename VARCHAR(255)`,
		`ALTER TABLE documents ADD COLUMN IF NOT EXISTS status VARCHAR(20) NOT NULL DEFAULT 'processing'`,
	}

	for _, stmt := range alterStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("alter table failed: %w", err)
		}
	}

	// Backfill usernames for existing users that don't have one
	var usersWithoutUsername int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users WHERE username IS NULL`).Scan(&usersWithoutUsername); err == nil && usersWithoutUsername > 0 {
		rows, err := db.Query(`SELECT id, name FROM users WHERE username IS NULL`)
		if err == nil {
			defer rows.Close()
			for rows.Next() {
				var id int64
				var name string
				if rows.Scan(&id, &name) == nil {
					base := generateUsernameBase(name)
					// Try up to 10 times with different random suffixes
					for attempt := 0; attempt < 10; attempt++ {
						candidate := fmt.Sprintf("%s%04d", base, randomInt(10000))
						_, err := db.Exec(
							`UPDATE users SET username = $1 WHERE id = $2 AND username IS NULL`,
							candidate, id,
						)
						if err == nil {
							break
						}
					}
				}
			}
		}
	}

	// Set NOT NULL on username (safe after backfill)
	db.Exec(`DO $$ BEGIN ALTER TABLE users ALTER COLUMN username SET NOT NULL; EXCEPTION WHEN others THEN NULL; END $$`)

	// Create indexes on new columns (must run after ALTER TABLE)
	newIndexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)`,
	}
	for _, stmt := range newIndexes {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create index failed: %w", err)
		}
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// generateUsernameBase creates a lowercase alphanumeric base from a user's name.
func generateUsernameBase(name string) string {
	var result []byte
	for _, c := range strings.ToLower(name) {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			result = append(result, byte(c))
		}
	}
	if len(result) == 0 {
		return "user"
	}
	if len(result) > 12 {
		result = result[:12]
	}
	return string(result)
}

// rng is a seeded random source for username generation.
var rng = rand.New(rand.NewSource(time.Now().UnixNano()))

// randomInt returns a random integer in [0, max).
func randomInt(max int) int {
	return rng.Intn(max)
}

// GenerateUsername creates a unique username from a name by appending random digits.
// It tries up to 10 times to find a unique one. Caller should handle the unique constraint.
func GenerateUsername(name string) string {
	base := generateUsernameBase(name)
	return fmt.Sprintf("%s%04d", base, randomInt(10000))
}
