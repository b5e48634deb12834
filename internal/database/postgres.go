package database

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
)

// ConnectPostgres opens a PostgreSQL connection pool and ensures the
// comments table exists.
func ConnectPostgres(postgresURI string) (*sql.DB, error) {
	db, err := sql.Open("postgres", postgresURI)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	log.Println("✅ Connected to PostgreSQL")

	if err = initPostgresTables(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// initPostgresTables creates the comments table if it doesn't exist.
// The id column is TEXT because comment ids are opaque strings assigned
// by the store, not database-generated keys.
func initPostgresTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS comments (
			id TEXT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			text TEXT NOT NULL,
			date VARCHAR(255) NOT NULL,
			owner_id TEXT NOT NULL DEFAULT '',
			approved BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_comments_created_at ON comments(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_comments_email ON comments(email)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	log.Println("✅ PostgreSQL tables initialized")
	return nil
}
