package repos

import (
	"log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  phone TEXT,
  profile_image TEXT,
  role TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user','admin')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_nocase ON users(LOWER(email));

-- Items
CREATE TABLE IF NOT EXISTS items(
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  category TEXT NOT NULL CHECK (category IN
    ('Electronics','Clothing','Accessories','Documents','Keys','Bags','Jewelry','Books','Pets','Other')),
  type TEXT NOT NULL CHECK (type IN ('lost','found')),
  status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active','claimed','resolved')),
  location TEXT NOT NULL,
  date_reported TEXT NOT NULL,
  date_lost_or_found TEXT NOT NULL,
  images_json TEXT,
  contact_name TEXT,
  contact_phone TEXT,
  contact_email TEXT,
  verification_details TEXT,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  claimed_by TEXT REFERENCES users(id) ON DELETE SET NULL
);
CREATE INDEX IF NOT EXISTS idx_items_filter   ON items(category, type, status);
CREATE INDEX IF NOT EXISTS idx_items_reported ON items(date_reported);
CREATE INDEX IF NOT EXISTS idx_items_user     ON items(user_id);
CREATE INDEX IF NOT EXISTS idx_items_title    ON items(LOWER(title));
`
	_, err := db.Exec(schema)
	return err
}

// SeedAdmin ensures one admin account exists (idempotent; safe to run every
// start). No-op when any admin is already present.
func SeedAdmin(db *sqlx.DB, email, password string) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM users WHERE role='admin'`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Printf("[seed] creating admin user %s", email)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO users(id,name,email,password_hash,role)
		VALUES(?,?,?,?,'admin')
		ON CONFLICT(email) DO NOTHING
	`, uuid.NewString(), "Admin", email, string(hash))
	return err
}
