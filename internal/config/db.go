package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DBConfig holds database connection parameters
type DBConfig struct {
	DSN      string
	MaxConns int32
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// LoadDBConfig loads database configuration from environment variables.
// Every variable has a default so the server starts against a local
// database with no configuration at all.
func LoadDBConfig() (*DBConfig, error) {
	dbHost := getenvDefault("DB_HOST", "localhost")
	dbPort := getenvDefault("DB_PORT", "5432")
	dbUser := getenvDefault("DB_USER", "root")
	dbPassword := os.Getenv("DB_PASSWORD") // empty password is a valid default
	dbName := getenvDefault("DB_NAME", "letter_system")

	maxConns := int32(10)
	if raw := os.Getenv("DB_POOL_MAX_CONNS"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("invalid DB_POOL_MAX_CONNS %q", raw)
		}
		maxConns = int32(parsed)
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName)

	return &DBConfig{DSN: dsn, MaxConns: maxConns}, nil
}

// ConnectDB establishes a connection pool to the PostgreSQL database.
// The pool is bounded; callers beyond capacity queue for a connection
// rather than failing immediately.
func ConnectDB(cfg *DBConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns

	var pool *pgxpool.Pool

	// Retry connecting to the database a few times
	maxRetries := 5
	retryInterval := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		pool, err = pgxpool.NewWithConfig(context.Background(), poolCfg)
		if err == nil {
			err = pool.Ping(context.Background())
			if err == nil {
				log.Println("Successfully connected to PostgreSQL!")
				return pool, nil
			}
		}
		log.Printf("Failed to connect to database (attempt %d/%d): %v. Retrying in %v...", i+1, maxRetries, err, retryInterval)
		time.Sleep(retryInterval)
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
}

// AutoMigrate creates tables if they don't exist.
// Letter columns other than id/created_at stay nullable: updates are a
// full replace and write omitted fields as NULL.
func AutoMigrate(db *pgxpool.Pool) error {
	sql := `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('user', 'admin')),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS letters (
		id BIGSERIAL PRIMARY KEY,
		letter_date DATE,
		address TEXT,
		details TEXT,
		subject_no VARCHAR(100),
		letter_type VARCHAR(50),
		sent_date DATE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(context.Background(), sql)
	if err != nil {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}

	log.Println("AutoMigrate applied successfully")
	return nil
}
