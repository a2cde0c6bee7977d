package db

import (
	"context"
	"fmt"
)

// 日付列は "2006-01-02" 形式の文字列で持つ（ドライバ間で DATE の扱いが揃わないため）
var schema = map[string][]string{
	DriverSQLite: {
		`CREATE TABLE IF NOT EXISTS books (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			author TEXT NOT NULL,
			total_copies INTEGER NOT NULL,
			available_copies INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS borrowings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			borrowing_ulid TEXT NOT NULL UNIQUE,
			book_id INTEGER NOT NULL,
			user_name TEXT NOT NULL,
			borrow_date TEXT NOT NULL,
			due_date TEXT NOT NULL,
			return_date TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_borrowings_book_open ON borrowings (book_id, return_date)`,
	},
	DriverMySQL: {
		`CREATE TABLE IF NOT EXISTS books (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			author VARCHAR(255) NOT NULL,
			total_copies INT NOT NULL,
			available_copies INT NOT NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS borrowings (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			borrowing_ulid CHAR(26) NOT NULL UNIQUE,
			book_id BIGINT NOT NULL,
			user_name VARCHAR(255) NOT NULL,
			borrow_date CHAR(10) NOT NULL,
			due_date CHAR(10) NOT NULL,
			return_date CHAR(10) NULL,
			INDEX idx_borrowings_book_open (book_id, return_date)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	},
	DriverPostgres: {
		`CREATE TABLE IF NOT EXISTS books (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			author TEXT NOT NULL,
			total_copies INTEGER NOT NULL,
			available_copies INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS borrowings (
			id BIGSERIAL PRIMARY KEY,
			borrowing_ulid CHAR(26) NOT NULL UNIQUE,
			book_id BIGINT NOT NULL,
			user_name TEXT NOT NULL,
			borrow_date CHAR(10) NOT NULL,
			due_date CHAR(10) NOT NULL,
			return_date CHAR(10)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_borrowings_book_open ON borrowings (book_id, return_date)`,
	},
}

// Migrate creates the books and borrowings tables when they do not exist.
func Migrate(ctx context.Context, d *DB) error {
	key := d.driver
	if key == DriverPgx {
		key = DriverPostgres
	}
	stmts, ok := schema[key]
	if !ok {
		return fmt.Errorf("no schema for driver %q", d.driver)
	}
	for _, stmt := range stmts {
		if _, err := d.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}
