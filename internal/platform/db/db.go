package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	mysql "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres" // lib/pq
	DriverPgx      = "pgx"      // jackc/pgx stdlib
)

// DB は sqlx の接続プールと、ドライバに対応する goqu のダイアレクトをまとめたもの
type DB struct {
	*sqlx.DB
	driver  string
	dialect goqu.DialectWrapper
}

// Wrap はテスト等で既に開いている *sqlx.DB を DB として扱う
func Wrap(x *sqlx.DB, driver string) *DB {
	return &DB{DB: x, driver: driver, dialect: goqu.Dialect(dialectName(driver))}
}

func (d *DB) Driver() string { return d.driver }

// Builder returns the goqu dialect used to build every query for this connection.
func (d *DB) Builder() goqu.DialectWrapper { return d.dialect }

// SupportsRowLock reports whether SELECT ... FOR UPDATE is available.
// sqlite3 has no row locks; the pool is pinned to one connection instead.
func (d *DB) SupportsRowLock() bool { return d.driver != DriverSQLite }

// SupportsReturning reports whether INSERT ... RETURNING is used for new ids.
// lib/pq does not implement LastInsertId.
func (d *DB) SupportsReturning() bool {
	return d.driver == DriverPostgres || d.driver == DriverPgx
}

func dialectName(driver string) string {
	switch driver {
	case DriverPostgres, DriverPgx:
		return "postgres"
	case DriverMySQL:
		return "mysql"
	default:
		return "sqlite3"
	}
}

func Connect(ctx context.Context, c DatabaseConfig) (*DB, error) {
	dsn, err := buildDSN(c)
	if err != nil {
		return nil, err
	}

	x, err := sqlx.Open(c.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", c.Driver, err)
	}
	if err := x.PingContext(ctx); err != nil {
		x.Close()
		return nil, fmt.Errorf("ping %s: %w", c.Driver, err)
	}

	if c.Driver == DriverSQLite {
		// 1接続に固定してトランザクションを直列化する
		x.SetMaxOpenConns(1)
	} else {
		x.SetMaxOpenConns(40)
		x.SetMaxIdleConns(10)
		x.SetConnMaxLifetime(30 * time.Minute)
		x.SetConnMaxIdleTime(5 * time.Minute)
	}

	return Wrap(x, c.Driver), nil
}

func buildDSN(c DatabaseConfig) (string, error) {
	switch c.Driver {
	case DriverSQLite:
		if dir := filepath.Dir(c.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return "", fmt.Errorf("create db dir: %w", err)
			}
		}
		return fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", c.Path), nil
	case DriverMySQL:
		mc := mysql.NewConfig()
		mc.User = c.Username
		mc.Passwd = c.Password
		mc.Net = "tcp"
		mc.Addr = fmt.Sprintf("%s:%d", c.Host, portOr(c.Port, 3306))
		mc.DBName = c.DBName
		mc.Timeout = 3 * time.Second
		mc.ReadTimeout = 5 * time.Second
		mc.WriteTimeout = 5 * time.Second
		mc.Loc = time.UTC
		// RowsAffected を「一致した行数」にする（値が変わらない UPDATE でも 1 を返す）
		mc.ClientFoundRows = true
		return mc.FormatDSN(), nil
	case DriverPostgres, DriverPgx:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			c.Host, portOr(c.Port, 5432), c.Username, c.Password, c.DBName), nil
	}
	return "", fmt.Errorf("unsupported database driver %q", c.Driver)
}

func portOr(p, def int) int {
	if p == 0 {
		return def
	}
	return p
}
