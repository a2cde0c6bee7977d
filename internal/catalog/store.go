package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"LIBRARY-backend/internal/platform/db"
)

const tableBooks = "books"

var bookColumns = []any{"id", "title", "author", "total_copies", "available_copies"}

type Store struct{ db *db.DB }

func NewStore(conn *db.DB) *Store { return &Store{db: conn} }

// ===== reads =====

func (s *Store) List(ctx context.Context) ([]Book, error) {
	q, args, err := s.db.Builder().
		From(tableBooks).
		Select(bookColumns...).
		Order(goqu.C("id").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list books: %w", err)
	}
	out := []Book{}
	if err := s.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID は見つからなければ sql.ErrNoRows を返す
func (s *Store) GetByID(ctx context.Context, id int64) (*Book, error) {
	q, args, err := s.db.Builder().
		From(tableBooks).
		Select(bookColumns...).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get book: %w", err)
	}
	var b Book
	if err := s.db.GetContext(ctx, &b, q, args...); err != nil {
		return nil, err
	}
	return &b, nil
}

// ===== writes =====

func (s *Store) Insert(ctx context.Context, b *Book) error {
	return s.insertBook(ctx, s.db, b)
}

func (s *Store) insertBook(ctx context.Context, q db.DBTX, b *Book) error {
	ds := s.db.Builder().Insert(tableBooks).Rows(goqu.Record{
		"title":            b.Title,
		"author":           b.Author,
		"total_copies":     b.TotalCopies,
		"available_copies": b.AvailableCopies,
	})

	if s.db.SupportsReturning() {
		query, args, err := ds.Returning("id").Prepared(true).ToSQL()
		if err != nil {
			return fmt.Errorf("build insert book: %w", err)
		}
		return q.GetContext(ctx, &b.ID, query, args...)
	}

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("build insert book: %w", err)
	}
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

// lock book row (FOR UPDATE where the dialect has row locks)
func (s *Store) lockBookRow(ctx context.Context, tx db.DBTX, id int64) (*Book, error) {
	ds := s.db.Builder().
		From(tableBooks).
		Select(bookColumns...).
		Where(goqu.C("id").Eq(id))
	if s.db.SupportsRowLock() {
		ds = ds.ForUpdate(exp.Wait)
	}
	q, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build lock book: %w", err)
	}
	var b Book
	if err := tx.GetContext(ctx, &b, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound("book not found")
		}
		return nil, err
	}
	return &b, nil
}

// ExecUpdate は行ロック → available の再計算 → 条件付き UPDATE を1トランザクションで行う
func (s *Store) ExecUpdate(ctx context.Context, id int64, title, author string, total int) (*Book, error) {
	var out *Book
	err := db.RunInTx(ctx, s.db, &sql.TxOptions{}, func(ctx context.Context, tx db.DBTX) error {
		cur, err := s.lockBookRow(ctx, tx, id)
		if err != nil {
			return err
		}

		next := Book{
			ID:              id,
			Title:           title,
			Author:          author,
			TotalCopies:     total,
			AvailableCopies: reconcileAvailable(cur.AvailableCopies, total),
		}

		q, args, err := s.db.Builder().Update(tableBooks).
			Set(goqu.Record{
				"title":            next.Title,
				"author":           next.Author,
				"total_copies":     next.TotalCopies,
				"available_copies": next.AvailableCopies,
			}).
			Where(
				goqu.C("id").Eq(id),
				goqu.C("available_copies").Eq(cur.AvailableCopies),
			).
			Prepared(true).ToSQL()
		if err != nil {
			return fmt.Errorf("build update book: %w", err)
		}
		res, err := tx.ExecContext(ctx, q, args...)
		if err != nil {
			return err
		}
		if aff, _ := res.RowsAffected(); aff != 1 {
			return ErrConflict("book was modified concurrently")
		}
		out = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ExecDelete removes the book and its borrowings in one transaction.
// borrowings.book_id has no foreign key, so the cascade is done here.
func (s *Store) ExecDelete(ctx context.Context, id int64) error {
	return db.RunInTx(ctx, s.db, &sql.TxOptions{}, func(ctx context.Context, tx db.DBTX) error {
		if _, err := s.lockBookRow(ctx, tx, id); err != nil {
			return err
		}

		q, args, err := s.db.Builder().Delete("borrowings").
			Where(goqu.C("book_id").Eq(id)).
			Prepared(true).ToSQL()
		if err != nil {
			return fmt.Errorf("build delete borrowings: %w", err)
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return err
		}

		q, args, err = s.db.Builder().Delete(tableBooks).
			Where(goqu.C("id").Eq(id)).
			Prepared(true).ToSQL()
		if err != nil {
			return fmt.Errorf("build delete book: %w", err)
		}
		res, err := tx.ExecContext(ctx, q, args...)
		if err != nil {
			return err
		}
		if aff, _ := res.RowsAffected(); aff != 1 {
			return ErrNotFound("book not found")
		}
		return nil
	})
}

// SeedIfEmpty inserts books only when the table has no rows and reports how many were added.
func (s *Store) SeedIfEmpty(ctx context.Context, books []Book) (int, error) {
	inserted := 0
	err := db.RunInTx(ctx, s.db, &sql.TxOptions{}, func(ctx context.Context, tx db.DBTX) error {
		q, args, err := s.db.Builder().
			From(tableBooks).
			Select(goqu.COUNT(goqu.Star())).
			Prepared(true).ToSQL()
		if err != nil {
			return fmt.Errorf("build count books: %w", err)
		}
		var n int64
		if err := tx.GetContext(ctx, &n, q, args...); err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		for i := range books {
			b := books[i]
			if err := s.insertBook(ctx, tx, &b); err != nil {
				return fmt.Errorf("seed %q: %w", b.Title, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
