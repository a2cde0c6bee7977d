package lending

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"LIBRARY-backend/internal/platform/db"
)

const (
	tableBooks      = "books"
	tableBorrowings = "borrowings"
)

var borrowingColumns = []any{"id", "borrowing_ulid", "book_id", "user_name", "borrow_date", "due_date", "return_date"}

type Store struct {
	db *db.DB
}

func NewStore(conn *db.DB) *Store { return &Store{db: conn} }

// lock inventory row (books) by id, return total & available
func (s *Store) lockBookRow(ctx context.Context, tx db.DBTX, bookID int64) (*bookStock, error) {
	ds := s.db.Builder().
		From(tableBooks).
		Select("id", "total_copies", "available_copies").
		Where(goqu.C("id").Eq(bookID))
	if s.db.SupportsRowLock() {
		ds = ds.ForUpdate(exp.Wait)
	}
	q, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build lock book: %w", err)
	}
	var b bookStock
	if err := tx.GetContext(ctx, &b, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound("book not found")
		}
		return nil, err
	}
	return &b, nil
}

// setAvailable は読み取った値から変わっていないときだけ更新する（compare-and-set）
func (s *Store) setAvailable(ctx context.Context, tx db.DBTX, bookID int64, expected, next int) error {
	q, args, err := s.db.Builder().Update(tableBooks).
		Set(goqu.Record{"available_copies": next}).
		Where(
			goqu.C("id").Eq(bookID),
			goqu.C("available_copies").Eq(expected),
		).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("build update available_copies: %w", err)
	}
	res, err := tx.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff != 1 {
		return ErrConflict("book availability changed concurrently")
	}
	return nil
}

func (s *Store) insertBorrowing(ctx context.Context, tx db.DBTX, m *Borrowing) error {
	ds := s.db.Builder().Insert(tableBorrowings).Rows(goqu.Record{
		"borrowing_ulid": m.ULID,
		"book_id":        m.BookID,
		"user_name":      m.UserName,
		"borrow_date":    m.BorrowDate,
		"due_date":       m.DueDate,
	})

	if s.db.SupportsReturning() {
		q, args, err := ds.Returning("id").Prepared(true).ToSQL()
		if err != nil {
			return fmt.Errorf("build insert borrowing: %w", err)
		}
		return tx.GetContext(ctx, &m.ID, q, args...)
	}

	q, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("build insert borrowing: %w", err)
	}
	res, err := tx.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = id
	return nil
}

// ExecBorrow handles the full transaction flow for lending one copy.
// Lock book -> check stock -> insert borrowing -> decrement stock.
func (s *Store) ExecBorrow(ctx context.Context, m *Borrowing) error {
	return db.RunInTx(ctx, s.db, &sql.TxOptions{}, func(ctx context.Context, tx db.DBTX) error {
		stock, err := s.lockBookRow(ctx, tx, m.BookID)
		if err != nil {
			return err
		}
		if stock.AvailableCopies <= 0 {
			return ErrUnavailable()
		}

		if err := s.insertBorrowing(ctx, tx, m); err != nil {
			return err
		}
		return s.setAvailable(ctx, tx, m.BookID, stock.AvailableCopies, stock.AvailableCopies-1)
	})
}

// ExecReturn closes the oldest outstanding borrowing of the book and puts the copy back.
// available_copies never goes above total_copies.
func (s *Store) ExecReturn(ctx context.Context, bookID int64, returnDate string) (*Borrowing, error) {
	var out *Borrowing
	err := db.RunInTx(ctx, s.db, &sql.TxOptions{}, func(ctx context.Context, tx db.DBTX) error {
		stock, err := s.lockBookRow(ctx, tx, bookID)
		if err != nil {
			return err
		}

		// 先に借りた人から返却扱い（id 昇順）
		ds := s.db.Builder().
			From(tableBorrowings).
			Select(borrowingColumns...).
			Where(
				goqu.C("book_id").Eq(bookID),
				goqu.C("return_date").IsNull(),
			).
			Order(goqu.C("id").Asc()).
			Limit(1)
		if s.db.SupportsRowLock() {
			ds = ds.ForUpdate(exp.Wait)
		}
		q, args, err := ds.Prepared(true).ToSQL()
		if err != nil {
			return fmt.Errorf("build select outstanding: %w", err)
		}
		var m Borrowing
		if err := tx.GetContext(ctx, &m, q, args...); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNoOutstanding()
			}
			return err
		}

		q, args, err = s.db.Builder().Update(tableBorrowings).
			Set(goqu.Record{"return_date": returnDate}).
			Where(
				goqu.C("id").Eq(m.ID),
				goqu.C("return_date").IsNull(),
			).
			Prepared(true).ToSQL()
		if err != nil {
			return fmt.Errorf("build update return_date: %w", err)
		}
		res, err := tx.ExecContext(ctx, q, args...)
		if err != nil {
			return err
		}
		if aff, _ := res.RowsAffected(); aff != 1 {
			return ErrConflict("borrowing was returned concurrently")
		}

		next := min(stock.AvailableCopies+1, stock.TotalCopies)
		if err := s.setAvailable(ctx, tx, bookID, stock.AvailableCopies, next); err != nil {
			return err
		}

		m.ReturnDate = sql.NullString{String: returnDate, Valid: true}
		out = &m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByULID は見つからなければ sql.ErrNoRows を返す
func (s *Store) GetByULID(ctx context.Context, ulid string) (*Borrowing, error) {
	q, args, err := s.db.Builder().
		From(tableBorrowings).
		Select(borrowingColumns...).
		Where(goqu.C("borrowing_ulid").Eq(ulid)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get borrowing: %w", err)
	}
	var m Borrowing
	if err := s.db.GetContext(ctx, &m, q, args...); err != nil {
		return nil, err
	}
	return &m, nil
}

// History joins every borrowing with its book, oldest borrowing first.
func (s *Store) History(ctx context.Context) ([]historyRow, error) {
	q, args, err := s.db.Builder().
		From(goqu.T(tableBorrowings).As("bor")).
		Join(goqu.T(tableBooks).As("b"), goqu.On(goqu.I("bor.book_id").Eq(goqu.I("b.id")))).
		Select(
			goqu.I("bor.id").As("borrowing_id"),
			goqu.I("bor.borrowing_ulid").As("borrowing_ulid"),
			goqu.I("bor.book_id").As("book_id"),
			goqu.I("b.title").As("title"),
			goqu.I("bor.user_name").As("user_name"),
			goqu.I("bor.borrow_date").As("borrow_date"),
			goqu.I("bor.due_date").As("due_date"),
			goqu.I("bor.return_date").As("return_date"),
		).
		Order(goqu.I("bor.id").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build history: %w", err)
	}
	out := []historyRow{}
	if err := s.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, err
	}
	return out, nil
}
