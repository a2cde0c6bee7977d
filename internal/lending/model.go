package lending

import "database/sql"

// Borrowing は borrowings テーブルの1行を表す
type Borrowing struct {
	ID         int64          `db:"id"`
	ULID       string         `db:"borrowing_ulid"`
	BookID     int64          `db:"book_id"`
	UserName   string         `db:"user_name"`
	BorrowDate string         `db:"borrow_date"` // "2006-01-02"
	DueDate    string         `db:"due_date"`
	ReturnDate sql.NullString `db:"return_date"` // NULL = 貸出中
}

// Outstanding reports whether the copy has not been returned yet.
func (b Borrowing) Outstanding() bool { return !b.ReturnDate.Valid }

func (b Borrowing) toDTO() BorrowingResponse {
	return BorrowingResponse{
		ID:         b.ID,
		ULID:       b.ULID,
		BookID:     b.BookID,
		UserName:   b.UserName,
		BorrowDate: b.BorrowDate,
		DueDate:    b.DueDate,
		ReturnDate: nullToPtr(b.ReturnDate),
		Returned:   !b.Outstanding(),
	}
}

// 在庫の読み書きに必要な books の列だけ
type bookStock struct {
	ID              int64 `db:"id"`
	TotalCopies     int   `db:"total_copies"`
	AvailableCopies int   `db:"available_copies"`
}

type historyRow struct {
	BorrowingID   int64          `db:"borrowing_id"`
	BorrowingULID string         `db:"borrowing_ulid"`
	BookID        int64          `db:"book_id"`
	Title         string         `db:"title"`
	UserName      string         `db:"user_name"`
	BorrowDate    string         `db:"borrow_date"`
	DueDate       string         `db:"due_date"`
	ReturnDate    sql.NullString `db:"return_date"`
}

func (r historyRow) toDTO() HistoryEntry {
	return HistoryEntry{
		BorrowingID:   r.BorrowingID,
		BorrowingULID: r.BorrowingULID,
		BookID:        r.BookID,
		Title:         r.Title,
		UserName:      r.UserName,
		BorrowDate:    r.BorrowDate,
		DueDate:       r.DueDate,
		ReturnDate:    nullToPtr(r.ReturnDate),
	}
}

func nullToPtr(ns sql.NullString) *string {
	if ns.Valid {
		v := ns.String
		return &v
	}
	return nil
}
