package lending

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	ulid "github.com/oklog/ulid/v2"
	"golang.org/x/text/unicode/norm"

	"LIBRARY-backend/internal/platform/db"
)

const (
	LoanPeriodDays = 14
	DateLayout     = "2006-01-02"
)

// -------------- Error model & mapping --------------

type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeUnavailable     Code = "UNAVAILABLE"              // 貸出可能な在庫なし
	CodeNoOutstanding   Code = "NO_OUTSTANDING_BORROWING" // 返却対象の貸出なし
	CodeConflict        Code = "CONFLICT"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code
	Message string
}

func (e *APIError) Error() string      { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError  { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrNotFound(msg string) *APIError { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrConflict(msg string) *APIError { return &APIError{Code: CodeConflict, Message: msg} }
func ErrInternal(msg string) *APIError { return &APIError{Code: CodeInternal, Message: msg} }

func ErrUnavailable() *APIError {
	return &APIError{Code: CodeUnavailable, Message: "No copies available to borrow."}
}

func ErrNoOutstanding() *APIError {
	return &APIError{Code: CodeNoOutstanding, Message: "No borrowing record found."}
}

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return 400
		case CodeNotFound:
			return 404
		case CodeUnavailable, CodeConflict:
			return 409
		case CodeNoOutstanding:
			return 422
		default:
			return 500
		}
	}
	return 500
}

// -------------- Clock & ID --------------

type Clock interface{ Now() time.Time }
type realClock struct{ loc *time.Location }

func (c realClock) Now() time.Time { return time.Now().In(c.loc) }

type IDGen interface{ NewULID(t time.Time) string }
type ulidGen struct{}

func (ulidGen) NewULID(t time.Time) string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// -------------- Service --------------

type Service struct {
	store *Store
	clock Clock
	id    IDGen
}

// NewService: loc は「今日」の判定に使うタイムゾーン。nil なら UTC
func NewService(conn *db.DB, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		store: NewStore(conn),
		clock: realClock{loc: loc},
		id:    ulidGen{},
	}
}

// POST /books/:book_id/borrowings
func (s *Service) Borrow(ctx context.Context, bookID int64, in BorrowRequest) (BorrowingResponse, error) {
	userName := normalizeText(in.UserName)
	if userName == "" {
		return BorrowingResponse{}, ErrInvalid("user_name is required")
	}

	now := s.clock.Now()
	m := &Borrowing{
		ULID:       s.id.NewULID(now),
		BookID:     bookID,
		UserName:   userName,
		BorrowDate: now.Format(DateLayout),
		DueDate:    dueDate(now).Format(DateLayout),
	}

	// Delegate transaction and stock check to Store
	if err := s.store.ExecBorrow(ctx, m); err != nil {
		return BorrowingResponse{}, mapLockConflict(err)
	}
	return m.toDTO(), nil
}

// POST /books/:book_id/returns
func (s *Service) Return(ctx context.Context, bookID int64) (BorrowingResponse, error) {
	today := s.clock.Now().Format(DateLayout)
	m, err := s.store.ExecReturn(ctx, bookID, today)
	if err != nil {
		return BorrowingResponse{}, mapLockConflict(err)
	}
	return m.toDTO(), nil
}

// GET /borrowings
func (s *Service) History(ctx context.Context) ([]HistoryEntry, error) {
	rows, err := s.store.History(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]HistoryEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDTO())
	}
	return out, nil
}

// GET /borrowings/:borrowing_ulid
func (s *Service) GetBorrowing(ctx context.Context, borrowingULID string) (BorrowingResponse, error) {
	id, err := ulid.ParseStrict(borrowingULID)
	if err != nil {
		return BorrowingResponse{}, ErrNotFound("borrowing not found")
	}
	// 小文字でも受け付ける。保存値は大文字の正規形
	m, err := s.store.GetByULID(ctx, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return BorrowingResponse{}, ErrNotFound("borrowing not found")
		}
		return BorrowingResponse{}, err
	}
	return m.toDTO(), nil
}

// helpers

func dueDate(borrowedAt time.Time) time.Time {
	return borrowedAt.AddDate(0, 0, LoanPeriodDays)
}

func normalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func mapLockConflict(err error) error {
	if err != nil && db.IsLockConflict(err) {
		return ErrConflict("book is being lent or returned by another request")
	}
	return err
}
