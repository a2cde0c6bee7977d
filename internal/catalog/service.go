package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"LIBRARY-backend/internal/platform/db"
)

// ===== Error model =====
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
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

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return 400
		case CodeNotFound:
			return 404
		case CodeConflict:
			return 409
		default:
			return 500
		}
	}
	return 500
}

// ===== Service =====

type Service struct {
	store *Store
}

func NewService(conn *db.DB) *Service { return &Service{store: NewStore(conn)} }

func (s *Service) List(ctx context.Context) ([]BookResponse, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]BookResponse, 0, len(rows))
	for _, b := range rows {
		out = append(out, b.toDTO())
	}
	return out, nil
}

func (s *Service) Add(ctx context.Context, in BookRequest) (BookResponse, error) {
	title, author, total, err := validateBook(in)
	if err != nil {
		return BookResponse{}, err
	}
	b := &Book{
		Title:           title,
		Author:          author,
		TotalCopies:     total,
		AvailableCopies: total,
	}
	if err := s.store.Insert(ctx, b); err != nil {
		return BookResponse{}, err
	}
	return b.toDTO(), nil
}

func (s *Service) Get(ctx context.Context, id int64) (BookResponse, error) {
	b, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return BookResponse{}, ErrNotFound("book not found")
		}
		return BookResponse{}, err
	}
	return b.toDTO(), nil
}

func (s *Service) Update(ctx context.Context, id int64, in BookRequest) (BookResponse, error) {
	title, author, total, err := validateBook(in)
	if err != nil {
		return BookResponse{}, err
	}
	b, err := s.store.ExecUpdate(ctx, id, title, author, total)
	if err != nil {
		return BookResponse{}, mapLockConflict(err)
	}
	return b.toDTO(), nil
}

// Delete は貸出履歴ごと削除する。2回目は NOT_FOUND
func (s *Service) Delete(ctx context.Context, id int64) error {
	return mapLockConflict(s.store.ExecDelete(ctx, id))
}

// Seed inserts the default catalogue when no books exist yet.
func (s *Service) Seed(ctx context.Context) (int, error) {
	return s.store.SeedIfEmpty(ctx, seedBooks)
}

// ===== helpers =====

func validateBook(in BookRequest) (title, author string, total int, err error) {
	title = normalizeText(in.Title)
	author = normalizeText(in.Author)
	if title == "" || author == "" {
		return "", "", 0, ErrInvalid("title and author are required")
	}
	if in.TotalCopies == nil {
		return "", "", 0, ErrInvalid("total_copies is required")
	}
	if *in.TotalCopies < 0 {
		return "", "", 0, ErrInvalid("total_copies must be >= 0")
	}
	return title, author, *in.TotalCopies, nil
}

func normalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func mapLockConflict(err error) error {
	if err != nil && db.IsLockConflict(err) {
		return ErrConflict("book is being modified by another request")
	}
	return err
}
