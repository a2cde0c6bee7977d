package catalog

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"LIBRARY-backend/internal/platform/middleware"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.GET("/books", h.ListBooks)
	r.POST("/books", h.AddBook)
	r.GET("/books/:book_id", h.GetBook)
	r.PUT("/books/:book_id", h.UpdateBook)
	r.DELETE("/books/:book_id", h.DeleteBook)
}

// ===== books =====

// ListBooks godoc
// @Summary  List all books in id order
// @Tags     books
// @Produce  json
// @Success  200 {object} ListBooksResponse
// @Router   /books [get]
func (h *Handler) ListBooks(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(c, err))
		return
	}
	c.JSON(http.StatusOK, ListBooksResponse{Items: items})
}

// AddBook godoc
// @Summary  Add a book; available_copies starts at total_copies
// @Tags     books
// @Accept   json,x-www-form-urlencoded
// @Produce  json
// @Param    body body BookRequest true "book"
// @Success  201 {object} BookResponse
// @Failure  400 {object} errDTO
// @Router   /books [post]
func (h *Handler) AddBook(c *gin.Context) {
	req, bindErr := bindBook(c)
	if bindErr != nil {
		c.JSON(http.StatusBadRequest, apiErr(bindErr.Code, bindErr.Message))
		return
	}
	res, err := h.svc.Add(c.Request.Context(), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(c, err))
		return
	}
	c.Header("Location", "/api/v1/books/"+strconv.FormatInt(res.ID, 10))
	c.JSON(http.StatusCreated, res)
}

// GetBook godoc
// @Summary  Get a book
// @Tags     books
// @Produce  json
// @Param    book_id path int true "book id"
// @Success  200 {object} BookResponse
// @Failure  404 {object} errDTO
// @Router   /books/{book_id} [get]
func (h *Handler) GetBook(c *gin.Context) {
	id, ok := bookIDParam(c)
	if !ok {
		return
	}
	res, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(c, err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// UpdateBook godoc
// @Summary  Replace title, author and total_copies; available_copies is clamped to the new total
// @Tags     books
// @Accept   json,x-www-form-urlencoded
// @Produce  json
// @Param    book_id path int true "book id"
// @Param    body body BookRequest true "book"
// @Success  200 {object} BookResponse
// @Failure  400 {object} errDTO
// @Failure  404 {object} errDTO
// @Router   /books/{book_id} [put]
func (h *Handler) UpdateBook(c *gin.Context) {
	id, ok := bookIDParam(c)
	if !ok {
		return
	}
	req, bindErr := bindBook(c)
	if bindErr != nil {
		c.JSON(http.StatusBadRequest, apiErr(bindErr.Code, bindErr.Message))
		return
	}
	res, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(c, err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// DeleteBook godoc
// @Summary  Delete a book and its borrowing history
// @Tags     books
// @Param    book_id path int true "book id"
// @Success  204
// @Failure  404 {object} errDTO
// @Router   /books/{book_id} [delete]
func (h *Handler) DeleteBook(c *gin.Context) {
	id, ok := bookIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(c, err))
		return
	}
	c.Status(http.StatusNoContent)
}

// ===== helpers =====

// bindBook は JSON とフォームの両方を受ける。フォームの total_copies は
// 空欄なら未指定扱い、数値でなければ INVALID_ARGUMENT
func bindBook(c *gin.Context) (BookRequest, *APIError) {
	var req BookRequest
	if c.ContentType() == binding.MIMEJSON {
		if err := c.ShouldBindJSON(&req); err != nil {
			return req, ErrInvalid("invalid request body")
		}
		return req, nil
	}

	var f bookForm
	if err := c.ShouldBind(&f); err != nil {
		return req, ErrInvalid("invalid request body")
	}
	req.Title, req.Author = f.Title, f.Author
	if f.TotalCopies != nil {
		if raw := strings.TrimSpace(*f.TotalCopies); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return req, ErrInvalid("total_copies must be an integer")
			}
			req.TotalCopies = &n
		}
	}
	return req, nil
}

func bookIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "book_id must be a number"))
		return 0, false
	}
	return id, true
}

type errDTO struct {
	Error struct {
		Code    Code   `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func apiErr(code Code, msg string) errDTO {
	var e errDTO
	e.Error.Code = code
	e.Error.Message = msg
	return e
}

func apiErrFrom(c *gin.Context, err error) errDTO {
	var api *APIError
	if errors.As(err, &api) {
		return apiErr(api.Code, api.Message)
	}
	slog.ErrorContext(c.Request.Context(), "catalog request failed",
		"request_id", middleware.RequestIDFrom(c), "path", c.FullPath(), "err", err)
	return apiErr(CodeInternal, "internal error")
}
