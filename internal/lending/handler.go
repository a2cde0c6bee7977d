package lending

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"LIBRARY-backend/internal/platform/middleware"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	// 貸出・返却（書籍単位。冊は区別しない）
	r.POST("/books/:book_id/borrowings", h.Borrow)
	r.POST("/books/:book_id/returns", h.Return)

	// 履歴
	r.GET("/borrowings", h.History)
	r.GET("/borrowings/:borrowing_ulid", h.GetBorrowing)
}

// ---------- handlers ----------

// Borrow godoc
// @Summary  Lend one copy of a book for 14 days
// @Tags     lending
// @Accept   json,x-www-form-urlencoded
// @Produce  json
// @Param    book_id path int true "book id"
// @Param    body body BorrowRequest true "borrower"
// @Success  201 {object} BorrowingResponse
// @Failure  400 {object} errorDTO
// @Failure  404 {object} errorDTO
// @Failure  409 {object} errorDTO
// @Router   /books/{book_id}/borrowings [post]
func (h *Handler) Borrow(c *gin.Context) {
	bookID, ok := bookIDParam(c)
	if !ok {
		return
	}
	var req BorrowRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid request body"))
		return
	}
	res, err := h.svc.Borrow(c.Request.Context(), bookID, req)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(c, err))
		return
	}
	c.Header("Location", "/api/v1/borrowings/"+res.ULID)
	c.JSON(http.StatusCreated, res)
}

// Return godoc
// @Summary  Return the earliest outstanding borrowing of a book
// @Tags     lending
// @Produce  json
// @Param    book_id path int true "book id"
// @Success  200 {object} BorrowingResponse
// @Failure  404 {object} errorDTO
// @Failure  422 {object} errorDTO
// @Router   /books/{book_id}/returns [post]
func (h *Handler) Return(c *gin.Context) {
	bookID, ok := bookIDParam(c)
	if !ok {
		return
	}
	res, err := h.svc.Return(c.Request.Context(), bookID)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(c, err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// History godoc
// @Summary  Borrowing history, oldest first
// @Tags     lending
// @Produce  json
// @Success  200 {object} HistoryResponse
// @Router   /borrowings [get]
func (h *Handler) History(c *gin.Context) {
	items, err := h.svc.History(c.Request.Context())
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(c, err))
		return
	}
	c.JSON(http.StatusOK, HistoryResponse{Items: items})
}

// GetBorrowing godoc
// @Summary  Get a borrowing by its ULID
// @Tags     lending
// @Produce  json
// @Param    borrowing_ulid path string true "borrowing ULID"
// @Success  200 {object} BorrowingResponse
// @Failure  404 {object} errorDTO
// @Router   /borrowings/{borrowing_ulid} [get]
func (h *Handler) GetBorrowing(c *gin.Context) {
	res, err := h.svc.GetBorrowing(c.Request.Context(), c.Param("borrowing_ulid"))
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(c, err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// ---------- helpers ----------

func bookIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "book_id must be a number"))
		return 0, false
	}
	return id, true
}

type errorDTO struct {
	Error struct {
		Code    Code   `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func errorBody(code Code, msg string) errorDTO {
	var e errorDTO
	e.Error.Code = code
	e.Error.Message = msg
	return e
}

func errorFromErr(c *gin.Context, err error) errorDTO {
	var api *APIError
	if errors.As(err, &api) {
		return errorBody(api.Code, api.Message)
	}
	slog.ErrorContext(c.Request.Context(), "lending request failed",
		"request_id", middleware.RequestIDFrom(c), "path", c.FullPath(), "err", err)
	return errorBody(CodeInternal, "internal error")
}
