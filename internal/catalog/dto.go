package catalog

// ===== Requests =====

// BookRequest は登録・更新共通
type BookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	TotalCopies *int   `json:"total_copies"`
}

// bookForm は HTML フォーム用。空欄を 0 と区別するため total_copies は文字列で受ける
type bookForm struct {
	Title       string  `form:"title"`
	Author      string  `form:"author"`
	TotalCopies *string `form:"total_copies"`
}

// ===== Responses =====

type BookResponse struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
}

type ListBooksResponse struct {
	Items []BookResponse `json:"items"`
}
