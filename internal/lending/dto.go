package lending

// 貸出登録リクエスト
type BorrowRequest struct {
	UserName string `json:"user_name" form:"user_name"`
}

// 貸出レスポンス（返却時も同じ形）
type BorrowingResponse struct {
	ID         int64   `json:"id"`
	ULID       string  `json:"borrowing_ulid"`
	BookID     int64   `json:"book_id"`
	UserName   string  `json:"user_name"`
	BorrowDate string  `json:"borrow_date"`
	DueDate    string  `json:"due_date"`
	ReturnDate *string `json:"return_date"`
	Returned   bool    `json:"returned"`
}

// 履歴1行。return_date が null なら貸出中
type HistoryEntry struct {
	BorrowingID   int64   `json:"borrowing_id"`
	BorrowingULID string  `json:"borrowing_ulid"`
	BookID        int64   `json:"book_id"`
	Title         string  `json:"title"`
	UserName      string  `json:"user_name"`
	BorrowDate    string  `json:"borrow_date"`
	DueDate       string  `json:"due_date"`
	ReturnDate    *string `json:"return_date"`
}

type HistoryResponse struct {
	Items []HistoryEntry `json:"items"`
}
