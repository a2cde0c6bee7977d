package catalog

// Book は books テーブルの1行を表す
type Book struct {
	ID              int64  `db:"id"`
	Title           string `db:"title"`
	Author          string `db:"author"`
	TotalCopies     int    `db:"total_copies"`
	AvailableCopies int    `db:"available_copies"`
}

func (b Book) toDTO() BookResponse {
	return BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
	}
}

// reconcileAvailable は総数の変更後も available <= total を保つ。
// 貸出中の冊数は回収しないので available を切り詰めるだけ。
func reconcileAvailable(currentAvailable, newTotal int) int {
	return min(currentAvailable, newTotal)
}
