package catalog

// 初回起動時（books が空のとき）に投入する蔵書
var seedBooks = []Book{
	{Title: "To Kill a Mockingbird", Author: "Harper Lee", TotalCopies: 5, AvailableCopies: 5},
	{Title: "1984", Author: "George Orwell", TotalCopies: 3, AvailableCopies: 3},
	{Title: "Pride and Prejudice", Author: "Jane Austen", TotalCopies: 4, AvailableCopies: 4},
	{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", TotalCopies: 2, AvailableCopies: 2},
	{Title: "The Catcher in the Rye", Author: "J.D. Salinger", TotalCopies: 3, AvailableCopies: 3},
	{Title: "Lord of the Rings", Author: "J.R.R. Tolkien", TotalCopies: 6, AvailableCopies: 6},
	{Title: "Harry Potter and the Sorcerer's Stone", Author: "J.K. Rowling", TotalCopies: 5, AvailableCopies: 5},
	{Title: "The Hobbit", Author: "J.R.R. Tolkien", TotalCopies: 4, AvailableCopies: 4},
	{Title: "Animal Farm", Author: "George Orwell", TotalCopies: 3, AvailableCopies: 3},
	{Title: "Brave New World", Author: "Aldous Huxley", TotalCopies: 2, AvailableCopies: 2},
}
