package book

// Book is never mutated after creation; IsBorrowed stays at its stored
// default until a borrowing workflow exists.
type Book struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	IsBorrowed bool   `json:"is_borrowed"`
}

type CreateRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}
