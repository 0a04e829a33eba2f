package request

type CreateNoteRequest struct {
	Symbol string `json:"symbol,omitempty"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

type UpdateNoteRequest struct {
	Symbol *string `json:"symbol,omitempty"`
	Title  *string `json:"title,omitempty"`
	Body   *string `json:"body,omitempty"`
}
