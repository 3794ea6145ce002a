package core

// Fixed precondition messages. They are valid Markdown and are displayed like
// any other review text.
const (
	NoCodeMessage             = "No valid code detected. Please provide a code snippet."
	MissingLineNumbersMessage = "Please provide the code with line numbers (or enable line numbering)."
)
