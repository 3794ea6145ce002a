package main

import "github.com/sevigo/code-lens/internal/core"

// reviewCompleteMsg carries the review text returned by the server.
type reviewCompleteMsg struct {
	resp *core.ReviewResponse
}

// reviewFailedMsg reports a failed request. It is shown as a toast and never
// ends the program.
type reviewFailedMsg struct{ err error }

func (e reviewFailedMsg) Error() string {
	return e.err.Error()
}

// clearToastMsg hides the toast with the given id, unless a newer one replaced it.
type clearToastMsg struct{ id int }
