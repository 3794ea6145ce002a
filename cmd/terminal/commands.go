package main

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sevigo/code-lens/internal/core"
)

const toastDuration = 3 * time.Second

// reviewer is the part of the review client the UI needs.
type reviewer interface {
	Review(ctx context.Context, code string) (*core.ReviewResponse, error)
}

func reviewCmd(r reviewer, code string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := r.Review(ctx, code)
		if err != nil {
			return reviewFailedMsg{err}
		}
		return reviewCompleteMsg{resp: resp}
	}
}

func clearToastCmd(id int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return clearToastMsg{id: id}
	})
}
