// Package github fetches source files from GitHub for review.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"
)

// FileRef points at one file in a repository. An empty Ref means the default
// branch.
type FileRef struct {
	Owner string
	Repo  string
	Path  string
	Ref   string
}

func (f FileRef) String() string {
	s := f.Owner + "/" + f.Repo + "/" + f.Path
	if f.Ref != "" {
		s += "@" + f.Ref
	}
	return s
}

// ParseFileRef parses "owner/repo/path/to/file[@ref]".
func ParseFileRef(s string) (FileRef, error) {
	s = strings.TrimSpace(s)
	var ref string
	if i := strings.LastIndex(s, "@"); i >= 0 {
		s, ref = s[:i], s[i+1:]
		if ref == "" {
			return FileRef{}, fmt.Errorf("invalid file reference %q: empty ref after '@'", s)
		}
	}
	parts := strings.SplitN(strings.Trim(s, "/"), "/", 3)
	if len(parts) < 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return FileRef{}, fmt.Errorf("invalid file reference %q: expected owner/repo/path[@ref]", s)
	}
	return FileRef{Owner: parts[0], Repo: parts[1], Path: parts[2], Ref: ref}, nil
}

// Client defines the GitHub operations the review tools need.
//
//go:generate mockgen -destination=../../mocks/mock_github_client.go -package=mocks . Client
type Client interface {
	GetFileContent(ctx context.Context, file FileRef) (string, error)
}

type gitHubClient struct {
	client *github.Client
	logger *slog.Logger
}

// NewGitHubClient wraps the official go-github client to provide a focused,
// testable interface for application-specific GitHub operations.
func NewGitHubClient(client *github.Client, logger *slog.Logger) Client {
	return &gitHubClient{client: client, logger: logger}
}

// NewPATClient creates a new GitHub client authenticated with a Personal Access Token (PAT).
// An empty token gives an anonymous client, which can read public repositories.
func NewPATClient(ctx context.Context, token string, logger *slog.Logger) Client {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		hc = oauth2.NewClient(ctx, ts)
	}
	return &gitHubClient{client: github.NewClient(hc), logger: logger}
}

// GetFileContent downloads and decodes a single file.
func (g *gitHubClient) GetFileContent(ctx context.Context, file FileRef) (string, error) {
	var opts *github.RepositoryContentGetOptions
	if file.Ref != "" {
		opts = &github.RepositoryContentGetOptions{Ref: file.Ref}
	}

	content, dir, _, err := g.client.Repositories.GetContents(ctx, file.Owner, file.Repo, file.Path, opts)
	if err != nil {
		g.logger.Error("failed to get file content", "file", file.String(), "error", err)
		return "", fmt.Errorf("failed to get %s: %w", file, err)
	}
	if content == nil {
		return "", fmt.Errorf("%s is a directory with %d entries, not a file", file, len(dir))
	}

	text, err := content.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", file, err)
	}
	g.logger.Debug("fetched file from github", "file", file.String(), "bytes", len(text))
	return text, nil
}
