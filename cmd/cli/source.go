package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sevigo/code-lens/internal/github"
)

// maxSourceBytes bounds what the CLI will read from a file or stdin.
const maxSourceBytes = 4 << 20

// readSource returns the text named by arg: a path, or "-" / nothing for stdin.
func readSource(arg string, stdin io.Reader) (string, string, error) {
	if arg == "" || arg == "-" {
		text, err := readLimited(stdin, "stdin")
		if err != nil {
			return "", "", err
		}
		return text, "stdin", nil
	}

	f, err := os.Open(arg)
	if err != nil {
		return "", "", fmt.Errorf("failed to open %s: %w", arg, err)
	}
	defer f.Close()

	text, err := readLimited(f, arg)
	if err != nil {
		return "", "", err
	}
	return text, arg, nil
}

// readLimited reads r fully and fails instead of truncating when it holds
// more than maxSourceBytes.
func readLimited(r io.Reader, name string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSourceBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	if len(data) > maxSourceBytes {
		return "", fmt.Errorf("%s is larger than %d bytes", name, maxSourceBytes)
	}
	return string(data), nil
}

// readGitHubSource downloads the file named by an owner/repo/path[@ref] reference.
func readGitHubSource(ctx context.Context, client github.Client, ref string) (string, string, error) {
	file, err := github.ParseFileRef(ref)
	if err != nil {
		return "", "", err
	}
	text, err := client.GetFileContent(ctx, file)
	if err != nil {
		return "", "", err
	}
	return text, file.String(), nil
}
