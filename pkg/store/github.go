package store

import (
	"context"
	"net/http"
	gopath "path"

	"github.com/google/go-github/v62/github"
)

// GitHubStore keeps documents as files in a GitHub repository, using the
// contents API. The blob SHA is the revision tag: updates send the SHA
// the caller read, and GitHub rejects the write when the file has moved
// on, which is what backs conflict detection between admin sessions.
type GitHubStore struct {
	client *github.Client
	owner  string
	repo   string
	branch string
	dir    string
}

// NewGitHubStore wraps an authenticated go-github client. dir may be
// empty to store documents at the repository root.
func NewGitHubStore(client *github.Client, owner, repo, branch, dir string) *GitHubStore {
	return &GitHubStore{client: client, owner: owner, repo: repo, branch: branch, dir: dir}
}

func (s *GitHubStore) fullPath(path string) string {
	if s.dir == "" {
		return path
	}
	return gopath.Join(s.dir, path)
}

func (s *GitHubStore) Read(ctx context.Context, path string) (Document, error) {
	opts := &github.RepositoryContentGetOptions{Ref: s.branch}
	file, _, resp, err := s.client.Repositories.GetContents(ctx, s.owner, s.repo, s.fullPath(path), opts)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return Document{}, nil
		}
		return Document{}, unavailable("read "+path, err)
	}
	content, err := file.GetContent()
	if err != nil {
		return Document{}, unavailable("decode "+path, err)
	}
	return Document{Bytes: []byte(content), Tag: file.GetSHA(), Found: true}, nil
}

func (s *GitHubStore) Write(ctx context.Context, path string, data []byte, expectedTag string) (string, error) {
	opts := &github.RepositoryContentFileOptions{
		Message: github.String("chore: update " + path),
		Content: data,
		Branch:  github.String(s.branch),
	}

	var (
		res  *github.RepositoryContentResponse
		resp *github.Response
		err  error
	)
	if expectedTag == "" {
		res, resp, err = s.client.Repositories.CreateFile(ctx, s.owner, s.repo, s.fullPath(path), opts)
	} else {
		opts.SHA = github.String(expectedTag)
		res, resp, err = s.client.Repositories.UpdateFile(ctx, s.owner, s.repo, s.fullPath(path), opts)
	}
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusUnprocessableEntity) {
			return "", ErrConflict
		}
		return "", unavailable("write "+path, err)
	}
	return res.Content.GetSHA(), nil
}
