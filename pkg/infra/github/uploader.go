package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"

	"github.com/jaylaelike/scintpipe/pkg/domain/interfaces"
)

const commitMessagePrefix = "Automated GPS scintillation data update"

// Default committer identity for automated commits
const (
	DefaultCommitterName  = "GPS Data Processor Bot"
	DefaultCommitterEmail = "gps-processor@automated.com"
)

type uploader struct {
	client         *github.Client
	owner          string
	repo           string
	branch         string
	committerName  string
	committerEmail string
	baseURL        string
}

// Option is a functional option for uploader configuration
type Option func(*uploader)

// WithBranch targets a branch other than the repository default
func WithBranch(branch string) Option {
	return func(u *uploader) {
		u.branch = branch
	}
}

// WithCommitter overrides the automated committer identity
func WithCommitter(name, email string) Option {
	return func(u *uploader) {
		u.committerName = name
		u.committerEmail = email
	}
}

// WithBaseURL points the client at a different API base URL. Used by
// tests and GitHub Enterprise deployments.
func WithBaseURL(baseURL string) Option {
	return func(u *uploader) {
		u.baseURL = baseURL
	}
}

// NewUploader creates an Uploader backed by the GitHub contents API
// with personal access token authentication.
func NewUploader(token, owner, repo string, opts ...Option) (interfaces.Uploader, error) {
	if token == "" {
		return nil, goerr.New("GitHub token is required")
	}

	u := &uploader{
		client:         github.NewClient(nil).WithAuthToken(token),
		owner:          owner,
		repo:           repo,
		committerName:  DefaultCommitterName,
		committerEmail: DefaultCommitterEmail,
	}
	for _, opt := range opts {
		opt(u)
	}

	if u.baseURL != "" {
		if !strings.HasSuffix(u.baseURL, "/") {
			u.baseURL += "/"
		}
		parsed, err := url.Parse(u.baseURL)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid API base URL", goerr.V("base_url", u.baseURL))
		}
		u.client.BaseURL = parsed
		u.client.UploadURL = parsed
	}

	return u, nil
}

// UploadFile creates or updates repoPath with content. When the file
// already exists its blob SHA is attached so the contents API performs
// an update instead of rejecting the write.
func (u *uploader) UploadFile(ctx context.Context, repoPath string, content []byte) (string, error) {
	sha, err := u.currentSHA(ctx, repoPath)
	if err != nil {
		return "", err
	}

	message := fmt.Sprintf("%s - %s", commitMessagePrefix, time.Now().Format("2006-01-02 15:04:05"))
	opts := &github.RepositoryContentFileOptions{
		Message: github.Ptr(message),
		Content: content,
		Committer: &github.CommitAuthor{
			Name:  github.Ptr(u.committerName),
			Email: github.Ptr(u.committerEmail),
		},
	}
	if u.branch != "" {
		opts.Branch = github.Ptr(u.branch)
	}

	var resp *github.RepositoryContentResponse
	if sha != "" {
		opts.SHA = github.Ptr(sha)
		resp, _, err = u.client.Repositories.UpdateFile(ctx, u.owner, u.repo, repoPath, opts)
	} else {
		resp, _, err = u.client.Repositories.CreateFile(ctx, u.owner, u.repo, repoPath, opts)
	}
	if err != nil {
		return "", goerr.Wrap(err, "failed to upload file to GitHub",
			goerr.V("owner", u.owner),
			goerr.V("repo", u.repo),
			goerr.V("path", repoPath),
		)
	}

	if resp.Content != nil {
		return resp.Content.GetHTMLURL(), nil
	}
	return "", nil
}

// CheckAccess verifies the repository is visible with the configured token
func (u *uploader) CheckAccess(ctx context.Context) error {
	if _, _, err := u.client.Repositories.Get(ctx, u.owner, u.repo); err != nil {
		return goerr.Wrap(err, "repository is not accessible",
			goerr.V("owner", u.owner),
			goerr.V("repo", u.repo),
		)
	}
	return nil
}

// currentSHA returns the blob SHA of repoPath, or empty when the file
// does not exist yet.
func (u *uploader) currentSHA(ctx context.Context, repoPath string) (string, error) {
	var getOpts *github.RepositoryContentGetOptions
	if u.branch != "" {
		getOpts = &github.RepositoryContentGetOptions{Ref: u.branch}
	}

	fileContent, _, resp, err := u.client.Repositories.GetContents(ctx, u.owner, u.repo, repoPath, getOpts)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", nil
		}
		return "", goerr.Wrap(err, "failed to check remote file",
			goerr.V("path", repoPath),
		)
	}
	if fileContent == nil {
		return "", goerr.New("remote path is a directory", goerr.V("path", repoPath))
	}
	return fileContent.GetSHA(), nil
}
