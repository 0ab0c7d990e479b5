package interfaces

import "context"

// Uploader pushes the output file to the remote repository
type Uploader interface {
	// UploadFile creates or updates repoPath with content and returns
	// the HTML URL of the uploaded file
	UploadFile(ctx context.Context, repoPath string, content []byte) (string, error)

	// CheckAccess verifies the target repository is reachable with the
	// configured credentials
	CheckAccess(ctx context.Context) error
}
