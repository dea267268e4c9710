package github

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/R3MiX9002/my-gemini-app/internal/pkg/httpclient"
)

// DefaultBaseBranch receives the merge at the end of AutoPushMerge.
const DefaultBaseBranch = "main"

// Client talks to the GitHub contents and merges APIs.
type Client struct {
	connector *httpclient.Connector
}

type contentResponse struct {
	SHA string `json:"sha"`
}

type uploadRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
	SHA     string `json:"sha,omitempty"`
}

type mergeRequest struct {
	Base string `json:"base"`
	Head string `json:"head"`
}

type SyncResult struct {
	Uploaded []string `json:"uploaded"`
	Merged   bool     `json:"merged"`
}

func NewClient(apiURL, token string, opts ...httpclient.Option) *Client {
	opts = append([]httpclient.Option{
		httpclient.WithAuth("token", token),
		httpclient.WithRequestLogging(),
	}, opts...)
	return &Client{connector: httpclient.NewConnector(apiURL, opts...)}
}

// EncodeFile returns the base64 encoding of the file at path.
func EncodeFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file failed: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// GetFileSHA returns the blob sha of path, or "" when GitHub answers with
// anything but 200.
func (c *Client) GetFileSHA(ctx context.Context, owner, repo, path string) (string, error) {
	var resp contentResponse
	err := c.connector.DoRequest(ctx, http.MethodGet, contentsEndpoint(owner, repo, path), nil, &resp)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			return "", nil
		}
		return "", fmt.Errorf("get file sha failed: %w", err)
	}
	return resp.SHA, nil
}

// UploadFile creates or updates path on branch. sha must be the current blob
// sha when the file already exists.
func (c *Client) UploadFile(ctx context.Context, owner, repo, path, content, branch, sha string) error {
	body := uploadRequest{
		Message: "Update " + path,
		Content: content,
		Branch:  branch,
		SHA:     sha,
	}
	if err := c.connector.DoRequest(ctx, http.MethodPut, contentsEndpoint(owner, repo, path), body, nil); err != nil {
		return fmt.Errorf("upload %s failed: %w", path, err)
	}
	return nil
}

func (c *Client) MergeBranch(ctx context.Context, owner, repo, base, head string) error {
	endpoint := fmt.Sprintf("/repos/%s/%s/merges", url.PathEscape(owner), url.PathEscape(repo))
	if err := c.connector.DoRequest(ctx, http.MethodPost, endpoint, mergeRequest{Base: base, Head: head}, nil); err != nil {
		return fmt.Errorf("merge %s into %s failed: %w", head, base, err)
	}
	return nil
}

// AutoPushMerge uploads every file under dir to branch, then merges branch
// into main. It stops at the first failed upload.
func (c *Client) AutoPushMerge(ctx context.Context, dir, owner, repo, branch string) (*SyncResult, error) {
	logger := ctxzap.Extract(ctx)
	result := &SyncResult{}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		content, err := EncodeFile(path)
		if err != nil {
			return err
		}
		sha, err := c.GetFileSHA(ctx, owner, repo, rel)
		if err != nil {
			return err
		}
		if err := c.UploadFile(ctx, owner, repo, rel, content, branch, sha); err != nil {
			return err
		}
		logger.Info("file pushed", zap.String("path", rel), zap.Bool("existing", sha != ""))
		result.Uploaded = append(result.Uploaded, rel)
		return nil
	})
	if err != nil {
		return result, err
	}

	if err := c.MergeBranch(ctx, owner, repo, DefaultBaseBranch, branch); err != nil {
		return result, err
	}
	result.Merged = true
	return result, nil
}

func contentsEndpoint(owner, repo, path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("/repos/%s/%s/contents/%s", url.PathEscape(owner), url.PathEscape(repo), strings.Join(segments, "/"))
}
