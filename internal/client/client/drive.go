package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"

	"github.com/dmitrijs2005/jrnl/internal/client/models"
	"github.com/dmitrijs2005/jrnl/internal/common"
)

const (
	DefaultDriveAPIBase    = "https://www.googleapis.com/drive/v3"
	DefaultDriveUploadBase = "https://www.googleapis.com/upload/drive/v3"
)

// DriveClient implements RemoteStore over the drive REST API with a bearer
// credential. One instance is bound to one access credential; the folder
// name comes from configuration. Sub-steps (folder lookup, file lookup,
// read/write) run strictly sequentially.
type DriveClient struct {
	httpClient  *http.Client
	accessToken string
	folderName  string

	// APIBase and UploadBase can be pointed at a test server.
	APIBase    string
	UploadBase string
}

// NewDriveClient returns a DriveClient scoped to the given credential.
func NewDriveClient(accessToken, folderName string) *DriveClient {
	return &DriveClient{
		httpClient:  &http.Client{},
		accessToken: accessToken,
		folderName:  folderName,
		APIBase:     DefaultDriveAPIBase,
		UploadBase:  DefaultDriveUploadBase,
	}
}

type fileResource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type fileList struct {
	Files []fileResource `json:"files"`
}

func (c *DriveClient) newRequest(ctx context.Context, method, rawURL string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

// doJSON executes req, requires a 2xx status, and decodes the body into out
// when out is non-nil.
func (c *DriveClient) doJSON(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: status %d", common.ErrSessionExpired, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// FindOrCreateFolder locates the configured folder (not trashed) or creates
// it. First found wins on reads; a concurrent caller can create a duplicate
// folder, which is an accepted race.
func (c *DriveClient) FindOrCreateFolder(ctx context.Context) (string, error) {
	q := url.Values{}
	q.Set("q", fmt.Sprintf("name='%s' and mimeType='%s' and trashed=false", c.folderName, common.FolderMimeType))
	q.Set("fields", "files(id, name)")

	req, err := c.newRequest(ctx, http.MethodGet, c.APIBase+"/files?"+q.Encode(), nil, "")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFolderAccess, err)
	}
	var list fileList
	if err := c.doJSON(req, &list); err != nil {
		return "", fmt.Errorf("%w: %w", ErrFolderAccess, err)
	}
	if len(list.Files) > 0 {
		return list.Files[0].ID, nil
	}

	body, err := json.Marshal(map[string]string{
		"name":     c.folderName,
		"mimeType": common.FolderMimeType,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFolderAccess, err)
	}
	req, err = c.newRequest(ctx, http.MethodPost, c.APIBase+"/files", bytes.NewReader(body), "application/json")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFolderAccess, err)
	}
	var created fileResource
	if err := c.doJSON(req, &created); err != nil {
		return "", fmt.Errorf("%w: %w", ErrFolderAccess, err)
	}
	return created.ID, nil
}

// findFile looks up the collection file inside the folder.
// Returns "" when the file does not exist yet.
func (c *DriveClient) findFile(ctx context.Context, folderID string) (string, error) {
	q := url.Values{}
	q.Set("q", fmt.Sprintf("name='%s' and '%s' in parents and trashed=false", common.DataFileName, folderID))
	q.Set("fields", "files(id, name)")

	req, err := c.newRequest(ctx, http.MethodGet, c.APIBase+"/files?"+q.Encode(), nil, "")
	if err != nil {
		return "", err
	}
	var list fileList
	if err := c.doJSON(req, &list); err != nil {
		return "", err
	}
	if len(list.Files) == 0 {
		return "", nil
	}
	return list.Files[0].ID, nil
}

// SaveEntries replaces the whole collection file with the given list,
// creating folder and file on first use.
func (c *DriveClient) SaveEntries(ctx context.Context, entries []models.Entry) error {
	folderID, err := c.FindOrCreateFolder(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	fileID, err := c.findFile(ctx, folderID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	content, err := models.MarshalEntries(entries)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	if fileID != "" {
		return c.updateFile(ctx, fileID, content)
	}
	return c.createFile(ctx, folderID, content)
}

func (c *DriveClient) updateFile(ctx context.Context, fileID string, content []byte) error {
	u := c.UploadBase + "/files/" + fileID + "?uploadType=media"
	req, err := c.newRequest(ctx, http.MethodPatch, u, bytes.NewReader(content), "application/json")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	if err := c.doJSON(req, nil); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	return nil
}

func (c *DriveClient) createFile(ctx context.Context, folderID string, content []byte) error {
	meta, err := json.Marshal(struct {
		Name    string   `json:"name"`
		Parents []string `json:"parents"`
	}{common.DataFileName, []string{folderID}})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	metaHeader := textproto.MIMEHeader{}
	metaHeader.Set("Content-Type", "application/json; charset=UTF-8")
	part, err := mw.CreatePart(metaHeader)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	if _, err := part.Write(meta); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	mediaHeader := textproto.MIMEHeader{}
	mediaHeader.Set("Content-Type", "application/json")
	part, err = mw.CreatePart(mediaHeader)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	if _, err := part.Write(content); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	u := c.UploadBase + "/files?uploadType=multipart"
	req, err := c.newRequest(ctx, http.MethodPost, u, &buf, "multipart/related; boundary="+mw.Boundary())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	if err := c.doJSON(req, nil); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	return nil
}

// LoadEntries fetches and parses the collection file. A missing file is the
// expected first-run state and yields an empty list.
func (c *DriveClient) LoadEntries(ctx context.Context) ([]models.Entry, error) {
	folderID, err := c.FindOrCreateFolder(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	fileID, err := c.findFile(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	if fileID == "" {
		return []models.Entry{}, nil
	}

	req, err := c.newRequest(ctx, http.MethodGet, c.APIBase+"/files/"+fileID+"?alt=media", nil, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, common.ErrSessionExpired)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrLoadFailed, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	entries, err := models.ParseEntries(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return entries, nil
}

// DeleteAllData removes the collection file. Absence of the file is a
// silent no-op success.
func (c *DriveClient) DeleteAllData(ctx context.Context) error {
	folderID, err := c.FindOrCreateFolder(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}
	fileID, err := c.findFile(ctx, folderID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}
	if fileID == "" {
		return nil
	}

	req, err := c.newRequest(ctx, http.MethodDelete, c.APIBase+"/files/"+fileID, nil, "")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}
	if err := c.doJSON(req, nil); err != nil {
		return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}
	return nil
}
