package quark

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/vaultsync/quarkdrive/pkg/utils"
)

// RootFolderID is the identifier of the drive root.
const RootFolderID = "0"

// ListFiles fetches one page of up to 50 entries of a folder, directories
// first, most recently updated first. An entry counts as a directory when
// its dir flag is set or its raw type code is zero.
func (c *Client) ListFiles(ctx context.Context, folderID string) ([]FileNode, error) {
	query := map[string]string{
		"pdir_fid":        folderID,
		"_page":           "1",
		"_size":           "50",
		"_fetch_total":    "1",
		"_fetch_sub_dirs": "0",
		"_sort":           "file_type:asc,updated_at:desc",
	}
	var resp SortResp
	_, err := c.request(ctx, "/file/sort", http.MethodGet, func(req *resty.Request) {
		req.SetQueryParams(query)
	}, &resp)
	if err != nil {
		return nil, err
	}
	nodes := make([]FileNode, 0, len(resp.Data.List))
	for _, f := range resp.Data.List {
		nodes = append(nodes, fileToNode(f))
	}
	return nodes, nil
}

// CreateFolder creates a folder under parentID and returns its fid.
// Not idempotent: two calls with the same name create two folders.
func (c *Client) CreateFolder(ctx context.Context, name, parentID string) (string, error) {
	data := Json{
		"dir_init_lock": false,
		"dir_path":      "",
		"file_name":     name,
		"pdir_fid":      parentID,
	}
	var resp CreateResp
	_, err := c.request(ctx, "/file", http.MethodPost, func(req *resty.Request) {
		req.SetBody(data)
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Data.Fid, nil
}

// FindOrCreatePath walks path from the root, reusing the directory whose
// name matches each segment exactly and creating the missing ones, and
// returns the deepest folder's fid. The list-then-create walk is not
// atomic; two concurrent calls on the same path can create duplicates.
func (c *Client) FindOrCreatePath(ctx context.Context, path string) (string, error) {
	parent := RootFolderID
	for _, seg := range utils.SplitPath(path) {
		nodes, err := c.ListFiles(ctx, parent)
		if err != nil {
			return "", err
		}
		fid := ""
		for _, n := range nodes {
			if n.IsDir && n.Name == seg {
				fid = n.ID
				break
			}
		}
		if fid == "" {
			fid, err = c.CreateFolder(ctx, seg, parent)
			if err != nil {
				return "", err
			}
		}
		parent = fid
	}
	return parent, nil
}

// Delete moves a node to the trash. The service exposes no client-facing
// permanent delete.
func (c *Client) Delete(ctx context.Context, fid string) error {
	data := Json{
		"action_type":  2,
		"exclude_fids": []string{},
		"filelist":     []string{fid},
	}
	_, err := c.request(ctx, "/file/delete", http.MethodPost, func(req *resty.Request) {
		req.SetBody(data)
	}, nil)
	return err
}

// Move puts a node under another folder.
func (c *Client) Move(ctx context.Context, fid, dstParentID string) error {
	data := Json{
		"action_type":  1,
		"exclude_fids": []string{},
		"filelist":     []string{fid},
		"to_pdir_fid":  dstParentID,
	}
	_, err := c.request(ctx, "/file/move", http.MethodPost, func(req *resty.Request) {
		req.SetBody(data)
	}, nil)
	return err
}

// Rename changes a node's display name.
func (c *Client) Rename(ctx context.Context, fid, newName string) error {
	data := Json{
		"fid":       fid,
		"file_name": newName,
	}
	_, err := c.request(ctx, "/file/rename", http.MethodPost, func(req *resty.Request) {
		req.SetBody(data)
	}, nil)
	return err
}
