package quark

import (
	"encoding/json"
	"time"
)

type Json map[string]interface{}

// Resp is the response envelope shared by every drive API endpoint.
// code is a number on most endpoints but a string on a few, so it is
// decoded loosely.
type Resp struct {
	Status  int    `json:"status"`
	Code    any    `json:"code"`
	Message string `json:"message"`
}

// Success reports whether the envelope carries a success status code:
// absent, numeric zero, or the literal "SUCCESS" token.
func (r *Resp) Success() bool {
	switch v := r.Code.(type) {
	case nil:
		return true
	case float64:
		return v == 0
	case string:
		return v == "SUCCESS"
	default:
		return false
	}
}

// FileNode is one listing entry normalized for callers. Nodes are not
// cached; every listing re-fetches.
type FileNode struct {
	ID      string
	Name    string
	Size    int64
	Created time.Time
	Updated time.Time
	IsDir   bool
}

// File is a raw listing entry. The service sends far more fields; only
// the ones the client reads are kept.
type File struct {
	Fid       string `json:"fid"`
	FileName  string `json:"file_name"`
	FileType  int    `json:"file_type"`
	Size      int64  `json:"size"`
	Dir       bool   `json:"dir"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

func fileToNode(f File) FileNode {
	return FileNode{
		ID:      f.Fid,
		Name:    f.FileName,
		Size:    f.Size,
		Created: time.UnixMilli(f.CreatedAt),
		Updated: time.UnixMilli(f.UpdatedAt),
		IsDir:   f.Dir || f.FileType == 0,
	}
}

type SortResp struct {
	Resp
	Data struct {
		List []File `json:"list"`
	} `json:"data"`
	Metadata struct {
		Total int `json:"_total"`
	} `json:"metadata"`
}

type CreateResp struct {
	Resp
	Data struct {
		Fid string `json:"fid"`
	} `json:"data"`
}

type DownResp struct {
	Resp
	Data []struct {
		DownloadURL string `json:"download_url"`
	} `json:"data"`
}

// UpPreData is the negotiated upload state from /file/upload/pre. The
// callback blob is forwarded verbatim to the commit step and never
// interpreted, so it stays raw.
type UpPreData struct {
	TaskID    string          `json:"task_id"`
	Fid       string          `json:"fid"`
	Finish    bool            `json:"finish"`
	Bucket    string          `json:"bucket"`
	ObjKey    string          `json:"obj_key"`
	UploadID  string          `json:"upload_id"`
	UploadURL string          `json:"upload_url"`
	AuthInfo  string          `json:"auth_info"`
	Callback  json.RawMessage `json:"callback"`
}

type UpPreResp struct {
	Resp
	Data     UpPreData `json:"data"`
	Metadata struct {
		PartSize int64 `json:"part_size"`
	} `json:"metadata"`
}

type HashResp struct {
	Resp
	Data struct {
		Finish bool   `json:"finish"`
		Fid    string `json:"fid"`
	} `json:"data"`
}

type UpAuthResp struct {
	Resp
	Data struct {
		AuthKey string `json:"auth_key"`
	} `json:"data"`
}
