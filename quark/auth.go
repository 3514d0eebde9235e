package quark

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// UploadAuther produces the object-storage Authorization value for one
// canonical string-to-sign. The signing secret lives on the drive API,
// never in the client, so the default implementation asks it per request.
type UploadAuther interface {
	AuthToken(ctx context.Context, taskID, authInfo, canonical string) (string, error)
}

type apiAuther struct {
	c *Client
}

func (a *apiAuther) AuthToken(ctx context.Context, taskID, authInfo, canonical string) (string, error) {
	data := Json{
		"auth_info": authInfo,
		"auth_meta": canonical,
		"task_id":   taskID,
	}
	var resp UpAuthResp
	_, err := a.c.request(ctx, "/file/upload/auth", http.MethodPost, func(req *resty.Request) {
		req.SetBody(data)
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Data.AuthKey, nil
}
