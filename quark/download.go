package quark

import (
	"context"
	"io"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/vaultsync/quarkdrive/internal/errs"
)

// GetDownloadURL resolves a fid to a time-limited direct URL.
func (c *Client) GetDownloadURL(ctx context.Context, fid string) (string, error) {
	var resp DownResp
	_, err := c.request(ctx, "/file/download", http.MethodPost, func(req *resty.Request) {
		req.SetBody(Json{"fids": []string{fid}})
	}, &resp)
	if err != nil {
		return "", err
	}
	if len(resp.Data) == 0 || resp.Data[0].DownloadURL == "" {
		return "", errors.WithStack(errs.DownloadURLMissing)
	}
	return resp.Data[0].DownloadURL, nil
}

// Download resolves fid and fetches the file bytes. The URL is already
// authorized by the drive service, so only the identity headers ride
// along; no object-storage signing happens here.
func (c *Client) Download(ctx context.Context, fid string) ([]byte, error) {
	u, err := c.GetDownloadURL(ctx, fid)
	if err != nil {
		return nil, err
	}
	conf := c.getConf()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Cookie", c.Cookie())
	req.Header.Set("Referer", conf.Referer)
	req.Header.Set("Origin", conf.Referer)
	req.Header.Set("User-Agent", conf.UA)
	res, err := c.http.Do(req)
	if err != nil {
		return nil, &errs.NetworkError{Err: err}
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return nil, &errs.NetworkError{StatusCode: res.StatusCode, Snippet: truncate(string(body), 200)}
	}
	return io.ReadAll(res.Body)
}
