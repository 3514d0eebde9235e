package quark

import (
	"context"
	"net/http"

	"github.com/vaultsync/quarkdrive/pkg/utils"
)

// AccountInfo is the result of the advisory identity check.
type AccountInfo struct {
	Valid    bool
	Nickname string
}

// ValidateCookie checks the credential against the account service.
// The call is advisory: any transport failure, non-200 status or
// unexpected body reports an invalid cookie instead of an error.
func (c *Client) ValidateCookie(ctx context.Context) AccountInfo {
	conf := c.getConf()
	res, err := c.resty.R().
		SetContext(ctx).
		SetHeaders(map[string]string{
			"Cookie":     c.Cookie(),
			"Accept":     "application/json, text/plain, */*",
			"Referer":    conf.Referer,
			"User-Agent": conf.UA,
		}).
		SetQueryParams(map[string]string{
			"fr":       "pc",
			"platform": "pc",
		}).
		Get(conf.Pan + "/account/info")
	if err != nil || res.StatusCode() != http.StatusOK {
		return AccountInfo{}
	}
	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Nickname string `json:"nickname"`
		} `json:"data"`
	}
	if err := utils.Json.Unmarshal(res.Body(), &resp); err != nil {
		return AccountInfo{}
	}
	if !resp.Success {
		return AccountInfo{}
	}
	return AccountInfo{Valid: true, Nickname: resp.Data.Nickname}
}
