package cookie

import (
	"net/http"
	"strings"
)

func Parse(str string) []*http.Cookie {
	header := http.Header{}
	header.Add("Cookie", str)
	request := http.Request{Header: header}
	return request.Cookies()
}

func ToString(cookies []*http.Cookie) string {
	if cookies == nil {
		return ""
	}
	cookieStrings := make([]string, len(cookies))
	for i, cookie := range cookies {
		cookieStrings[i] = cookie.Name + "=" + cookie.Value
	}
	return strings.Join(cookieStrings, ";")
}

func SetCookie(cookies []*http.Cookie, name, value string) []*http.Cookie {
	for i, cookie := range cookies {
		if cookie.Name == name {
			cookies[i].Value = value
			return cookies
		}
	}
	cookies = append(cookies, &http.Cookie{Name: name, Value: value})
	return cookies
}

func GetCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

// SetStr splices name=value into a raw cookie string, replacing an
// existing value for name if present.
func SetStr(str, name, value string) string {
	return ToString(SetCookie(Parse(str), name, value))
}
