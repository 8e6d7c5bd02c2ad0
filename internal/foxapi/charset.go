package foxapi

import (
	"mime"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// decodeBody converts a response body to UTF-8.
//
// A charset declared in Content-Type wins. Without one, valid UTF-8 is used
// as-is and anything else is read as GB18030, the superset of GBK/GB2312 the
// service falls back to for Chinese text.
func decodeBody(body []byte, contentType string) (string, error) {
	if contentType != "" {
		if _, mediaParams, err := mime.ParseMediaType(contentType); err == nil {
			if label := mediaParams["charset"]; label != "" {
				if enc, name := charset.Lookup(label); enc != nil && name != "utf-8" {
					decoded, err := enc.NewDecoder().Bytes(body)
					if err != nil {
						return "", err
					}
					return string(decoded), nil
				}
			}
		}
	}

	if utf8.Valid(body) {
		return string(body), nil
	}

	decoded, err := simplifiedchinese.GB18030.NewDecoder().Bytes(body)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
