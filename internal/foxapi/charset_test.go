package foxapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
)

func TestDecodeBody_UTF8(t *testing.T) {
	got, err := decodeBody([]byte("1|验证码：1234"), "")
	require.NoError(t, err)
	assert.Equal(t, "1|验证码：1234", got)

	got, err = decodeBody([]byte("1|验证码：1234"), "text/plain; charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, "1|验证码：1234", got)
}

func TestDecodeBody_GBKFallback(t *testing.T) {
	raw, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte("1|您的验证码：5678"))
	require.NoError(t, err)

	got, err := decodeBody(raw, "text/html")
	require.NoError(t, err)
	assert.Equal(t, "1|您的验证码：5678", got)
}

func TestDecodeBody_DeclaredCharset(t *testing.T) {
	raw, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte("0|余额不足"))
	require.NoError(t, err)

	got, err := decodeBody(raw, "text/plain; charset=gb2312")
	require.NoError(t, err)
	assert.Equal(t, "0|余额不足", got)
}

func TestDecodeBody_UnknownCharsetLabel(t *testing.T) {
	got, err := decodeBody([]byte("1|ok"), "text/plain; charset=x-made-up")
	require.NoError(t, err)
	assert.Equal(t, "1|ok", got)
}
