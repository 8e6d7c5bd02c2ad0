package foxapi

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsEncode_ASCII(t *testing.T) {
	p := params{}.
		add("act", "login").
		add("ApiName", "user_01").
		add("PassWord", "p.w-d")

	assert.Equal(t, "act=login&ApiName=user_01&PassWord=p.w-d", p.encode())
}

func TestParamsEncode_PreservesOrder(t *testing.T) {
	p := params{}.add("z", "1").add("a", "2").add("m", "3")
	assert.Equal(t, "z=1&a=2&m=3", p.encode())
}

func TestParamsEncode_DoubleEncodesNonASCII(t *testing.T) {
	p := params{}.add("key", "微信")

	encoded := p.encode()
	assert.Equal(t, "key=%25E5%25BE%25AE%25E4%25BF%25A1", encoded)

	// One round of decoding, as a server would do, leaves the component encoding.
	values, err := url.ParseQuery(encoded)
	require.NoError(t, err)
	assert.Equal(t, "%E5%BE%AE%E4%BF%A1", values.Get("key"))

	inner, err := url.QueryUnescape(values.Get("key"))
	require.NoError(t, err)
	assert.Equal(t, "微信", inner)
}

func TestParamsEncode_Reserved(t *testing.T) {
	p := params{}.add("pushUrl", "http://h.example/cb?a=1&b=2")

	values, err := url.ParseQuery(p.encode())
	require.NoError(t, err)
	assert.Equal(t, "http%3A%2F%2Fh.example%2Fcb%3Fa%3D1%26b%3D2", values.Get("pushUrl"))
}

func TestParamsEncode_EmptyValue(t *testing.T) {
	p := params{}.add("dock", "").add("mobile", "")
	assert.Equal(t, "dock=&mobile=", p.encode())
}

func TestComponentEncode(t *testing.T) {
	assert.Equal(t, "a%20b", componentEncode("a b"))
	assert.Equal(t, "-_.!~*'()", componentEncode("-_.!~*'()"))
	assert.Equal(t, "%2B%26%3D", componentEncode("+&="))
}

func TestQueryEncode(t *testing.T) {
	assert.Equal(t, "a+b", queryEncode("a b"))
	assert.Equal(t, "a:b,c$[d]", queryEncode("a:b,c$[d]"))
	assert.Equal(t, "%25", queryEncode("%"))
}

func TestParamsGet(t *testing.T) {
	p := params{}.add("a", "1").add("a", "2")

	v, ok := p.get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	_, ok = p.get("missing")
	assert.False(t, ok)
}
