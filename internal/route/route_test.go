package route

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_Index(t *testing.T) {
	for _, loc := range []string{"", "/", "//", "#/", "#"} {
		assert.Equal(t, Route{Kind: KindIndex}, Parse(loc), "location %q", loc)
	}
}

func TestParse_ArticleRange(t *testing.T) {
	for n := 1; n <= 39; n++ {
		r := Parse("/article/" + strconv.Itoa(n))
		assert.Equal(t, Article(n), r)
		assert.True(t, r.Valid())
	}
}

func TestParse_ArticleMalformedNumber(t *testing.T) {
	cases := map[string]int{
		"/article/abc": 0,
		"/article/":    0,
		"/article/0":   0,
		"/article/-3":  0,
		"/article/7ab": 7,
		"/article/12/": 12,
	}
	for loc, want := range cases {
		r := Parse(loc)
		assert.Equal(t, KindArticle, r.Kind, loc)
		assert.Equal(t, want, r.Number, loc)
		assert.Equal(t, want > 0, r.Valid(), loc)
	}
	assert.Equal(t, "abc", Parse("/article/abc").ID)
}

func TestParse_ArticleNumberOverflow(t *testing.T) {
	r := Parse("/article/999999999999999999999999")
	assert.Equal(t, KindArticle, r.Kind)
	assert.False(t, r.Valid())
}

func TestParse_Daily(t *testing.T) {
	r := Parse("#/daily/morning-prayer")
	assert.Equal(t, Route{Kind: KindDaily, ServiceID: "morning-prayer", ID: "morning-prayer"}, r)
	assert.Equal(t, "/daily/morning-prayer", r.Location())

	assert.False(t, Parse("/daily").Valid())
}

func TestParse_Unknown(t *testing.T) {
	for _, loc := range []string{"/bogus/xyz", "/articles/1", "search"} {
		assert.Equal(t, KindUnknown, Parse(loc).Kind, loc)
	}
}
