package helpers

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenHTML(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{"<p>first</p><p>second</p>", "first\nsecond"},
		{"line<br>next", "line\nnext"},
		{"<ul><li>one</li><li>two</li></ul>", ListBullet + "one\n" + ListBullet + "two"},
		{"<p>\n\t  indented\n</p>", "indented"},
		{"<i>x</i>\n<b>y &amp; z</b>", "xy & z"},
	}
	for _, c := range cases {
		got, err := FlattenHTML(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestNormalizePurePath(t *testing.T) {
	assert.Equal(t, "a/c", NormalizePurePath("a/b/../c", "/"))
	assert.Equal(t, "base/x", NormalizePurePath("./x", "base"))
	assert.Equal(t, "x", NormalizePurePath("../../x", "base"))
	assert.Equal(t, "abs", NormalizePurePath("/abs", "ignored"))
	assert.Equal(t, ".", NormalizePurePath("..", "/"))
}

func TestFragmentLink(t *testing.T) {
	assert.Equal(t, "main.aird#abc", FragmentLink("main.aird", "#abc"))
	assert.Equal(t, "main.aird#abc", FragmentLink("main.aird", "abc"))
	assert.Equal(t, "frag/other.capella#id", FragmentLink("frag/this.capella", "org:Type other.capella#id"))
	assert.Equal(t, "root.capella#id", FragmentLink("frag/this.capella", "../root.capella#id"))
}

func TestResolveNamespace(t *testing.T) {
	ns := map[string]string{"org": "http://example.org/org"}
	got, err := ResolveNamespace("org:Component", ns)
	require.NoError(t, err)
	assert.Equal(t, "{http://example.org/org}Component", got)

	got, err = ResolveNamespace("plain", ns)
	require.NoError(t, err)
	assert.Equal(t, "plain", got)

	_, err = ResolveNamespace("nope:Component", ns)
	assert.Error(t, err)
	_, err = ResolveNamespace("a:b:c", ns)
	assert.Error(t, err)
}

func TestSSVParse(t *testing.T) {
	atoi := func(s string) (int, error) { return strconv.Atoi(s) }
	got, err := SSVParse("(1,2,3)", atoi, SSVOptions{Open: "(", Close: ")", Num: 3})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)

	_, err = SSVParse("1,2,3", atoi, SSVOptions{Open: "(", Close: ")"})
	assert.Error(t, err)
	_, err = SSVParse("(1,2)", atoi, SSVOptions{Open: "(", Close: ")", Num: 3})
	assert.Error(t, err)
	_, err = SSVParse("1;x", atoi, SSVOptions{Sep: ";"})
	assert.Error(t, err)
}

func TestNTuples(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, [][]int{{1, 2}, {3, 4}}, NTuples(2, items, false))
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5, 0}}, NTuples(2, items, true))
	assert.Nil(t, NTuples(0, items, true))
}

func TestTransformation(t *testing.T) {
	assert.Equal(t, "", Transformation("LogicalComponent", 10, 20, 20, 20))
	assert.Equal(t,
		"translate(8.75,10.5) scale(0.725) rotate(45,20,30)",
		Transformation("ChoicePseudoState", 10, 20, 20, 20))
}
