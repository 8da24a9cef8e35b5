package xmlutil

import (
	"errors"
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `<?xml version="1.0"?>
<model xmlns:org="http://example.org/org" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <org:component id="c1" xsi:type="org:LogicalComponent"/>
  <org:component id="c2"/>
  <org:function id="f1"/>
  <plain id="p1"/>
</model>`

var namespaces = map[string]string{"org": "http://example.org/org"}

func parse(t *testing.T) *xmlquery.Node {
	t.Helper()
	root, err := xmlquery.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	return root
}

func TestFetchUnique(t *testing.T) {
	root := parse(t)

	q, err := Compile("//org:function", namespaces)
	require.NoError(t, err)
	n, err := FetchUnique(q, root, "function", "", false)
	require.NoError(t, err)
	assert.Equal(t, "f1", n.SelectAttr("id"))

	q, err = Compile("//org:component", namespaces)
	require.NoError(t, err)
	_, err = FetchUnique(q, root, "component", "uid-1", false)
	assert.True(t, errors.Is(err, ErrNotUnique))
	assert.Contains(t, err.Error(), "uid-1")

	q, err = Compile("//org:port", namespaces)
	require.NoError(t, err)
	_, err = FetchUnique(q, root, "port", "", false)
	assert.True(t, errors.Is(err, ErrNotFound))
	n, err = FetchUnique(q, root, "port", "", true)
	assert.NoError(t, err)
	assert.Nil(t, n)

	_, err = Compile("//[", nil)
	assert.Error(t, err)
}

func TestXType(t *testing.T) {
	root := parse(t)
	find := func(id string) *xmlquery.Node {
		n := xmlquery.FindOne(root, "//*[@id='"+id+"']")
		require.NotNil(t, n, id)
		return n
	}

	got, err := XType(find("c1"), namespaces)
	require.NoError(t, err)
	assert.Equal(t, "org:LogicalComponent", got)

	got, err = XType(find("f1"), namespaces)
	require.NoError(t, err)
	assert.Equal(t, "org:function", got)

	got, err = XType(find("p1"), namespaces)
	require.NoError(t, err)
	assert.Equal(t, "", got)

	_, err = XType(find("f1"), map[string]string{})
	assert.Error(t, err)

	_, err = XType(find("f1"), map[string]string{"a": "http://example.org/org", "b": "http://example.org/org"})
	assert.Error(t, err)
}
