package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTag(t *testing.T) {
	tag := NewTag("v1.2.3")
	assert.Equal(t, "v1.2.3", tag.Name)
	assert.Equal(t, "v", tag.Prefix)
	assert.NotNil(t, tag.Semver)
	assert.Equal(t, "1.2.3", tag.Semver.String())
}

func TestNewTagWithoutPrefix(t *testing.T) {
	tag := NewTag("1.2.3")
	assert.Equal(t, "", tag.Prefix)
	assert.NotNil(t, tag.Semver)
}

func TestNewTagWithSlashPrefix(t *testing.T) {
	tag := NewTag("foo/v1.2.3")
	assert.Equal(t, "foo/v", tag.Prefix)
	assert.NotNil(t, tag.Semver)
	assert.Equal(t, "1.2.3", tag.Semver.String())
}

func TestNewTagNonSemantic(t *testing.T) {
	tag := NewTag("foobar")
	assert.Nil(t, tag.Semver)
	assert.Nil(t, NewTag(""))
}

func TestLessThan(t *testing.T) {
	assert.True(t, NewTag("v1.2.3").LessThan(NewTag("v1.10.0")))
	assert.False(t, NewTag("v2.0.0").LessThan(NewTag("v1.10.0")))
	assert.True(t, NewTag("foobar").LessThan(NewTag("v0.0.1")))
	assert.False(t, NewTag("v0.0.1").LessThan(NewTag("foobar")))
}
