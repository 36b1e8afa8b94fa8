package blob

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_PutGet(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key := CustomizedKey("abc", "张三_Acme_后端.txt")
	require.NoError(t, s.Put(ctx, key, []byte("简历内容"), ContentTypeText))

	data, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "简历内容", string(data))

	ok, err := s.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocalStore_Missing(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "uploads/none.pdf")
	assert.ErrorIs(t, err, ErrNotFound)

	ok, err := s.Exists(context.Background(), "uploads/none.pdf")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidateKey(t *testing.T) {
	assert.NoError(t, ValidateKey("uploads/a.pdf"))
	for _, bad := range []string{"", "/etc/passwd", "../x", "a/../../b", "a\\b", "a//b"} {
		assert.Error(t, ValidateKey(bad), bad)
	}
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "uploads/r1.pdf", UploadKey("r1", ".PDF"))
	assert.Equal(t, "customized/c1_x.txt", CustomizedKey("c1", "x.txt"))
}
