package templates

import (
	"context"
	"errors"
	"testing"

	"cvdoc/internal/scene"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAssets(t *testing.T) {
	list, err := LoadAssets()
	require.NoError(t, err)

	ids := make([]string, 0, len(list))
	for _, a := range list {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"modern_complete", "modern_gray", "modern_green"}, ids)
}

func TestEmbedded_Get(t *testing.T) {
	store, err := NewEmbedded()
	require.NoError(t, err)
	ctx := context.Background()

	doc, err := store.Get(ctx, "modern_complete")
	require.NoError(t, err)
	w, h := doc.Size()
	assert.Equal(t, 595.0, w)
	assert.Equal(t, 842.0, h)

	n, ok := doc.FindByID("email")
	require.True(t, ok)
	assert.Contains(t, n.(*scene.Text).Text, "{{email}}")

	// Mutating a returned copy must not leak into the master.
	require.True(t, doc.SetText("full_name", "changed"))
	again, err := store.Get(ctx, "modern_complete")
	require.NoError(t, err)
	n, _ = again.FindByID("full_name")
	assert.Equal(t, "{{full_name}}", n.(*scene.Text).Text)

	_, err = store.Get(ctx, "nope")
	assert.True(t, errors.Is(err, ErrTemplateNotFound))
}

func TestEmbedded_List(t *testing.T) {
	store, err := NewEmbedded()
	require.NoError(t, err)

	list, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "modern_complete", list[0].ID)
	assert.Equal(t, "modern", list[0].Category)
	assert.NotEmpty(t, list[0].Features)
	assert.Nil(t, list[0].Data)
}

func TestEmbedded_FindByID(t *testing.T) {
	store, err := NewEmbedded()
	require.NoError(t, err)
	ctx := context.Background()

	tpl, err := store.FindByID(ctx, "modern_gray")
	require.NoError(t, err)
	require.NotNil(t, tpl.Data)
	require.True(t, tpl.Data.SetText("full_name", "changed"))

	again, err := store.FindByID(ctx, "modern_gray")
	require.NoError(t, err)
	n, ok := again.Data.FindByID("full_name")
	require.True(t, ok)
	assert.Equal(t, "{{full_name}}", n.(*scene.Text).Text)

	_, err = store.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}
