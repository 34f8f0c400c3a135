package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"exam.html":               "exam.html",
		"../../evil.html":         "evil.html",
		`..\..\windows\bad.htm`:   "bad.htm",
		"/etc/passwd/quiz.html":   "quiz.html",
		"nested/dir/../final.htm": "final.htm",
		"..":                      "",
		"":                        "",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeFilename(in), "input %q", in)
	}
}

func TestResolveInside(t *testing.T) {
	base := "/srv/app"

	rel, err := ResolveInside(base, "media/tests_files/a.html")
	require.NoError(t, err)
	assert.Equal(t, "media/tests_files/a.html", rel)

	rel, err = ResolveInside(base, "/srv/app/media/a.html")
	require.NoError(t, err)
	assert.Equal(t, "media/a.html", rel)

	for _, bad := range []string{"../secret.html", "media/../../etc/passwd", "/etc/passwd", "/srv/application/x.html"} {
		_, err := ResolveInside(base, bad)
		assert.ErrorIs(t, err, ErrOutsideBase, "input %q", bad)
	}
}

func TestSaveTestFileKeepsInsideUploadsDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewLocalStoreFs(fs, "/srv/app", "media")

	rel, err := store.SaveTestFile("../../evil.html", strings.NewReader("<html></html>"))
	require.NoError(t, err)
	assert.Equal(t, "media/tests_files/evil.html", rel)

	data, err := afero.ReadFile(fs, "media/tests_files/evil.html")
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data))

	f, info, err := store.OpenProjectFile(rel)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "evil.html", info.Name())
}

func TestOpenProjectFileRejectsTraversal(t *testing.T) {
	store := NewLocalStoreFs(afero.NewMemMapFs(), "/srv/app", "media")
	_, _, err := store.OpenProjectFile("../outside.html")
	assert.ErrorIs(t, err, ErrOutsideBase)
}

func TestLocalMediaPutOpen(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewLocalStoreFs(fs, "/srv/app", "media")
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "screenshots/s_1.png", []byte{1, 2, 3}, "image/png"))
	exists, err := afero.Exists(fs, "media/screenshots/s_1.png")
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := store.Open(ctx, "../screenshots/s_1.png")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
}
