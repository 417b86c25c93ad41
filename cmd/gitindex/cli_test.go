package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/gitindex/internal/testutil"
)

const headerSchema = `
name: header
fields:
  - {name: signature, size: 4, kind: string}
  - {name: version, size: 4}
  - {name: count, size: 4}
`

func testFS(t *testing.T) afero.Fs {
	t.Helper()

	mtime := time.Unix(1700000000, 0)
	data := testutil.BuildIndex(t, 2, []testutil.TestEntry{
		{Path: "a.txt", CtimeSec: 1700000000, MtimeSec: 1700000000, Size: 1},
		{Path: "docs/b.md", CtimeSec: 1700000000, MtimeSec: 1700000000, Size: 5},
		{Path: "gone", CtimeSec: 1700000000, MtimeSec: 1700000000},
	})
	return testutil.NewMemFS(t, map[string]testutil.TestFile{
		"repo/.git/index": {Content: data, ModTime: mtime.Add(time.Hour)},
		"repo/a.txt":      {Content: []byte("a"), ModTime: mtime},
		"repo/docs/b.md":  {Content: []byte("changed"), ModTime: mtime},
		"header.yaml":     {Content: []byte(headerSchema)},
		"config.yaml":     {Content: []byte("work-tree: repo\n")},
	})
}

func run(t *testing.T, fsys afero.Fs, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd(fsys)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLsFiles(t *testing.T) {
	t.Parallel()

	out, err := run(t, testFS(t), "-C", "repo", "ls-files")
	require.NoError(t, err)
	assert.Equal(t, "a.txt\ndocs/b.md\ngone\n", out)

	out, err = run(t, testFS(t), "-C", "repo", "ls-files", "docs")
	require.NoError(t, err)
	assert.Equal(t, "docs/b.md\n", out)
}

func TestLsFilesLong(t *testing.T) {
	t.Parallel()

	out, err := run(t, testFS(t), "-C", "repo", "ls-files", "--long")
	require.NoError(t, err)
	assert.Contains(t, out, "MODE")
	assert.Contains(t, out, "100644")
	assert.Contains(t, out, "docs/b.md")
	assert.Contains(t, out, "3 entries, version 2, sha256:")
}

func TestStatus(t *testing.T) {
	t.Parallel()

	out, err := run(t, testFS(t), "-C", "repo", "status")
	require.NoError(t, err)
	assert.Equal(t, "M blob docs/b.md\nD blob gone\n", out)

	out, err = run(t, testFS(t), "-C", "repo", "status", "--all")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "  blob a.txt", lines[0])
}

func TestConfigFile(t *testing.T) {
	t.Parallel()

	out, err := run(t, testFS(t), "--config", "config.yaml", "ls-files")
	require.NoError(t, err)
	assert.Equal(t, "a.txt\ndocs/b.md\ngone\n", out)
}

func TestMaxIndexSize(t *testing.T) {
	t.Parallel()

	_, err := run(t, testFS(t), "-C", "repo", "--max-index-size", "16b", "ls-files")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index too large")

	_, err = run(t, testFS(t), "-C", "repo", "--max-index-size", "lots", "ls-files")
	require.Error(t, err)
}

func TestDecode(t *testing.T) {
	t.Parallel()

	out, err := run(t, testFS(t), "decode", "--schema", "header.yaml", "repo/.git/index")
	require.NoError(t, err)
	assert.Contains(t, out, "# header at 0")
	assert.Contains(t, out, "DIRC")
	assert.Contains(t, out, "0x3")

	_, err = run(t, testFS(t), "decode", "repo/.git/index")
	require.Error(t, err)

	_, err = run(t, testFS(t), "decode", "--schema", "header.yaml", "--offset", "4000", "repo/.git/index")
	require.Error(t, err)
}

func TestParseSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    uint64
		wantErr bool
	}{
		{in: "", want: 0},
		{in: "0", want: 0},
		{in: "1024", want: 1024},
		{in: "64MiB", want: 64 << 20},
		{in: "2k", want: 2048},
		{in: "huge", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseSize(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
