package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/prompt-library/internal/apperror"
)

// fakeClipboard records what was copied, or fails with err.
type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

// run executes promptctl with args against the embedded catalog.
func run(t *testing.T, clip *fakeClipboard, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("CATALOG_PATH", "")

	if clip == nil {
		clip = &fakeClipboard{}
	}
	cmd := newRootCmd(clip)

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestList(t *testing.T) {
	t.Run("query", func(t *testing.T) {
		out, _, err := run(t, nil, "list", "--query", "youtube")
		require.NoError(t, err)
		assert.Contains(t, out, "YouTube Script Writer")
		assert.Contains(t, out, "Writing")
		assert.Contains(t, out, "1 prompts")
	})

	t.Run("model filter", func(t *testing.T) {
		out, _, err := run(t, nil, "list", "--model", "Copilot")
		require.NoError(t, err)
		assert.Contains(t, out, "Code Review Assistant")
		assert.Contains(t, out, "1 prompts")
	})

	t.Run("sorted by usage", func(t *testing.T) {
		out, _, err := run(t, nil, "list", "--sort", "usage")
		require.NoError(t, err)
		instagram := strings.Index(out, "Instagram Caption Generator")
		youtube := strings.Index(out, "YouTube Script Writer")
		require.NotEqual(t, -1, instagram)
		require.NotEqual(t, -1, youtube)
		assert.Less(t, instagram, youtube)
	})

	t.Run("no match", func(t *testing.T) {
		out, _, err := run(t, nil, "list", "--query", "zzz-nothing")
		require.NoError(t, err)
		assert.Contains(t, out, "No prompts found.")
	})

	t.Run("rating out of range", func(t *testing.T) {
		for _, rating := range []string{"6", "NaN"} {
			_, _, err := run(t, nil, "list", "--rating", rating)
			require.Error(t, err, rating)
			assert.True(t, errors.Is(err, apperror.ErrValidation), rating)
			assert.Equal(t, "rating", apperror.FieldOf(err), rating)
		}
	})
}

func TestShow(t *testing.T) {
	out, _, err := run(t, nil, "show", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "YouTube Script Writer (#1)")
	assert.Contains(t, out, "Variables:")
	assert.Contains(t, out, "duration")
	assert.Contains(t, out, "required")
	assert.Contains(t, out, "a 10-minute video about sustainable living")
}

func TestShow_NotFound(t *testing.T) {
	_, _, err := run(t, nil, "show", "999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestFill(t *testing.T) {
	out, stderr, err := run(t, nil, "fill", "1",
		"--set", "duration=8",
		"--set", "topic=home coffee",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "a 8-minute video about home coffee")
	assert.Contains(t, out, "Target audience: {audience}.")
	assert.Contains(t, stderr, "Missing required: audience")
	assert.Contains(t, stderr, "Unfilled: audience, tone")
}

func TestFill_ExamplesAndCopy(t *testing.T) {
	clip := &fakeClipboard{}
	out, stderr, err := run(t, clip, "fill", "1", "--examples", "--set", "topic=chess", "--copy")
	require.NoError(t, err)

	assert.Contains(t, out, "a 10-minute video about chess")
	assert.Equal(t, strings.TrimSuffix(out, "\n"), clip.text)
	assert.Contains(t, stderr, "Copied to clipboard.")
	assert.NotContains(t, stderr, "Missing required")
}

func TestFill_CopyFailureIsNotFatal(t *testing.T) {
	clip := &fakeClipboard{err: errors.New("no display")}
	out, stderr, err := run(t, clip, "fill", "1", "--examples", "--copy")
	require.NoError(t, err)

	assert.NotEmpty(t, out)
	assert.Contains(t, stderr, "copy to clipboard failed")
	assert.NotContains(t, stderr, "Copied to clipboard.")
}

func TestFill_BadAssignment(t *testing.T) {
	_, _, err := run(t, nil, "fill", "1", "--set", "duration")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want name=value")
}

func TestParseAssignments(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    map[string]string
		wantErr bool
	}{
		{name: "empty", pairs: nil, want: map[string]string{}},
		{name: "simple", pairs: []string{"a=1"}, want: map[string]string{"a": "1"}},
		{name: "value with equals", pairs: []string{"q=x=y"}, want: map[string]string{"q": "x=y"}},
		{name: "empty value", pairs: []string{"a="}, want: map[string]string{"a": ""}},
		{name: "last wins", pairs: []string{"a=1", "a=2"}, want: map[string]string{"a": "2"}},
		{name: "no equals", pairs: []string{"a"}, wantErr: true},
		{name: "no name", pairs: []string{"=1"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAssignments(tt.pairs)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategories(t *testing.T) {
	out, _, err := run(t, nil, "categories")
	require.NoError(t, err)

	assert.Contains(t, out, "IN CATALOG")
	assert.Contains(t, out, "writing")
	assert.Contains(t, out, "Creative writing, articles, and content creation")
}

func TestGenerate(t *testing.T) {
	t.Run("text model", func(t *testing.T) {
		clip := &fakeClipboard{}
		out, _, err := run(t, clip, "generate", "--goal", "plan a product launch", "--tone", "persuasive", "--copy")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "Act as an expert assistant and help me with: plan a product launch"))
		assert.Contains(t, out, "Please provide a persuasive response")
		assert.Equal(t, strings.TrimSuffix(out, "\n"), clip.text)
	})

	t.Run("image model", func(t *testing.T) {
		out, _, err := run(t, nil, "generate", "--goal", "a bakery logo", "--model", "Midjourney")
		require.NoError(t, err)
		assert.Contains(t, out, "Create a detailed midjourney prompt for: a bakery logo")
	})

	t.Run("missing goal", func(t *testing.T) {
		_, _, err := run(t, nil, "generate")
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperror.ErrValidation))
	})

	t.Run("unknown tone", func(t *testing.T) {
		_, _, err := run(t, nil, "generate", "--goal", "x", "--tone", "grumpy")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tone must be one of")
	})
}

func TestCatalogFlag_MissingFile(t *testing.T) {
	_, _, err := run(t, nil, "--catalog", filepath.Join(t.TempDir(), "nope.yaml"), "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading catalog")
}
