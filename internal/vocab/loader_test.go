package vocab

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const appleKanaJSON = `{
	"kanaAssociations": [
		{"emoji": "🍎", "description": "apple", "kana": {"hiragana": "りんご", "katakana": "アップル"}}
	]
}`

const sushiFoodJSON = `{
	"version": 1,
	"kanaEntries": [
		{"emoji": "🍣", "foodsentence1": "すしをたべます。", "foodsentence2": "スシヲタベマス。", "kana": {"hiragana": "すし", "katakana": "スシ"}}
	]
}`

const legacyKanaJSON = `{
	"kanaAssociations": [
		{"emoji": "🍎", "description": "apple", "word": {"hiragana": "りんご", "katakana": "アップル"}}
	]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Embedded(t *testing.T) {
	v := Load(context.Background(), "", "")

	require.Empty(t, v.Failures)
	assert.NotEmpty(t, v.Questions(ModeHiragana))
	assert.NotEmpty(t, v.Questions(ModeKatakana))
	assert.NotEmpty(t, v.Questions(ModeFood))
	assert.Len(t, v.Questions(ModeFood), 2*len(v.Food()))
	for _, m := range v.AvailableModes() {
		assert.True(t, m.Available, "mode %s should be available", m.Mode)
	}
}

func TestLoad_Files(t *testing.T) {
	kanaPath := writeFile(t, "kana.json", appleKanaJSON)
	foodPath := writeFile(t, "food.json", sushiFoodJSON)

	v := Load(context.Background(), kanaPath, foodPath)

	require.Empty(t, v.Failures)
	require.Len(t, v.Questions(ModeHiragana), 1)
	assert.Equal(t, "りんご", v.Questions(ModeHiragana)[0].Answer)
	assert.Len(t, v.Questions(ModeFood), 2)
}

func TestLoad_PartialFailure(t *testing.T) {
	foodPath := writeFile(t, "food.json", sushiFoodJSON)
	missing := filepath.Join(t.TempDir(), "missing.json")

	v := Load(context.Background(), missing, foodPath)

	require.Len(t, v.Failures, 1)
	assert.Equal(t, KanaDataset, v.Failures[0].Dataset)
	assert.True(t, errors.Is(v.Failures[0], os.ErrNotExist))
	assert.NotNil(t, v.Failure(KanaDataset))
	assert.Nil(t, v.Failure(FoodDataset))

	assert.Empty(t, v.Questions(ModeHiragana))
	assert.Len(t, v.Questions(ModeFood), 2)
	assert.ErrorIs(t, v.CheckMode(ModeKatakana), ErrDataUnavailable)
	assert.NoError(t, v.CheckMode(ModeFood))

	// Food answers still feed the pools when the kana dataset is missing.
	assert.True(t, v.Pool("hiragana").Contains('す'))
}

func TestLoad_BothFail(t *testing.T) {
	dir := t.TempDir()
	v := Load(context.Background(), filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json"))

	assert.Len(t, v.Failures, 2)
	for _, m := range v.AvailableModes() {
		assert.False(t, m.Available, "mode %s should be disabled", m.Mode)
	}
}

func TestLoad_RejectsLegacySchema(t *testing.T) {
	kanaPath := writeFile(t, "kana.json", legacyKanaJSON)

	v := Load(context.Background(), kanaPath, "")

	require.Len(t, v.Failures, 1)
	assert.Contains(t, v.Failures[0].Error(), "schema validation failed")
	assert.Empty(t, v.Questions(ModeHiragana))
	assert.NotEmpty(t, v.Questions(ModeFood))
}

func TestLoad_RejectsInvalidJSON(t *testing.T) {
	foodPath := writeFile(t, "food.json", `{"kanaEntries": [`)

	v := Load(context.Background(), "", foodPath)

	require.Len(t, v.Failures, 1)
	assert.Equal(t, FoodDataset, v.Failures[0].Dataset)
	assert.Contains(t, v.Failures[0].Error(), "invalid JSON")
}

func TestLoad_RejectsWrongVersion(t *testing.T) {
	kanaPath := writeFile(t, "kana.json", `{"version": 2, "kanaAssociations": []}`)

	v := Load(context.Background(), kanaPath, "")

	require.Len(t, v.Failures, 1)
	assert.Equal(t, KanaDataset, v.Failures[0].Dataset)
}

func TestLoad_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/kana.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(appleKanaJSON))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	loader := NewLoader(WithHTTPClient(srv.Client()))
	v := loader.Load(context.Background(), srv.URL+"/kana.json", srv.URL+"/food.json")

	require.Len(t, v.Failures, 1)
	assert.Equal(t, FoodDataset, v.Failures[0].Dataset)
	assert.Contains(t, v.Failures[0].Error(), "HTTP 404")
	require.Len(t, v.Questions(ModeKatakana), 1)
	assert.Equal(t, "アップル", v.Questions(ModeKatakana)[0].Answer)
}

func TestLoadError_Message(t *testing.T) {
	err := &LoadError{Dataset: FoodDataset, Source: "", Err: errors.New("boom")}
	assert.Equal(t, "load food dataset from embedded: boom", err.Error())
	assert.Equal(t, "boom", errors.Unwrap(err).Error())
}
