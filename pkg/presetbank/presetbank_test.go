package presetbank

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePresets() []Preset {
	return []Preset{
		{
			ID:                      "baseline",
			Name:                    "基准假设",
			Source:                  "文献综合默认值",
			Year:                    2023,
			MathGainPerSD:           80000,
			EarningsGainHSVsDropout: 300000,
			EarningsGainCollegeVsHS: 600000,
			FadeoutFactor:           0.3,
			DiscountRate:            0.03,
			Notes:                   "默认",
		},
		{
			ID:                      "older",
			Name:                    "早期口径",
			Year:                    2015,
			MathGainPerSD:           60000,
			EarningsGainHSVsDropout: 250000,
			EarningsGainCollegeVsHS: 500000,
			FadeoutFactor:           0.35,
			DiscountRate:            0.05,
		},
	}
}

func TestBuildAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.db")
	require.NoError(t, Build(path, samplePresets()))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	// 按研究年份倒序
	assert.Equal(t, "baseline", loaded[0].ID)
	assert.Equal(t, "older", loaded[1].ID)
	assert.InDelta(t, 0.3, loaded[0].FadeoutFactor, 1e-9)
	assert.Equal(t, "默认", loaded[0].Notes)
}

func TestBuildUpsert(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.db")
	require.NoError(t, Build(path, samplePresets()))

	// 同ID重建应覆盖而不是报错
	updated := samplePresets()
	updated[0].MathGainPerSD = 95000
	require.NoError(t, Build(path, updated))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.InDelta(t, 95000, loaded[0].MathGainPerSD, 1e-9)
}

func TestBuildRejectsEmptyID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.db")
	err := Build(path, []Preset{{Name: "无ID"}})
	assert.Error(t, err)
}

func TestResolvePath(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, filepath.Join(dir, DefaultDBFileName), ResolvePath(dir))
	assert.Equal(t, filepath.Join(dir, "x.db"), ResolvePath(filepath.Join(dir, "x.db")))
	assert.Equal(t, "", ResolvePath("  "))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.db"))
	assert.Error(t, err)
}
