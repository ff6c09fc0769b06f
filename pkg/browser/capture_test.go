package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureFilter_DefaultCapturesEverything(t *testing.T) {
	filter, err := NewCaptureFilter(DefaultCaptureConfig())
	require.NoError(t, err)

	assert.True(t, filter.ShouldCapture("https://example.test/api", "xhr"))
	assert.True(t, filter.ShouldCapture("https://cdn.example.test/app.js", "script"))
	assert.True(t, filter.CapturePostData())
}

func TestCaptureFilter_Disabled(t *testing.T) {
	filter, err := NewCaptureFilter(CaptureConfig{Enabled: false})
	require.NoError(t, err)

	assert.False(t, filter.ShouldCapture("https://example.test/", "document"))
}

func TestCaptureFilter_Patterns(t *testing.T) {
	tests := []struct {
		name   string
		config CaptureConfig
		url    string
		rtype  string
		want   bool
	}{
		{
			name: "include pattern match",
			config: CaptureConfig{
				Enabled:         true,
				IncludePatterns: []string{"*://api.example.test/*"},
			},
			url:   "https://api.example.test/v1/users",
			rtype: "xhr",
			want:  true,
		},
		{
			name: "include pattern miss",
			config: CaptureConfig{
				Enabled:         true,
				IncludePatterns: []string{"*://api.example.test/*"},
			},
			url:   "https://cdn.example.test/app.js",
			rtype: "script",
			want:  false,
		},
		{
			name: "exclude pattern wins",
			config: CaptureConfig{
				Enabled:         true,
				ExcludePatterns: []string{"*.png"},
			},
			url:   "https://example.test/logo.png",
			rtype: "image",
			want:  false,
		},
		{
			name: "include type filter",
			config: CaptureConfig{
				Enabled:      true,
				IncludeTypes: []string{"xhr", "fetch"},
			},
			url:   "https://example.test/app.js",
			rtype: "script",
			want:  false,
		},
		{
			name: "exclude type filter",
			config: CaptureConfig{
				Enabled:      true,
				ExcludeTypes: []string{"image"},
			},
			url:   "https://example.test/logo.png",
			rtype: "image",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := NewCaptureFilter(tt.config)
			require.NoError(t, err)
			assert.Equal(t, tt.want, filter.ShouldCapture(tt.url, tt.rtype))
		})
	}
}

func TestCaptureFilter_InvalidPattern(t *testing.T) {
	_, err := NewCaptureFilter(CaptureConfig{
		Enabled:         true,
		IncludePatterns: []string{"[unclosed"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid URL pattern")
}

func TestCaptureFilter_UpdateRejectsBadPatternKeepsOld(t *testing.T) {
	filter, err := NewCaptureFilter(CaptureConfig{
		Enabled:         true,
		IncludePatterns: []string{"*://api.example.test/*"},
	})
	require.NoError(t, err)

	err = filter.Update(CaptureConfig{
		Enabled:         true,
		IncludePatterns: []string{"[unclosed"},
	})
	require.Error(t, err)

	// Old filter still in effect.
	assert.True(t, filter.ShouldCapture("https://api.example.test/v1", "xhr"))
	assert.False(t, filter.ShouldCapture("https://other.example.test/", "xhr"))
}

func TestCaptureFilter_ConfigReturnsCopy(t *testing.T) {
	filter, err := NewCaptureFilter(CaptureConfig{
		Enabled:         true,
		IncludePatterns: []string{"*"},
	})
	require.NoError(t, err)

	cfg := filter.Config()
	cfg.IncludePatterns[0] = "mutated"
	cfg.Enabled = false

	fresh := filter.Config()
	assert.True(t, fresh.Enabled)
	assert.Equal(t, "*", fresh.IncludePatterns[0])
}
