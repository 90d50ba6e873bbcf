package typedefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLegacyVersion(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		available []string
		want      string
		wantErr   bool
	}{
		{
			name:      "exact major.minor picks highest patch",
			target:    "1.7.0",
			available: []string{"1.7.7", "1.7.1", "1.7.0", "1.6.3"},
			want:      "1.7.7",
		},
		{
			name:      "no exact minor falls back to closest",
			target:    "1.9.0",
			available: []string{"1.7.7", "1.7.1", "1.6.3", "1.4.2"},
			want:      "1.7.7",
		},
		{
			name:      "equidistant minors break toward the higher",
			target:    "1.8.0",
			available: []string{"1.7.7", "1.9.2"},
			want:      "1.9.2",
		},
		{
			name:      "same major preferred over closer different major",
			target:    "1.9.0",
			available: []string{"2.0.0", "1.4.2"},
			want:      "1.4.2",
		},
		{
			name:      "cross-major fallback never errors",
			target:    "3.2.0",
			available: []string{"1.7.7", "0.9.1"},
			want:      "1.7.7",
		},
		{
			name:      "unparseable candidates skipped",
			target:    "1.7.0",
			available: []string{"garbage", "1.7.3", "v1.7.9"},
			want:      "1.7.3",
		},
		{
			name:      "empty candidate list errors",
			target:    "1.7.0",
			available: nil,
			wantErr:   true,
		},
		{
			name:      "all candidates unparseable errors",
			target:    "1.7.0",
			available: []string{"garbage"},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := ParseVersion(tt.target)
			require.NoError(t, err)

			got, err := ResolveLegacyVersion(target, tt.available)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
