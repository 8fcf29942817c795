package repository_test

import (
	"staysync/internal/domains/pricing/model"
	"staysync/internal/domains/pricing/repository"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStrategies_SampleFile(t *testing.T) {
	strategies, err := repository.LoadStrategies("../../../../pricing/strategies.yaml")
	require.NoError(t, err)

	list := strategies.List()
	require.Len(t, list, 2)
	assert.Equal(t, "city", list[0].ID)
	assert.Equal(t, "coastal", list[1].ID)

	coastal, err := strategies.Get("coastal")
	require.NoError(t, err)
	assert.Equal(t, 14, coastal.OccupancyWindowDays)
}

func TestParseStrategies(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{
			name: "valid",
			yaml: "strategies:\n  - id: a\n    default_season: low\n",
		},
		{
			name:    "unknown field",
			yaml:    "strategies:\n  - id: a\n    surge: 2\n",
			wantErr: true,
		},
		{
			name:    "duplicate id",
			yaml:    "strategies:\n  - id: a\n  - id: a\n",
			wantErr: true,
		},
		{
			name:    "unknown season",
			yaml:    "strategies:\n  - id: a\n    seasons:\n      - season: shoulder\n        from: \"03-01\"\n        to: \"04-01\"\n",
			wantErr: true,
		},
		{
			name:    "missing id",
			yaml:    "strategies:\n  - name: nameless\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repository.ParseStrategies([]byte(tt.yaml))
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestStrategies_GetUnknown(t *testing.T) {
	strategies, err := repository.ParseStrategies([]byte("strategies: []\n"))
	require.NoError(t, err)

	_, err = strategies.Get("missing")
	assert.ErrorIs(t, err, model.ErrUnknownStrategy)
}
