package presetting

import (
	"errors"
	"testing"

	"github.com/danyyudha/warehouse-ops-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Resolve(t *testing.T) {
	service := NewService(nil)

	tests := []struct {
		name        string
		tag         string
		expectedTag string
		expectError bool
	}{
		{
			name:        "Tag curta resolve direto",
			tag:         "brand",
			expectedTag: domain.PresetBrand,
		},
		{
			name:        "Nome completo do time resolve para o mesmo preset",
			tag:         "Brand Team",
			expectedTag: domain.PresetBrand,
		},
		{
			name:        "Underscore é normalizado para hífen",
			tag:         "social_media",
			expectedTag: domain.PresetSocialMedia,
		},
		{
			name:        "All resolve para o preset All Teams",
			tag:         "all",
			expectedTag: domain.PresetAllTeams,
		},
		{
			name:        "Plural All Teams também resolve",
			tag:         "All Teams",
			expectedTag: domain.PresetAllTeams,
		},
		{
			name:        "Time desconhecido retorna InvalidTeamError",
			tag:         "Logistics",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preset, err := service.Resolve(tt.tag)

			if tt.expectError {
				require.Error(t, err)

				var invalidTeam *domain.InvalidTeamError
				require.True(t, errors.As(err, &invalidTeam))
				assert.Equal(t, tt.tag, invalidTeam.Tag)
				assert.Nil(t, preset)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, preset)
			assert.Equal(t, tt.expectedTag, preset.Tag)
		})
	}
}

func TestService_ResolveOrFallback(t *testing.T) {
	service := NewService(nil)

	t.Run("Tag conhecida resolve normalmente", func(t *testing.T) {
		preset := service.ResolveOrFallback("performance")
		assert.Equal(t, domain.PresetPerformance, preset.Tag)
	})

	t.Run("Tag desconhecida cai para o preset All Teams", func(t *testing.T) {
		preset := service.ResolveOrFallback("Logistics")
		require.NotNil(t, preset)
		assert.Equal(t, domain.PresetAllTeams, preset.Tag)
	})
}

func TestService_List(t *testing.T) {
	service := NewService(nil)

	presets := service.List()

	require.Len(t, presets, 4)

	tags := make([]string, 0, len(presets))
	for _, preset := range presets {
		tags = append(tags, preset.Tag)
	}

	// Ordem estável por tag
	assert.Equal(t, []string{
		domain.PresetAllTeams,
		domain.PresetBrand,
		domain.PresetPerformance,
		domain.PresetSocialMedia,
	}, tags)
}
