package handler

import (
	"errors"
	"net/http"

	"github.com/danyyudha/warehouse-ops-api/internal/domain"
	"github.com/danyyudha/warehouse-ops-api/internal/usecases/presetting"
	"github.com/danyyudha/warehouse-ops-api/pkg/apiErrors"
	"github.com/danyyudha/warehouse-ops-api/pkg/log"
	"github.com/julienschmidt/httprouter"
)

// ListPresets retorna todos os presets de visualização configurados
func ListPresets(service presetting.Resolver) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("presets: listing configured presets")

		presets := service.List()

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(presets); err != nil {
			logger.WithField("error", err.Error()).Error("presets: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetPreset resolve um preset pela tag de time. Diferente do dashboard, aqui
// uma tag desconhecida é erro para o cliente, não fallback.
func GetPreset(service presetting.Resolver) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		tag := httprouter.ParamsFromContext(r.Context()).ByName("tag")
		logger.WithField("tag", tag).Info("presets: resolving preset by tag")

		preset, err := service.Resolve(tag)
		if err != nil {
			var invalidTeam *domain.InvalidTeamError
			if errors.As(err, &invalidTeam) {
				logger.WithField("tag", tag).Warn("presets: unknown team tag")
				apiErrors.WriteError(w, apiErrors.ErrInvalidTeam, "Time desconhecido", map[string]any{
					"tag": invalidTeam.Tag,
				})
				return
			}

			logger.WithField("error", err.Error()).Error("presets: failed to resolve preset")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao resolver preset", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(preset); err != nil {
			logger.WithField("error", err.Error()).Error("presets: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
