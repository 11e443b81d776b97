package handler

import (
	"net/http"

	"github.com/danyyudha/warehouse-ops-api/internal/scheduler"
	"github.com/danyyudha/warehouse-ops-api/pkg/apiErrors"
	"github.com/sirupsen/logrus"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	RefreshSyncService *scheduler.RefreshSyncService
}

// RunCronJob dispara manualmente a recarga agendada da tabela de pedidos
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		if services.RefreshSyncService == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de recarga da tabela não disponível", nil)
			return
		}

		services.RefreshSyncService.TriggerManualSync(r.Context())

		json.NewEncoder(w).Encode(map[string]any{
			"message": "Recarga da tabela iniciada com sucesso",
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := map[string]any{
			"refresh": services.RefreshSyncService.GetStatus(),
		}

		json.NewEncoder(w).Encode(status)
	}
}
