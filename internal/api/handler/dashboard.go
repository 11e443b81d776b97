package handler

import (
	"net/http"
	"strconv"

	"github.com/danyyudha/warehouse-ops-api/infrastructure/datasource"
	"github.com/danyyudha/warehouse-ops-api/internal/domain"
	"github.com/danyyudha/warehouse-ops-api/internal/usecases/presetting"
	"github.com/danyyudha/warehouse-ops-api/internal/usecases/reporting"
	"github.com/danyyudha/warehouse-ops-api/pkg/apiErrors"
	"github.com/danyyudha/warehouse-ops-api/pkg/log"
	"github.com/danyyudha/warehouse-ops-api/pkg/utils"
)

// defaultSlowestLimit limita a lista de armazéns mais lentos quando o cliente
// não informa o parâmetro limit.
const defaultSlowestLimit = 3

// parseReportFilters extrai o recorte de datas e time da query string.
// Datas ausentes não restringem o intervalo.
func parseReportFilters(r *http.Request) (*domain.ReportFilters, error) {
	filters := &domain.ReportFilters{
		Team: r.URL.Query().Get("team"),
	}

	if raw := r.URL.Query().Get("start_date"); raw != "" {
		startDate, err := utils.ParseDate(raw)
		if err != nil {
			return nil, err
		}
		filters.StartDate = startDate
	}

	if raw := r.URL.Query().Get("end_date"); raw != "" {
		endDate, err := utils.ParseDate(raw)
		if err != nil {
			return nil, err
		}
		filters.EndDate = endDate
	}

	return filters, nil
}

// GetDashboard monta a resposta completa do painel: métricas agregadas e por
// armazém, mais as recomendações do preset ativo. Uma tag de preset
// desconhecida cai para o preset All Teams.
func GetDashboard(
	reportService reporting.Reporter,
	presetService presetting.Resolver,
	store *datasource.RecordStore,
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		presetTag := r.URL.Query().Get("preset")
		if presetTag == "" {
			presetTag = r.URL.Query().Get("team")
		}
		logger.WithField("preset", presetTag).Info("dashboard: building dashboard view")

		filters, err := parseReportFilters(r)
		if err != nil {
			logger.WithFields(log.Fields{
				"preset": presetTag,
				"error":  err.Error(),
			}).Warn("dashboard: invalid date filter parameter")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Datas devem estar no formato YYYY-MM-DD", nil)
			return
		}

		status := store.Status()
		if !status.Loaded {
			logger.Warn("dashboard: no order table loaded yet")
			apiErrors.WriteError(w, apiErrors.ErrNoRecordsLoaded, "Nenhuma tabela de pedidos carregada", nil)
			return
		}

		preset := presetService.ResolveOrFallback(presetTag)
		response := reportService.BuildDashboard(store.Snapshot(), preset, filters)

		logger.WithFields(log.Fields{
			"preset":     preset.Tag,
			"warehouses": len(response.Warehouses),
			"rows":       status.RowCount,
		}).Info("dashboard: dashboard view built")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithField("error", err.Error()).Error("dashboard: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetWarehouseMetrics retorna as métricas por armazém e o agregado do recorte,
// sem o envelope de preset e recomendações.
func GetWarehouseMetrics(
	reportService reporting.Reporter,
	store *datasource.RecordStore,
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("dashboard: fetching warehouse metrics")

		filters, err := parseReportFilters(r)
		if err != nil {
			logger.WithField("error", err.Error()).Warn("dashboard: invalid date filter parameter")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Datas devem estar no formato YYYY-MM-DD", nil)
			return
		}

		status := store.Status()
		if !status.Loaded {
			logger.Warn("dashboard: no order table loaded yet")
			apiErrors.WriteError(w, apiErrors.ErrNoRecordsLoaded, "Nenhuma tabela de pedidos carregada", nil)
			return
		}

		filtered := reportService.FilterRecords(store.Snapshot(), filters)
		aggregate, warehouses := reportService.ComputeMetrics(filtered)

		response := map[string]any{
			"aggregate":  aggregate,
			"warehouses": warehouses,
			"filters":    filters,
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithField("error", err.Error()).Error("dashboard: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetSlowestWarehouses lista os armazéns com maior tempo médio de manuseio
// dentro do recorte.
func GetSlowestWarehouses(
	reportService reporting.Reporter,
	store *datasource.RecordStore,
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		limit := defaultSlowestLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				logger.WithField("limit", raw).Warn("dashboard: invalid limit parameter")
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "O parâmetro limit deve ser um inteiro positivo", nil)
				return
			}
			limit = parsed
		}

		logger.WithField("limit", limit).Info("dashboard: fetching slowest warehouses")

		filters, err := parseReportFilters(r)
		if err != nil {
			logger.WithField("error", err.Error()).Warn("dashboard: invalid date filter parameter")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Datas devem estar no formato YYYY-MM-DD", nil)
			return
		}

		status := store.Status()
		if !status.Loaded {
			logger.Warn("dashboard: no order table loaded yet")
			apiErrors.WriteError(w, apiErrors.ErrNoRecordsLoaded, "Nenhuma tabela de pedidos carregada", nil)
			return
		}

		slowest := reportService.SlowestWarehouses(store.Snapshot(), filters, limit)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{
			"warehouses": slowest,
			"filters":    filters,
		}); err != nil {
			logger.WithField("error", err.Error()).Error("dashboard: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
