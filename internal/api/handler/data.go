package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danyyudha/warehouse-ops-api/infrastructure/datasource"
	"github.com/danyyudha/warehouse-ops-api/pkg/apiErrors"
	"github.com/danyyudha/warehouse-ops-api/pkg/log"
	"github.com/danyyudha/warehouse-ops-api/pkg/utils"
)

// maxUploadSize limita o tamanho da planilha enviada no upload (10 MB)
const maxUploadSize = 10 << 20

// DataServices agrupa as dependências dos handlers de ingestão de dados
type DataServices struct {
	Store        *datasource.RecordStore
	ReloadSource datasource.RecordSource
	SampleSource *datasource.SampleSource
}

// LoadSampleData substitui a tabela de pedidos pelos dados de demonstração
// gerados deterministicamente.
func LoadSampleData(services DataServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("data: loading sample order table")

		records, err := services.SampleSource.Load(r.Context())
		if err != nil {
			logger.WithField("error", err.Error()).Error("data: failed to generate sample table")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar dados de demonstração", nil)
			return
		}

		batchID, err := utils.NewBatchID()
		if err != nil {
			logger.WithField("error", err.Error()).Error("data: failed to generate batch ID")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar identificador do lote", nil)
			return
		}

		services.Store.Replace(datasource.SourceSample, batchID, records)

		logger.WithFields(log.Fields{
			"rows":     len(records),
			"batch_id": batchID,
		}).Info("data: sample order table loaded")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(services.Store.Status())
	})
}

// UploadSpreadsheet substitui a tabela de pedidos pelo conteúdo de uma
// planilha .xlsx enviada pelo cliente. Linhas inválidas são reportadas na
// resposta, mas não impedem a importação das demais.
func UploadSpreadsheet(services DataServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("data: uploading order spreadsheet")

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			logger.WithField("error", err.Error()).Warn("data: invalid multipart upload")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Envie a planilha no campo 'file' de um formulário multipart", nil)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			logger.WithField("error", err.Error()).Warn("data: missing spreadsheet file in upload")
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Arquivo da planilha não enviado", nil)
			return
		}
		defer file.Close()

		records, quarantined, err := datasource.ParseWorkbook(file)
		if err != nil {
			logger.WithFields(log.Fields{
				"filename": header.Filename,
				"error":    err.Error(),
			}).Warn("data: failed to parse spreadsheet")

			apiErrors.WriteError(w, apiErrors.ErrSpreadsheetFormat, "Planilha em formato inválido", map[string]any{
				"reason": err.Error(),
			})
			return
		}

		if len(records) == 0 {
			logger.WithField("filename", header.Filename).Warn("data: spreadsheet has no valid rows")
			apiErrors.WriteError(w, apiErrors.ErrSpreadsheetFormat, "Planilha sem linhas válidas", map[string]any{
				"quarantined_rows": quarantined,
			})
			return
		}

		batchID, err := utils.NewBatchID()
		if err != nil {
			logger.WithField("error", err.Error()).Error("data: failed to generate batch ID")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar identificador do lote", nil)
			return
		}

		services.Store.Replace(datasource.SourceFile, batchID, records)

		logger.WithFields(log.Fields{
			"filename":    header.Filename,
			"rows":        len(records),
			"quarantined": len(quarantined),
			"batch_id":    batchID,
		}).Info("data: spreadsheet imported")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status":           services.Store.Status(),
			"quarantined_rows": quarantined,
		})
	})
}

// ReloadData recarrega a tabela de pedidos a partir da fonte configurada.
// Em caso de falha na fonte, a tabela atual permanece intacta.
func ReloadData(services DataServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.WithField("source", services.ReloadSource.Name()).Info("data: reloading order table")

		records, err := services.ReloadSource.Load(r.Context())
		if err != nil {
			logger.WithFields(log.Fields{
				"source": services.ReloadSource.Name(),
				"error":  err.Error(),
			}).Error("data: failed to reload order table")

			if errors.Is(err, datasource.ErrUnavailable) {
				apiErrors.WriteError(w, apiErrors.ErrDataSource, "Fonte de dados indisponível, tabela atual mantida", nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao recarregar a tabela de pedidos", nil)
			return
		}

		batchID, err := utils.NewBatchID()
		if err != nil {
			logger.WithField("error", err.Error()).Error("data: failed to generate batch ID")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar identificador do lote", nil)
			return
		}

		services.Store.Replace(services.ReloadSource.Name(), batchID, records)

		logger.WithFields(log.Fields{
			"source":   services.ReloadSource.Name(),
			"rows":     len(records),
			"batch_id": batchID,
		}).Info("data: order table reloaded")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(services.Store.Status())
	})
}

// ExportSpreadsheet devolve a tabela de pedidos atual como planilha .xlsx, no
// mesmo layout aceito pelo upload.
func ExportSpreadsheet(services DataServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("data: exporting order table as spreadsheet")

		status := services.Store.Status()
		if !status.Loaded {
			logger.Warn("data: no order table loaded to export")
			apiErrors.WriteError(w, apiErrors.ErrNoRecordsLoaded, "Nenhuma tabela de pedidos carregada", nil)
			return
		}

		workbook, err := datasource.WriteWorkbook(services.Store.Snapshot())
		if err != nil {
			logger.WithField("error", err.Error()).Error("data: failed to build spreadsheet")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao montar a planilha", nil)
			return
		}

		filename := fmt.Sprintf("warehouse_orders_%s.xlsx", time.Now().Format("2006-01-02"))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

		if err := workbook.Write(w); err != nil {
			logger.WithField("error", err.Error()).Error("data: failed to stream spreadsheet")
		}
	})
}

// GetDataStatus retorna os metadados da última carga da tabela de pedidos
func GetDataStatus(services DataServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("data: fetching order table status")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(services.Store.Status())
	})
}
