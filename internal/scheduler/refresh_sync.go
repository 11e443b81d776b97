package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/danyyudha/warehouse-ops-api/infrastructure/datasource"
	"github.com/danyyudha/warehouse-ops-api/internal/config"
	"github.com/danyyudha/warehouse-ops-api/pkg/utils"
	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// RefreshSyncConfig representa a configuração do agendador de recarga da tabela
type RefreshSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// RefreshSyncService gerencia a recarga agendada da tabela de pedidos a partir
// da fonte de dados configurada. A tabela é sempre substituída por inteiro.
type RefreshSyncService struct {
	scheduler           *gocron.Scheduler
	config              RefreshSyncConfig
	source              datasource.RecordSource
	store               *datasource.RecordStore
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewRefreshSyncService cria uma nova instância do serviço de recarga agendada
func NewRefreshSyncService(
	source datasource.RecordSource,
	store *datasource.RecordStore,
	appConfig *config.Config,
) *RefreshSyncService {
	refreshConfig := RefreshSyncConfig{
		CronSchedule: appConfig.RefreshSync.CronSchedule,
		SyncEnabled:  appConfig.RefreshSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": refreshConfig.CronSchedule,
		"sync_enabled":  refreshConfig.SyncEnabled,
		"source":        source.Name(),
	}).Info("Configuração do agendador de recarga da tabela carregada")

	return &RefreshSyncService{
		scheduler:   scheduler,
		config:      refreshConfig,
		source:      source,
		store:       store,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *RefreshSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Recarga agendada da tabela de pedidos desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de recarga da tabela de pedidos")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.refreshTable(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar recarga da tabela de pedidos: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de recarga da tabela de pedidos")
		s.scheduler.Stop()
	}()

	return nil
}

// refreshTable recarrega a tabela de pedidos a partir da fonte configurada.
// Em caso de falha na fonte, a tabela atual permanece intacta.
func (s *RefreshSyncService) refreshTable(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recarga da tabela de pedidos já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	startTime := time.Now()
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.WithField("source", s.source.Name()).Info("Iniciando recarga da tabela de pedidos")

	records, err := s.source.Load(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao carregar registros da fonte de dados, tabela atual mantida")
		return
	}

	batchID, err := utils.NewBatchID()
	if err != nil {
		logrus.WithError(err).Error("Erro ao gerar identificador do lote de recarga")
		return
	}

	s.store.Replace(s.source.Name(), batchID, records)

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"duration": time.Since(startTime).String(),
		"rows":     len(records),
		"batch_id": batchID,
		"source":   s.source.Name(),
	}).Info("Recarga da tabela de pedidos concluída")
}

// TriggerManualSync inicia manualmente uma recarga da tabela de pedidos
func (s *RefreshSyncService) TriggerManualSync(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recarga da tabela de pedidos já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando recarga manual da tabela de pedidos")
	go s.refreshTable(ctx)
}

// GetStatus retorna o status atual do agendador. Os carimbos de tempo são
// lidos sob o mesmo mutex que protege a recarga em andamento.
func (s *RefreshSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"source":                 s.source.Name(),
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
