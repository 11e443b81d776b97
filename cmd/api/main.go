package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/danyyudha/warehouse-ops-api/infrastructure/database/postgres"
	"github.com/danyyudha/warehouse-ops-api/infrastructure/datasource"
	"github.com/danyyudha/warehouse-ops-api/infrastructure/repository"
	"github.com/danyyudha/warehouse-ops-api/internal/api"
	"github.com/danyyudha/warehouse-ops-api/internal/api/handler"
	"github.com/danyyudha/warehouse-ops-api/internal/config"
	"github.com/danyyudha/warehouse-ops-api/internal/domain"
	"github.com/danyyudha/warehouse-ops-api/internal/scheduler"
	"github.com/danyyudha/warehouse-ops-api/internal/usecases/authenticating"
	"github.com/danyyudha/warehouse-ops-api/internal/usecases/presetting"
	"github.com/danyyudha/warehouse-ops-api/internal/usecases/recommending"
	"github.com/danyyudha/warehouse-ops-api/internal/usecases/reporting"
	"github.com/danyyudha/warehouse-ops-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	orderRepo := repository.NewOrderRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	// Fontes de dados da tabela de pedidos
	store := datasource.NewRecordStore()
	sampleSource := datasource.NewSampleSource(
		cfg.SampleData.Warehouses,
		cfg.SampleData.Orders,
		cfg.SampleData.Seed,
	)
	databaseSource := datasource.NewDatabaseSource(orderRepo, cfg.Dashboard.LookbackDays)

	var reloadSource datasource.RecordSource = databaseSource
	if cfg.Dashboard.DataSource == datasource.SourceSample {
		reloadSource = sampleSource
	}

	loadInitialTable(ctx, store, reloadSource, sampleSource)

	// Serviços do dashboard
	recommender := recommending.NewService()
	reportService := reporting.NewService(recommender)
	presetService := presetting.NewService(domain.NewPresetTable())

	dataServices := handler.DataServices{
		Store:        store,
		ReloadSource: reloadSource,
		SampleSource: sampleSource,
	}

	// Inicializa o agendador de recarga da tabela
	refreshSyncService := scheduler.NewRefreshSyncService(reloadSource, store, cfg)
	if err := refreshSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de recarga da tabela de pedidos")
	} else {
		logrus.Info("Agendador de recarga da tabela de pedidos iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		reportService,
		presetService,
		authenticator,
		dataServices,
		refreshSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// loadInitialTable faz a primeira carga da tabela de pedidos. Se a fonte
// configurada falhar, cai para os dados de demonstração em vez de subir a API
// sem tabela nenhuma.
func loadInitialTable(
	ctx context.Context,
	store *datasource.RecordStore,
	source datasource.RecordSource,
	fallback *datasource.SampleSource,
) {
	records, err := source.Load(ctx)
	if err != nil {
		logrus.WithError(err).WithField("source", source.Name()).
			Warn("Erro na carga inicial da tabela de pedidos, usando dados de demonstração")

		records, err = fallback.Load(ctx)
		if err != nil {
			logrus.WithError(err).Fatal("Erro ao gerar dados de demonstração na carga inicial")
		}
		source = fallback
	}

	batchID, err := utils.NewBatchID()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao gerar identificador do lote inicial")
	}

	store.Replace(source.Name(), batchID, records)

	logrus.WithFields(logrus.Fields{
		"source":   source.Name(),
		"rows":     len(records),
		"batch_id": batchID,
	}).Info("Tabela de pedidos carregada na inicialização")
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
