package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danyyudha/warehouse-ops-api/infrastructure/datasource"
	"github.com/danyyudha/warehouse-ops-api/infrastructure/datasource/mocks"
	"github.com/danyyudha/warehouse-ops-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRefreshSyncService_refreshTable(t *testing.T) {
	baseDate := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	records := []domain.OrderRecord{
		{
			OrderID:     "ORD-0001",
			WarehouseID: "W1",
			Team:        domain.TeamBrand,
			OrderDate:   baseDate,
			StageDurations: map[string]float64{
				domain.StagePicking: 4,
			},
			Fulfilled: true,
		},
	}

	tests := []struct {
		name     string
		setup    func(source *mocks.MockRecordSource)
		seed     []domain.OrderRecord
		validate func(t *testing.T, store *datasource.RecordStore)
	}{
		{
			name: "Recarga bem-sucedida substitui a tabela inteira",
			setup: func(source *mocks.MockRecordSource) {
				source.EXPECT().Name().Return(datasource.SourceDatabase).AnyTimes()
				source.EXPECT().Load(gomock.Any()).Return(records, nil)
			},
			validate: func(t *testing.T, store *datasource.RecordStore) {
				status := store.Status()
				assert.True(t, status.Loaded)
				assert.Equal(t, datasource.SourceDatabase, status.Source)
				assert.Equal(t, 1, status.RowCount)
				assert.NotEmpty(t, status.BatchID)
			},
		},
		{
			name: "Falha na fonte mantém a tabela atual intacta",
			setup: func(source *mocks.MockRecordSource) {
				source.EXPECT().Name().Return(datasource.SourceDatabase).AnyTimes()
				source.EXPECT().Load(gomock.Any()).Return(nil, errors.New("connection refused"))
			},
			seed: records,
			validate: func(t *testing.T, store *datasource.RecordStore) {
				// A tabela anterior permanece disponível para o dashboard
				snapshot := store.Snapshot()
				assert.Len(t, snapshot, 1)
				assert.Equal(t, "ORD-0001", snapshot[0].OrderID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			source := mocks.NewMockRecordSource(ctrl)
			store := datasource.NewRecordStore()

			if tt.seed != nil {
				store.Replace(datasource.SourceSample, "seed0001", tt.seed)
			}

			tt.setup(source)

			service := &RefreshSyncService{
				source: source,
				store:  store,
			}

			service.refreshTable(context.Background())

			tt.validate(t, store)
		})
	}
}

func TestRefreshSyncService_GetStatusDuringRefresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mocks.NewMockRecordSource(ctrl)
	source.EXPECT().Name().Return(datasource.SourceDatabase).AnyTimes()
	source.EXPECT().Load(gomock.Any()).Return(nil, nil).AnyTimes()

	service := &RefreshSyncService{
		source: source,
		store:  datasource.NewRecordStore(),
		config: RefreshSyncConfig{SyncEnabled: true, CronSchedule: "0 * * * *"},
	}

	// Consulta de status concorrente com a recarga em andamento
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			service.refreshTable(context.Background())
		}
	}()

	for i := 0; i < 50; i++ {
		status := service.GetStatus()
		assert.Equal(t, datasource.SourceDatabase, status["source"])
		assert.Equal(t, "0 * * * *", status["sync_cron"])
	}

	<-done

	status := service.GetStatus()
	startedAt, ok := status["last_sync_started_at"].(time.Time)
	assert.True(t, ok)
	assert.False(t, startedAt.IsZero())
}

func TestRefreshSyncService_StartDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mocks.NewMockRecordSource(ctrl)
	source.EXPECT().Name().Return(datasource.SourceSample).AnyTimes()

	service := &RefreshSyncService{
		source: source,
		store:  datasource.NewRecordStore(),
		config: RefreshSyncConfig{SyncEnabled: false},
	}

	// Desabilitado por configuração: não agenda nada e não retorna erro
	err := service.Start(context.Background())
	assert.NoError(t, err)
}
