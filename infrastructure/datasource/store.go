package datasource

import (
	"sync"
	"time"

	"github.com/danyyudha/warehouse-ops-api/internal/domain"
)

// StoreStatus descreve o estado atual da tabela de pedidos em memória.
type StoreStatus struct {
	Loaded     bool      `json:"loaded"`
	Source     string    `json:"source,omitempty"`
	BatchID    string    `json:"batch_id,omitempty"`
	RowCount   int       `json:"row_count"`
	LastReload time.Time `json:"last_reload,omitempty"`
}

// RecordStore guarda a tabela de pedidos do processo. A tabela só muda por
// substituição completa (Replace); leituras recebem uma cópia do slice, e os
// registros em si são imutáveis após a ingestão.
type RecordStore struct {
	mu         sync.RWMutex
	records    []domain.OrderRecord
	source     string
	batchID    string
	lastReload time.Time
}

func NewRecordStore() *RecordStore {
	return &RecordStore{}
}

// Replace substitui a tabela inteira pelo novo conjunto de registros.
func (s *RecordStore) Replace(source, batchID string, records []domain.OrderRecord) {
	table := make([]domain.OrderRecord, len(records))
	copy(table, records)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = table
	s.source = source
	s.batchID = batchID
	s.lastReload = time.Now()
}

// Snapshot retorna uma cópia da tabela atual, preservando a ordem das linhas.
func (s *RecordStore) Snapshot() []domain.OrderRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]domain.OrderRecord, len(s.records))
	copy(snapshot, s.records)
	return snapshot
}

// Status retorna os metadados da última carga.
func (s *RecordStore) Status() StoreStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return StoreStatus{
		Loaded:     !s.lastReload.IsZero(),
		Source:     s.source,
		BatchID:    s.batchID,
		RowCount:   len(s.records),
		LastReload: s.lastReload,
	}
}
