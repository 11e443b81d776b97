package datasource

import (
	"context"
	"errors"

	"github.com/danyyudha/warehouse-ops-api/internal/domain"
)

// Nomes das fontes de dados reconhecidas pela configuração
const (
	SourceDatabase = "database"
	SourceFile     = "file"
	SourceSample   = "sample"
)

// ErrUnavailable indica falha na fonte externa (banco indisponível, arquivo
// ilegível). É um erro de fronteira: o núcleo de métricas nunca o produz.
var ErrUnavailable = errors.New("fonte de dados indisponível")

// RecordSource é uma fonte de registros de pedidos já normalizados.
// Toda fonte entrega o mesmo formato OrderRecord, independente da origem.
type RecordSource interface {
	// Name identifica a fonte nos logs e no status da tabela
	Name() string

	// Load carrega todos os registros da fonte. A tabela em memória é
	// substituída por inteiro com o resultado; nunca é atualizada parcialmente.
	Load(ctx context.Context) ([]domain.OrderRecord, error)
}

// Normalize valida os registros vindos de qualquer fonte, separando os que
// violam a forma canônica. Linhas inválidas são colocadas em quarentena em
// vez de seguirem para o cálculo de métricas.
func Normalize(records []domain.OrderRecord) (valid []domain.OrderRecord, quarantined []domain.OrderRecord) {
	valid = make([]domain.OrderRecord, 0, len(records))

	for _, record := range records {
		if !record.Valid() {
			quarantined = append(quarantined, record)
			continue
		}
		if record.StageDurations == nil {
			record.StageDurations = map[string]float64{}
		}
		valid = append(valid, record)
	}

	return valid, quarantined
}
