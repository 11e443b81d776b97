package presetting

import (
	"sort"

	"github.com/danyyudha/warehouse-ops-api/internal/domain"
	"github.com/sirupsen/logrus"
)

// Resolver define a interface de resolução de presets por tag de time
type Resolver interface {
	// Resolve retorna o preset correspondente à tag informada, ou
	// InvalidTeamError quando a tag não corresponde a nenhum preset
	Resolve(tag string) (*domain.Preset, error)

	// ResolveOrFallback resolve a tag e, se ela for desconhecida, cai para o
	// preset All Teams em vez de propagar o erro
	ResolveOrFallback(tag string) *domain.Preset

	// List retorna todos os presets configurados, em ordem estável de tag
	List() []*domain.Preset
}

// Service resolve presets de visualização a partir da tabela fixa construída
// na inicialização. A tabela nunca muda em tempo de execução.
type Service struct {
	presets map[string]*domain.Preset
}

// NewService cria o resolvedor sobre a tabela de presets configurada
func NewService(presets map[string]*domain.Preset) Resolver {
	if presets == nil {
		presets = domain.NewPresetTable()
	}

	return &Service{
		presets: presets,
	}
}

// Resolve normaliza a tag recebida e busca o preset na tabela. Aceita tanto a
// tag curta ("brand") quanto o nome do time ("Brand Team").
func (s *Service) Resolve(tag string) (*domain.Preset, error) {
	preset, ok := s.presets[domain.NormalizeTeamTag(tag)]
	if !ok {
		return nil, &domain.InvalidTeamError{Tag: tag}
	}

	return preset, nil
}

// ResolveOrFallback resolve a tag caindo para o preset All Teams quando ela é
// desconhecida. O fallback é comportamento de projeto: um time não mapeado
// nunca derruba o dashboard.
func (s *Service) ResolveOrFallback(tag string) *domain.Preset {
	preset, err := s.Resolve(tag)
	if err != nil {
		logrus.WithField("tag", tag).Warn("Preset desconhecido, usando o preset All Teams")
		return s.presets[domain.PresetAllTeams]
	}

	return preset
}

// List retorna todos os presets configurados, ordenados pela tag.
func (s *Service) List() []*domain.Preset {
	tags := make([]string, 0, len(s.presets))
	for tag := range s.presets {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	presets := make([]*domain.Preset, 0, len(tags))
	for _, tag := range tags {
		presets = append(presets, s.presets[tag])
	}

	return presets
}
