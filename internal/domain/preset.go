package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Tags dos presets configurados. A tabela de presets é construída uma única
// vez na inicialização e nunca sofre mutação em tempo de execução.
const (
	PresetBrand       = "brand"
	PresetPerformance = "performance"
	PresetSocialMedia = "social-media"
	PresetAllTeams    = "all-teams"
)

// Comparadores aceitos nas regras de recomendação.
const (
	ComparatorGreaterThan = ">"
	ComparatorLessThan    = "<"
)

// DefaultRecommendation é a mensagem retornada quando nenhuma regra dispara.
// É um fallback de projeto, não um erro.
const DefaultRecommendation = "Operations are running within normal parameters."

// InvalidTeamError indica uma tag de time que não corresponde a nenhum
// preset configurado. É o único erro duro de entrada do núcleo; quem chama
// deve tratá-lo caindo para o preset All Teams.
type InvalidTeamError struct {
	Tag string
}

func (e *InvalidTeamError) Error() string {
	return fmt.Sprintf("time desconhecido: %q", e.Tag)
}

// RecommendationRule é uma regra declarativa de recomendação: uma comparação
// de limiar contra uma métrica do agregado. Regras são avaliadas de forma
// independente, em ordem de prioridade.
type RecommendationRule struct {
	Metric     string  `json:"metric"`
	Comparator string  `json:"comparator"`
	Threshold  float64 `json:"threshold"`
	Message    string  `json:"message"`
	Priority   int     `json:"priority"`
}

// Preset é a configuração fixa de visão de um time: quais métricas exibir e
// quais regras de recomendação avaliar.
type Preset struct {
	Tag        string               `json:"tag"`
	Name       string               `json:"name"`
	Team       string               `json:"team"` // filtro de time aplicado ("all" para All Teams)
	MetricKeys []string             `json:"metric_keys"`
	Rules      []RecommendationRule `json:"rules"`
}

// SortedRules retorna as regras do preset em ordem de prioridade crescente,
// sem modificar o preset.
func (p *Preset) SortedRules() []RecommendationRule {
	rules := make([]RecommendationRule, len(p.Rules))
	copy(rules, p.Rules)
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority < rules[j].Priority
	})
	return rules
}

// NormalizeTeamTag reduz uma tag de time ou preset à forma canônica usada
// como chave da tabela: minúsculas, espaços como hífen, sem o sufixo "team".
// Aceita tanto "Brand Team" quanto "brand".
func NormalizeTeamTag(tag string) string {
	t := strings.ToLower(strings.TrimSpace(tag))
	t = strings.TrimSuffix(t, " team")
	t = strings.TrimSuffix(t, " teams")
	t = strings.ReplaceAll(t, " ", "-")
	t = strings.ReplaceAll(t, "_", "-")
	if t == "all" {
		return PresetAllTeams
	}
	return t
}

var commonRules = []RecommendationRule{
	{
		Metric:     MetricAvgHandlingTime,
		Comparator: ComparatorGreaterThan,
		Threshold:  24,
		Message:    "Handling times are above target. Review warehouse processing workflows.",
		Priority:   1,
	},
	{
		Metric:     MetricDelayPercentage,
		Comparator: ComparatorGreaterThan,
		Threshold:  15,
		Message:    "Delay rates are concerning. Investigate shipping partners and internal processes.",
		Priority:   2,
	},
	{
		Metric:     MetricFulfillmentRate,
		Comparator: ComparatorLessThan,
		Threshold:  90,
		Message:    "Fulfillment rates are below target. Address inventory management.",
		Priority:   3,
	},
}

func withCommonRules(extra ...RecommendationRule) []RecommendationRule {
	rules := make([]RecommendationRule, 0, len(commonRules)+len(extra))
	rules = append(rules, commonRules...)
	rules = append(rules, extra...)
	return rules
}

// NewPresetTable constrói a tabela de presets reconhecidos. O mapa retornado
// deve ser tratado como somente-leitura por todos os componentes.
func NewPresetTable() map[string]*Preset {
	allMetrics := []string{
		MetricAvgHandlingTime,
		MetricDelayPercentage,
		MetricFulfillmentRate,
		MetricBottleneckSeverity,
	}

	return map[string]*Preset{
		PresetBrand: {
			Tag:        PresetBrand,
			Name:       TeamBrand,
			Team:       TeamBrand,
			MetricKeys: []string{MetricDelayPercentage, MetricFulfillmentRate, MetricAvgHandlingTime},
			Rules: withCommonRules(
				RecommendationRule{
					Metric:     MetricDelayPercentage,
					Comparator: ComparatorGreaterThan,
					Threshold:  10,
					Message:    "Consider dedicated handling for high-value items to maintain brand reputation.",
					Priority:   4,
				},
			),
		},
		PresetPerformance: {
			Tag:        PresetPerformance,
			Name:       TeamPerformance,
			Team:       TeamPerformance,
			MetricKeys: allMetrics,
			Rules: withCommonRules(
				RecommendationRule{
					Metric:     MetricBottleneckSeverity,
					Comparator: ComparatorGreaterThan,
					Threshold:  0.5,
					Message:    "Cross-train staff to relieve the dominant bottleneck stage.",
					Priority:   4,
				},
			),
		},
		PresetSocialMedia: {
			Tag:        PresetSocialMedia,
			Name:       TeamSocialMedia,
			Team:       TeamSocialMedia,
			MetricKeys: []string{MetricFulfillmentRate, MetricDelayPercentage},
			Rules: withCommonRules(
				RecommendationRule{
					Metric:     MetricAvgHandlingTime,
					Comparator: ComparatorGreaterThan,
					Threshold:  12,
					Message:    "Pre-stock frequently promoted items to reduce processing time during campaign periods.",
					Priority:   4,
				},
			),
		},
		PresetAllTeams: {
			Tag:        PresetAllTeams,
			Name:       "All Teams",
			Team:       TeamAll,
			MetricKeys: allMetrics,
			Rules:      withCommonRules(),
		},
	}
}
