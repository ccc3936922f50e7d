package rules

import "fmt"

// Soil rule identifiers.
const (
	SoilPhosphorusDeficit    = "deficit_fosforo"
	SoilPotassiumDeficit     = "deficit_potasio"
	SoilNitrogenDeficit      = "deficit_nitrogeno"
	SoilSulfurDeficit        = "deficit_azufre"
	SoilCriticalPH           = "ph_critico"
	SoilLowOrganicMatter     = "materia_organica_baja"
	SoilFertilizationPending = "fertilizacion_pendiente"
)

type Nutrient string

const (
	Phosphorus Nutrient = "P"
	Potassium  Nutrient = "K"
	Nitrogen   Nutrient = "N"
	Sulfur     Nutrient = "S"
)

// pendingOrder is the order nutrients are named in the fertilization
// pending message when several are deficient.
var pendingOrder = []Nutrient{Phosphorus, Potassium, Nitrogen}

func (n Nutrient) Label() string {
	switch n {
	case Phosphorus:
		return "fósforo"
	case Potassium:
		return "potasio"
	case Nitrogen:
		return "nitrógeno"
	case Sulfur:
		return "azufre"
	}
	return string(n)
}

func (n Nutrient) Unit() string {
	if n == Potassium {
		return "meq/100g"
	}
	return "ppm"
}

type NutrientTargets struct {
	Phosphorus *float64
	Potassium  *float64
	Nitrogen   *float64
	Sulfur     *float64
}

// SoilValues is the coerced view of a lot's latest soil analysis together
// with its objectives and fertilization state.
type SoilValues struct {
	PH            *float64
	OrganicMatter *float64
	Phosphorus    *float64
	Potassium     *float64
	Nitrogen      *float64
	Sulfur        *float64
	Objective     NutrientTargets

	DaysSinceAnalysis    int
	FertilizationApplied bool
}

func (v SoilValues) nutrient(n Nutrient) (result, objective *float64) {
	switch n {
	case Phosphorus:
		return v.Phosphorus, v.Objective.Phosphorus
	case Potassium:
		return v.Potassium, v.Objective.Potassium
	case Nitrogen:
		return v.Nitrogen, v.Objective.Nitrogen
	case Sulfur:
		return v.Sulfur, v.Objective.Sulfur
	}
	return nil, nil
}

func (th SoilThresholds) ratio(n Nutrient) float64 {
	switch n {
	case Phosphorus:
		return th.PhosphorusRatio
	case Potassium:
		return th.PotassiumRatio
	case Nitrogen:
		return th.NitrogenRatio
	case Sulfur:
		return th.SulfurRatio
	}
	return 0
}

// Deficient reports whether the result/objective ratio of n is below the
// configured ratio. A missing result or objective is never deficient.
func (th SoilThresholds) Deficient(v SoilValues, n Nutrient) bool {
	res, obj := v.nutrient(n)
	if res == nil || obj == nil || *obj <= 0 {
		return false
	}
	return *res / *obj < th.ratio(n)
}

// PendingNutrient returns the first deficient nutrient in P, K, N order.
func (th SoilThresholds) PendingNutrient(v SoilValues) (Nutrient, bool) {
	for _, n := range pendingOrder {
		if th.Deficient(v, n) {
			return n, true
		}
	}
	return "", false
}

func deficitRule(th Thresholds, id string, n Nutrient, p Priority) Rule[SoilValues] {
	st := th.Soil
	return Rule[SoilValues]{
		ID:          id,
		Name:        fmt.Sprintf("Déficit de %s", n.Label()),
		Description: fmt.Sprintf("Resultado menor al %.0f%% del objetivo de %s", st.ratio(n)*100, n.Label()),
		Enabled:     th.enabled(DomainSoil, id),
		Priority:    p,
		Validate:    func(v SoilValues) bool { return st.Deficient(v, n) },
		Build: func(v SoilValues, name string) Message {
			res, obj := v.nutrient(n)
			return Message{
				Title: fmt.Sprintf("Déficit de %s en %s", n.Label(), name),
				Description: fmt.Sprintf("El análisis indica %.1f %s de %s frente a un objetivo de %.1f %s (%.0f%% del objetivo).",
					*res, n.Unit(), n.Label(), *obj, n.Unit(), *res / *obj * 100),
				Recommendation: fmt.Sprintf("Planificar una fertilización con %s para cubrir %.1f %s de déficit.",
					n.Label(), *obj-*res, n.Unit()),
			}
		},
		Details: func(v SoilValues) map[string]any {
			res, obj := v.nutrient(n)
			return map[string]any{
				"nutrient":  string(n),
				"result":    *res,
				"objective": *obj,
				"ratio":     round1(*res / *obj * 100) / 100,
				"threshold": st.ratio(n),
				"deficit":   round1(*obj - *res),
				"unit":      n.Unit(),
			}
		},
	}
}

func soilRules(th Thresholds) []Rule[SoilValues] {
	st := th.Soil
	return []Rule[SoilValues]{
		deficitRule(th, SoilPhosphorusDeficit, Phosphorus, High),
		deficitRule(th, SoilPotassiumDeficit, Potassium, Medium),
		deficitRule(th, SoilNitrogenDeficit, Nitrogen, High),
		deficitRule(th, SoilSulfurDeficit, Sulfur, Low),
		{
			ID:          SoilCriticalPH,
			Name:        "pH crítico",
			Description: fmt.Sprintf("pH fuera del rango %.1f a %.1f", st.PHMin, st.PHMax),
			Enabled:     th.enabled(DomainSoil, SoilCriticalPH),
			Priority:    High,
			Validate: func(v SoilValues) bool {
				if st.PHMin >= st.PHMax {
					return false
				}
				return below(v.PH, st.PHMin) || above(v.PH, st.PHMax)
			},
			Build: func(v SoilValues, name string) Message {
				ph := *v.PH
				if ph < st.PHMin {
					return Message{
						Title:          fmt.Sprintf("pH ácido en %s", name),
						Description:    fmt.Sprintf("pH de %.1f, por debajo del rango óptimo (%.1f a %.1f).", ph, st.PHMin, st.PHMax),
						Recommendation: "Evaluar un encalado y repetir el análisis luego de la corrección.",
					}
				}
				return Message{
					Title:          fmt.Sprintf("pH alcalino en %s", name),
					Description:    fmt.Sprintf("pH de %.1f, por encima del rango óptimo (%.1f a %.1f).", ph, st.PHMin, st.PHMax),
					Recommendation: "Evaluar enmiendas acidificantes (azufre elemental, yeso) y fertilizantes de reacción ácida.",
				}
			},
			Details: func(v SoilValues) map[string]any {
				return map[string]any{
					"ph":     *v.PH,
					"ph_min": st.PHMin,
					"ph_max": st.PHMax,
				}
			},
		},
		{
			ID:          SoilLowOrganicMatter,
			Name:        "Materia orgánica baja",
			Description: fmt.Sprintf("Materia orgánica menor a %.1f%%", st.OrganicMatterMin),
			Enabled:     th.enabled(DomainSoil, SoilLowOrganicMatter),
			Priority:    Medium,
			Validate:    func(v SoilValues) bool { return st.OrganicMatterMin > 0 && below(v.OrganicMatter, st.OrganicMatterMin) },
			Build: func(v SoilValues, name string) Message {
				return Message{
					Title:          fmt.Sprintf("Materia orgánica baja en %s", name),
					Description:    fmt.Sprintf("Materia orgánica de %.1f%%, mínimo %.1f%%.", *v.OrganicMatter, st.OrganicMatterMin),
					Recommendation: "Incorporar rastrojos, abonos verdes o enmiendas orgánicas y reducir el laboreo.",
				}
			},
			Details: func(v SoilValues) map[string]any {
				return map[string]any{
					"organic_matter": *v.OrganicMatter,
					"threshold":      st.OrganicMatterMin,
					"deficit":        round1(st.OrganicMatterMin - *v.OrganicMatter),
				}
			},
		},
		{
			ID:          SoilFertilizationPending,
			Name:        "Fertilización pendiente",
			Description: fmt.Sprintf("Déficit sin fertilizar hace más de %d días", st.PendingDays),
			Enabled:     th.enabled(DomainSoil, SoilFertilizationPending),
			Priority:    Medium,
			Validate: func(v SoilValues) bool {
				if st.PendingDays <= 0 || v.FertilizationApplied || v.DaysSinceAnalysis <= st.PendingDays {
					return false
				}
				_, ok := st.PendingNutrient(v)
				return ok
			},
			Build: func(v SoilValues, name string) Message {
				n, _ := st.PendingNutrient(v)
				return Message{
					Title: fmt.Sprintf("Fertilización pendiente en %s", name),
					Description: fmt.Sprintf("El déficit de %s detectado hace %d días no tiene una fertilización aplicada.",
						n.Label(), v.DaysSinceAnalysis),
					Recommendation: fmt.Sprintf("Registrar o programar la aplicación de %s antes de la próxima siembra.", n.Label()),
				}
			},
			Details: func(v SoilValues) map[string]any {
				n, _ := st.PendingNutrient(v)
				return map[string]any{
					"nutrient":            string(n),
					"days_since_analysis": v.DaysSinceAnalysis,
					"threshold_days":      st.PendingDays,
				}
			},
		},
	}
}
