package rules

import (
	"fmt"
	"math"
	"strings"
)

// Seed rule identifiers.
const (
	SeedLowGermination  = "germinacion_baja"
	SeedInviable        = "semilla_inviable"
	SeedLowPurity       = "pureza_baja"
	SeedHighMoisture    = "humedad_alta"
	SeedLowTetrazolium  = "tetrazolio_bajo"
	SeedTestDiscrepancy = "discrepancia_tests"
	SeedDeteriorated    = "semilla_deteriorada"
)

// SeedIndividualRules are evaluated only when neither gate rule fired.
var SeedIndividualRules = []string{
	SeedLowGermination,
	SeedLowPurity,
	SeedHighMoisture,
	SeedLowTetrazolium,
	SeedTestDiscrepancy,
}

// SeedValues is the coerced view of the latest seed analysis.
type SeedValues struct {
	Germination *float64
	Purity      *float64
	Moisture    *float64
	Tetrazolium *float64
}

// GerminationSeverity returns the messaging band for a low germination value.
func GerminationSeverity(g float64) string {
	switch {
	case g < 70:
		return "CRÍTICA"
	case g < 80:
		return "SEVERA"
	default:
		return "MODERADA"
	}
}

// MoistureSeverity returns the messaging band for a high moisture value.
func MoistureSeverity(m float64) string {
	switch {
	case m > 15:
		return "CRÍTICA"
	case m > 14:
		return "ALTA"
	default:
		return "MODERADA"
	}
}

// Breaches lists the individual parameters outside their thresholds.
func (th SeedThresholds) Breaches(v SeedValues) []string {
	var out []string
	if below(v.Germination, th.GerminationMin) {
		out = append(out, "germinacion")
	}
	if below(v.Purity, th.PurityMin) {
		out = append(out, "pureza")
	}
	if above(v.Moisture, th.MoistureMax) {
		out = append(out, "humedad")
	}
	if below(v.Tetrazolium, th.TetrazoliumMin) {
		out = append(out, "tetrazolio")
	}
	return out
}

func seedRules(th Thresholds) []Rule[SeedValues] {
	st := th.Seed
	return []Rule[SeedValues]{
		{
			ID:          SeedInviable,
			Name:        "Semilla inviable",
			Description: fmt.Sprintf("Germinación menor a %.0f%%", st.InviableBelow),
			Enabled:     th.enabled(DomainSeed, SeedInviable),
			Priority:    High,
			Validate:    func(v SeedValues) bool { return below(v.Germination, st.InviableBelow) },
			Build: func(v SeedValues, name string) Message {
				return Message{
					Title: fmt.Sprintf("Semilla inviable: %s", name),
					Description: fmt.Sprintf("La germinación de %.1f%% está por debajo del mínimo de viabilidad (%.0f%%).",
						*v.Germination, st.InviableBelow),
					Recommendation: "NO SEMBRAR este lote de semilla. Reemplazar por semilla certificada o realizar un nuevo análisis en otro laboratorio.",
				}
			},
			Details: func(v SeedValues) map[string]any {
				return map[string]any{
					"germination": *v.Germination,
					"threshold":   st.InviableBelow,
					"deficit":     round1(st.InviableBelow - *v.Germination),
					"severity":    GerminationSeverity(*v.Germination),
				}
			},
		},
		{
			ID:          SeedDeteriorated,
			Name:        "Semilla deteriorada",
			Description: fmt.Sprintf("%d o más parámetros fuera de rango", st.MinBreaches),
			Enabled:     th.enabled(DomainSeed, SeedDeteriorated),
			Priority:    High,
			Validate:    func(v SeedValues) bool { return len(st.Breaches(v)) >= st.MinBreaches },
			Build: func(v SeedValues, name string) Message {
				b := st.Breaches(v)
				return Message{
					Title:          fmt.Sprintf("Semilla deteriorada: %s", name),
					Description:    fmt.Sprintf("%d parámetros de calidad fuera de rango: %s.", len(b), strings.Join(b, ", ")),
					Recommendation: "Evaluar el descarte del lote. Si se siembra, aumentar la densidad de siembra y priorizar condiciones de suelo óptimas.",
				}
			},
			Details: func(v SeedValues) map[string]any {
				return map[string]any{
					"germination":  val(v.Germination),
					"purity":       val(v.Purity),
					"moisture":     val(v.Moisture),
					"tetrazolium":  val(v.Tetrazolium),
					"breaches":     st.Breaches(v),
					"min_breaches": st.MinBreaches,
				}
			},
		},
		{
			ID:          SeedLowGermination,
			Name:        "Germinación baja",
			Description: fmt.Sprintf("Germinación menor a %.0f%%", st.GerminationMin),
			Enabled:     th.enabled(DomainSeed, SeedLowGermination),
			Priority:    High,
			Validate:    func(v SeedValues) bool { return below(v.Germination, st.GerminationMin) },
			Build: func(v SeedValues, name string) Message {
				g := *v.Germination
				sev := GerminationSeverity(g)
				var rec string
				switch sev {
				case "CRÍTICA":
					rec = "No sembrar. La semilla no alcanza la viabilidad mínima."
				case "SEVERA":
					rec = "Aumentar la densidad de siembra entre 20% y 30% o reemplazar la semilla."
				default:
					rec = "Aumentar la densidad de siembra entre 10% y 15%."
				}
				return Message{
					Title:          fmt.Sprintf("Germinación baja (%s): %s", sev, name),
					Description:    fmt.Sprintf("Germinación de %.1f%%, mínimo recomendado %.0f%%.", g, st.GerminationMin),
					Recommendation: rec,
				}
			},
			Details: func(v SeedValues) map[string]any {
				return map[string]any{
					"germination": *v.Germination,
					"threshold":   st.GerminationMin,
					"deficit":     round1(st.GerminationMin - *v.Germination),
					"severity":    GerminationSeverity(*v.Germination),
				}
			},
		},
		{
			ID:          SeedLowPurity,
			Name:        "Pureza baja",
			Description: fmt.Sprintf("Pureza menor a %.0f%%", st.PurityMin),
			Enabled:     th.enabled(DomainSeed, SeedLowPurity),
			Priority:    Medium,
			Validate:    func(v SeedValues) bool { return below(v.Purity, st.PurityMin) },
			Build: func(v SeedValues, name string) Message {
				return Message{
					Title:          fmt.Sprintf("Pureza baja: %s", name),
					Description:    fmt.Sprintf("Pureza física de %.1f%%, mínimo %.0f%%.", *v.Purity, st.PurityMin),
					Recommendation: "Limpiar la semilla antes de sembrar y verificar la presencia de malezas o materia inerte.",
				}
			},
			Details: func(v SeedValues) map[string]any {
				return map[string]any{
					"purity":    *v.Purity,
					"threshold": st.PurityMin,
					"deficit":   round1(st.PurityMin - *v.Purity),
				}
			},
		},
		{
			ID:          SeedHighMoisture,
			Name:        "Humedad alta",
			Description: fmt.Sprintf("Humedad mayor a %.0f%%", st.MoistureMax),
			Enabled:     th.enabled(DomainSeed, SeedHighMoisture),
			Priority:    High,
			Validate:    func(v SeedValues) bool { return above(v.Moisture, st.MoistureMax) },
			Build: func(v SeedValues, name string) Message {
				m := *v.Moisture
				sev := MoistureSeverity(m)
				var rec string
				switch sev {
				case "CRÍTICA":
					rec = "Secar la semilla de inmediato. Riesgo alto de hongos y pérdida de viabilidad."
				case "ALTA":
					rec = "Secar la semilla antes de almacenar y controlar la temperatura del depósito."
				default:
					rec = "Ventilar el depósito y repetir la medición de humedad en una semana."
				}
				return Message{
					Title:          fmt.Sprintf("Humedad alta (%s): %s", sev, name),
					Description:    fmt.Sprintf("Humedad de %.1f%%, máximo recomendado %.0f%%.", m, st.MoistureMax),
					Recommendation: rec,
				}
			},
			Details: func(v SeedValues) map[string]any {
				return map[string]any{
					"moisture":  *v.Moisture,
					"threshold": st.MoistureMax,
					"excess":    round1(*v.Moisture - st.MoistureMax),
					"severity":  MoistureSeverity(*v.Moisture),
				}
			},
		},
		{
			ID:          SeedLowTetrazolium,
			Name:        "Viabilidad por tetrazolio baja",
			Description: fmt.Sprintf("Tetrazolio menor a %.0f%%", st.TetrazoliumMin),
			Enabled:     th.enabled(DomainSeed, SeedLowTetrazolium),
			Priority:    High,
			Validate:    func(v SeedValues) bool { return below(v.Tetrazolium, st.TetrazoliumMin) },
			Build: func(v SeedValues, name string) Message {
				return Message{
					Title:          fmt.Sprintf("Viabilidad baja por tetrazolio: %s", name),
					Description:    fmt.Sprintf("Viabilidad por tetrazolio de %.1f%%, mínimo %.0f%%.", *v.Tetrazolium, st.TetrazoliumMin),
					Recommendation: "Confirmar con un test de germinación y considerar un tratamiento de semilla antes de sembrar.",
				}
			},
			Details: func(v SeedValues) map[string]any {
				return map[string]any{
					"tetrazolium": *v.Tetrazolium,
					"threshold":   st.TetrazoliumMin,
					"deficit":     round1(st.TetrazoliumMin - *v.Tetrazolium),
				}
			},
		},
		{
			ID:          SeedTestDiscrepancy,
			Name:        "Discrepancia entre tests",
			Description: fmt.Sprintf("Diferencia entre germinación y tetrazolio mayor a %.0f puntos", st.DiscrepancyMax),
			Enabled:     th.enabled(DomainSeed, SeedTestDiscrepancy),
			Priority:    Medium,
			Validate: func(v SeedValues) bool {
				if v.Germination == nil || v.Tetrazolium == nil {
					return false
				}
				return math.Abs(*v.Germination-*v.Tetrazolium) > st.DiscrepancyMax
			},
			Build: func(v SeedValues, name string) Message {
				diff := math.Abs(*v.Germination - *v.Tetrazolium)
				rec := "Repetir ambos análisis. Una germinación menor al tetrazolio suele indicar dormancia o problemas sanitarios."
				if *v.Germination > *v.Tetrazolium {
					rec = "Repetir el test de tetrazolio. Un valor menor a la germinación sugiere un error de muestreo."
				}
				return Message{
					Title: fmt.Sprintf("Discrepancia entre tests: %s", name),
					Description: fmt.Sprintf("Germinación %.1f%% y tetrazolio %.1f%% difieren en %.1f puntos.",
						*v.Germination, *v.Tetrazolium, diff),
					Recommendation: rec,
				}
			},
			Details: func(v SeedValues) map[string]any {
				return map[string]any{
					"germination": *v.Germination,
					"tetrazolium": *v.Tetrazolium,
					"difference":  round1(math.Abs(*v.Germination - *v.Tetrazolium)),
					"threshold":   st.DiscrepancyMax,
				}
			},
		},
	}
}
