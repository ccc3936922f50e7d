package rules

import "fmt"

const (
	RainfallDeficit = "deficit_hidrico"
	RainfallExcess  = "exceso_hidrico"
	RainfallIntense = "lluvia_intensa"
)

// RainfallValues aggregates a premise's rainfall records. Accumulations are
// nil when the premise has no record recent enough to cover the window.
type RainfallValues struct {
	LatestMM      *float64
	DeficitWindow *float64 // accumulated mm over DeficitWindowDays
	ExcessWindow  *float64 // accumulated mm over ExcessWindowDays
	Records       int
}

func rainfallRules(th Thresholds) []Rule[RainfallValues] {
	rt := th.Rainfall
	return []Rule[RainfallValues]{
		{
			ID:          RainfallDeficit,
			Name:        "Déficit hídrico",
			Description: fmt.Sprintf("Menos de %.0f mm acumulados en %d días", rt.DeficitMinMM, rt.DeficitWindowDays),
			Enabled:     th.enabled(DomainRainfall, RainfallDeficit),
			Priority:    High,
			Validate:    func(v RainfallValues) bool { return below(v.DeficitWindow, rt.DeficitMinMM) },
			Build: func(v RainfallValues, name string) Message {
				return Message{
					Title: fmt.Sprintf("Déficit hídrico en %s", name),
					Description: fmt.Sprintf("Se acumularon %.1f mm en los últimos %d días, por debajo de %.0f mm.",
						*v.DeficitWindow, rt.DeficitWindowDays, rt.DeficitMinMM),
					Recommendation: "Revisar reservas de agua y aguadas, ajustar la carga animal y postergar siembras sin riego.",
				}
			},
			Details: func(v RainfallValues) map[string]any {
				return map[string]any{
					"accumulated_mm": *v.DeficitWindow,
					"window_days":    rt.DeficitWindowDays,
					"threshold_mm":   rt.DeficitMinMM,
					"deficit_mm":     round1(rt.DeficitMinMM - *v.DeficitWindow),
				}
			},
		},
		{
			ID:          RainfallExcess,
			Name:        "Exceso hídrico",
			Description: fmt.Sprintf("Más de %.0f mm acumulados en %d días", rt.ExcessMaxMM, rt.ExcessWindowDays),
			Enabled:     th.enabled(DomainRainfall, RainfallExcess),
			Priority:    Medium,
			Validate:    func(v RainfallValues) bool { return above(v.ExcessWindow, rt.ExcessMaxMM) },
			Build: func(v RainfallValues, name string) Message {
				return Message{
					Title: fmt.Sprintf("Exceso hídrico en %s", name),
					Description: fmt.Sprintf("Se acumularon %.1f mm en los últimos %d días, por encima de %.0f mm.",
						*v.ExcessWindow, rt.ExcessWindowDays, rt.ExcessMaxMM),
					Recommendation: "Evitar el tránsito de maquinaria y animales en lotes anegados y revisar drenajes.",
				}
			},
			Details: func(v RainfallValues) map[string]any {
				return map[string]any{
					"accumulated_mm": *v.ExcessWindow,
					"window_days":    rt.ExcessWindowDays,
					"threshold_mm":   rt.ExcessMaxMM,
					"excess_mm":      round1(*v.ExcessWindow - rt.ExcessMaxMM),
				}
			},
		},
		{
			ID:          RainfallIntense,
			Name:        "Lluvia intensa",
			Description: fmt.Sprintf("Un registro mayor a %.0f mm", rt.IntenseEventMM),
			Enabled:     th.enabled(DomainRainfall, RainfallIntense),
			Priority:    Medium,
			Validate:    func(v RainfallValues) bool { return above(v.LatestMM, rt.IntenseEventMM) },
			Build: func(v RainfallValues, name string) Message {
				return Message{
					Title:          fmt.Sprintf("Lluvia intensa en %s", name),
					Description:    fmt.Sprintf("El último registro fue de %.1f mm, por encima de %.0f mm.", *v.LatestMM, rt.IntenseEventMM),
					Recommendation: "Recorrer los lotes para detectar erosión, alambrados caídos o animales aislados.",
				}
			},
			Details: func(v RainfallValues) map[string]any {
				return map[string]any{
					"latest_mm":    *v.LatestMM,
					"threshold_mm": rt.IntenseEventMM,
				}
			},
		},
	}
}
