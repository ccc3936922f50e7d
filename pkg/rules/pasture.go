package rules

import "fmt"

const (
	PastureOvergrazed  = "pastura_sobrepastoreo"
	PastureUndergrazed = "pastura_subpastoreo"
)

type PastureValues struct {
	HeightCM *float64
}

func pastureRules(th Thresholds) []Rule[PastureValues] {
	pt := th.Pasture
	return []Rule[PastureValues]{
		{
			ID:          PastureOvergrazed,
			Name:        "Sobrepastoreo",
			Description: fmt.Sprintf("Altura de pastura menor a %.0f cm", pt.MinHeightCM),
			Enabled:     th.enabled(DomainPasture, PastureOvergrazed),
			Priority:    High,
			Validate:    func(v PastureValues) bool { return below(v.HeightCM, pt.MinHeightCM) },
			Build: func(v PastureValues, name string) Message {
				return Message{
					Title:          fmt.Sprintf("Sobrepastoreo en %s", name),
					Description:    fmt.Sprintf("Altura de %.1f cm, por debajo del remanente mínimo de %.0f cm.", *v.HeightCM, pt.MinHeightCM),
					Recommendation: "Retirar los animales del lote y dar descanso hasta recuperar el remanente.",
				}
			},
			Details: func(v PastureValues) map[string]any {
				return map[string]any{
					"height_cm":    *v.HeightCM,
					"threshold_cm": pt.MinHeightCM,
				}
			},
		},
		{
			ID:          PastureUndergrazed,
			Name:        "Subpastoreo",
			Description: fmt.Sprintf("Altura de pastura mayor a %.0f cm", pt.MaxHeightCM),
			Enabled:     th.enabled(DomainPasture, PastureUndergrazed),
			Priority:    Low,
			Validate:    func(v PastureValues) bool { return above(v.HeightCM, pt.MaxHeightCM) },
			Build: func(v PastureValues, name string) Message {
				return Message{
					Title:          fmt.Sprintf("Subpastoreo en %s", name),
					Description:    fmt.Sprintf("Altura de %.1f cm, por encima de %.0f cm.", *v.HeightCM, pt.MaxHeightCM),
					Recommendation: "Aumentar la carga o planificar un corte para reservas antes de que la pastura pierda calidad.",
				}
			},
			Details: func(v PastureValues) map[string]any {
				return map[string]any{
					"height_cm":    *v.HeightCM,
					"threshold_cm": pt.MaxHeightCM,
				}
			},
		},
	}
}
