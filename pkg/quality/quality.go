// Package quality computes the composite seed quality score.
package quality

import "math"

type Band string

const (
	Excellent  Band = "EXCELENTE"
	Good       Band = "BUENA"
	Acceptable Band = "ACEPTABLE"
	Deficient  Band = "DEFICIENTE"
	Inadequate Band = "INADECUADA"
	NoData     Band = "SIN_DATOS"
)

const (
	germinationWeight = 0.40
	purityWeight      = 0.30
	tetrazoliumWeight = 0.15
)

// Score is a derived value and is never persisted. Value is nil when no
// factor was present.
type Score struct {
	Value   *float64 `json:"score"`
	Band    Band     `json:"band"`
	Message string   `json:"message"`
}

// moisturePoints scores moisture in steps: lower is better.
func moisturePoints(m float64) float64 {
	switch {
	case m <= 12:
		return 15
	case m <= 13:
		return 10
	case m <= 14:
		return 5
	}
	return 0
}

// Compute blends the present factors. Absent factors contribute nothing and
// the result is not rescaled, so partial data yields a partial score.
func Compute(germination, purity, moisture, tetrazolium *float64) Score {
	present := 0
	total := 0.0
	if germination != nil {
		total += *germination * germinationWeight
		present++
	}
	if purity != nil {
		total += *purity * purityWeight
		present++
	}
	if moisture != nil {
		total += moisturePoints(*moisture)
		present++
	}
	if tetrazolium != nil {
		total += *tetrazolium * tetrazoliumWeight
		present++
	}
	if present == 0 {
		return Score{Band: NoData, Message: "Sin datos de análisis para calcular la calidad."}
	}

	total = math.Max(0, math.Min(100, math.Round(total*10)/10))
	band := Classify(total)
	return Score{Value: &total, Band: band, Message: message(band)}
}

func Classify(score float64) Band {
	switch {
	case score >= 90:
		return Excellent
	case score >= 80:
		return Good
	case score >= 70:
		return Acceptable
	case score >= 60:
		return Deficient
	}
	return Inadequate
}

func message(b Band) string {
	switch b {
	case Excellent:
		return "Semilla de calidad excelente, apta para siembra."
	case Good:
		return "Semilla de buena calidad, apta para siembra."
	case Acceptable:
		return "Calidad aceptable. Considerar un ajuste en la densidad de siembra."
	case Deficient:
		return "Calidad deficiente. Aumentar la densidad de siembra o evaluar reemplazo."
	}
	return "Calidad inadecuada. No se recomienda sembrar."
}
