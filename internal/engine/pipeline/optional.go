package pipeline

import (
	"math"

	"go.trai.ch/chroma/internal/core/domain"
)

// Arithmetic over optional values. A null operand yields null, and so does any
// result that is not finite, which covers every division by zero.

func finite(v float64) domain.Optional[float64] {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return domain.None[float64]()
	}
	return domain.Some(v)
}

func sub(a, b domain.Optional[float64]) domain.Optional[float64] {
	if !a.Valid || !b.Valid {
		return domain.None[float64]()
	}
	return finite(a.Value - b.Value)
}

func mul(a, b domain.Optional[float64]) domain.Optional[float64] {
	if !a.Valid || !b.Valid {
		return domain.None[float64]()
	}
	return finite(a.Value * b.Value)
}

func div(a, b domain.Optional[float64]) domain.Optional[float64] {
	if !a.Valid || !b.Valid || b.Value == 0 {
		return domain.None[float64]()
	}
	return finite(a.Value / b.Value)
}
