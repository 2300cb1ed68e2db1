package dto

// Signal adalah keputusan diskrit per bar hasil evaluasi strategy.
type Signal string

const (
	SignalBuy  Signal = "BUY"
	SignalSell Signal = "SELL"
	SignalHold Signal = "HOLD"
)

// AggregationMode menentukan bagaimana vote dari beberapa rule digabung.
type AggregationMode string

const (
	// AggregationUnanimous hanya fire kalau semua rule yang ikut voting setuju.
	AggregationUnanimous AggregationMode = "unanimous"
	// AggregationAny fire kalau ada satu rule yang fire; konflik BUY vs SELL
	// di bar yang sama menghasilkan HOLD, tidak pernah pilih sepihak.
	AggregationAny AggregationMode = "any"
	// AggregationMajority fire ke arah dengan suara terbanyak; seri = HOLD.
	AggregationMajority AggregationMode = "majority"
)

func (m AggregationMode) Valid() bool {
	switch m {
	case AggregationUnanimous, AggregationAny, AggregationMajority:
		return true
	}
	return false
}
