package virality

import "github.com/veritaslabs/veritas/internal/model"

// bucket partitions the virality score: [0,40) low, [40,70) elevated,
// [70,85) high, [85,100] extreme.
type bucket int

const (
	bucketLow bucket = iota
	bucketElevated
	bucketHigh
	bucketExtreme
)

func bucketOf(virality int) bucket {
	switch {
	case virality < 40:
		return bucketLow
	case virality < 70:
		return bucketElevated
	case virality < 85:
		return bucketHigh
	default:
		return bucketExtreme
	}
}

// riskTable is exhaustive over (label, bucket). A false claim is never
// below high risk; a true claim only rises when spread is extreme.
var riskTable = map[model.Label][4]model.RiskLevel{
	model.LabelFalse: {
		bucketLow:      model.RiskHigh,
		bucketElevated: model.RiskHigh,
		bucketHigh:     model.RiskCritical,
		bucketExtreme:  model.RiskCritical,
	},
	model.LabelNeutral: {
		bucketLow:      model.RiskMedium,
		bucketElevated: model.RiskMedium,
		bucketHigh:     model.RiskMedium,
		bucketExtreme:  model.RiskMedium,
	},
	model.LabelTrue: {
		bucketLow:      model.RiskLow,
		bucketElevated: model.RiskLow,
		bucketHigh:     model.RiskLow,
		bucketExtreme:  model.RiskMedium,
	},
}

// RiskFor returns the risk level for a verdict label at a virality score
func RiskFor(label model.Label, virality int) model.RiskLevel {
	levels, ok := riskTable[label]
	if !ok {
		levels = riskTable[model.LabelNeutral]
	}
	return levels[bucketOf(virality)]
}
