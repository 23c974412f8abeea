package services

import (
	"sort"
	"strconv"

	"github.com/blossomhealth/blossom/internal/models"
)

const CorrelationNoDataMessage = "No symptom data with cycle days yet"

type CycleDayRange struct {
	MinCycleDay int `json:"min_cycle_day"`
	MaxCycleDay int `json:"max_cycle_day"`
}

// SymptomCorrelation holds the two aggregate views over a user's symptom
// log: symptoms grouped by cycle day, and the observed cycle-day range per
// symptom. NoData marks the empty-input variant; both maps are then empty
// but non-nil.
type SymptomCorrelation struct {
	NoData             bool
	Message            string
	SymptomsByCycleDay map[string][]string
	SymptomRanges      map[string]CycleDayRange
}

// BuildSymptomCorrelation aggregates entries that carry a derived cycle
// day. Entries without one are skipped. Symptom labels are matched
// case-sensitively and deduplicated with set semantics.
func BuildSymptomCorrelation(entries []models.SymptomLog) SymptomCorrelation {
	byCycleDay := make(map[string][]string)
	seenByDay := make(map[string]map[string]struct{})
	ranges := make(map[string]CycleDayRange)

	for _, entry := range entries {
		if entry.CycleDay == nil {
			continue
		}
		cycleDay := *entry.CycleDay
		label := strconv.Itoa(cycleDay)

		if seenByDay[label] == nil {
			seenByDay[label] = make(map[string]struct{})
		}
		for _, symptom := range entry.Symptoms {
			if _, ok := seenByDay[label][symptom]; !ok {
				seenByDay[label][symptom] = struct{}{}
				byCycleDay[label] = append(byCycleDay[label], symptom)
			}

			observed, tracked := ranges[symptom]
			if !tracked {
				ranges[symptom] = CycleDayRange{MinCycleDay: cycleDay, MaxCycleDay: cycleDay}
				continue
			}
			if cycleDay < observed.MinCycleDay {
				observed.MinCycleDay = cycleDay
			}
			if cycleDay > observed.MaxCycleDay {
				observed.MaxCycleDay = cycleDay
			}
			ranges[symptom] = observed
		}
	}

	for label := range byCycleDay {
		sort.Strings(byCycleDay[label])
	}

	if len(byCycleDay) == 0 {
		return SymptomCorrelation{
			NoData:             true,
			Message:            CorrelationNoDataMessage,
			SymptomsByCycleDay: byCycleDay,
			SymptomRanges:      ranges,
		}
	}

	return SymptomCorrelation{
		SymptomsByCycleDay: byCycleDay,
		SymptomRanges:      ranges,
	}
}
