package constants

const (
	// Consistency score weights. They must sum to 1.0.
	ConsistencyRatioWeight  = 0.50
	ConsistencyStreakWeight = 0.25
	ConsistencyGapWeight    = 0.25

	// TargetStreak is the run length at which the streak-quality term saturates.
	TargetStreak = 4

	// MinSingleGapScore is the floor of the gap term when a period holds a
	// single completion that is not on the reference day.
	MinSingleGapScore = 0.2

	MaxScore = 100
)

func init() {
	if ConsistencyRatioWeight+ConsistencyStreakWeight+ConsistencyGapWeight != 1.0 {
		panic("consistency weights must sum to 1.0")
	}
}
