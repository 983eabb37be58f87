package wordcloud

// Stage is a step of Generate, reported through Options.Progress
type Stage int

const (
	StageValidate Stage = iota
	StagePalette
	StageFont
	StageWords
	StageLayout
	StageMask
	StageEncode
	StageDone
)

var stageNames = [...]string{
	StageValidate: "Validating input",
	StagePalette:  "Parsing colours",
	StageFont:     "Finding font",
	StageWords:    "Counting words",
	StageLayout:   "Laying out words",
	StageMask:     "Masking background",
	StageEncode:   "Encoding PNG",
	StageDone:     "Done",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "Unknown"
	}
	return stageNames[s]
}

// Fraction is how far through generation the stage sits, for progress bars
func (s Stage) Fraction() float64 {
	if s <= 0 {
		return 0
	}
	if s >= StageDone {
		return 1
	}
	return float64(s) / float64(StageDone)
}
