package wordcloud

import (
	"fmt"

	"github.com/linuxmatters/lyricloud/internal/config"
)

// Tuning is the fixed layout configuration. Only the font size bounds reach
// the placement library; the rest are reported so runs can be compared.
type Tuning struct {
	MinFontSize      int
	MaxFontSize      int
	PreferHorizontal float64
	FontStep         int
	Margin           int
	Collocations     bool
	NormalizePlurals bool
	Repeat           bool
}

// DefaultTuning returns the tuning every cloud is drawn with
func DefaultTuning() Tuning {
	return Tuning{
		MinFontSize:      config.MinFontSize,
		MaxFontSize:      config.MaxFontSize,
		PreferHorizontal: config.PreferHorizontal,
		FontStep:         config.FontStep,
		Margin:           config.Margin,
		Collocations:     config.Collocations,
		NormalizePlurals: config.NormalizePlurals,
		Repeat:           config.Repeat,
	}
}

func (t Tuning) String() string {
	return fmt.Sprintf("font %d-%dpx step %d, prefer_horizontal %.1f, margin %d, collocations %t, normalize_plurals %t, repeat %t",
		t.MinFontSize, t.MaxFontSize, t.FontStep, t.PreferHorizontal, t.Margin, t.Collocations, t.NormalizePlurals, t.Repeat)
}
