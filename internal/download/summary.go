package download

import (
	"fmt"

	"github.com/khdl/khinsider-dl/internal/khinsider"
)

// Summary aggregates a run's track outcomes.
type Summary struct {
	Total     int
	Succeeded int
	Bytes     int64
}

// Summarize folds outcomes into a Summary. Album-level expansion
// failures are not tracks and do not count toward Total.
func Summarize(outcomes []Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		if _, ok := o.Ref.(khinsider.TrackRef); !ok {
			continue
		}
		s.Total++
		if o.Err == nil {
			s.Succeeded++
			s.Bytes += o.Bytes
		}
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("Downloaded %d/%d tracks (%.2f MB)", s.Succeeded, s.Total, float64(s.Bytes)/(1024*1024))
}
