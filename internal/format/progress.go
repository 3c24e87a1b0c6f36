package format

import (
	"fmt"
	"strings"
	"time"
)

// maxETA caps estimates produced from very slow early progress.
const maxETA = 24 * time.Hour

// CaseProgress tracks completed cases against a planned total and derives
// an ETA from the average time per case so far.
type CaseProgress struct {
	total     int
	done      int
	startTime time.Time
	now       func() time.Time
}

// NewCaseProgress starts tracking a run of total cases.
func NewCaseProgress(total int) *CaseProgress {
	p := &CaseProgress{total: total, now: time.Now}
	p.startTime = p.now()
	return p
}

// Update records the number of completed cases and returns the completed
// fraction and the remaining-time estimate.
func (p *CaseProgress) Update(done int) (float64, time.Duration) {
	if done < 0 {
		done = 0
	}
	if p.total > 0 && done > p.total {
		done = p.total
	}
	p.done = done
	return p.Fraction(), p.ETA()
}

// Fraction returns the completed share in [0, 1].
func (p *CaseProgress) Fraction() float64 {
	if p.total <= 0 {
		return 0
	}
	return float64(p.done) / float64(p.total)
}

// ETA estimates the remaining time. It is 0 until the first case completes.
func (p *CaseProgress) ETA() time.Duration {
	if p.done == 0 || p.done >= p.total {
		return 0
	}
	elapsed := p.now().Sub(p.startTime)
	perCase := elapsed / time.Duration(p.done)
	eta := perCase * time.Duration(p.total-p.done)
	if eta > maxETA || eta < 0 {
		return maxETA
	}
	return eta
}

// ProgressBar renders a bar of the given width for progress in [0, 1].
// Out-of-range values are clamped.
func ProgressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// FormatProgressBarWithETA renders "[bar]  42.0% ETA: 1m5s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), progress*100, FormatETA(eta))
}
