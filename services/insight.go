package services

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	TimingStrong   = "Strong boost"
	TimingModerate = "Moderate boost"
	TimingSlight   = "Slight boost"
	TimingNeutral  = "Neutral"

	strongEngagement  = 40.0
	healthyEngagement = 15.0
)

var printer = message.NewPrinter(language.English)

// FormatCount renders n with thousands separators, e.g. 12,345.
func FormatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

func isPeakHour(hour int) bool {
	return hour >= 14 && hour <= 17
}

func isWeekend(day int) bool {
	return day >= 5
}

// TimingLabel rates a publish slot: afternoons (14-17h) and weekends help.
func TimingLabel(hour, day int) string {
	switch {
	case isPeakHour(hour) && isWeekend(day):
		return TimingStrong
	case isPeakHour(hour):
		return TimingModerate
	case isWeekend(day):
		return TimingSlight
	default:
		return TimingNeutral
	}
}

// ViewRange is the band of views expected under similar conditions.
func ViewRange(views int64) (low, high int64) {
	return int64(math.Round(float64(views) * 0.7)), int64(math.Round(float64(views) * 1.3))
}

func Insight(views int64, engagement float64, category string, hour, day int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "This setup could earn around %s views for a %s video. ", FormatCount(views), category)

	switch {
	case engagement >= strongEngagement:
		b.WriteString("Your engagement level is extremely strong; consider reusing this format if it performs well. ")
	case engagement >= healthyEngagement:
		b.WriteString("Engagement looks healthy. Focus on a strong hook and a clear thumbnail to fully leverage it. ")
	default:
		b.WriteString("Engagement is on the lower side. Try improving your title, thumbnail and call-to-action to boost likes and comments. ")
	}

	switch {
	case isPeakHour(hour) && isWeekend(day):
		b.WriteString("Posting during the afternoon on a weekend gives you a powerful timing advantage.")
	case isPeakHour(hour):
		b.WriteString("Your posting time lands in a good engagement window; this will help early momentum.")
	case isWeekend(day):
		b.WriteString("Weekends are generally more forgiving, but try experimenting with afternoon time slots.")
	default:
		b.WriteString("Consider testing afternoon slots (2-5 PM) and comparing performance across weekdays.")
	}

	return b.String()
}
