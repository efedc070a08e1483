package agenda

import "time"

// Greeting returns the time-of-day salutation for the dashboard header.
func Greeting(now time.Time) string {
	switch hour := now.Hour(); {
	case hour < 12:
		return "Good Morning"
	case hour < 17:
		return "Good Afternoon"
	case hour < 21:
		return "Good Evening"
	default:
		return "Good Night"
	}
}
