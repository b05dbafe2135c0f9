package models

import "time"

// TimestampLayout matches the original event records: fixed-precision local
// time with zone abbreviation and offset, e.g.
// "2024-03-08 17:42:10 CST-0600".
const TimestampLayout = "2006-01-02 15:04:05 MST-0700"

// DateLayout is the civil-date prefix used by the same-day visits query.
const DateLayout = "2006-01-02"

var mexicoCity *time.Location

func init() {
	loc, err := time.LoadLocation("America/Mexico_City")
	if err != nil {
		// tzdata missing from the image; the offset is what the records need.
		loc = time.FixedZone("CST", -6*60*60)
	}
	mexicoCity = loc
}

// Timestamp formats t as an event timestamp in Mexico City civil time.
func Timestamp(t time.Time) string {
	return t.In(mexicoCity).Format(TimestampLayout)
}

// Today returns the Mexico City civil date of t.
func Today(t time.Time) string {
	return t.In(mexicoCity).Format(DateLayout)
}
