package util

import "time"

// jstLocation is a fixed UTC+9 offset, independent of the tz database.
var jstLocation = time.FixedZone("JST", 9*60*60)

func FormatJST(t time.Time, layout string) string {
	return t.In(jstLocation).Format(layout)
}
