package types

import (
	"time"

	"github.com/cockroachdb/errors"
)

// Temporal kinds are stored as packed integers so that ordering and copying
// never go through text. The packings preserve chronological order for
// years 0..32767.
//
//	LOCAL_DATE       int32  year<<16 | month<<8 | day
//	LOCAL_TIME       int32  millisecond of day
//	LOCAL_DATE_TIME  int64  date<<32 | time
//	INSTANT          int64  Unix milliseconds, UTC

const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05.000"
	DateTimeLayout = "2006-01-02T15:04:05.000"
	InstantLayout  = "2006-01-02T15:04:05.000Z07:00"
)

const millisPerDay = 24 * 60 * 60 * 1000

func PackDate(t time.Time) int32 {
	return int32(t.Year())<<16 | int32(t.Month())<<8 | int32(t.Day())
}

func UnpackDate(packed int32) time.Time {
	return time.Date(int(packed>>16), time.Month((packed>>8)&0xff), int(packed&0xff), 0, 0, 0, 0, time.UTC)
}

func PackTime(t time.Time) int32 {
	ms := ((t.Hour()*60+t.Minute())*60+t.Second())*1000 + t.Nanosecond()/int(time.Millisecond)
	return int32(ms)
}

func UnpackTime(packed int32) time.Time {
	return time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(packed) * time.Millisecond)
}

func PackDateTime(t time.Time) int64 {
	return int64(PackDate(t))<<32 | int64(uint32(PackTime(t)))
}

func UnpackDateTime(packed int64) time.Time {
	d := UnpackDate(int32(packed >> 32))
	ms := int64(uint32(packed))
	return d.Add(time.Duration(ms) * time.Millisecond)
}

func PackInstant(t time.Time) int64 {
	return t.UnixMilli()
}

func UnpackInstant(packed int64) time.Time {
	return time.UnixMilli(packed).UTC()
}

// validTimeOfDay rejects packed times outside a single day.
func validTimeOfDay(packed int32) error {
	if packed < 0 || packed >= millisPerDay {
		return errors.Newf("time of day %dms out of range", packed)
	}
	return nil
}
