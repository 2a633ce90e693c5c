package types

import (
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// The Parse* functions convert the textual form of a cell into the native
// representation used by the column of that kind. Callers treat the empty
// string as a missing value before reaching these functions.

func ParseShort(s string) (int16, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 16)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing %s value", ShortType)
	}
	return int16(v), nil
}

func ParseInt(s string) (int32, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing %s value", IntType)
	}
	return int32(v), nil
}

func ParseLong(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing %s value", LongType)
	}
	return v, nil
}

func ParseFloat(s string) (float32, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing %s value", FloatType)
	}
	return float32(v), nil
}

func ParseDouble(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing %s value", DoubleType)
	}
	return v, nil
}

func ParseBoolean(s string) (bool, error) {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, errors.Wrapf(err, "parsing %s value", BooleanType)
	}
	return v, nil
}

// ParseDate accepts ISO dates (2006-01-02).
func ParseDate(s string) (int32, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Wrapf(err, "parsing %s value", LocalDateType)
	}
	return PackDate(t), nil
}

// ParseTime accepts 15:04, 15:04:05 and 15:04:05.000.
func ParseTime(s string) (int32, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{TimeLayout, "15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			packed := PackTime(t)
			return packed, validTimeOfDay(packed)
		}
	}
	return 0, errors.Newf("parsing %s value: invalid time %q", LocalTimeType, s)
}

// ParseDateTime accepts ISO local date-times with or without milliseconds,
// separated by either 'T' or a space.
func ParseDateTime(s string) (int64, error) {
	s = strings.Replace(strings.TrimSpace(s), " ", "T", 1)
	for _, layout := range []string{DateTimeLayout, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return PackDateTime(t), nil
		}
	}
	return 0, errors.Newf("parsing %s value: invalid date-time %q", LocalDateTimeType, s)
}

// ParseInstant accepts RFC 3339 timestamps.
func ParseInstant(s string) (int64, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Wrapf(err, "parsing %s value", InstantType)
	}
	return PackInstant(t), nil
}

func FormatDate(packed int32) string {
	return UnpackDate(packed).Format(DateLayout)
}

func FormatTime(packed int32) string {
	return UnpackTime(packed).Format(TimeLayout)
}

func FormatDateTime(packed int64) string {
	return UnpackDateTime(packed).Format(DateTimeLayout)
}

func FormatInstant(packed int64) string {
	return UnpackInstant(packed).Format(InstantLayout)
}
