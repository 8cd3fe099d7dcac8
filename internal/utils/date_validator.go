package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type DateFormat string

const (
	FormatISO8601       DateFormat = time.RFC3339Nano
	FormatISO8601Date   DateFormat = "2006-01-02"
	FormatDateTimeLocal DateFormat = "2006-01-02T15:04"
	FormatEuropeanDate  DateFormat = "02/01/2006"
	FormatDashDate      DateFormat = "02-01-2006"
	FormatDotDate       DateFormat = "02.01.2006"
)

var dayMonthYear = regexp.MustCompile(`^(\d{1,2})[/.-](\d{1,2})[/.-](\d{4})$`)

// DateValidator parses the date strings a form sends. Values without a
// zone are read in the validator's location.
type DateValidator struct {
	supportedFormats []DateFormat
	location         *time.Location
}

type ValidationResult struct {
	IsValid        bool
	DetectedFormat DateFormat
	ParsedTime     time.Time
	OriginalValue  string
}

func NewDateValidator(location *time.Location) *DateValidator {
	if location == nil {
		location = time.Local
	}
	return &DateValidator{
		supportedFormats: []DateFormat{
			FormatISO8601,
			FormatISO8601Date,
			FormatDateTimeLocal,
			FormatEuropeanDate,
			FormatDashDate,
			FormatDotDate,
		},
		location: location,
	}
}

func (dv *DateValidator) ValidateAndConvert(input string) ValidationResult {
	result := ValidationResult{OriginalValue: input}

	input = strings.TrimSpace(input)
	if input == "" {
		return result
	}

	for _, format := range dv.supportedFormats {
		parsed, err := time.ParseInLocation(string(format), input, dv.location)
		if err != nil || !dv.isValidForFormat(input, format) {
			continue
		}

		result.IsValid = true
		result.DetectedFormat = format
		result.ParsedTime = parsed
		return result
	}

	return result
}

func (dv *DateValidator) isValidForFormat(input string, format DateFormat) bool {
	switch format {
	case FormatEuropeanDate, FormatDashDate, FormatDotDate:
		matches := dayMonthYear.FindStringSubmatch(input)
		if len(matches) < 4 {
			return false
		}
		day, _ := strconv.Atoi(matches[1])
		month, _ := strconv.Atoi(matches[2])
		return month >= 1 && month <= 12 && day >= 1 && day <= 31
	default:
		return true
	}
}

// Parse returns the parsed time or an error naming the rejected input.
func (dv *DateValidator) Parse(input string) (time.Time, error) {
	result := dv.ValidateAndConvert(input)
	if !result.IsValid {
		return time.Time{}, fmt.Errorf("unrecognised date %q", input)
	}
	return result.ParsedTime, nil
}

// ParseOptional treats an empty input as absent.
func (dv *DateValidator) ParseOptional(input string) (*time.Time, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	parsed, err := dv.Parse(input)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
