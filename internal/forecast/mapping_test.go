package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type noRule struct {
	Value float64
}

type duplicateKey struct {
	A float64 `src:"temp"`
	B float64 `src:"temp"`
}

type badPercent struct {
	Text string `src:"text,percent"`
}

type badUnix struct {
	At float64 `src:"at,unix"`
}

type unknownOption struct {
	Value float64 `src:"value,celsius"`
}

type unsupportedKind struct {
	Lookup map[string]string `src:"lookup"`
}

type nestedBad struct {
	Inner noRule `src:"inner"`
}

type recursive struct {
	Next []recursive `src:"next"`
}

type skipped struct {
	Kept    string   `src:"kept"`
	Derived []string `src:"-"`
	hidden  int
}

func TestRegisterRejectsInvalidTables(t *testing.T) {
	cases := map[string]any{
		"missing rule":     noRule{},
		"duplicate key":    duplicateKey{},
		"percent on text":  badPercent{},
		"unix on number":   badUnix{},
		"unknown option":   unknownOption{},
		"unsupported kind": unsupportedKind{},
		"nested":           nestedBad{},
		"recursive":        recursive{},
		"not a struct":     42,
	}
	for name, sample := range cases {
		t.Run(name, func(t *testing.T) {
			require.Error(t, Register(sample))
		})
	}
}

func TestMustRegisterPanics(t *testing.T) {
	require.Panics(t, func() { MustRegister(duplicateKey{}) })
}

func TestRegisterSkipsDerivedAndUnexportedFields(t *testing.T) {
	require.NoError(t, Register(&skipped{}))

	var s skipped
	require.NoError(t, Bind("p", "doc", map[string]any{"kept": "yes", "Derived": []any{"x"}}, &s))
	require.Equal(t, "yes", s.Kept)
	require.Nil(t, s.Derived)
	require.Zero(t, s.hidden)
}

type sample struct {
	Name     string      `src:"name" validate:"required"`
	Count    int         `src:"count"`
	Chance   Probability `src:"chance,percent" validate:"gte=0,lte=1"`
	At       time.Time   `src:"at,unix"`
	Since    *time.Time  `src:"since"`
	Note     *string     `src:"note"`
	Reading  ValueUnit   `src:"reading"`
	Readings []ValueUnit `src:"readings" validate:"dive"`
}

func TestBindAndEncode(t *testing.T) {
	doc := map[string]any{
		"name":     "station",
		"count":    3.0,
		"chance":   40.0,
		"at":       1704121200.0,
		"since":    "2023-12-31T00:00:00Z",
		"reading":  map[string]any{"Value": 1.5, "Unit": "C"},
		"readings": []any{map[string]any{"Value": 2.0, "Unit": "F"}},
		"extra":    true,
	}

	var s sample
	require.NoError(t, Decode("p", "doc", doc, &s))
	require.Equal(t, "station", s.Name)
	require.Equal(t, 3, s.Count)
	require.InDelta(t, 0.4, float64(s.Chance), 1e-9)
	require.Equal(t, time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC), s.At)
	require.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), *s.Since)
	require.Nil(t, s.Note)
	require.Equal(t, []ValueUnit{{Value: 2, Unit: "F"}}, s.Readings)

	out, err := Encode(s)
	require.NoError(t, err)
	delete(doc, "extra")
	require.Equal(t, doc, out)
}

func TestBindErrors(t *testing.T) {
	valid := func() map[string]any {
		return map[string]any{
			"name":     "station",
			"count":    3.0,
			"chance":   40.0,
			"at":       1704121200.0,
			"reading":  map[string]any{"Value": 1.5, "Unit": "C"},
			"readings": []any{},
		}
	}

	cases := []struct {
		name   string
		mutate func(map[string]any)
		kind   error
		path   string
	}{
		{"missing", func(d map[string]any) { delete(d, "name") }, ErrSchemaValidation, "doc.name"},
		{"null required", func(d map[string]any) { d["count"] = nil }, ErrSchemaValidation, "doc.count"},
		{"wrong scalar", func(d map[string]any) { d["name"] = 7.0 }, ErrSchemaValidation, "doc.name"},
		{"fractional int", func(d map[string]any) { d["count"] = 2.5 }, ErrSchemaValidation, "doc.count"},
		{"string for epoch", func(d map[string]any) { d["at"] = "2024-01-01T15:00:00Z" }, ErrSchemaValidation, "doc.at"},
		{"number for timestamp", func(d map[string]any) { d["since"] = 17.0 }, ErrSchemaValidation, "doc.since"},
		{"bad timestamp", func(d map[string]any) { d["since"] = "yesterday" }, ErrSchemaValidation, "doc.since"},
		{"int overflow", func(d map[string]any) { d["count"] = 1e20 }, ErrSchemaValidation, "doc.count"},
		{"int underflow", func(d map[string]any) { d["count"] = -1e19 }, ErrSchemaValidation, "doc.count"},
		{"nested object", func(d map[string]any) { d["reading"] = []any{} }, ErrMalformedResponse, "doc.reading"},
		{"nested list", func(d map[string]any) { d["readings"] = map[string]any{} }, ErrMalformedResponse, "doc.readings"},
		{"null entry", func(d map[string]any) { d["readings"] = []any{nil} }, ErrMalformedResponse, "doc.readings[0]"},
		{"nested field", func(d map[string]any) { d["reading"] = map[string]any{"Value": 1.0} }, ErrSchemaValidation, "doc.reading.Unit"},
		{"domain", func(d map[string]any) { d["chance"] = 140.0 }, ErrSchemaValidation, "doc.chance"},
		{"empty required", func(d map[string]any) { d["name"] = "" }, ErrSchemaValidation, "doc.name"},
		{"list entry domain", func(d map[string]any) {
			d["readings"] = []any{map[string]any{"Value": 1.0, "Unit": ""}}
		}, ErrSchemaValidation, "doc.readings[0].Unit"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := valid()
			tc.mutate(doc)

			var s sample
			err := Decode("p", "doc", doc, &s)
			require.ErrorIs(t, err, tc.kind)
			fe, ok := AsError(err)
			require.True(t, ok)
			require.Equal(t, "p", fe.Provider)
			require.Equal(t, tc.path, fe.Path)
		})
	}
}

func TestBindOptional(t *testing.T) {
	base := map[string]any{
		"name": "s", "count": 1.0, "chance": 0.0, "at": 0.0,
		"reading": map[string]any{"Value": 0.0, "Unit": "C"}, "readings": []any{},
	}

	var absent sample
	require.NoError(t, Decode("p", "", base, &absent))
	require.Nil(t, absent.Note)

	base["note"] = nil
	var null sample
	require.NoError(t, Decode("p", "", base, &null))
	require.Nil(t, null.Note)

	base["note"] = "windy"
	var set sample
	require.NoError(t, Decode("p", "", base, &set))
	require.NotNil(t, set.Note)
	require.Equal(t, "windy", *set.Note)
}

func TestBindRequiresPointer(t *testing.T) {
	require.Error(t, Bind("p", "", map[string]any{}, sample{}))
	require.Error(t, Bind("p", "", map[string]any{}, (*sample)(nil)))
}

func TestParseTime(t *testing.T) {
	cases := map[string]struct {
		raw  any
		unix bool
		want time.Time
	}{
		"rfc3339 utc": {"2024-01-01T10:00:00Z", false, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		"zero offset": {"2024-01-01T10:00:00+00:00", false, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		"fractional":  {"2024-01-01T10:00:00.5Z", false, time.Date(2024, 1, 1, 10, 0, 0, 5e8, time.UTC)},
		"local":       {"2024-01-01T10:00:00", false, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		"date":        {"2024-01-01", false, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		"unix":        {1704103200.0, true, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := parseTime(tc.raw, tc.unix)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	offset, err := parseTime("2024-01-01T10:00:00-05:00", false)
	require.NoError(t, err)
	require.True(t, offset.Equal(time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)))

	_, err = parseTime(true, false)
	require.Error(t, err)
	_, err = parseTime("01/02/2024", false)
	require.Error(t, err)
	_, err = parseTime(1704103200.0, false)
	require.Error(t, err)
	_, err = parseTime("2024-01-01", true)
	require.Error(t, err)
	_, err = parseTime(1e300, true)
	require.Error(t, err)
}

type narrow struct {
	Code int32 `src:"code"`
}

func TestBindIntegerWidth(t *testing.T) {
	var n narrow
	require.NoError(t, Bind("p", "doc", map[string]any{"code": 2147483647.0}, &n))
	require.EqualValues(t, math.MaxInt32, n.Code)

	err := Bind("p", "doc", map[string]any{"code": 2147483648.0}, &n)
	require.ErrorIs(t, err, ErrSchemaValidation)
	fe, ok := AsError(err)
	require.True(t, ok)
	require.Equal(t, "doc.code", fe.Path)
}
