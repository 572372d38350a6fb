package timeseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Format identifies a series document encoding.
type Format string

const (
	// FormatJSON is a JSON document.
	FormatJSON Format = "json"
	// FormatYAML is a YAML document.
	FormatYAML Format = "yaml"
	// FormatCSV is a CSV table with a header row.
	FormatCSV Format = "csv"
)

// Default field names.
const (
	DefaultTimeField  = "time"
	DefaultValueField = "value"
)

// Sentinel loader errors.
var (
	ErrUnknownFormat = errors.New("unknown series format")
	ErrFieldNotFound = errors.New("field not found")
	ErrBadDocument   = errors.New("unsupported series document shape")
)

// Options selects the time and value fields of a document.
type Options struct {
	TimeField  string
	ValueField string
}

func (o Options) withDefaults() Options {
	if o.TimeField == "" {
		o.TimeField = DefaultTimeField
	}

	if o.ValueField == "" {
		o.ValueField = DefaultValueField
	}

	return o
}

// FormatFromPath guesses the format from a file extension.
// ok is false when the extension is not recognized.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".csv":
		return FormatCSV, true
	default:
		return "", false
	}
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))

	switch f {
	case FormatJSON, FormatYAML, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Load reads a series document.
//
// JSON and YAML documents are either a list of rows, a mapping with a
// "points" list of rows, or a mapping holding parallel column lists keyed by
// the field names. Rows are mappings keyed by the field names. CSV documents
// need a header row naming both fields.
//
// Timestamps are RFC 3339 strings or epoch milliseconds. Null, empty or
// non-numeric values become missing samples. Rows whose timestamp cannot be
// read are counted in Series.Skipped and otherwise dropped.
func Load(r io.Reader, format Format, opts Options) (*Series, error) {
	opts = opts.withDefaults()

	switch format {
	case FormatJSON, FormatYAML:
		// YAML 1.2 is a superset of JSON, so one decoder serves both.
		return loadDocument(r, opts)
	case FormatCSV:
		return loadCSV(r, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func loadDocument(r io.Reader, opts Options) (*Series, error) {
	var root yaml.Node

	err := yaml.NewDecoder(r).Decode(&root)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Series{}, nil
		}

		return nil, fmt.Errorf("decode series: %w", err)
	}

	doc := &root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}

	series := &Series{}

	switch doc.Kind {
	case yaml.SequenceNode:
		readRows(series, doc, opts)

		return series, nil
	case yaml.MappingNode:
		series.Name = scalarValue(mappingValue(doc, "name"))

		if points := mappingValue(doc, "points"); points != nil && points.Kind == yaml.SequenceNode {
			readRows(series, points, opts)

			return series, nil
		}

		timeCol := mappingValue(doc, opts.TimeField)
		valueCol := mappingValue(doc, opts.ValueField)

		if timeCol == nil {
			return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, opts.TimeField)
		}

		if valueCol == nil {
			return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, opts.ValueField)
		}

		if timeCol.Kind != yaml.SequenceNode || valueCol.Kind != yaml.SequenceNode {
			return nil, ErrBadDocument
		}

		readColumns(series, timeCol, valueCol)

		return series, nil
	default:
		return nil, ErrBadDocument
	}
}

func readRows(series *Series, rows *yaml.Node, opts Options) {
	for _, row := range rows.Content {
		if row.Kind != yaml.MappingNode {
			series.Skipped++

			continue
		}

		ts, ok := parseTimeNode(mappingValue(row, opts.TimeField))
		if !ok {
			series.Skipped++

			continue
		}

		series.Samples = append(series.Samples, sampleAt(ts, mappingValue(row, opts.ValueField)))
	}
}

func readColumns(series *Series, timeCol, valueCol *yaml.Node) {
	for i, tn := range timeCol.Content {
		ts, ok := parseTimeNode(tn)
		if !ok {
			series.Skipped++

			continue
		}

		var vn *yaml.Node
		if i < len(valueCol.Content) {
			vn = valueCol.Content[i]
		}

		series.Samples = append(series.Samples, sampleAt(ts, vn))
	}
}

func sampleAt(ts time.Time, valueNode *yaml.Node) Sample {
	v, ok := parseValue(scalarValue(valueNode))
	if !ok {
		return Gap(ts)
	}

	return Point(ts, v)
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}

	return nil
}

func scalarValue(node *yaml.Node) string {
	if node == nil || node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		return ""
	}

	return node.Value
}

func parseTimeNode(node *yaml.Node) (time.Time, bool) {
	if node == nil || node.Kind != yaml.ScalarNode {
		return time.Time{}, false
	}

	return ParseTime(node.Value)
}

// timeLayouts are tried in order for string timestamps.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTime reads an RFC 3339 style timestamp or an integer count of epoch
// milliseconds. Timestamps without a zone are read as UTC.
func ParseTime(raw string) (time.Time, bool) {
	return ParseTimeIn(raw, time.UTC)
}

// ParseTimeIn is ParseTime with zone-less timestamps read as wall clock
// time in loc.
func ParseTimeIn(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), true
	}

	for _, layout := range timeLayouts {
		if ts, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return ts, true
		}
	}

	return time.Time{}, false
}

func parseValue(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)

	switch strings.ToLower(raw) {
	case "", "null", "~", "nan", ".nan":
		return 0, false
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}

	return v, true
}

func loadCSV(r io.Reader, opts Options) (*Series, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Series{}, nil
		}

		return nil, fmt.Errorf("read csv header: %w", err)
	}

	timeIdx, valueIdx := -1, -1

	for i, name := range header {
		switch strings.TrimSpace(name) {
		case opts.TimeField:
			timeIdx = i
		case opts.ValueField:
			valueIdx = i
		}
	}

	if timeIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, opts.TimeField)
	}

	if valueIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, opts.ValueField)
	}

	series := &Series{Name: opts.ValueField}

	for {
		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}

		if readErr != nil {
			return nil, fmt.Errorf("read csv: %w", readErr)
		}

		if timeIdx >= len(record) {
			series.Skipped++

			continue
		}

		ts, ok := ParseTime(record[timeIdx])
		if !ok {
			series.Skipped++

			continue
		}

		var raw string
		if valueIdx < len(record) {
			raw = record[valueIdx]
		}

		if v, ok := parseValue(raw); ok {
			series.Samples = append(series.Samples, Point(ts, v))
		} else {
			series.Samples = append(series.Samples, Gap(ts))
		}
	}

	return series, nil
}
