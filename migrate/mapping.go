package migrate

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Column headers of the mapping CSV.
const (
	titleColumn  = "Image Title"
	sourceColumn = "Source Id"
	targetColumn = "Target Id"
)

// notApplicable marks a source image that has no counterpart on the new site.
const notApplicable = "N/A"

// ImageMapping is one row of the mapping CSV.
type ImageMapping struct {
	Title       string
	SourceID    uuid.UUID
	TargetIDRaw string
}

// TargetID is the replacement image, if the row names one.  Blank cells, "N/A" (any case) and
// anything that isn't a UUID mean there is none.
func (m ImageMapping) TargetID() (uuid.UUID, bool) {
	if strings.TrimSpace(m.TargetIDRaw) == "" || strings.EqualFold(m.TargetIDRaw, notApplicable) {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(m.TargetIDRaw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Mapping translates legacy image IDs into target image IDs.  It is never mutated after
// construction, so it's safe to share between goroutines.  A nil *Mapping is empty.
type Mapping struct {
	targets map[uuid.UUID]uuid.UUID
}

// NewMapping keeps rows that have a usable target.  If a source ID shows up more than once, the
// first usable row wins.
func NewMapping(rows []ImageMapping) *Mapping {
	m := &Mapping{targets: make(map[uuid.UUID]uuid.UUID, len(rows))}
	for _, row := range rows {
		target, ok := row.TargetID()
		if !ok {
			continue
		}
		if _, seen := m.targets[row.SourceID]; seen {
			continue
		}
		m.targets[row.SourceID] = target
	}
	return m
}

func (m *Mapping) Target(source uuid.UUID) (uuid.UUID, bool) {
	if m == nil {
		return uuid.Nil, false
	}
	target, ok := m.targets[source]
	return target, ok
}

func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.targets)
}

// ReadMapping parses mapping rows from CSV.  Columns are found by header name, so extra columns
// and column order don't matter.  Rows without a source ID are skipped; a source ID that isn't a
// UUID makes the whole file malformed.
func ReadMapping(r io.Reader) ([]ImageMapping, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []ImageMapping{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("migrate: couldn't read CSV header: %w", err)
	}

	columns := map[string]int{}
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	cell := func(record []string, column string) string {
		i, ok := columns[strings.ToLower(column)]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	rows := []ImageMapping{}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("migrate: couldn't read CSV line %d: %w", line, err)
		}

		rawSource := strings.TrimSpace(cell(record, sourceColumn))
		if rawSource == "" {
			continue
		}
		source, err := uuid.Parse(rawSource)
		if err != nil {
			return nil, fmt.Errorf("migrate: bad %q on CSV line %d: %w", sourceColumn, line, err)
		}

		rows = append(rows, ImageMapping{
			Title:       cell(record, titleColumn),
			SourceID:    source,
			TargetIDRaw: cell(record, targetColumn),
		})
	}

	return rows, nil
}

// LoadMapping reads the mapping CSV at path.  It never fails the run: if the file is missing or
// broken we say so and carry on with an empty mapping, which leaves title matching to do the work.
func LoadMapping(path string, logger Logger) *Mapping {
	logger = orNop(logger)

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warn("CSV file not found at: %s. Proceeding without ID mapping.", path)
		return NewMapping(nil)
	}
	if err != nil {
		logger.Warn("%v", &MappingLoadError{Path: path, Err: err})
		return NewMapping(nil)
	}
	defer f.Close()

	rows, err := ReadMapping(f)
	if err != nil {
		logger.Warn("%v", &MappingLoadError{Path: path, Err: err})
		return NewMapping(nil)
	}

	mapping := NewMapping(rows)
	logger.Info("Loaded %d image mappings from CSV (%d with a target).", len(rows), mapping.Len())
	return mapping
}
