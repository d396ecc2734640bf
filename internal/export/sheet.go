package export

import (
	"fmt"
	"strconv"
	"strings"

	"pitcount/internal/config"
	"pitcount/internal/dedupe"
	"pitcount/internal/schema"
	"pitcount/internal/services"
	"pitcount/internal/store"
	"pitcount/internal/survey"
)

// Options carries the export-owned presentation configuration.
type Options struct {
	// HeaderRows offsets internal row references into exported row numbers.
	HeaderRows     int
	MaxColumnWidth int
	HeaderColor    string
	// LabelColors maps annotation labels to RGB hex fills; unlisted labels
	// render unfilled.
	LabelColors map[string]string
}

// OptionsFromConfig builds export options from the [export] config section.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		HeaderRows:     cfg.Export.HeaderRows,
		MaxColumnWidth: cfg.Export.MaxColumnWidth,
		HeaderColor:    cfg.Export.HeaderColor,
		LabelColors: map[string]string{
			dedupe.LabelLikely:         cfg.Export.LikelyColor,
			dedupe.LabelSomewhatLikely: cfg.Export.SomewhatLikelyColor,
			dedupe.LabelPossible:       cfg.Export.PossibleColor,
			dedupe.LabelNoIdentity:     cfg.Export.NoIdentityColor,
		},
	}
}

// Row is one exported record with the label that controls its fill.
type Row struct {
	Cells []string
	Label string
}

// Sheet is the assembled annotated table.
type Sheet struct {
	Headers []string
	Rows    []Row
}

var displayHeaders = map[survey.FieldKey]string{
	survey.FieldFirstName:          "First Name",
	survey.FieldFirstInitial:       "First Initial",
	survey.FieldLastName:           "Last Name",
	survey.FieldLastInitial:        "Last Initial",
	survey.FieldLastThird:          "3rd Letter of Last Name",
	survey.FieldFirstLetterLast:    "First Letter of Last Name",
	survey.FieldDOB:                "Date of Birth",
	survey.FieldAge:                "Age",
	survey.FieldAgeRange:           "Age Range",
	survey.FieldSex:                "Sex",
	survey.FieldGender:             "Gender",
	survey.FieldRace:               "Race/Ethnicity",
	survey.FieldRelationship:       "Relationship",
	survey.FieldVeteran:            "Veteran",
	survey.FieldDVFleeing:          "Fleeing DV",
	survey.FieldDisablingCondition: "Disabling Condition",
	survey.FieldHomelessDuration:   "Length of Time Homeless",
	survey.FieldTimesHomeless:      "Times Homeless (3 Years)",
}

// Build assembles the annotated sheet for one run. The pool must be the same
// candidate pool the run was scanned over: annotations join to records by
// row reference, and a reference with no record is a structural error.
func Build(pool []store.PoolRecord, annotations []store.Annotation, opts Options) (*Sheet, error) {
	byRef := make(map[int]store.Annotation, len(annotations))
	for _, ann := range annotations {
		byRef[ann.RowRef] = ann
	}

	fields := schema.MemberFields()
	headers := []string{"Row", "Source", "Household", "Role"}
	for _, key := range fields {
		headers = append(headers, displayHeaders[key])
	}
	headers = append(headers, "Duplicate Score", "Duplicate Confidence", "Match Reason", "Duplicates With")

	sheet := &Sheet{Headers: headers}
	for _, pr := range pool {
		rec := pr.Record
		ann, ok := byRef[rec.RowRef]
		if !ok {
			return nil, services.Wrap(services.ErrExport, "export", "build",
				fmt.Sprintf("no annotation for row reference %d (run scanned a different pool?)", rec.RowRef), nil)
		}

		cells := []string{
			strconv.Itoa(rec.RowRef + opts.HeaderRows),
			rec.Source,
			strconv.Itoa(rec.HouseholdID),
			string(rec.Role),
		}
		for _, key := range fields {
			cells = append(cells, rec.Field(key))
		}
		cells = append(cells,
			strconv.Itoa(ann.Score),
			ann.Label,
			ann.Reason,
			formatRefs(ann.DuplicatesWith, opts.HeaderRows),
		)
		sheet.Rows = append(sheet.Rows, Row{Cells: cells, Label: ann.Label})
	}
	return sheet, nil
}

// formatRefs renders duplicate row references as exported row numbers.
func formatRefs(refs []int, headerRows int) string {
	if len(refs) == 0 {
		return ""
	}
	parts := make([]string, len(refs))
	for i, ref := range refs {
		parts[i] = strconv.Itoa(ref + headerRows)
	}
	return strings.Join(parts, ", ")
}
