package patient

import "strconv"

// Schema is an ordered set of worksheet columns. Columns without a record
// field take their placeholder value, or stay empty.
type Schema struct {
	Name         string
	Columns      []string
	placeholders map[string]string
}

var baseColumns = []string{
	"Index", "Scenario", "TestCase", "LastName", "FirstName", "PatientMRN", "PersonID", "HealthPlan",
	"Address", "City", "Zip", "State", "Gender", "DOB",
}

var encounterColumns = []string{
	"RCEncounterLocation", "RCEncounter", "Encounter1", "Encounter2", "SecondaryPersonnel",
	"ReferralSource1", "ReferralSource2", "ReferralReason1", "ReferralReason2",
	"RCEncounterAdded", "Encounter1Added", "Encounter2Added", "HP1Added", "HP2Added", "Unassigned",
}

// FullSchema carries the encounter tracking columns with the placeholder
// values manual QA edits later.
var FullSchema = Schema{
	Name:    "full",
	Columns: append(append([]string{}, baseColumns...), encounterColumns...),
	placeholders: map[string]string{
		"RCEncounterLocation": "ED",
		"RCEncounter":         "Historical",
		"Encounter1":          "CKCC - ESKD",
		"Encounter2":          "TOC - ESKD",
		"ReferralSource1":     "Care Manager",
		"ReferralSource2":     "Care Manager",
		"ReferralReason1":     "Care coordination",
		"ReferralReason2":     "Care coordination",
	},
}

// PatientOnlySchema has only the identity, address and demographic columns.
var PatientOnlySchema = Schema{
	Name:    "patient",
	Columns: append([]string{}, baseColumns...),
}

// MinWidths are the column width floors applied in the workbook.
var MinWidths = map[string]float64{
	"LastName": 10,
	"Address":  24,
	"City":     14,
	"Zip":      8,
	"State":    8,
	"Gender":   8,
	"DOB":      12,
}

// SchemaFor selects the schema for the patient-only flag.
func SchemaFor(patientOnly bool) Schema {
	if patientOnly {
		return PatientOnlySchema
	}
	return FullSchema
}

// Row lays out r in column order.
func (s Schema) Row(r Record) []any {
	row := make([]any, len(s.Columns))
	for i, col := range s.Columns {
		row[i] = s.value(col, r)
	}
	return row
}

func (s Schema) value(col string, r Record) any {
	switch col {
	case "Index":
		return r.Ordinal
	case "LastName":
		return r.Full
	case "FirstName":
		return r.Suffix
	case "Address":
		return r.Address.Street
	case "City":
		return r.Address.City
	case "Zip":
		return padZip(r.Address.Zip)
	case "State":
		return r.Address.State
	case "Gender":
		return string(r.Gender)
	case "DOB":
		return r.DOB
	}
	return s.placeholders[col]
}

// Strings renders a row as text, as a CSV writer or preview would.
func (s Schema) Strings(r Record) []string {
	row := s.Row(r)
	out := make([]string, len(row))
	for i, v := range row {
		switch x := v.(type) {
		case int:
			out[i] = strconv.Itoa(x)
		case string:
			out[i] = x
		}
	}
	return out
}
