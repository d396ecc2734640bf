package schema

import (
	"fmt"
	"strings"

	"pitcount/internal/survey"
)

// DefaultMinConfidence is the detection threshold below which an upload is
// rejected as unidentifiable.
const DefaultMinConfidence = 0.75

// optionalGroupBonus rewards uploads that also carry a region's optional
// signature columns, keeping detection decisive when required groups tie.
const optionalGroupBonus = 0.2

// signatureGroup is one detectable trait of a regional form: the group
// matches when any of its headers is present.
type signatureGroup struct {
	name     string
	headers  []string
	optional bool
}

var newEnglandSignatures = []signatureGroup{
	{name: "first-name initial", headers: baseAliases[survey.FieldFirstInitial]},
	{name: "surname third letter", headers: baseAliases[survey.FieldLastThird]},
	{name: "domestic violence screening", headers: []string{"Currently Fleeing Domestic/Sexual/Dating Violence"}},
	{name: "surname initial", headers: baseAliases[survey.FieldLastInitial], optional: true},
}

var greatLakesSignatures = []signatureGroup{
	{name: "first name", headers: []string{"First Name"}},
	{name: "domestic violence screening", headers: []string{"Are you currently fleeing domestic violence?"}},
	{name: "surname capture", headers: []string{"First Letter of Last Name", "Last Name"}, optional: true},
}

// Detection reports the outcome of region detection for one header row.
type Detection struct {
	Region     Region
	Confidence float64
	Matched    []string
	Missing    []string
}

// Detect scores the header row against each region's signature groups and
// returns the best region. Confidence is the fraction of required groups
// present, plus a bonus when every optional group is also present, capped at
// 1.0. minConfidence <= 0 uses DefaultMinConfidence.
func Detect(headers []string, minConfidence float64) (Detection, error) {
	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}

	present := make(map[string]bool, len(headers))
	for _, header := range headers {
		present[foldHeader(header)] = true
	}

	var best Detection
	for _, region := range Regions() {
		desc, err := ForRegion(region)
		if err != nil {
			return Detection{}, err
		}
		candidate := scoreRegion(region, desc.signatures, present)
		if candidate.Confidence > best.Confidence || best.Region == "" {
			best = candidate
		}
	}

	if best.Confidence < minConfidence {
		return best, fmt.Errorf(
			"cannot identify regional format (best guess %s at %.0f%% confidence, need %.0f%%): missing %s",
			best.Region.DisplayName(), best.Confidence*100, minConfidence*100, strings.Join(best.Missing, ", "),
		)
	}
	return best, nil
}

func scoreRegion(region Region, groups []signatureGroup, present map[string]bool) Detection {
	detection := Detection{Region: region}

	var required, matched int
	optionalAll := true
	hasOptional := false
	for _, group := range groups {
		found := false
		for _, header := range group.headers {
			if present[foldHeader(header)] {
				found = true
				break
			}
		}
		if group.optional {
			hasOptional = true
			if found {
				detection.Matched = append(detection.Matched, group.name)
			} else {
				optionalAll = false
			}
			continue
		}
		required++
		if found {
			matched++
			detection.Matched = append(detection.Matched, group.name)
		} else {
			detection.Missing = append(detection.Missing, group.name)
		}
	}

	if required > 0 {
		detection.Confidence = float64(matched) / float64(required)
	}
	if hasOptional && optionalAll && detection.Confidence > 0 {
		detection.Confidence += optionalGroupBonus
	}
	if detection.Confidence > 1 {
		detection.Confidence = 1
	}
	return detection
}

func foldHeader(header string) string {
	return strings.ToLower(strings.Join(strings.Fields(header), " "))
}
