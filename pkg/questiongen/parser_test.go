package questiongen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuestionOutline(t *testing.T) {
	input := `MAIN QUESTION 1:
How does facility distance affect antenatal care uptake in rural counties?

SUB-QUESTIONS:
- What is the average travel time to the nearest facility?
- How does uptake vary by distance band?
- Which transport modes dominate facility visits?

MAIN QUESTION 2:
What socioeconomic factors moderate maternal health outcomes?

SUB-QUESTIONS:
- How does household income correlate with skilled birth attendance?
- Does maternal education level predict facility delivery?`

	outline := ParseQuestionOutline(input)
	require.Len(t, outline.MainQuestions, 2)

	first := outline.MainQuestions[0]
	assert.Equal(t, "How does facility distance affect antenatal care uptake in rural counties?", first.Text)
	require.Len(t, first.SubQuestions, 3)
	assert.Equal(t, "What is the average travel time to the nearest facility?", first.SubQuestions[0])

	second := outline.MainQuestions[1]
	assert.Equal(t, "What socioeconomic factors moderate maternal health outcomes?", second.Text)
	assert.Len(t, second.SubQuestions, 2)
}

func TestParseQuestionOutlineInlineHeader(t *testing.T) {
	input := `MAIN QUESTION 1: What drives vaccine hesitancy in peri-urban areas?
SUB-QUESTIONS:
* Which information sources do hesitant caregivers trust?
* How does clinic wait time influence return visits?`

	outline := ParseQuestionOutline(input)
	require.Len(t, outline.MainQuestions, 1)
	assert.Equal(t, "What drives vaccine hesitancy in peri-urban areas?", outline.MainQuestions[0].Text)
	assert.Len(t, outline.MainQuestions[0].SubQuestions, 2)
}

func TestParseQuestionOutlineGarbage(t *testing.T) {
	assert.Empty(t, ParseQuestionOutline("no structured content at all").MainQuestions)
	assert.Empty(t, ParseQuestionOutline("").MainQuestions)
}

func TestParseMappings(t *testing.T) {
	input := `SUB-QUESTION: How does uptake vary by distance band?
DATA REQUIREMENTS:
Facility GPS coordinates, household survey cluster locations, visit counts per household.

ANALYSIS APPROACH:
Compute distance bands with a spatial join, then fit a Poisson regression of visit counts on band.

SUB-QUESTION: Which transport modes dominate facility visits?
DATA REQUIREMENTS:
Transport mode per visit from exit interviews.
ANALYSIS APPROACH:
Descriptive frequencies with chi-square tests across counties.`

	mappings := ParseMappings(input)
	require.Len(t, mappings, 2)

	assert.Equal(t, "How does uptake vary by distance band?", mappings[0].SubQuestion)
	assert.Contains(t, mappings[0].DataRequirements, "Facility GPS coordinates")
	assert.Contains(t, mappings[0].AnalysisApproach, "Poisson regression")
	assert.NotContains(t, mappings[0].DataRequirements, "Poisson")

	assert.Equal(t, "Which transport modes dominate facility visits?", mappings[1].SubQuestion)
	assert.Contains(t, mappings[1].AnalysisApproach, "chi-square")
}

func TestParseMappingsBlankEcho(t *testing.T) {
	// Models often leave the echo line empty; the next header must not be
	// mistaken for the sub-question text.
	for _, input := range []string{
		"SUB-QUESTION:\nDATA REQUIREMENTS:\nSurvey microdata.\nANALYSIS APPROACH:\nLogistic regression.",
		"SUB-QUESTION: DATA REQUIREMENTS:\nSurvey microdata.\nANALYSIS APPROACH:\nLogistic regression.",
	} {
		mappings := ParseMappings(input)
		require.Len(t, mappings, 1, input)
		assert.Empty(t, mappings[0].SubQuestion, input)
		assert.Equal(t, "Survey microdata.", mappings[0].DataRequirements, input)
		assert.Equal(t, "Logistic regression.", mappings[0].AnalysisApproach, input)
	}
}

func TestParseMappingsMissingSections(t *testing.T) {
	assert.Nil(t, ParseMappings("SUB-QUESTION: orphan header with no sections"))
	assert.Nil(t, ParseMappings("free text without any markers"))
}

func TestParseGaps(t *testing.T) {
	input := `MISSING VARIABLE: facility_gps
GAP DESCRIPTION: Geographic coordinates of health facilities are missing. Needed for spatial access analysis.
SUGGESTED SOURCES: Ministry of Health DHIS2 database, OpenStreetMap healthcare facilities layer

MISSING VARIABLE: maternal_mortality_ratio
GAP DESCRIPTION: Sub-county maternal mortality figures are unavailable.
SUGGESTED SOURCES: Demographic Health Survey, county health records`

	gaps := ParseGaps(input)
	require.Len(t, gaps, 2)

	assert.Equal(t, "facility_gps", gaps[0].MissingVariable)
	assert.Contains(t, gaps[0].GapDescription, "spatial access")
	assert.Contains(t, gaps[0].SuggestedSources, "DHIS2")

	assert.Equal(t, "maternal_mortality_ratio", gaps[1].MissingVariable)
	assert.Contains(t, gaps[1].SuggestedSources, "county health records")
}

func TestParseGapsEmpty(t *testing.T) {
	assert.Nil(t, ParseGaps("the model refused to answer"))
}
