package questiongen

// Prompt templates for the research workflow. The plain-text output formats
// are load-bearing: the parsers in this package match on the section headers.

const promptGenerateQuestions = `You are an expert research designer.
Given the project information, generate:
1. Main research questions that are specific, measurable, and relevant to the research topic.
2. A list of 3-5 related sub-questions for each main question.

Format your response as plain text like this:
MAIN QUESTION 1:
[Main research question here]

SUB-QUESTIONS:
- [First sub-question]
- [Second sub-question]
- [Third sub-question]

MAIN QUESTION 2:
[Main research question here]

SUB-QUESTIONS:
- [First sub-question]
- [Second sub-question]
- [Third sub-question]

All main questions and sub-questions should be different from each other.`

const promptMapSubQuestion = `You are a research methods specialist.
For the given sub-question, provide:
1. Data requirements for answering the question (be specific about exact variables needed)
2. Analytical approach for analyzing the data (statistical methods, analysis techniques)

IMPORTANT: Keep data requirements and analysis approach completely separate.

Format your response as plain text like this:
SUB-QUESTION: [Text of the sub-question]
DATA REQUIREMENTS:
[List all required variables and data sources needed to answer this question]

ANALYSIS APPROACH:
[Describe the specific analytical methods to be used with the data]`

const promptIdentifyGaps = `You are a data gap analyst specializing in research methodology.
Your task is to analyze the research sub-question and identify SPECIFIC DATA VARIABLES that are missing but necessary to answer it.

1. Review the data requirements specified
2. Identify SPECIFIC missing variables (e.g., facility_gps, maternal_mortality_rate, healthcare_access_index)
3. For each missing variable, provide:
   - A clear variable name (specific and concise)
   - A detailed description of what data is missing and why it matters
   - Suggested real-world sources where this data might be found (be specific with database names, organizations, etc.)

Identify at least 2-3 specific missing variables.

Format your response EXACTLY as follows with clear section headers:

MISSING VARIABLE: facility_gps
GAP DESCRIPTION: Geographic coordinates of health facilities are missing. This data is crucial for spatial analysis of healthcare access.
SUGGESTED SOURCES: Ministry of Health DHIS2 database, OpenStreetMap healthcare facilities layer, WHO facility registry

MISSING VARIABLE: maternal_mortality_ratio
GAP DESCRIPTION: Current maternal mortality data at the sub-county level is not available.
SUGGESTED SOURCES: Demographic Health Survey, UNICEF maternal health database, county health records

... (continue for each missing variable)`
