package constant

const (
	QuestionTypeMain = "main"
	QuestionTypeSub  = "sub"

	SpeakerUser      = "user"
	SpeakerAssistant = "assistant"

	// Topic for workflow stage events on the in-process bus.
	StageEventTopicName = "research.stage.completed"

	// Stage names carried on stage events.
	StageEventQuestionsGenerated = "questions_generated"
	StageEventQuestionsSelected  = "questions_selected"
	StageEventSubQuestionsMapped = "sub_questions_mapped"
	StageEventDataGapsIdentified = "data_gaps_identified"
	StageEventLiteratureSearched = "literature_searched"
)
