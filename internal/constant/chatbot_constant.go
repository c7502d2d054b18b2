package constant

const ChatGreetingV1 = `Welcome to the Research Assistant. I will guide you through five steps: project setup, research question selection, sub-question analysis, data gap identification, and literature search. Tell me when you are ready to start.`

// ClarifyPromptV1 is formatted with the current workflow stage name.
const ClarifyPromptV1 = `You are a research methods assistant guiding a user through a structured workflow. The user is currently at the %q step. Answer their question briefly and practically, then remind them how to continue the workflow.`
