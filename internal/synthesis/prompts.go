package synthesis

// promptPersona is the fixed system message for prompt synthesis.
const promptPersona = "You are an expert software architect who writes clear, " +
	"structured implementation prompts for AI coding assistants. Your prompts " +
	"are specific, actionable, and organized so a coding assistant can build " +
	"the described application step by step."

// promptInstructions wraps the idea and answers into the synthesis request.
const promptInstructions = `Using the app idea and clarifying answers below, write a single
structured, implementation-ready prompt for an AI coding assistant. The prompt must cover:

1. Project overview: what the app does and who it is for
2. Recommended technology stack with brief reasoning
3. Core features, in priority order
4. Data model and architecture outline
5. Best practices to follow for this kind of application
6. Step-by-step implementation guidance

Write the prompt as direct instructions to the coding assistant. Do not include
commentary about this request itself.`

// questionPersona is the fixed system message for question synthesis.
const questionPersona = "You are a product discovery assistant. You ask " +
	"non-technical founders short, concrete clarifying questions that surface " +
	"the decisions a developer needs before building their app."

// questionInstructions requests a JSON-shaped question list.
const questionInstructions = `Given the app idea below, return a JSON object with a "questions"
array of 4 to 6 clarifying questions. Each question must have:

  "id": a short snake_case identifier
  "question": the question text
  "kind": "choice", "text", or "both"
  "options": an array of { "value", "label", "explanation" } objects
  "placeholder": hint text for free-text input
  "allowCustom": whether free-text answers are accepted

Return only the JSON object, no other text.`
