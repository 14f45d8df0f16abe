package api

import (
	"promptcraft/internal/config"
	"promptcraft/pkg/openapi"
)

// buildSpec generates the serialized OpenAPI document for the API module.
func buildSpec(cfg *config.Config) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(schemas())

	addSynthesisPaths(spec)
	addSessionPaths(spec)
	addCatalogPaths(spec)
	addWizardPaths(spec)
	addAuthPaths(spec)

	return openapi.MarshalJSON(spec)
}

func schemas() map[string]*openapi.Schema {
	ideaMax := 5000
	promptMax := 10000

	return map[string]*openapi.Schema{
		"GenerateRequest": {
			Type:     "object",
			Required: []string{"appIdea"},
			Properties: map[string]*openapi.Schema{
				"sessionId": {Type: "string", Format: "uuid", Description: "Existing session to generate from; omit for direct submission"},
				"appIdea":   {Type: "string", Description: "Plain-language application idea"},
				"answers":   {Type: "array", Items: openapi.SchemaRef("Answer")},
				"userId":    {Type: "string", Format: "uuid"},
			},
		},
		"GenerateResponse": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"prompt":    {Type: "string", Description: "Structured prompt for an AI coding assistant"},
				"sessionId": {Type: "string", Format: "uuid"},
			},
		},
		"QuestionsRequest": {
			Type:     "object",
			Required: []string{"appIdea"},
			Properties: map[string]*openapi.Schema{
				"appIdea": {Type: "string", MaxLength: intPtr(2000)},
			},
		},
		"QuestionsResponse": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"questions": {Type: "array", Items: openapi.SchemaRef("Question")},
			},
		},
		"Question": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string"},
				"question":    {Type: "string"},
				"kind":        {Type: "string", Enum: []any{"choice", "text", "both"}},
				"options":     {Type: "array", Items: openapi.SchemaRef("QuestionOption")},
				"placeholder": {Type: "string"},
				"allowCustom": {Type: "boolean"},
			},
		},
		"QuestionOption": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"value":       {Type: "string"},
				"label":       {Type: "string"},
				"explanation": {Type: "string"},
			},
		},
		"Answer": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"question":        {Type: "string"},
				"selected_answer": {Type: "string"},
				"explanation":     {Type: "string"},
			},
		},
		"Session": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string", Format: "uuid"},
				"app_idea":   {Type: "string", MaxLength: &ideaMax},
				"user_id":    {Type: "string", Format: "uuid"},
				"created_at": {Type: "string", Format: "date-time"},
			},
		},
		"SessionRequest": {
			Type:     "object",
			Required: []string{"app_idea"},
			Properties: map[string]*openapi.Schema{
				"app_idea":   {Type: "string", MaxLength: &ideaMax},
				"user_id":    {Type: "string", Format: "uuid"},
				"session_id": {Type: "string", Format: "uuid", Description: "Existing session to update"},
			},
		},
		"AnswerRequest": {
			Type:     "object",
			Required: []string{"question", "selected_answer"},
			Properties: map[string]*openapi.Schema{
				"question":        {Type: "string"},
				"selected_answer": {Type: "string"},
				"explanation":     {Type: "string"},
			},
		},
		"SavePromptRequest": {
			Type:     "object",
			Required: []string{"appIdea", "prompt", "userId"},
			Properties: map[string]*openapi.Schema{
				"appIdea": {Type: "string", MaxLength: &ideaMax},
				"prompt":  {Type: "string", MaxLength: &promptMax},
				"answers": {Type: "array", Items: openapi.SchemaRef("Answer")},
				"userId":  {Type: "string", Format: "uuid"},
			},
		},
		"SavePromptResponse": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"success":   {Type: "boolean"},
				"sessionId": {Type: "string", Format: "uuid"},
			},
		},
		"SavedPromptsRequest": {
			Type:     "object",
			Required: []string{"userId"},
			Properties: map[string]*openapi.Schema{
				"userId": {Type: "string", Format: "uuid"},
				"offset": {Type: "integer", Default: 0},
				"limit":  {Type: "integer", Default: 20},
				"search": {Type: "string", Description: "Substring match against idea and prompt text"},
				"sort":   {Type: "string", Description: "Comma-separated sort fields, \"-\" prefix for descending"},
			},
		},
		"SavedPromptsResponse": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"prompts": {Type: "array", Items: openapi.SchemaRef("SavedPrompt")},
				"total":   {Type: "integer"},
			},
		},
		"SavedPrompt": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"session_id":       {Type: "string", Format: "uuid"},
				"app_idea":         {Type: "string"},
				"generated_prompt": {Type: "string"},
				"created_at":       {Type: "string", Format: "date-time"},
			},
		},
		"StatusResponse": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"success": {Type: "boolean"},
				"message": {Type: "string"},
			},
		},
		"Template": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string"},
				"name":        {Type: "string"},
				"category":    {Type: "string"},
				"description": {Type: "string"},
				"icon":        {Type: "string"},
				"ideaText":    {Type: "string"},
				"features":    {Type: "array", Items: &openapi.Schema{Type: "string"}},
			},
		},
		"WizardState": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string", Format: "uuid"},
				"step":       {Type: "string", Enum: []any{"template_select", "idea_entry", "clarify", "result"}},
				"templateId": {Type: "string"},
				"appIdea":    {Type: "string"},
				"questions":  {Type: "array", Items: openapi.SchemaRef("Question")},
				"prompt":     {Type: "string"},
				"sessionId":  {Type: "string", Format: "uuid"},
				"generating": {Type: "boolean"},
			},
		},
		"Credentials": {
			Type:     "object",
			Required: []string{"email", "password"},
			Properties: map[string]*openapi.Schema{
				"email":        {Type: "string", Format: "email"},
				"password":     {Type: "string"},
				"display_name": {Type: "string"},
			},
		},
		"Identity": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "string", Format: "uuid"},
				"email":        {Type: "string", Format: "email"},
				"display_name": {Type: "string"},
				"expires_at":   {Type: "string", Format: "date-time"},
			},
		},
	}
}

func addSynthesisPaths(spec *openapi.Spec) {
	spec.Paths["/generate-prompt"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Generate a structured prompt",
			Description: "Synthesizes a coding-assistant prompt from an app idea and clarifying answers, either from a stored session or a direct submission.",
			Tags:        []string{"synthesis"},
			RequestBody: openapi.RequestBodyJSON("GenerateRequest", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Generated prompt", "GenerateResponse"),
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
				429: openapi.ResponseRef("TooManyRequests"),
			},
		},
	}

	spec.Paths["/generate-questions"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Generate clarifying questions",
			Description: "Produces 4 to 6 idea-specific clarifying questions.",
			Tags:        []string{"synthesis"},
			RequestBody: openapi.RequestBodyJSON("QuestionsRequest", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Generated questions", "QuestionsResponse"),
				400: openapi.ResponseRef("BadRequest"),
				429: openapi.ResponseRef("TooManyRequests"),
			},
		},
	}
}

func addSessionPaths(spec *openapi.Spec) {
	spec.Paths["/sessions"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Create or update a session",
			Tags:        []string{"sessions"},
			RequestBody: openapi.RequestBodyJSON("SessionRequest", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Session record", "Session"),
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/sessions/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Get a session",
			Tags:       []string{"sessions"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Session identifier")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Session record", "Session"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/sessions/{id}/answers"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "List session answers",
			Tags:       []string{"sessions"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Session identifier")},
			Responses: map[int]*openapi.Response{
				200: {
					Description: "Answers in insertion order",
					Content: map[string]*openapi.MediaType{
						"application/json": {Schema: &openapi.Schema{
							Type:  "array",
							Items: openapi.SchemaRef("Answer"),
						}},
					},
				},
				404: openapi.ResponseRef("NotFound"),
			},
		},
		Put: &openapi.Operation{
			Summary:     "Upsert a session answer",
			Description: "Stores an answer keyed by question text; resubmitting the same question overwrites the prior answer.",
			Tags:        []string{"sessions"},
			Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Session identifier")},
			RequestBody: openapi.RequestBodyJSON("AnswerRequest", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Stored answer", "Answer"),
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/save-prompt"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Save a generated prompt",
			Description: "Persists a prompt with its session and answers for a signed-in user.",
			Tags:        []string{"prompts"},
			RequestBody: openapi.RequestBodyJSON("SavePromptRequest", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Save confirmation", "SavePromptResponse"),
				400: openapi.ResponseRef("BadRequest"),
				401: openapi.ResponseRef("Unauthorized"),
			},
		},
	}

	spec.Paths["/get-saved-prompts"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "List saved prompts",
			Tags:        []string{"prompts"},
			RequestBody: openapi.RequestBodyJSON("SavedPromptsRequest", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Saved prompts page", "SavedPromptsResponse"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/delete-prompt"] = &openapi.PathItem{
		Delete: &openapi.Operation{
			Summary:     "Delete a saved prompt",
			Description: "Deletes a session and its dependent records when owned by the requesting user.",
			Tags:        []string{"prompts"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("id", "string", "Session identifier", true),
				openapi.QueryParam("userId", "string", "Owning user identifier", true),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Delete confirmation", "StatusResponse"),
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}
}

func addCatalogPaths(spec *openapi.Spec) {
	spec.Paths["/templates"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "List templates",
			Tags:       []string{"catalog"},
			Parameters: []*openapi.Parameter{openapi.QueryParam("category", "string", "Filter by category", false)},
			Responses: map[int]*openapi.Response{
				200: {
					Description: "Template catalog",
					Content: map[string]*openapi.MediaType{
						"application/json": {Schema: &openapi.Schema{
							Type:  "array",
							Items: openapi.SchemaRef("Template"),
						}},
					},
				},
			},
		},
	}

	spec.Paths["/templates/categories"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List template categories",
			Tags:    []string{"catalog"},
			Responses: map[int]*openapi.Response{
				200: {
					Description: "Distinct categories",
					Content: map[string]*openapi.MediaType{
						"application/json": {Schema: &openapi.Schema{
							Type:  "array",
							Items: &openapi.Schema{Type: "string"},
						}},
					},
				},
			},
		},
	}

	spec.Paths["/templates/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Get a template",
			Tags:    []string{"catalog"},
			Parameters: []*openapi.Parameter{{
				Name:     "id",
				In:       "path",
				Required: true,
				Schema:   &openapi.Schema{Type: "string"},
			}},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Template definition", "Template"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/questions"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List static clarifying questions",
			Tags:    []string{"catalog"},
			Responses: map[int]*openapi.Response{
				200: {
					Description: "Fixed question set",
					Content: map[string]*openapi.MediaType{
						"application/json": {Schema: &openapi.Schema{
							Type:  "array",
							Items: openapi.SchemaRef("Question"),
						}},
					},
				},
			},
		},
	}
}

func addWizardPaths(spec *openapi.Spec) {
	stateOK := openapi.ResponseJSON("Wizard state", "WizardState")
	idParam := openapi.PathParam("id", "Wizard identifier")

	wizardOp := func(summary string) *openapi.Operation {
		return &openapi.Operation{
			Summary:    summary,
			Tags:       []string{"wizard"},
			Parameters: []*openapi.Parameter{idParam},
			Responses: map[int]*openapi.Response{
				200: stateOK,
				404: openapi.ResponseRef("NotFound"),
				409: openapi.ResponseRef("Conflict"),
			},
		}
	}

	spec.Paths["/wizards"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary: "Start a wizard",
			Tags:    []string{"wizard"},
			Responses: map[int]*openapi.Response{
				201: stateOK,
			},
		},
	}

	spec.Paths["/wizards/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Get wizard state",
			Tags:       []string{"wizard"},
			Parameters: []*openapi.Parameter{idParam},
			Responses: map[int]*openapi.Response{
				200: stateOK,
				404: openapi.ResponseRef("NotFound"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Discard a wizard",
			Tags:       []string{"wizard"},
			Parameters: []*openapi.Parameter{idParam},
			Responses: map[int]*openapi.Response{
				204: {Description: "Wizard discarded"},
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/wizards/{id}/template"] = &openapi.PathItem{Post: wizardOp("Apply a template or start from scratch")}
	spec.Paths["/wizards/{id}/idea"] = &openapi.PathItem{Put: wizardOp("Set the app idea")}
	spec.Paths["/wizards/{id}/advance"] = &openapi.PathItem{Post: wizardOp("Advance to the next step")}
	spec.Paths["/wizards/{id}/back"] = &openapi.PathItem{Post: wizardOp("Return to the previous step")}
	spec.Paths["/wizards/{id}/questions/generate"] = &openapi.PathItem{Post: wizardOp("Replace static questions with generated ones")}
	spec.Paths["/wizards/{id}/generate"] = &openapi.PathItem{Post: wizardOp("Generate the final prompt")}
	spec.Paths["/wizards/{id}/restart"] = &openapi.PathItem{Post: wizardOp("Restart from the result step")}

	answerOp := wizardOp("Answer a clarifying question")
	answerOp.Parameters = append(answerOp.Parameters, &openapi.Parameter{
		Name:     "questionId",
		In:       "path",
		Required: true,
		Schema:   &openapi.Schema{Type: "string"},
	})
	spec.Paths["/wizards/{id}/answers/{questionId}"] = &openapi.PathItem{Put: answerOp}
}

func addAuthPaths(spec *openapi.Spec) {
	identityOK := openapi.ResponseJSON("Authenticated identity", "Identity")

	spec.Paths["/auth/me"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Get the current identity",
			Tags:    []string{"auth"},
			Responses: map[int]*openapi.Response{
				200: identityOK,
				401: openapi.ResponseRef("Unauthorized"),
			},
		},
	}

	spec.Paths["/auth/profile"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Get the stored profile",
			Tags:    []string{"auth"},
			Responses: map[int]*openapi.Response{
				200: {
					Description: "Profile record",
					Content: map[string]*openapi.MediaType{
						"application/json": {Schema: &openapi.Schema{
							Type: "object",
							Properties: map[string]*openapi.Schema{
								"id":         {Type: "string", Format: "uuid"},
								"email":      {Type: "string", Format: "email"},
								"full_name":  {Type: "string"},
								"updated_at": {Type: "string", Format: "date-time"},
							},
						}},
					},
				},
				401: openapi.ResponseRef("Unauthorized"),
			},
		},
	}

	spec.Paths["/auth/sign-in"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Sign in with email and password",
			Tags:        []string{"auth"},
			RequestBody: openapi.RequestBodyJSON("Credentials", true),
			Responses: map[int]*openapi.Response{
				200: identityOK,
				400: openapi.ResponseRef("BadRequest"),
				401: openapi.ResponseRef("Unauthorized"),
			},
		},
	}

	spec.Paths["/auth/sign-up"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Register a new account",
			Tags:        []string{"auth"},
			RequestBody: openapi.RequestBodyJSON("Credentials", true),
			Responses: map[int]*openapi.Response{
				201: identityOK,
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/auth/magic-link"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary: "Send a passwordless sign-in link",
			Tags:    []string{"auth"},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Send confirmation", "StatusResponse"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/auth/oauth/url"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Get the federated sign-in URL",
			Tags:       []string{"auth"},
			Parameters: []*openapi.Parameter{openapi.QueryParam("state", "string", "Opaque CSRF state", false)},
			Responses: map[int]*openapi.Response{
				200: {
					Description: "Provider authorization URL",
					Content: map[string]*openapi.MediaType{
						"application/json": {Schema: &openapi.Schema{
							Type: "object",
							Properties: map[string]*openapi.Schema{
								"url": {Type: "string"},
							},
						}},
					},
				},
			},
		},
	}

	spec.Paths["/auth/oauth/callback"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Complete federated sign-in",
			Tags:       []string{"auth"},
			Parameters: []*openapi.Parameter{openapi.QueryParam("code", "string", "Authorization code", true)},
			Responses: map[int]*openapi.Response{
				200: identityOK,
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/auth/sign-out"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Sign out",
			Description: "Revokes the remote session with a bounded wait and always clears local state.",
			Tags:        []string{"auth"},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Sign-out confirmation", "StatusResponse"),
			},
		},
	}
}

func intPtr(n int) *int {
	return &n
}
