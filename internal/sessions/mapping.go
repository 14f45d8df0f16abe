package sessions

import (
	"promptcraft/pkg/query"
	"promptcraft/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "prompt_sessions", "s").
	Project("id", "ID").
	Project("app_idea", "AppIdea").
	Project("user_id", "UserID").
	Project("created_at", "CreatedAt")

// savedProjection joins sessions with their generated prompts. The inner
// join guarantees listings never include a session without a prompt.
// user_id is a filter-only mapping: the owner predicate needs it, but
// scanSavedPrompt does not select it.
var savedProjection = query.
	NewProjectionMap("public", "prompt_sessions", "s").
	Project("id", "ID").
	Project("app_idea", "AppIdea").
	Filter("user_id", "UserID").
	Join("public", "generated_prompts", "g", "INNER", "g.session_id = s.id").
	Project("prompt", "Prompt").
	Project("created_at", "CreatedAt")

var savedSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

func scanSession(s repository.Scanner) (Session, error) {
	var sess Session
	err := s.Scan(
		&sess.ID,
		&sess.AppIdea,
		&sess.UserID,
		&sess.CreatedAt,
	)
	return sess, err
}

func scanAnswer(s repository.Scanner) (Answer, error) {
	var a Answer
	err := s.Scan(
		&a.SessionID,
		&a.Question,
		&a.SelectedAnswer,
		&a.Explanation,
		&a.CreatedAt,
	)
	return a, err
}

func scanSavedPrompt(s repository.Scanner) (SavedPrompt, error) {
	var sp SavedPrompt
	err := s.Scan(
		&sp.ID,
		&sp.AppIdea,
		&sp.Prompt,
		&sp.CreatedAt,
	)
	return sp, err
}
