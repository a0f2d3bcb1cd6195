package schema

// ForumAnswerTable represents the 'forum.answer' table
type ForumAnswerTable struct {
	Table      string
	ID         string
	QuestionID string
	Body       string
	Author     string
	AuthorID   string
	Version    string
	CreatedAt  string
	UpdatedAt  string
}

// ForumAnswer is the schema definition for forum.answer
var ForumAnswer = ForumAnswerTable{
	Table:      "forum.answer",
	ID:         "id",
	QuestionID: "questionid",
	Body:       "body",
	Author:     "author",
	AuthorID:   "authorid",
	Version:    "version",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}
