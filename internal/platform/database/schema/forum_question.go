package schema

// ForumQuestionTable represents the 'forum.question' table
type ForumQuestionTable struct {
	Table     string
	ID        string
	Title     string
	Body      string
	Author    string
	AuthorID  string
	Views     string
	Version   string
	CreatedAt string
	UpdatedAt string
}

// ForumQuestion is the schema definition for forum.question
var ForumQuestion = ForumQuestionTable{
	Table:     "forum.question",
	ID:        "id",
	Title:     "title",
	Body:      "body",
	Author:    "author",
	AuthorID:  "authorid",
	Views:     "views",
	Version:   "version",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
