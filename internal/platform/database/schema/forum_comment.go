package schema

// ForumCommentTable represents the 'forum.comment' table
type ForumCommentTable struct {
	Table     string
	ID        string
	AnswerID  string
	Body      string
	Author    string
	AuthorID  string
	Version   string
	CreatedAt string
	UpdatedAt string
}

// ForumComment is the schema definition for forum.comment
var ForumComment = ForumCommentTable{
	Table:     "forum.comment",
	ID:        "id",
	AnswerID:  "answerid",
	Body:      "body",
	Author:    "author",
	AuthorID:  "authorid",
	Version:   "version",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
