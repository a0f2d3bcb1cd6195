package schema

// ForumQuestionTagTable represents the 'forum.questiontag' association table.
// Identity is the composite (questionid, tagid) pair.
type ForumQuestionTagTable struct {
	Table      string
	QuestionID string
	TagID      string
}

// ForumQuestionTag is the schema definition for forum.questiontag
var ForumQuestionTag = ForumQuestionTagTable{
	Table:      "forum.questiontag",
	QuestionID: "questionid",
	TagID:      "tagid",
}
