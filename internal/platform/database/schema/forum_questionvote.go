package schema

// ForumQuestionVoteTable represents the 'forum.questionvote' ledger table.
// Identity is the composite (questionid, voterid) pair. At most one row
// exists per voter per question and it is toggled in place.
type ForumQuestionVoteTable struct {
	Table      string
	QuestionID string
	VoterID    string
	IsActive   string
}

// ForumQuestionVote is the schema definition for forum.questionvote
var ForumQuestionVote = ForumQuestionVoteTable{
	Table:      "forum.questionvote",
	QuestionID: "questionid",
	VoterID:    "voterid",
	IsActive:   "isactive",
}
