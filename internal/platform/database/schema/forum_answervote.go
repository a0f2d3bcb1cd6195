package schema

// ForumAnswerVoteTable represents the 'forum.answervote' ledger table.
// Identity is the composite (answerid, voterid) pair.
type ForumAnswerVoteTable struct {
	Table    string
	AnswerID string
	VoterID  string
	IsActive string
}

// ForumAnswerVote is the schema definition for forum.answervote
var ForumAnswerVote = ForumAnswerVoteTable{
	Table:    "forum.answervote",
	AnswerID: "answerid",
	VoterID:  "voterid",
	IsActive: "isactive",
}
