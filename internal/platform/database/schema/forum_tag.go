package schema

// ForumTagTable represents the 'forum.tag' table
type ForumTagTable struct {
	Table     string
	ID        string
	Name      string
	Slug      string
	CreatedAt string
}

// ForumTag is the schema definition for forum.tag
var ForumTag = ForumTagTable{
	Table:     "forum.tag",
	ID:        "id",
	Name:      "name",
	Slug:      "slug",
	CreatedAt: "createdat",
}
