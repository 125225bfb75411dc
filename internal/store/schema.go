package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table definitions for the local record store. They are applied with ent's
// migration engine on Open, so adding a column here is an online migration.

var (
	usersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "email", Type: field.TypeString, Unique: true},
		{Name: "name", Type: field.TypeString, Default: ""},
		{Name: "created_at", Type: field.TypeTime},
	}
	usersTable = &schema.Table{
		Name:       "users",
		Columns:    usersColumns,
		PrimaryKey: []*schema.Column{usersColumns[0]},
	}

	quizResultsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "username", Type: field.TypeString},
		{Name: "topic", Type: field.TypeString},
		{Name: "score", Type: field.TypeInt},
		{Name: "total_questions", Type: field.TypeInt},
		{Name: "user_major", Type: field.TypeString, Default: ""},
		{Name: "created_at", Type: field.TypeTime},
	}
	quizResultsTable = &schema.Table{
		Name:       "quiz_results",
		Columns:    quizResultsColumns,
		PrimaryKey: []*schema.Column{quizResultsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "quizresult_score", Columns: []*schema.Column{quizResultsColumns[3]}},
		},
	}

	searchHistoryColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "user_email", Type: field.TypeString},
		{Name: "user_name", Type: field.TypeString, Default: ""},
		{Name: "search_query", Type: field.TypeString},
		{Name: "created_at", Type: field.TypeTime},
	}
	searchHistoryTable = &schema.Table{
		Name:       "search_history",
		Columns:    searchHistoryColumns,
		PrimaryKey: []*schema.Column{searchHistoryColumns[0]},
		Indexes: []*schema.Index{
			{Name: "searchhistory_user_email_created_at", Columns: []*schema.Column{searchHistoryColumns[1], searchHistoryColumns[4]}},
		},
	}

	coursesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "position", Type: field.TypeInt, Default: 0},
		{Name: "title", Type: field.TypeString},
		{Name: "description", Type: field.TypeString, Default: ""},
		{Name: "category", Type: field.TypeString, Default: ""},
		{Name: "thumbnail", Type: field.TypeString, Default: ""},
		{Name: "video_url", Type: field.TypeString, Default: ""},
		{Name: "skills", Type: field.TypeJSON, Nullable: true},
	}
	coursesTable = &schema.Table{
		Name:       "courses",
		Columns:    coursesColumns,
		PrimaryKey: []*schema.Column{coursesColumns[0]},
	}

	llmEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "attempt", Type: field.TypeString, Default: ""},
	}
	llmEventsTable = &schema.Table{
		Name:       "llm_events",
		Columns:    llmEventsColumns,
		PrimaryKey: []*schema.Column{llmEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmevent_purpose", Columns: []*schema.Column{llmEventsColumns[4]}},
			{Name: "llmevent_timestamp", Columns: []*schema.Column{llmEventsColumns[1]}},
		},
	}

	tables = []*schema.Table{
		usersTable,
		quizResultsTable,
		searchHistoryTable,
		coursesTable,
		llmEventsTable,
	}
)
