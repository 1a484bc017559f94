package query

import (
	"sort"
)

// Canvas tables available in the DAP "canvas" namespace.
var tables = []string{ // nolint: gochecknoglobals
	"access_tokens",
	"account_users",
	"accounts",
	"assessment_question_banks",
	"assessment_questions",
	"assignment_groups",
	"assignment_override_students",
	"assignment_overrides",
	"assignments",
	"attachment_associations",
	"attachments",
	"calendar_events",
	"canvadocs_annotation_contexts",
	"comment_bank_items",
	"communication_channels",
	"content_migrations",
	"content_participation_counts",
	"content_participations",
	"content_shares",
	"content_tags",
	"context_external_tools",
	"context_module_progressions",
	"context_modules",
	"conversation_message_participants",
	"conversation_messages",
	"conversation_participants",
	"conversations",
	"course_account_associations",
	"course_sections",
	"courses",
	"custom_gradebook_column_data",
	"custom_gradebook_columns",
	"developer_key_account_bindings",
	"developer_keys",
	"discussion_entries",
	"discussion_entry_participants",
	"discussion_topic_participants",
	"discussion_topics",
	"enrollment_dates_overrides",
	"enrollment_states",
	"enrollment_terms",
	"enrollments",
	"favorites",
	"folders",
	"grading_period_groups",
	"grading_periods",
	"grading_standards",
	"group_categories",
	"group_memberships",
	"groups",
	"late_policies",
	"learning_outcome_groups",
	"learning_outcome_question_results",
	"learning_outcome_results",
	"learning_outcomes",
	"lti_line_items",
	"lti_resource_links",
	"lti_results",
	"master_courses_child_content_tags",
	"master_courses_child_subscriptions",
	"master_courses_master_content_tags",
	"master_courses_master_migrations",
	"master_courses_master_templates",
	"master_courses_migration_results",
	"originality_reports",
	"outcome_proficiencies",
	"outcome_proficiency_ratings",
	"post_policies",
	"pseudonyms",
	"quiz_groups",
	"quiz_questions",
	"quiz_submissions",
	"quizzes",
	"role_overrides",
	"roles",
	"rubric_assessments",
	"rubric_associations",
	"rubrics",
	"score_statistics",
	"scores",
	"submission_comments",
	"submission_versions",
	"submissions",
	"user_account_associations",
	"user_notes",
	"users",
	"web_conference_participants",
	"web_conferences",
	"wiki_pages",
	"wikis",
}

// Tables returns the sorted list of known table names.
func Tables() []string {
	out := make([]string, len(tables))
	copy(out, tables)
	sort.Strings(out)
	return out
}

func IsKnownTable(name string) bool {
	for _, t := range tables {
		if t == name {
			return true
		}
	}
	return false
}
