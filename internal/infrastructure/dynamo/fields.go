package dynamo

// DynamoDB attribute names used in key maps and expressions across all repos.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldUserID       = "user_id"
	fieldEmail        = "email"
	fieldCode         = "code"
	fieldUsed         = "used"
	fieldDocumentID   = "document_id"
	fieldDocumentType = "document_type"
	fieldBalance      = "balance"
	fieldLastLoginAt  = "last_login_at"
	fieldCreatedAt    = "created_at"
	fieldUpdatedAt    = "updated_at"
	fieldPurgeAt      = "purge_at"
)

const indexEmail = "email-index"
