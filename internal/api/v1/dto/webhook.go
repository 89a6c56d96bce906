package dto

// WebhookResponse is returned after a webhook payload was mapped and stored
type WebhookResponse struct {
	Status       string            `json:"status"`
	Provider     string            `json:"provider"`
	ContactID    string            `json:"contact_id,omitempty"`
	MappedRow    []string          `json:"mapped_row"`
	MappedData   map[string]string `json:"mapped_data,omitempty"`
	SheetsStatus string            `json:"sheets_status"`
	Degraded     bool              `json:"degraded"`
	BackupFiles  []string          `json:"backup_files,omitempty"`
}

// WebhookTestResponse is the dry-run result of mapping the built-in sample payload
type WebhookTestResponse struct {
	Status     string            `json:"status"`
	Message    string            `json:"message"`
	MappedRow  []string          `json:"mapped_row"`
	MappedData map[string]string `json:"mapped_data"`
}

// WebhookValidationResponse reports configuration and connectivity.
// Environment variables are reported by presence only.
type WebhookValidationResponse struct {
	GoogleSheetsClient    bool            `json:"google_sheets_client"`
	TranscriptSheetAccess bool            `json:"transcript_sheet_access"`
	VideoAskSheetAccess   bool            `json:"videoask_sheet_access"`
	WebhookDataDirectory  bool            `json:"webhook_data_directory"`
	EnvironmentVariables  map[string]bool `json:"environment_variables"`
	Errors                []string        `json:"errors,omitempty"`
}
