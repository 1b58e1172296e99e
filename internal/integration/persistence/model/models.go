package model

// All lists every model managed by migrations, keyed by table name.
func All() map[string]any {
	return map[string]any{
		UserModel{}.TableName():           &UserModel{},
		RefreshTokenModel{}.TableName():   &RefreshTokenModel{},
		FacilityModel{}.TableName():       &FacilityModel{},
		SubmissionModel{}.TableName():     &SubmissionModel{},
		PatientFileModel{}.TableName():    &PatientFileModel{},
		DocumentModel{}.TableName():       &DocumentModel{},
		ReminderOutboxModel{}.TableName(): &ReminderOutboxModel{},
	}
}
