package constvars

// Clinical backend endpoints. Paths are relative to the backend base URL and
// are what the batch executor receives in each request.
const (
	BackendPathBatchRequests       = "/api/v1/batch_requests/"
	BackendPathQuestionnaireFormat = "/api/v1/questionnaire/%s/"
	BackendPathQuestionnaireSubmit = "/api/v1/questionnaire/%s/submit/"

	BackendPathAllergyUpsert             = "/api/v1/patient/%s/allergy_intolerance/upsert/"
	BackendPathSymptomUpsert             = "/api/v1/patient/%s/symptom/upsert/"
	BackendPathDiagnosisUpsert           = "/api/v1/patient/%s/diagnosis/upsert/"
	BackendPathMedicationRequestUpsert   = "/api/v1/patient/%s/medication/request/upsert/"
	BackendPathMedicationStatementUpsert = "/api/v1/patient/%s/medication/statement/upsert/"
	BackendPathEncounter                 = "/api/v1/encounter/%s/"
	BackendPathCreateAppointment         = "/api/v1/facility/%s/slots/%s/create_appointment/"
	BackendPathFileUpload                = "/api/v1/files/upload-file/"
	BackendPathChargeItemUpsert          = "/api/v1/facility/%s/charge_item/upsert/"
	BackendPathApplyActivityDefinition   = "/api/v1/facility/%s/activity_definition/%s/apply/"
	BackendPathServiceRequestUpsert      = "/api/v1/facility/%s/service_request/upsert/"
	BackendPathPatient                   = "/api/v1/patient/%s/"
)

const (
	FileTypeEncounter = "encounter"
	FileTypePatient   = "patient"
)
