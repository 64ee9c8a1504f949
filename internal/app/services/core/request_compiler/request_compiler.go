package requestCompiler

import (
	"carecapture-service/internal/app/contracts"
	"carecapture-service/internal/app/models"
	"carecapture-service/internal/pkg/constvars"
	"carecapture-service/internal/pkg/exceptions"
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingFacility is wrapped by compile errors for writes that cannot be
// addressed without a facility.
var ErrMissingFacility = errors.New("facility id is missing from the request context")

type upsertBody struct {
	Datapoints any `json:"datapoints"`
}

// Compiler turns structured lists into backend writes. It holds no state
// between calls and is safe for concurrent use.
type Compiler struct {
	encoder contracts.FileEncoder
}

func NewCompiler(encoder contracts.FileEncoder) *Compiler {
	return &Compiler{encoder: encoder}
}

// Compile returns the requests for one structured list. Context that makes a
// write not applicable yields zero requests; an error is returned only when
// the write cannot be expressed at all.
func (c *Compiler) Compile(ctx context.Context, value models.StructuredValue, requestContext models.RequestContext) ([]models.Request, error) {
	if value == nil || value.Len() == 0 {
		return nil, nil
	}
	h := &handler{ctx: ctx, encoder: c.encoder, rc: requestContext}
	value.Accept(h)
	if h.err != nil {
		return nil, h.err
	}
	return h.requests, nil
}

type handler struct {
	ctx      context.Context
	encoder  contracts.FileEncoder
	rc       models.RequestContext
	requests []models.Request
	err      error
}

func (h *handler) add(method, url string, body any, structuredType models.StructuredType) {
	h.requests = append(h.requests, models.Request{
		URL:         url,
		Method:      method,
		Body:        body,
		ReferenceID: string(structuredType),
	})
}

// patientUpsert emits the upsert of a patient scoped list. Both patient and
// encounter must be known for the write to apply.
func (h *handler) patientUpsert(path string, datapoints any, structuredType models.StructuredType) {
	if h.rc.PatientID == "" || h.rc.EncounterID == "" {
		return
	}
	h.add(http.MethodPost, fmt.Sprintf(path, h.rc.PatientID), upsertBody{Datapoints: datapoints}, structuredType)
}

func (h *handler) requireFacility(structuredType models.StructuredType) bool {
	if h.rc.FacilityID != "" {
		return true
	}
	h.err = exceptions.ErrFacilityRequired(ErrMissingFacility, string(structuredType))
	return false
}

// backfill copies items and lets set fill in missing context on each copy.
func backfill[T any](items []T, set func(*T)) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := range out {
		set(&out[i])
	}
	return out
}

func (h *handler) VisitAllergyIntolerances(items models.AllergyIntolerances) {
	datapoints := backfill(items, func(item *models.AllergyIntolerance) {
		if item.Encounter == "" {
			item.Encounter = h.rc.EncounterID
		}
	})
	h.patientUpsert(constvars.BackendPathAllergyUpsert, datapoints, models.StructuredTypeAllergyIntolerance)
}

func (h *handler) VisitSymptoms(items models.Symptoms) {
	datapoints := backfill(items, func(item *models.Symptom) {
		if item.Encounter == "" {
			item.Encounter = h.rc.EncounterID
		}
	})
	h.patientUpsert(constvars.BackendPathSymptomUpsert, datapoints, models.StructuredTypeSymptom)
}

// Only diagnoses edited in this session are resent.
func (h *handler) VisitDiagnoses(items models.Diagnoses) {
	var dirty models.Diagnoses
	for _, item := range items {
		if item.Dirty {
			dirty = append(dirty, item)
		}
	}
	if len(dirty) == 0 {
		return
	}
	datapoints := backfill(dirty, func(item *models.Diagnosis) {
		item.Dirty = false
		if item.Encounter == "" {
			item.Encounter = h.rc.EncounterID
		}
	})
	h.patientUpsert(constvars.BackendPathDiagnosisUpsert, datapoints, models.StructuredTypeDiagnosis)
}

func (h *handler) VisitMedicationRequests(items models.MedicationRequests) {
	datapoints := backfill(items, func(item *models.MedicationRequest) {
		if item.Encounter == "" {
			item.Encounter = h.rc.EncounterID
		}
	})
	h.patientUpsert(constvars.BackendPathMedicationRequestUpsert, datapoints, models.StructuredTypeMedicationRequest)
}

func (h *handler) VisitMedicationStatements(items models.MedicationStatements) {
	datapoints := backfill(items, func(item *models.MedicationStatement) {
		if item.Encounter == "" {
			item.Encounter = h.rc.EncounterID
		}
	})
	h.patientUpsert(constvars.BackendPathMedicationStatementUpsert, datapoints, models.StructuredTypeMedicationStatement)
}

func (h *handler) VisitEncounters(items models.Encounters) {
	if !h.requireFacility(models.StructuredTypeEncounter) {
		return
	}
	encounter := items[0]
	encounterID := h.rc.EncounterID
	if encounterID == "" {
		encounterID = encounter.ID
	}
	if encounterID == "" {
		return
	}
	encounter.ID = encounterID
	encounter.Facility = h.rc.FacilityID
	if encounter.Patient == "" {
		encounter.Patient = h.rc.PatientID
	}
	h.add(http.MethodPut, fmt.Sprintf(constvars.BackendPathEncounter, encounterID), encounter, models.StructuredTypeEncounter)
}

type appointmentBody struct {
	ReasonForVisit string   `json:"reason_for_visit"`
	Patient        string   `json:"patient"`
	Tags           []string `json:"tags"`
}

// Only the first appointment is booked.
func (h *handler) VisitAppointments(items models.Appointments) {
	appointment := items[0]
	if appointment.Status == models.StatusEnteredInError || appointment.SlotID == "" {
		return
	}
	if !h.requireFacility(models.StructuredTypeAppointment) {
		return
	}
	tags := appointment.Tags
	if tags == nil {
		tags = []string{}
	}
	h.add(http.MethodPost,
		fmt.Sprintf(constvars.BackendPathCreateAppointment, h.rc.FacilityID, appointment.SlotID),
		appointmentBody{ReasonForVisit: appointment.ReasonForVisit, Patient: h.rc.PatientID, Tags: tags},
		models.StructuredTypeAppointment,
	)
}

type serviceRequestApplyBody struct {
	Encounter      string                `json:"encounter"`
	Patient        string                `json:"patient"`
	ServiceRequest models.ServiceRequest `json:"service_request"`
}

// Service requests built from a catalog entry are applied one by one; the
// rest are upserted together.
func (h *handler) VisitServiceRequests(items models.ServiceRequests) {
	if h.rc.EncounterID == "" {
		return
	}
	if !h.requireFacility(models.StructuredTypeServiceRequest) {
		return
	}
	datapoints := backfill(items, func(item *models.ServiceRequest) {
		if item.Encounter == "" {
			item.Encounter = h.rc.EncounterID
		}
	})

	var plain models.ServiceRequests
	for _, item := range datapoints {
		if item.ActivityDefinition == "" {
			plain = append(plain, item)
			continue
		}
		h.add(http.MethodPost,
			fmt.Sprintf(constvars.BackendPathApplyActivityDefinition, h.rc.FacilityID, item.ActivityDefinition),
			serviceRequestApplyBody{Encounter: h.rc.EncounterID, Patient: h.rc.PatientID, ServiceRequest: item},
			models.StructuredTypeServiceRequest,
		)
	}
	if len(plain) > 0 {
		h.add(http.MethodPost, fmt.Sprintf(constvars.BackendPathServiceRequestUpsert, h.rc.FacilityID),
			upsertBody{Datapoints: plain}, models.StructuredTypeServiceRequest)
	}
}

func (h *handler) VisitChargeItems(items models.ChargeItems) {
	if h.rc.EncounterID == "" {
		return
	}
	if !h.requireFacility(models.StructuredTypeChargeItem) {
		return
	}
	datapoints := backfill(items, func(item *models.ChargeItem) {
		if item.Encounter == "" {
			item.Encounter = h.rc.EncounterID
		}
	})
	h.add(http.MethodPost, fmt.Sprintf(constvars.BackendPathChargeItemUpsert, h.rc.FacilityID),
		upsertBody{Datapoints: datapoints}, models.StructuredTypeChargeItem)
}

type fileUploadBody struct {
	Name          string `json:"name"`
	OriginalName  string `json:"original_name"`
	FileType      string `json:"file_type"`
	AssociatingID string `json:"associating_id"`
	MimeType      string `json:"mime_type,omitempty"`
	FileData      string `json:"file_data"`
}

// Files are uploaded one request each, attached to the encounter when there
// is one and to the patient otherwise.
func (h *handler) VisitFileUploads(items models.FileUploads) {
	for _, file := range items {
		fileType, associatingID := file.FileType, file.AssociatingID
		if fileType == "" {
			fileType = constvars.FileTypePatient
			if h.rc.EncounterID != "" {
				fileType = constvars.FileTypeEncounter
			}
		}
		if associatingID == "" {
			associatingID = h.rc.PatientID
			if fileType == constvars.FileTypeEncounter {
				associatingID = h.rc.EncounterID
			}
		}
		if associatingID == "" {
			continue
		}

		encoded, err := h.encoder.Encode(h.ctx, file)
		if err != nil {
			h.err = err
			h.requests = nil
			return
		}
		h.add(http.MethodPost, constvars.BackendPathFileUpload, fileUploadBody{
			Name:          file.Name,
			OriginalName:  file.OriginalName,
			FileType:      fileType,
			AssociatingID: associatingID,
			MimeType:      file.MimeType,
			FileData:      encoded,
		}, models.StructuredTypeFiles)
	}
}

type patientDeceasedBody struct {
	DeceasedDatetime string `json:"deceased_datetime"`
}

func (h *handler) VisitTimesOfDeath(items models.TimesOfDeath) {
	if h.rc.PatientID == "" || items[0].DeceasedDatetime == "" {
		return
	}
	h.add(http.MethodPatch, fmt.Sprintf(constvars.BackendPathPatient, h.rc.PatientID),
		patientDeceasedBody{DeceasedDatetime: items[0].DeceasedDatetime}, models.StructuredTypeTimeOfDeath)
}
