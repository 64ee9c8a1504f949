package utils

import (
	"carecapture-service/internal/pkg/dto/requests"
	"strings"
)

func cleanWhiteSpaceFromEachStringOfAnArray(input []string) []string {
	sanitizedArray := make([]string, 0, len(input))
	for _, v := range input {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		sanitizedArray = append(sanitizedArray, v)
	}
	return sanitizedArray
}

func SanitizeCreateFormDraftRequest(input *requests.CreateFormDraft) {
	input.PatientID = strings.TrimSpace(input.PatientID)
	input.EncounterID = strings.TrimSpace(input.EncounterID)
	input.FacilityID = strings.TrimSpace(input.FacilityID)
	input.QuestionnaireSlugs = cleanWhiteSpaceFromEachStringOfAnArray(input.QuestionnaireSlugs)
}

func SanitizeAttachQuestionnaireRequest(input *requests.AttachQuestionnaire) {
	input.QuestionnaireSlug = strings.TrimSpace(input.QuestionnaireSlug)
}
