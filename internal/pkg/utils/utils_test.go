package utils

import (
	"carecapture-service/internal/pkg/constvars"
	"carecapture-service/internal/pkg/dto/requests"
	"carecapture-service/internal/pkg/exceptions"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("CARECAP_TEST_INT", "42")
	t.Setenv("CARECAP_TEST_BAD_INT", "forty-two")
	t.Setenv("CARECAP_TEST_BOOL", "true")
	t.Setenv("CARECAP_TEST_FLOAT", "0.5")
	t.Setenv("CARECAP_TEST_LIST", " a, b ,,c ")

	assert.Equal(t, 42, GetEnvInt("CARECAP_TEST_INT", 1))
	assert.Equal(t, 1, GetEnvInt("CARECAP_TEST_BAD_INT", 1), "unparsable values fall back to the default")
	assert.True(t, GetEnvBool("CARECAP_TEST_BOOL", false))
	assert.Equal(t, 0.5, GetEnvFloat("CARECAP_TEST_FLOAT", 1))
	assert.Equal(t, "fallback", GetEnvString("CARECAP_TEST_MISSING", "fallback"))
	assert.Equal(t, []string{"a", "b", "c"}, GetEnvStringSlice("CARECAP_TEST_LIST", nil))
	assert.Equal(t, []string{"x"}, GetEnvStringSlice("CARECAP_TEST_MISSING", []string{"x"}))
}

func TestSanitizeCreateFormDraftRequest(t *testing.T) {
	input := &requests.CreateFormDraft{
		PatientID:          "  p-1 ",
		EncounterID:        " e-1",
		QuestionnaireSlugs: []string{" allergy_intolerance ", "", "  "},
	}
	SanitizeCreateFormDraftRequest(input)

	assert.Equal(t, "p-1", input.PatientID)
	assert.Equal(t, "e-1", input.EncounterID)
	assert.Equal(t, []string{"allergy_intolerance"}, input.QuestionnaireSlugs)
}

func TestValidateStruct(t *testing.T) {
	t.Run("missing slugs", func(t *testing.T) {
		err := ValidateStruct(&requests.CreateFormDraft{PatientID: "p-1"})
		require.Error(t, err)
		assert.Equal(t, "questionnaireslugs is required", exceptions.FormatFirstValidationError(err))
	})

	t.Run("valid", func(t *testing.T) {
		err := ValidateStruct(&requests.CreateFormDraft{PatientID: "p-1", QuestionnaireSlugs: []string{"vitals"}})
		assert.NoError(t, err)
	})

	t.Run("structured type tag", func(t *testing.T) {
		assert.NoError(t, ValidateVar("diagnosis", "structured_type"))
		assert.Error(t, ValidateVar("vitals", "structured_type"))
	})
}

func TestValidateUrlParamID(t *testing.T) {
	assert.Error(t, ValidateUrlParamID(""))
	assert.Error(t, ValidateUrlParamID("not-a-uuid"))
	assert.NoError(t, ValidateUrlParamID(GenerateDraftID()))
}

func TestGenerateRequestID(t *testing.T) {
	first := GenerateRequestID()
	second := GenerateRequestID()

	assert.True(t, strings.HasPrefix(first, constvars.REQUEST_ID_PREFIX))
	assert.NotEqual(t, first, second)
}

func TestParseClinicalTime(t *testing.T) {
	for _, value := range []string{"2024-03-01", "2024-03-01T10:30", "2024-03-01T10:30:00", "2024-03-01T10:30:00Z", "2024-03-01T10:30:00.123+07:00"} {
		t.Run(value, func(t *testing.T) {
			parsed, err := ParseClinicalTime(value)
			require.NoError(t, err)
			assert.Equal(t, 2024, parsed.Year())
		})
	}

	_, err := ParseClinicalTime("01/03/2024")
	assert.Error(t, err)
}

func TestBuildErrorResponse(t *testing.T) {
	t.Run("custom error keeps status and client message", func(t *testing.T) {
		rr := httptest.NewRecorder()
		BuildErrorResponse(zap.NewNop(), rr, exceptions.ErrFormDraftNotFound(errors.New("no documents"), "d-1"))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		var body exceptions.CustomError
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, constvars.ErrClientFormDraftNotFound, body.ClientMessage)
	})

	t.Run("plain error is an internal error", func(t *testing.T) {
		rr := httptest.NewRecorder()
		BuildErrorResponse(zap.NewNop(), rr, errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), constvars.ErrClientSomethingWrongWithApplication)
	})
}

func TestBuildSuccessResponse(t *testing.T) {
	rr := httptest.NewRecorder()
	BuildSuccessResponse(rr, http.StatusCreated, constvars.CreateFormDraftSuccessMessage, map[string]string{"id": "d-1"})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, constvars.MIMEApplicationJSON, rr.Header().Get(constvars.HeaderContentType))
	assert.JSONEq(t, `{"success":true,"message":"form draft created successfully","data":{"id":"d-1"}}`, rr.Body.String())
}
