package models

import (
	"time"

	"github.com/goccy/go-json"
)

// FormDraft is the persisted set of questionnaires attached to one encounter
// while it is being filled in. Forms are stored as a JSON payload since
// response values are a union the BSON codec cannot rebuild.
type FormDraft struct {
	ID           string                   `json:"id" bson:"_id"`
	Context      RequestContext           `json:"context" bson:"context"`
	Forms        []QuestionnaireFormState `json:"forms" bson:"-"`
	FormsPayload string                   `json:"-" bson:"forms"`
	LastState    SubmissionState          `json:"last_state,omitempty" bson:"lastState,omitempty"`
	ExpiresAt    time.Time                `json:"expires_at" bson:"expiresAt"`
	TimeModel    `bson:",inline"`
}

func (d *FormDraft) EncodeForms() error {
	payload, err := json.Marshal(d.Forms)
	if err != nil {
		return err
	}
	d.FormsPayload = string(payload)
	return nil
}

func (d *FormDraft) DecodeForms() error {
	if d.FormsPayload == "" {
		d.Forms = nil
		return nil
	}
	return json.Unmarshal([]byte(d.FormsPayload), &d.Forms)
}

// Touch stamps the update time and pushes expiry ttl into the future.
func (d *FormDraft) Touch(ttl time.Duration) {
	d.SetUpdatedAt()
	d.ExpiresAt = d.UpdatedAt.Add(ttl)
}

// FindForm returns the index of the form whose questionnaire id matches.
func (d *FormDraft) FindForm(questionnaireID string) int {
	for i, form := range d.Forms {
		if form.Questionnaire.ID == questionnaireID {
			return i
		}
	}
	return -1
}
