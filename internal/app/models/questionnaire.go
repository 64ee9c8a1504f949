package models

type QuestionType string

const (
	QuestionTypeString     QuestionType = "string"
	QuestionTypeText       QuestionType = "text"
	QuestionTypeBoolean    QuestionType = "boolean"
	QuestionTypeInteger    QuestionType = "integer"
	QuestionTypeDecimal    QuestionType = "decimal"
	QuestionTypeDate       QuestionType = "date"
	QuestionTypeDateTime   QuestionType = "dateTime"
	QuestionTypeTime       QuestionType = "time"
	QuestionTypeChoice     QuestionType = "choice"
	QuestionTypeQuantity   QuestionType = "quantity"
	QuestionTypeStructured QuestionType = "structured"
	QuestionTypeDisplay    QuestionType = "display"
	QuestionTypeGroup      QuestionType = "group"
)

type EnableWhenOperator string

const (
	OperatorExists          EnableWhenOperator = "exists"
	OperatorEquals          EnableWhenOperator = "equals"
	OperatorNotEquals       EnableWhenOperator = "not_equals"
	OperatorGreater         EnableWhenOperator = "greater"
	OperatorLess            EnableWhenOperator = "less"
	OperatorGreaterOrEquals EnableWhenOperator = "greater_or_equals"
	OperatorLessOrEquals    EnableWhenOperator = "less_or_equals"
)

type EnableBehavior string

const (
	EnableBehaviorAll EnableBehavior = "all"
	EnableBehaviorAny EnableBehavior = "any"
)

// EnableWhen references another question by link_id.
type EnableWhen struct {
	Question string             `json:"question" validate:"required"`
	Operator EnableWhenOperator `json:"operator" validate:"required,oneof=exists equals not_equals greater less greater_or_equals less_or_equals"`
	Answer   any                `json:"answer"`
}

type AnswerOption struct {
	Value   string  `json:"value"`
	Display string  `json:"display,omitempty"`
	Coding  *Coding `json:"coding,omitempty"`
}

type Question struct {
	ID             string         `json:"id"`
	LinkID         string         `json:"link_id"`
	Text           string         `json:"text"`
	Description    string         `json:"description,omitempty"`
	Type           QuestionType   `json:"type"`
	StructuredType StructuredType `json:"structured_type,omitempty"`
	Required       bool           `json:"required,omitempty"`
	Repeats        bool           `json:"repeats,omitempty"`
	ReadOnly       bool           `json:"read_only,omitempty"`
	AnswerOption   []AnswerOption `json:"answer_option,omitempty"`
	AnswerValueSet string         `json:"answer_value_set,omitempty"`
	Unit           *Coding        `json:"unit,omitempty"`
	EnableWhen     []EnableWhen   `json:"enable_when,omitempty"`
	EnableBehavior EnableBehavior `json:"enable_behavior,omitempty"`
	Questions      []Question     `json:"questions,omitempty"`
}

func (q Question) IsGroup() bool {
	return q.Type == QuestionTypeGroup
}

func (q Question) IsStructured() bool {
	return q.Type == QuestionTypeStructured && q.StructuredType != ""
}

type QuestionnaireDetail struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Version     string     `json:"version,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status,omitempty"`
	SubjectType string     `json:"subject_type,omitempty"`
	Questions   []Question `json:"questions"`
}

type Coding struct {
	System  string `json:"system,omitempty"`
	Code    string `json:"code"`
	Display string `json:"display,omitempty"`
}

func (c *Coding) IsEmpty() bool {
	return c == nil || c.Code == ""
}
