package dto

import (
	"time"
)

// CreateEmployeeRequest - запрос на создание сотрудника
type CreateEmployeeRequest struct {
	Name       string  `json:"name" validate:"required,min=1,max=200"`
	Email      string  `json:"email" validate:"omitempty,email,max=200"`
	JobTitle   string  `json:"job_title" validate:"omitempty,max=200"`
	JobLevel   string  `json:"job_level" validate:"omitempty,max=200"`
	Department string  `json:"department" validate:"omitempty,max=200"`
	ManagerID  *int64  `json:"manager_id" validate:"omitempty,min=1"`
	HireDate   *string `json:"hire_date" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateEmployeeRequest - запрос на обновление сотрудника
type UpdateEmployeeRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email      *string `json:"email" validate:"omitempty,email,max=200"`
	JobTitle   *string `json:"job_title" validate:"omitempty,max=200"`
	JobLevel   *string `json:"job_level" validate:"omitempty,max=200"`
	Department *string `json:"department" validate:"omitempty,max=200"`
	ManagerID  *int64  `json:"manager_id" validate:"omitempty,min=1"`
	// ClearManager снимает привязку к руководителю: пропуск поля и null
	// в JSON неразличимы, поэтому отвязка задаётся явным флагом
	ClearManager bool    `json:"clear_manager"`
	HireDate     *string `json:"hire_date" validate:"omitempty,datetime=2006-01-02"`
}

// ListEmployeesQuery - параметры выборки сотрудников
type ListEmployeesQuery struct {
	Department string
	ManagerID  *int64
}

// EmployeeResponse - ответ с данными сотрудника
type EmployeeResponse struct {
	ID             int64     `json:"id"`
	OrganizationID *int64    `json:"organization_id,omitempty"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	JobTitle       string    `json:"job_title,omitempty"`
	JobLevel       string    `json:"job_level,omitempty"`
	Department     string    `json:"department,omitempty"`
	ManagerID      *int64    `json:"manager_id,omitempty"`
	HireDate       *string   `json:"hire_date,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateCompetencyRequest - запрос на создание компетенции
type CreateCompetencyRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

// UpdateCompetencyRequest - запрос на обновление компетенции.
// Переименование каскадно переписывает зависимые оценки и ожидания.
type UpdateCompetencyRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// CreateSkillRequest - запрос на создание навыка
type CreateSkillRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

// UpdateSkillRequest - запрос на обновление навыка
type UpdateSkillRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// CreateJobLevelRequest - запрос на создание уровня должности
type CreateJobLevelRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

// UpdateJobLevelRequest - запрос на обновление уровня должности
type UpdateJobLevelRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// UpsertSkillExpectationRequest - upsert ожидания по навыку
// для составного ключа (уровень, компетенция, навык)
type UpsertSkillExpectationRequest struct {
	JobLevel      string  `json:"job_level" validate:"required,min=1,max=200"`
	Competency    string  `json:"competency" validate:"required,min=1,max=200"`
	Skill         string  `json:"skill" validate:"required,min=1,max=200"`
	ExpectedScore float64 `json:"expected_score" validate:"required,min=1,max=5"`
}

// UpsertCompetencyExpectationRequest - upsert ожидания по компетенции
type UpsertCompetencyExpectationRequest struct {
	JobLevel      string  `json:"job_level" validate:"required,min=1,max=200"`
	Competency    string  `json:"competency" validate:"required,min=1,max=200"`
	ExpectedScore float64 `json:"expected_score" validate:"required,min=1,max=5"`
}

// RecordSkillAssessmentRequest - запрос на запись оценки навыка
type RecordSkillAssessmentRequest struct {
	EmployeeID     int64   `json:"employee_id" validate:"required,min=1"`
	Competency     string  `json:"competency" validate:"required,min=1,max=200"`
	Skill          string  `json:"skill" validate:"required,min=1,max=200"`
	Score          float64 `json:"score" validate:"required,min=1,max=5"`
	AssessmentType string  `json:"assessment_type" validate:"required,oneof=self manager"`
	AssessmentDate *string `json:"assessment_date" validate:"omitempty,datetime=2006-01-02"`
	Notes          string  `json:"notes" validate:"omitempty,max=2000"`
}

// RecordCompetencyAssessmentRequest - запрос на запись оценки компетенции
type RecordCompetencyAssessmentRequest struct {
	EmployeeID     int64   `json:"employee_id" validate:"required,min=1"`
	Competency     string  `json:"competency" validate:"required,min=1,max=200"`
	Score          float64 `json:"score" validate:"required,min=1,max=5"`
	AssessmentType string  `json:"assessment_type" validate:"required,oneof=self manager"`
	AssessmentDate *string `json:"assessment_date" validate:"omitempty,datetime=2006-01-02"`
	Notes          string  `json:"notes" validate:"omitempty,max=2000"`
}

// LatestAssessmentQuery - параметры поиска последней оценки
type LatestAssessmentQuery struct {
	Competency     string `validate:"required,min=1"`
	Skill          string
	AssessmentType string `validate:"required,oneof=self manager"`
}

// AssessmentResponse - ответ с данными оценки
type AssessmentResponse struct {
	ID             int64   `json:"id"`
	EmployeeID     int64   `json:"employee_id"`
	Competency     string  `json:"competency"`
	Skill          string  `json:"skill,omitempty"`
	Score          float64 `json:"score"`
	AssessmentType string  `json:"assessment_type"`
	AssessmentDate string  `json:"assessment_date"`
	Notes          string  `json:"notes,omitempty"`
}

// HistoryPointResponse - точка временного ряда прогресса:
// не более одной строки на пару (день, тип оценки)
type HistoryPointResponse struct {
	Date           string  `json:"date"`
	AssessmentType string  `json:"assessment_type"`
	Score          float64 `json:"score"`
}

// MatrixRowResponse - строка матрицы средних значений
type MatrixRowResponse struct {
	Competency     string  `json:"competency"`
	Skill          string  `json:"skill,omitempty"`
	AssessmentType string  `json:"assessment_type"`
	Mean           float64 `json:"mean"`
	Count          int     `json:"count"`
}

// RadarRowResponse - строка командного радара:
// среднее последних значений по участникам команды
type RadarRowResponse struct {
	Competency string  `json:"competency"`
	Skill      string  `json:"skill,omitempty"`
	Mean       float64 `json:"mean"`
	Members    int     `json:"members"`
}

// GapRowResponse - строка сравнения с ожиданием.
// Expected и Gap отсутствуют, если ожидание не задано.
type GapRowResponse struct {
	Competency string   `json:"competency"`
	Skill      string   `json:"skill,omitempty"`
	Actual     float64  `json:"actual"`
	Expected   *float64 `json:"expected"`
	Gap        *float64 `json:"gap"`
}

// CreateOrganizationRequest - запрос на создание организации
type CreateOrganizationRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	CreatedBy string `json:"created_by" validate:"omitempty,max=200"`
}

// CreateInvitationRequest - запрос на создание приглашения
type CreateInvitationRequest struct {
	Email string `json:"email" validate:"required,email,max=200"`
	Role  string `json:"role" validate:"omitempty,oneof=admin manager employee"`
}

// AcceptInvitationRequest - запрос на принятие приглашения по токену
type AcceptInvitationRequest struct {
	Token string `json:"token" validate:"required,uuid4"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
