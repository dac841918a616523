package domain

import (
	"time"
)

// Типы оценки: самооценка и оценка руководителя
const (
	AssessmentTypeSelf    = "self"
	AssessmentTypeManager = "manager"
)

// Organization представляет организацию (тенант)
type Organization struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:varchar(200);not null"`
	CreatedBy string    `json:"created_by" gorm:"type:varchar(200)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName задаёт имя таблицы для GORM
func (Organization) TableName() string {
	return "organizations"
}

// Employee представляет сотрудника
type Employee struct {
	ID             int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	OrganizationID *int64     `json:"organization_id" gorm:"index"`
	Name           string     `json:"name" gorm:"type:varchar(200);not null"`
	Email          string     `json:"email" gorm:"type:varchar(200)"`
	JobTitle       string     `json:"job_title" gorm:"type:varchar(200)"`
	JobLevel       string     `json:"job_level" gorm:"type:varchar(200)"`
	Department     string     `json:"department" gorm:"type:varchar(200)"`
	ManagerID      *int64     `json:"manager_id" gorm:"index"`
	HireDate       *time.Time `json:"hire_date" gorm:"type:date"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`

	Manager *Employee `json:"-" gorm:"foreignKey:ManagerID"`
}

// TableName задаёт имя таблицы для GORM
func (Employee) TableName() string {
	return "employees"
}

// Competency представляет компетенцию — группу навыков
type Competency struct {
	ID             int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	OrganizationID *int64 `json:"organization_id" gorm:"index"`
	Name           string `json:"name" gorm:"type:varchar(200);not null"`
	Description    string `json:"description" gorm:"type:text"`

	Skills []Skill `json:"skills,omitempty" gorm:"foreignKey:CompetencyID;constraint:OnDelete:CASCADE"`
}

// TableName задаёт имя таблицы для GORM
func (Competency) TableName() string {
	return "competencies"
}

// Skill представляет навык внутри компетенции
type Skill struct {
	ID           int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	CompetencyID int64  `json:"competency_id" gorm:"not null;index"`
	Name         string `json:"name" gorm:"type:varchar(200);not null"`
	Description  string `json:"description" gorm:"type:text"`

	Competency *Competency `json:"-" gorm:"foreignKey:CompetencyID"`
}

// TableName задаёт имя таблицы для GORM
func (Skill) TableName() string {
	return "skills"
}

// JobLevel представляет уровень должности (грейд)
type JobLevel struct {
	ID             int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	OrganizationID *int64 `json:"organization_id" gorm:"index"`
	Name           string `json:"name" gorm:"type:varchar(200);not null"`
	Description    string `json:"description" gorm:"type:text"`
}

// TableName задаёт имя таблицы для GORM
func (JobLevel) TableName() string {
	return "job_levels"
}

// SkillExpectation — целевая оценка навыка для уровня должности.
// Компетенция и навык привязаны по имени, не по id: переименование
// выполняется каскадным переписыванием зависимых строк в сервисе компетенций.
type SkillExpectation struct {
	ID             int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	OrganizationID *int64  `json:"organization_id" gorm:"index"`
	JobLevel       string  `json:"job_level" gorm:"type:varchar(200);not null;index"`
	Competency     string  `json:"competency" gorm:"type:varchar(200);not null"`
	Skill          string  `json:"skill" gorm:"type:varchar(200);not null"`
	ExpectedScore  float64 `json:"expected_score" gorm:"not null"`
}

// TableName задаёт имя таблицы для GORM
func (SkillExpectation) TableName() string {
	return "skill_expectations"
}

// CompetencyExpectation — целевая оценка компетенции для уровня должности
type CompetencyExpectation struct {
	ID             int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	OrganizationID *int64  `json:"organization_id" gorm:"index"`
	JobLevel       string  `json:"job_level" gorm:"type:varchar(200);not null;index"`
	Competency     string  `json:"competency" gorm:"type:varchar(200);not null"`
	ExpectedScore  float64 `json:"expected_score" gorm:"not null"`
}

// TableName задаёт имя таблицы для GORM
func (CompetencyExpectation) TableName() string {
	return "competency_expectations"
}

// SkillAssessment — событие оценки навыка. Журнал только дополняется:
// «обновление» оценки — это новая строка с более поздней датой.
type SkillAssessment struct {
	ID             int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	OrganizationID *int64    `json:"organization_id" gorm:"index"`
	EmployeeID     int64     `json:"employee_id" gorm:"not null;index"`
	Competency     string    `json:"competency" gorm:"type:varchar(200);not null"`
	Skill          string    `json:"skill" gorm:"type:varchar(200);not null"`
	Score          float64   `json:"score" gorm:"not null"`
	AssessmentType string    `json:"assessment_type" gorm:"type:varchar(20);not null"`
	AssessmentDate time.Time `json:"assessment_date" gorm:"type:date;not null"`
	Notes          string    `json:"notes" gorm:"type:text"`
}

// TableName задаёт имя таблицы для GORM
func (SkillAssessment) TableName() string {
	return "skill_assessments"
}

// CompetencyAssessment — событие оценки компетенции в целом.
// Отдельная таблица: значения не выводятся усреднением оценок навыков.
type CompetencyAssessment struct {
	ID             int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	OrganizationID *int64    `json:"organization_id" gorm:"index"`
	EmployeeID     int64     `json:"employee_id" gorm:"not null;index"`
	Competency     string    `json:"competency" gorm:"type:varchar(200);not null"`
	Score          float64   `json:"score" gorm:"not null"`
	AssessmentType string    `json:"assessment_type" gorm:"type:varchar(20);not null"`
	AssessmentDate time.Time `json:"assessment_date" gorm:"type:date;not null"`
	Notes          string    `json:"notes" gorm:"type:text"`
}

// TableName задаёт имя таблицы для GORM
func (CompetencyAssessment) TableName() string {
	return "competency_assessments"
}

// Invitation представляет приглашение в организацию
type Invitation struct {
	ID             int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	OrganizationID int64      `json:"organization_id" gorm:"not null;index"`
	Email          string     `json:"email" gorm:"type:varchar(200);not null"`
	Token          string     `json:"token" gorm:"type:varchar(36);not null;uniqueIndex"`
	Role           string     `json:"role" gorm:"type:varchar(50)"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
	AcceptedAt     *time.Time `json:"accepted_at"`
}

// TableName задаёт имя таблицы для GORM
func (Invitation) TableName() string {
	return "invitations"
}
