package domain

import "errors"

// Определение бизнес-ошибок
var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrCompetencyNotFound   = errors.New("competency not found")
	ErrSkillNotFound        = errors.New("skill not found")
	ErrJobLevelNotFound     = errors.New("job level not found")
	ErrAssessmentNotFound   = errors.New("assessment not found")
	ErrInvitationNotFound   = errors.New("invitation not found")

	ErrEmployeeIsManager = errors.New("employee is referenced as manager by other employees")
	ErrJobLevelInUse     = errors.New("job level is referenced by employees")
	ErrSelfManager       = errors.New("employee cannot be their own manager")
	ErrManagerCycle      = errors.New("assigning this manager would create a cycle")

	ErrDuplicateCompetencyName = errors.New("competency with this name already exists in the organization")
	ErrDuplicateSkillName      = errors.New("skill with this name already exists in the competency")
	ErrDuplicateJobLevelName   = errors.New("job level with this name already exists in the organization")

	ErrInvalidScore              = errors.New("score must be between 1.0 and 5.0 in 0.5 increments")
	ErrUnknownJobLevel           = errors.New("job level is not defined")
	ErrInvitationAlreadyAccepted = errors.New("invitation has already been accepted")
)
