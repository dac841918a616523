package service

import (
	"math"
	"testing"
	"time"

	"github.com/skill-matrix-api/internal/domain"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSkillGroupMeansUsesAllHistory(t *testing.T) {
	rows := []domain.SkillAssessment{
		{ID: 1, EmployeeID: 1, Competency: "Communication", Skill: "Writing", Score: 2, AssessmentType: domain.AssessmentTypeSelf, AssessmentDate: date("2024-01-01")},
		{ID: 2, EmployeeID: 1, Competency: "Communication", Skill: "Writing", Score: 4, AssessmentType: domain.AssessmentTypeSelf, AssessmentDate: date("2024-02-01")},
		{ID: 3, EmployeeID: 1, Competency: "Communication", Skill: "Speaking", Score: 3, AssessmentType: domain.AssessmentTypeSelf, AssessmentDate: date("2024-02-01")},
	}

	result := skillGroupMeans(rows)

	if len(result) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(result))
	}

	// Строки отсортированы: Speaking раньше Writing
	if result[0].Skill != "Speaking" || !almostEqual(result[0].Mean, 3) {
		t.Errorf("unexpected first row: %+v", result[0])
	}
	// Среднее по всей истории, не последнее значение
	if result[1].Skill != "Writing" || !almostEqual(result[1].Mean, 3) || result[1].Count != 2 {
		t.Errorf("unexpected second row: %+v", result[1])
	}
}

func TestCompetencyMeansIndependentFromSkillRows(t *testing.T) {
	// Оценки навыков {2,4} под компетенцией дают среднее 3,
	// но прямая оценка компетенции 5 должна остаться 5
	compRows := []domain.CompetencyAssessment{
		{ID: 1, EmployeeID: 1, Competency: "Communication", Score: 5, AssessmentType: domain.AssessmentTypeSelf, AssessmentDate: date("2024-01-01")},
	}

	result := competencyGroupMeans(compRows)

	if len(result) != 1 {
		t.Fatalf("expected 1 group, got %d", len(result))
	}
	if !almostEqual(result[0].Mean, 5) {
		t.Errorf("competency mean must come from competency assessments only, got %v", result[0].Mean)
	}
}

func TestSkillGroupMeansEmptyInput(t *testing.T) {
	result := skillGroupMeans(nil)
	if result == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(result) != 0 {
		t.Fatalf("expected empty result, got %d rows", len(result))
	}
}

func TestLatestSkillPerKeyPicksMaxDate(t *testing.T) {
	rows := []domain.SkillAssessment{
		{ID: 1, EmployeeID: 1, Competency: "C", Skill: "S", Score: 2, AssessmentDate: date("2024-01-01")},
		{ID: 2, EmployeeID: 1, Competency: "C", Skill: "S", Score: 4, AssessmentDate: date("2024-02-01")},
	}

	latest := latestSkillPerKey(rows)

	key := skillMemberKey{employeeID: 1, competency: "C", skill: "S"}
	if latest[key].ID != 2 {
		t.Errorf("expected row 2 to win, got %d", latest[key].ID)
	}
}

func TestLatestSkillPerKeyTieBrokenByID(t *testing.T) {
	// При равных датах побеждает больший id независимо от порядка строк
	rows := []domain.SkillAssessment{
		{ID: 7, EmployeeID: 1, Competency: "C", Skill: "S", Score: 4, AssessmentDate: date("2024-01-01")},
		{ID: 3, EmployeeID: 1, Competency: "C", Skill: "S", Score: 2, AssessmentDate: date("2024-01-01")},
	}

	latest := latestSkillPerKey(rows)

	key := skillMemberKey{employeeID: 1, competency: "C", skill: "S"}
	if latest[key].ID != 7 {
		t.Errorf("expected row 7 to win the tie, got %d", latest[key].ID)
	}
}

func TestSkillRadarMeansLatestPerMember(t *testing.T) {
	// Участник A: последняя самооценка 2 (история содержит и 5),
	// участник B: 4. Среднее команды — 3.
	rows := []domain.SkillAssessment{
		{ID: 1, EmployeeID: 1, Competency: "C", Skill: "S", Score: 5, AssessmentType: domain.AssessmentTypeSelf, AssessmentDate: date("2023-12-01")},
		{ID: 2, EmployeeID: 1, Competency: "C", Skill: "S", Score: 2, AssessmentType: domain.AssessmentTypeSelf, AssessmentDate: date("2024-01-01")},
		{ID: 3, EmployeeID: 2, Competency: "C", Skill: "S", Score: 4, AssessmentType: domain.AssessmentTypeSelf, AssessmentDate: date("2024-01-01")},
	}

	result := skillRadarMeans(rows)

	if len(result) != 1 {
		t.Fatalf("expected 1 radar row, got %d", len(result))
	}
	if !almostEqual(result[0].Mean, 3) {
		t.Errorf("expected team mean 3, got %v", result[0].Mean)
	}
	// Участник без оценки ключа не попадает в знаменатель
	if result[0].Members != 2 {
		t.Errorf("expected denominator 2, got %d", result[0].Members)
	}
}

func TestCompetencyRadarMeansEmptyInput(t *testing.T) {
	result := competencyRadarMeans(nil)
	if result == nil || len(result) != 0 {
		t.Fatalf("expected empty result, got %v", result)
	}
}

func TestDedupeHistoryKeepsLastRowPerDayAndType(t *testing.T) {
	points := []HistoryPoint{
		{Date: date("2024-01-01"), AssessmentType: domain.AssessmentTypeSelf, Score: 2},
		{Date: date("2024-01-01"), AssessmentType: domain.AssessmentTypeSelf, Score: 3.5},
		{Date: date("2024-01-01"), AssessmentType: domain.AssessmentTypeManager, Score: 4},
		{Date: date("2024-01-02"), AssessmentType: domain.AssessmentTypeSelf, Score: 5},
	}

	result := dedupeHistory(points)

	if len(result) != 3 {
		t.Fatalf("expected 3 points, got %d", len(result))
	}
	// Представитель дня — последняя строка (наибольший id при сортировке входа)
	if !almostEqual(result[0].Score, 3.5) {
		t.Errorf("expected self point for day 1 to be 3.5, got %v", result[0].Score)
	}
	if result[1].AssessmentType != domain.AssessmentTypeManager || !almostEqual(result[1].Score, 4) {
		t.Errorf("unexpected manager point: %+v", result[1])
	}
}

func TestValidScore(t *testing.T) {
	valid := []float64{1, 1.5, 2, 3.5, 5}
	for _, s := range valid {
		if !validScore(s) {
			t.Errorf("score %v must be valid", s)
		}
	}

	invalid := []float64{0.5, 5.5, 2.25, 3.1, 0, -1}
	for _, s := range invalid {
		if validScore(s) {
			t.Errorf("score %v must be invalid", s)
		}
	}
}
