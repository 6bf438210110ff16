package repositoryImp

import (
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"riskbot/entities"
	"riskbot/pkg/risk/repository"
)

func openTestDB(t *testing.T) repository.RiskRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Risk{}, &entities.AdditionalMitigation{}))
	return New(db)
}

func seed(t *testing.T, r repository.RiskRepository, phase string, score int) uint {
	t.Helper()
	risk := &entities.Risk{
		UserID: 1, Username: "u", Phase: phase,
		Object: "Скважины", Category: "Бурение",
		Description: "d", RiskScore: score,
	}
	require.NoError(t, r.Create(risk))
	return risk.RiskID
}

func TestListByPhaseOrderAndFilter(t *testing.T) {
	r := openTestDB(t)
	a := seed(t, r, "1", 5)
	b := seed(t, r, "1", 9)
	c := seed(t, r, "1", 9)
	seed(t, r, "2", 15)

	list, total, err := r.ListByPhase("1", 30, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, list, 3)
	// score desc, id asc ties
	assert.Equal(t, b, list[0].RiskID)
	assert.Equal(t, c, list[1].RiskID)
	assert.Equal(t, a, list[2].RiskID)

	all, total, err := r.ListByPhase("all", 30, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, all, 4)
}

func TestListByPhasePagination(t *testing.T) {
	r := openTestDB(t)
	for i := 0; i < 5; i++ {
		seed(t, r, "1", 10-i)
	}

	page1, total, err := r.ListByPhase("1", 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, page1, 2)

	page3, _, err := r.ListByPhase("1", 2, 4)
	require.NoError(t, err)
	assert.Len(t, page3, 1)
	assert.Equal(t, 6, page3[0].RiskScore)
}

func TestFindByIDPreloadsMitigations(t *testing.T) {
	r := openTestDB(t)
	id := seed(t, r, "1", 7)

	require.NoError(t, r.AddMitigation(&entities.AdditionalMitigation{
		RiskID: id, UserID: 2, Username: "v", Mitigation: "m1", ExpectedResult: "e1",
	}))
	require.NoError(t, r.AddMitigation(&entities.AdditionalMitigation{
		RiskID: id, UserID: 3, Username: "w", Mitigation: "m2", ExpectedResult: "e2",
	}))

	got, err := r.FindByID(id)
	require.NoError(t, err)
	assert.Len(t, got.Mitigations, 2)

	_, err = r.FindByID(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCountByCategory(t *testing.T) {
	r := openTestDB(t)
	for i := 0; i < 3; i++ {
		seed(t, r, "1", 5)
	}
	require.NoError(t, r.Create(&entities.Risk{Phase: "1", Category: "Логистика", RiskScore: 3}))

	counts, err := r.CountByCategory("1")
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, "Бурение", counts[0].Category)
	assert.EqualValues(t, 3, counts[0].Count)
}

func TestTopByScore(t *testing.T) {
	r := openTestDB(t)
	for i := 1; i <= 8; i++ {
		seed(t, r, "1", i)
	}

	top, err := r.TopByScore("all", 5)
	require.NoError(t, err)
	require.Len(t, top, 5)
	assert.Equal(t, 8, top[0].RiskScore)
	assert.Equal(t, 4, top[4].RiskScore)
}
