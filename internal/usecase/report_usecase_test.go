package usecase

import (
	"context"
	"testing"

	"graphene-trace-portal/internal/delivery/dto"
	"graphene-trace-portal/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedReportData(t *testing.T, env *testEnv) {
	t.Helper()
	clinician := env.createUser(t, "c@example.com", "secret1", entity.RoleClinician)
	env.createUser(t, "c2@example.com", "secret1", entity.RoleClinician)
	patient := env.createUser(t, "p@example.com", "secret1", entity.RolePatient)
	env.createUser(t, "p2@example.com", "secret1", entity.RolePatient)
	env.createUser(t, "a@example.com", "secret1", entity.RoleAdmin)
	env.createUser(t, "none@example.com", "secret1")

	_, err := env.assignments.Assign(context.Background(), &dto.AssignRequest{ClinicianID: clinician.ID.String(), PatientID: patient.ID.String()})
	require.NoError(t, err)
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t)
	seedReportData(t, env)

	stats, err := env.reports.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(6), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.ClinicianCount)
	assert.Equal(t, int64(2), stats.PatientCount)
	assert.Equal(t, int64(1), stats.AdminCount)
	assert.Len(t, stats.Roles, 3)
}

func TestKPIDetails(t *testing.T) {
	env := newTestEnv(t)
	seedReportData(t, env)
	ctx := context.Background()

	clinicians, err := env.reports.KPIDetails(ctx, "Clinicians")
	require.NoError(t, err)
	assert.Equal(t, KPIClinicians, clinicians.Type)
	require.Equal(t, 2, clinicians.Count)
	assert.Equal(t, "c2@example.com", clinicians.Items[0].Email)
	assert.Equal(t, int64(0), *clinicians.Items[0].PatientCount)
	assert.Equal(t, int64(1), *clinicians.Items[1].PatientCount)

	patients, err := env.reports.KPIDetails(ctx, KPIPatients)
	require.NoError(t, err)
	require.Equal(t, 2, patients.Count)
	// ordered by email: p2@ sorts before p@
	assert.Equal(t, "p2@example.com", patients.Items[0].Email)
	assert.Nil(t, patients.Items[0].AssignedClinicianEmail)
	require.NotNil(t, patients.Items[1].AssignedClinicianEmail)
	assert.Equal(t, "c@example.com", *patients.Items[1].AssignedClinicianEmail)

	total, err := env.reports.KPIDetails(ctx, "anything")
	require.NoError(t, err)
	assert.Equal(t, "anything", total.Type)
	assert.Equal(t, 6, total.Count)

	roleByEmail := make(map[string]string)
	for _, item := range total.Items {
		roleByEmail[item.Email] = item.Role
	}
	assert.Equal(t, "", roleByEmail["none@example.com"])
	assert.Equal(t, entity.RoleAdmin, roleByEmail["a@example.com"])
}
