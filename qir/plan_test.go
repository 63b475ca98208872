package qir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/qir"
)

func TestComputePlan_NoCertificates(t *testing.T) {
	for n := 1; n <= 12; n++ {
		plan, err := qir.ComputePlan(n, 1, nil)
		require.NoError(t, err)
		assert.Empty(t, plan.Certificates)
		assert.Equal(t, 2, plan.IndexPage())
		assert.Equal(t, n+1, plan.TotalPages())
	}
}

func TestComputePlan_ContiguousEntries(t *testing.T) {
	plan, err := qir.ComputePlan(5, qir.DefaultInspectionPage, []qir.CertInput{
		{Label: "Mill TC", PageCount: 3},
		{Label: "Hardness", PageCount: 2},
	})
	require.NoError(t, err)
	require.Len(t, plan.Certificates, 2)

	assert.Equal(t, qir.CertEntry{Label: "Mill TC", StartPage: 7, PageCount: 3}, plan.Certificates[0])
	assert.Equal(t, qir.CertEntry{Label: "Hardness", StartPage: 10, PageCount: 2}, plan.Certificates[1])
	assert.Equal(t, 9, plan.Certificates[0].EndPage())
	assert.Equal(t, 11, plan.TotalPages())
}

func TestComputePlan_Labels(t *testing.T) {
	plan, err := qir.ComputePlan(1, 1, []qir.CertInput{
		{Label: "  ", PageCount: 1},
		{Label: "", PageCount: 1},
		{Label: " Chemical ", PageCount: 1},
	})
	require.NoError(t, err)
	require.Len(t, plan.Certificates, 3)
	assert.Equal(t, qir.DefaultCertificateLabel, plan.Certificates[0].Label)
	assert.Equal(t, qir.DefaultCertificateLabel, plan.Certificates[1].Label)
	assert.Equal(t, "Chemical", plan.Certificates[2].Label)
	assert.Equal(t, "Certificate, Certificate, Chemical", plan.Labels())
}

func TestComputePlan_SkipsEmptyCertificates(t *testing.T) {
	plan, err := qir.ComputePlan(3, 3, []qir.CertInput{
		{Label: "A", PageCount: 0},
		{Label: "B", PageCount: 2},
		{Label: "C", PageCount: -1},
		{Label: "D", PageCount: 1},
	})
	require.NoError(t, err)
	require.Len(t, plan.Certificates, 2)
	assert.Equal(t, 5, plan.Certificates[0].StartPage)
	assert.Equal(t, 7, plan.Certificates[1].StartPage)
	assert.Equal(t, 3+1+3, plan.TotalPages())
}

func TestComputePlan_Errors(t *testing.T) {
	tests := []struct {
		name       string
		base       int
		inspection int
		want       error
	}{
		{name: "empty base", base: 0, inspection: 1, want: qir.ErrEmptyBaseDocument},
		{name: "inspection zero", base: 5, inspection: 0, want: qir.ErrInspectionPageOutOfRange},
		{name: "inspection past base", base: 2, inspection: 4, want: qir.ErrInspectionPageOutOfRange},
		{name: "inspection one past base", base: 3, inspection: 4, want: qir.ErrInspectionPageOutOfRange},
		{name: "inspection on index page", base: 5, inspection: 2, want: qir.ErrInspectionPageOutOfRange},
		{name: "inspection negative", base: 5, inspection: -1, want: qir.ErrInspectionPageOutOfRange},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := qir.ComputePlan(tc.base, tc.inspection, nil)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestComputePlan_InspectionBounds(t *testing.T) {
	plan, err := qir.ComputePlan(4, 4, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, plan.InspectionPage)

	plan, err = qir.ComputePlan(3, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, plan.InspectionPage)
}

func TestPagePlan_FinalPage(t *testing.T) {
	plan, err := qir.ComputePlan(4, 4, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, plan.FinalPage(1))
	assert.Equal(t, 3, plan.FinalPage(2))
	assert.Equal(t, 5, plan.FinalPage(4))
}

func TestPagePlan_WithVisualInspection(t *testing.T) {
	plan, err := qir.ComputePlan(5, 4, nil)
	require.NoError(t, err)

	assert.Equal(t, 5, plan.WithVisualInspection(5).VisualInspectionPage)
	assert.Zero(t, plan.WithVisualInspection(2).VisualInspectionPage, "index page")
	assert.Zero(t, plan.WithVisualInspection(7).VisualInspectionPage, "past the base document")
	assert.Zero(t, plan.VisualInspectionPage, "value receiver")
}
