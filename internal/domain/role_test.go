package domain

import "testing"

func TestRoleOrdering(t *testing.T) {
	ordered := []Role{RoleStaff, RoleDoctor, RoleDistrictLabAdmin, RoleDistrictAdmin, RoleStateLabAdmin, RoleStateAdmin}
	for i := 1; i < len(ordered); i++ {
		if !ordered[i].AtLeast(ordered[i-1]) {
			t.Fatalf("%s should rank at least %s", ordered[i], ordered[i-1])
		}
		if ordered[i-1].AtLeast(ordered[i]) {
			t.Fatalf("%s should not rank at least %s", ordered[i-1], ordered[i])
		}
	}
	if !RoleStateLabAdmin.AtLeast(RoleStateLabAdmin) {
		t.Fatal("AtLeast must be reflexive")
	}
}

func TestSampleStatusValid(t *testing.T) {
	for _, s := range []SampleStatus{
		StatusRequestSubmitted, StatusApproved, StatusDenied,
		StatusSentToCollectionCentre, StatusReceivedAndForwarded,
		StatusReceivedAtLab, StatusCompleted,
	} {
		if !s.Valid() {
			t.Fatalf("%s should be valid", s)
		}
	}
	if SampleStatus("SHIPPED").Valid() {
		t.Fatal("SHIPPED should not be a valid status")
	}
}

func TestSampleResultValid(t *testing.T) {
	for _, r := range []SampleResult{ResultPositive, ResultNegative, ResultAwaiting, ResultInvalid} {
		if !r.Valid() {
			t.Fatalf("%s should be valid", r)
		}
	}
	if SampleResult("MAYBE").Valid() {
		t.Fatal("MAYBE should not be a valid result")
	}
}
