package domain

import "testing"

func ptr(v int64) *int64 { return &v }

func TestSampleVisibilityForSuperuser(t *testing.T) {
	vis := SampleVisibilityFor(&User{ID: 1, Superuser: true, Role: RoleStaff})
	if !vis.Unrestricted {
		t.Fatal("superuser must be unrestricted")
	}
}

func TestSampleVisibilityForStateLabAdmin(t *testing.T) {
	vis := SampleVisibilityFor(&User{ID: 2, Role: RoleStateLabAdmin, StateID: ptr(7), DistrictID: ptr(3)})
	if vis.Unrestricted {
		t.Fatal("state lab admin must not be unrestricted")
	}
	if vis.CreatorUserID != 2 {
		t.Fatalf("creator id = %d, want 2", vis.CreatorUserID)
	}
	if vis.StateID == nil || *vis.StateID != 7 {
		t.Fatalf("state id = %v, want 7", vis.StateID)
	}
	if vis.DistrictID != nil {
		t.Fatal("state scope must win over district scope")
	}
}

func TestSampleVisibilityForDistrictLabAdmin(t *testing.T) {
	vis := SampleVisibilityFor(&User{ID: 3, Role: RoleDistrictLabAdmin, StateID: ptr(7), DistrictID: ptr(3)})
	if vis.StateID != nil {
		t.Fatal("district lab admin must not get state scope")
	}
	if vis.DistrictID == nil || *vis.DistrictID != 3 {
		t.Fatalf("district id = %v, want 3", vis.DistrictID)
	}
}

func TestSampleVisibilityForStaff(t *testing.T) {
	vis := SampleVisibilityFor(&User{ID: 4, Role: RoleStaff, StateID: ptr(7), DistrictID: ptr(3)})
	if vis.StateID != nil || vis.DistrictID != nil {
		t.Fatal("staff must only see what they created")
	}
	if vis.CreatorUserID != 4 {
		t.Fatalf("creator id = %d, want 4", vis.CreatorUserID)
	}
}
