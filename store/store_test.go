package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"campusportal/db"
	"campusportal/models"
)

func setupDB(t *testing.T) {
	t.Helper()
	db.InitDB(filepath.Join(t.TempDir(), "test_store.db"))
	t.Cleanup(func() { db.DB.Close() })
}

func TestAdminAccounts(t *testing.T) {
	setupDB(t)

	id, err := CreateAdmin("alice", "hash-1")
	if err != nil {
		t.Fatalf("CreateAdmin failed: %v", err)
	}

	admin, err := AdminByUsername("alice")
	if err != nil {
		t.Fatalf("AdminByUsername failed: %v", err)
	}
	if admin.ID != id || admin.PasswordHash != "hash-1" {
		t.Errorf("Unexpected admin record: %+v", admin)
	}

	byID, err := AdminByID(id)
	if err != nil || byID.Username != "alice" {
		t.Errorf("AdminByID returned %+v, %v", byID, err)
	}

	if _, err := AdminByUsername("nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown admin, got %v", err)
	}

	// Duplicate username is rejected by the unique constraint
	if _, err := CreateAdmin("alice", "hash-2"); err == nil {
		t.Error("Expected duplicate admin username to fail")
	}
	var count int
	db.DB.QueryRow("SELECT COUNT(*) FROM admins").Scan(&count)
	if count != 1 {
		t.Errorf("Expected 1 admin after duplicate insert, got %d", count)
	}
}

func TestStudentAccounts(t *testing.T) {
	setupDB(t)

	if _, err := CreateStudent("bob", "bob@x.com", "hash-1"); err != nil {
		t.Fatalf("CreateStudent failed: %v", err)
	}

	cases := []struct {
		username, email string
		want            bool
	}{
		{"bob", "other@x.com", true},
		{"other", "bob@x.com", true},
		{"bob", "bob@x.com", true},
		{"carol", "carol@x.com", false},
	}
	for _, c := range cases {
		taken, err := StudentExists(c.username, c.email)
		if err != nil {
			t.Fatalf("StudentExists(%s, %s) failed: %v", c.username, c.email, err)
		}
		if taken != c.want {
			t.Errorf("StudentExists(%s, %s) = %v, want %v", c.username, c.email, taken, c.want)
		}
	}

	student, err := StudentByUsername("bob")
	if err != nil || student.Email != "bob@x.com" {
		t.Errorf("StudentByUsername returned %+v, %v", student, err)
	}

	if _, err := StudentByID(student.ID + 100); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown student id, got %v", err)
	}

	if _, err := CreateStudent("bob", "new@x.com", "hash-2"); err == nil {
		t.Error("Expected duplicate student username to fail")
	}
	if _, err := CreateStudent("dave", "bob@x.com", "hash-3"); err == nil {
		t.Error("Expected duplicate student email to fail")
	}
}

func TestItemCRUD(t *testing.T) {
	setupDB(t)

	id, err := CreateItem("Widget", "A fine widget.")
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}

	item, err := ItemByID(id)
	if err != nil {
		t.Fatalf("ItemByID failed: %v", err)
	}
	if item.Title != "Widget" || item.Description != "A fine widget." {
		t.Errorf("Unexpected item: %+v", item)
	}
	if item.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}

	// Blank description is stored as NULL and read back empty
	bareID, err := CreateItem("Bare", "")
	if err != nil {
		t.Fatalf("CreateItem without description failed: %v", err)
	}
	bare, _ := ItemByID(bareID)
	if bare.Description != "" {
		t.Errorf("Expected empty description, got %q", bare.Description)
	}

	if err := UpdateItem(id, "Gadget", ""); err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	updated, _ := ItemByID(id)
	if updated.Title != "Gadget" || updated.Description != "" {
		t.Errorf("Update not applied: %+v", updated)
	}

	if err := UpdateItem(9999, "X", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound updating missing item, got %v", err)
	}

	if err := DeleteItem(id); err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}
	if _, err := ItemByID(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := DeleteItem(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestListItemsPagination(t *testing.T) {
	setupDB(t)

	for i := 1; i <= 8; i++ {
		if _, err := CreateItem(fmt.Sprintf("Item %d", i), ""); err != nil {
			t.Fatalf("CreateItem failed: %v", err)
		}
	}

	page1, err := ListItems(1)
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(page1.Items) != PageSize {
		t.Fatalf("Expected %d items on page 1, got %d", PageSize, len(page1.Items))
	}
	if page1.Items[0].Title != "Item 8" {
		t.Errorf("Expected newest item first, got %q", page1.Items[0].Title)
	}
	if page1.TotalPages != 2 || page1.HasPrev || !page1.HasNext {
		t.Errorf("Unexpected page 1 metadata: %+v", page1)
	}

	page2, _ := ListItems(2)
	if len(page2.Items) != 2 {
		t.Errorf("Expected 2 items on page 2, got %d", len(page2.Items))
	}
	if page2.Items[1].Title != "Item 1" {
		t.Errorf("Expected oldest item last, got %q", page2.Items[1].Title)
	}
	if !page2.HasPrev || page2.HasNext {
		t.Errorf("Unexpected page 2 metadata: %+v", page2)
	}

	// Out-of-range pages degrade to an empty page, not an error
	beyond, err := ListItems(99)
	if err != nil {
		t.Fatalf("ListItems(99) failed: %v", err)
	}
	if len(beyond.Items) != 0 {
		t.Errorf("Expected empty page beyond the end, got %d items", len(beyond.Items))
	}

	// Pages below 1 are treated as page 1
	clamped, err := ListItems(-3)
	if err != nil {
		t.Fatalf("ListItems(-3) failed: %v", err)
	}
	if clamped.Page != 1 || len(clamped.Items) != PageSize {
		t.Errorf("Expected page -3 to clamp to page 1, got page %d with %d items", clamped.Page, len(clamped.Items))
	}
}

func TestApplications(t *testing.T) {
	setupDB(t)

	studentID, err := CreateStudent("bob", "bob@x.com", "hash")
	if err != nil {
		t.Fatalf("CreateStudent failed: %v", err)
	}

	first, err := CreateApplication(studentID, "resume_v1.pdf")
	if err != nil {
		t.Fatalf("CreateApplication failed: %v", err)
	}
	second, err := CreateApplication(studentID, "resume_v2.pdf")
	if err != nil {
		t.Fatalf("CreateApplication failed: %v", err)
	}

	apps, err := ApplicationsByStudent(studentID)
	if err != nil {
		t.Fatalf("ApplicationsByStudent failed: %v", err)
	}
	if len(apps) != 2 {
		t.Fatalf("Expected 2 applications, got %d", len(apps))
	}
	if apps[0].ID != second || apps[1].ID != first {
		t.Errorf("Expected newest-first order, got %d then %d", apps[0].ID, apps[1].ID)
	}
	for _, app := range apps {
		if app.Status != models.StatusPending {
			t.Errorf("Expected new application to be Pending, got %q", app.Status)
		}
		if app.ApprovedAt != nil {
			t.Error("Expected no approval timestamp on a pending application")
		}
	}

	all, err := AllApplications()
	if err != nil {
		t.Fatalf("AllApplications failed: %v", err)
	}
	if len(all) != 2 || all[0].StudentUsername != "bob" {
		t.Errorf("Expected joined student username, got %+v", all)
	}

	if err := ApproveApplication(first); err != nil {
		t.Fatalf("ApproveApplication failed: %v", err)
	}
	apps, _ = ApplicationsByStudent(studentID)
	var approved models.Application
	for _, app := range apps {
		if app.ID == first {
			approved = app
		}
	}
	if approved.Status != models.StatusApproved {
		t.Errorf("Expected status Approved, got %q", approved.Status)
	}
	if approved.ApprovedAt == nil {
		t.Error("Expected approval timestamp to be set")
	}

	// Re-approval just re-stamps; it is not an error
	if err := ApproveApplication(first); err != nil {
		t.Errorf("Re-approving failed: %v", err)
	}

	if err := ApproveApplication(9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound approving missing application, got %v", err)
	}
}
