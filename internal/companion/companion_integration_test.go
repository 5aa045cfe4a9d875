package companion

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/CompaniaApp/Compania-Backend/internal/auth"
	"github.com/CompaniaApp/Compania-Backend/internal/customer"
	"github.com/CompaniaApp/Compania-Backend/internal/db"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

var (
	dbAvailable bool
	testSvc     *Service
)

func TestMain(m *testing.M) {
	_ = godotenv.Load("../../.env.local")

	if os.Getenv("DATABASE_URL") == "" {
		os.Exit(m.Run())
	}

	db.Connect()
	dbAvailable = true

	auth.Init()
	Init()
	customer.Init()

	testSvc = NewService(db.DB, os.TempDir())

	os.Exit(m.Run())
}

// newTestCompanion registers a fresh companion and returns its profile. The
// whole account is removed on cleanup; children go with it via cascade.
func newTestCompanion(t *testing.T) *Companion {
	t.Helper()
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	email := fmt.Sprintf("it-%s@example.com", uuid.New().String()[:8])
	t.Cleanup(func() {
		var user auth.User
		if err := db.DB.First(&user, "email = ?", email).Error; err == nil {
			db.DB.Delete(&user)
		}
	})

	companionID, err := testSvc.Register(auth.AccountInput{
		Names:    "Test",
		Email:    email,
		Password: "TestPass123!",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	c, err := testSvc.companions.GetByID(companionID)
	if err != nil || c == nil {
		t.Fatalf("load companion %s: %v", companionID, err)
	}
	return c
}

// futureDate returns a YYYY-MM-DD string n days from now, so availability
// windows never trip the past-date check.
func futureDate(n int) string {
	return time.Now().UTC().AddDate(0, 0, n).Format("2006-01-02")
}

// TestDuplicateRegistrationRollsBack verifies a second registration with the
// same email fails with ErrDuplicateAccount and creates no second profile.
func TestDuplicateRegistrationRollsBack(t *testing.T) {
	c := newTestCompanion(t)

	var user auth.User
	if err := db.DB.First(&user, "user_id = ?", c.UserID).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}

	_, err := testSvc.Register(auth.AccountInput{
		Names:    "Dup",
		Email:    user.Email,
		Password: "AnotherPass456!",
	})
	if err != ErrDuplicateAccount {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}

	var count int64
	if err := db.DB.Model(&Companion{}).Where("user_id = ?", c.UserID).Count(&count).Error; err != nil {
		t.Fatalf("count companions: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly 1 companion profile, found %d", count)
	}
}

// TestAvailabilityOverlapRejected verifies an overlapping window is rejected
// while a window that merely touches the boundary is accepted.
func TestAvailabilityOverlapRejected(t *testing.T) {
	c := newTestCompanion(t)
	date := futureDate(30)

	if _, err := testSvc.CreateTimeAvailability(c, TimeAvailabilityInput{
		Date: date, StartTime: "09:00", EndTime: "10:00",
	}); err != nil {
		t.Fatalf("create first window: %v", err)
	}

	_, err := testSvc.CreateTimeAvailability(c, TimeAvailabilityInput{
		Date: date, StartTime: "09:30", EndTime: "10:30",
	})
	if err == nil {
		t.Fatal("expected overlapping window to be rejected")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("unexpected error for overlap: %v", err)
	}

	// Boundary touch: 10:00 start against a 10:00 end is allowed.
	if _, err := testSvc.CreateTimeAvailability(c, TimeAvailabilityInput{
		Date: date, StartTime: "10:00", EndTime: "11:00",
	}); err != nil {
		t.Errorf("boundary-touching window rejected: %v", err)
	}
}

// TestAvailabilityIndependentPerCompanion verifies two companions can hold the
// same window on the same date.
func TestAvailabilityIndependentPerCompanion(t *testing.T) {
	a := newTestCompanion(t)
	b := newTestCompanion(t)
	date := futureDate(31)

	if _, err := testSvc.CreateTimeAvailability(a, TimeAvailabilityInput{
		Date: date, StartTime: "09:00", EndTime: "10:00",
	}); err != nil {
		t.Fatalf("create window for first companion: %v", err)
	}
	if _, err := testSvc.CreateTimeAvailability(b, TimeAvailabilityInput{
		Date: date, StartTime: "09:00", EndTime: "10:00",
	}); err != nil {
		t.Errorf("second companion's identical window rejected: %v", err)
	}
}

// TestDuplicateReferenceEmail verifies the reference email stays unique across
// the whole table, not just per companion.
func TestDuplicateReferenceEmail(t *testing.T) {
	a := newTestCompanion(t)
	b := newTestCompanion(t)

	email := fmt.Sprintf("ref-%s@example.com", uuid.New().String()[:8])
	if _, err := testSvc.CreateReference(a, ReferenceInput{Names: "Ref", Email: email}); err != nil {
		t.Fatalf("create reference: %v", err)
	}

	if _, err := testSvc.CreateReference(b, ReferenceInput{Names: "Ref", Email: email}); err != ErrDuplicateReference {
		t.Fatalf("expected ErrDuplicateReference, got %v", err)
	}
}

// TestDeleteOwnership walks the delete contract on a skill: a stranger's
// delete is refused and leaves the row, the owner's delete removes it, and a
// repeat delete reports it missing.
func TestDeleteOwnership(t *testing.T) {
	owner := newTestCompanion(t)
	stranger := newTestCompanion(t)

	skill, err := testSvc.CreateSkill(owner, "cooking")
	if err != nil {
		t.Fatalf("create skill: %v", err)
	}

	if err := testSvc.DeleteSkill(stranger, skill.SkillID); err != ErrPermissionDenied {
		t.Fatalf("expected ErrPermissionDenied for stranger, got %v", err)
	}
	remaining, err := testSvc.skills.GetByID(skill.SkillID)
	if err != nil {
		t.Fatalf("reload skill: %v", err)
	}
	if remaining == nil {
		t.Fatal("refused delete removed the row anyway")
	}

	if err := testSvc.DeleteSkill(owner, skill.SkillID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := testSvc.DeleteSkill(owner, skill.SkillID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on repeat delete, got %v", err)
	}

	// Same contract on the other child entities.
	ref, err := testSvc.CreateReference(owner, ReferenceInput{
		Names: "Ref",
		Email: fmt.Sprintf("own-%s@example.com", uuid.New().String()[:8]),
	})
	if err != nil {
		t.Fatalf("create reference: %v", err)
	}
	if err := testSvc.DeleteReference(stranger, ref.ReferenceID); err != ErrPermissionDenied {
		t.Errorf("reference: expected ErrPermissionDenied for stranger, got %v", err)
	}
	if err := testSvc.DeleteReference(owner, ref.ReferenceID); err != nil {
		t.Errorf("reference: owner delete: %v", err)
	}

	window, err := testSvc.CreateTimeAvailability(owner, TimeAvailabilityInput{
		Date: futureDate(32), StartTime: "09:00", EndTime: "10:00",
	})
	if err != nil {
		t.Fatalf("create window: %v", err)
	}
	if err := testSvc.DeleteTimeAvailability(stranger, window.TimeAvailabilityID); err != ErrPermissionDenied {
		t.Errorf("availability: expected ErrPermissionDenied for stranger, got %v", err)
	}
	if err := testSvc.DeleteTimeAvailability(owner, window.TimeAvailabilityID); err != nil {
		t.Errorf("availability: owner delete: %v", err)
	}

	cert, err := testSvc.CreateCertification(owner, "first aid", "cert.pdf", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("create certification: %v", err)
	}
	if err := testSvc.DeleteCertification(stranger, cert.CertificationID); err != ErrPermissionDenied {
		t.Errorf("certification: expected ErrPermissionDenied for stranger, got %v", err)
	}
	if _, err := os.Stat(cert.CertificatePath); err != nil {
		t.Errorf("certificate file gone after refused delete: %v", err)
	}
	if err := testSvc.DeleteCertification(owner, cert.CertificationID); err != nil {
		t.Fatalf("certification: owner delete: %v", err)
	}
	if _, err := os.Stat(cert.CertificatePath); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("certificate file not removed after delete: %v", err)
	}
}

// TestBrowseExcludesBlocked verifies blocked companions never show up and that
// asking for the blocked state outright is invalid.
func TestBrowseExcludesBlocked(t *testing.T) {
	c := newTestCompanion(t)

	blocked := "blocked"
	if err := testSvc.Update(c, UpdateInput{StateAvailability: &blocked}); err != nil {
		t.Fatalf("block companion: %v", err)
	}

	rows, err := testSvc.Browse(nil)
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	for _, row := range rows {
		if row.CompanionID == c.CompanionID {
			t.Error("blocked companion listed in browse results")
		}
	}

	if _, err := testSvc.Browse([]string{"blocked"}); err == nil {
		t.Error("expected browsing by blocked state to be rejected")
	}
}
