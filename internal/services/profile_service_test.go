package services_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/momentumafrica/momentum-api/internal/models"
	"github.com/momentumafrica/momentum-api/internal/score"
	"github.com/momentumafrica/momentum-api/internal/services"
	"github.com/momentumafrica/momentum-api/internal/types"
)

func TestCompleteSignup(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.NewString()

	profile, err := services.CompleteSignup(db, userID, "ada@example.test", services.SignupInput{
		DisplayName: "Ada",
	})
	if err != nil {
		t.Fatalf("CompleteSignup failed: %v", err)
	}

	if profile.Score != score.Points(score.ReasonSignupBonus) {
		t.Errorf("Expected signup bonus %d, got %d", score.Points(score.ReasonSignupBonus), profile.Score)
	}
	if profile.Role != models.RoleStudent {
		t.Errorf("Expected default role student, got %s", profile.Role)
	}
	if !strings.Contains(profile.AvatarURL, userID) {
		t.Errorf("Expected seeded avatar URL, got %s", profile.AvatarURL)
	}
}

func TestCompleteSignupWithActivationCode(t *testing.T) {
	db := setupTestDB(t)
	code := models.ActivationCode{Code: "LAUNCH-50", Bonus: 50}
	if err := db.Create(&code).Error; err != nil {
		t.Fatalf("Failed to create activation code: %v", err)
	}

	userID := uuid.NewString()
	profile, err := services.CompleteSignup(db, userID, "ada@example.test", services.SignupInput{
		DisplayName:    "Ada",
		ActivationCode: "LAUNCH-50",
	})
	if err != nil {
		t.Fatalf("CompleteSignup failed: %v", err)
	}

	want := score.Points(score.ReasonSignupBonus) + 50
	if profile.Score != want {
		t.Errorf("Expected score %d, got %d", want, profile.Score)
	}

	// Code is spent
	var got models.ActivationCode
	db.First(&got, "code = ?", "LAUNCH-50")
	if !got.Redeemed() {
		t.Error("Expected code to be redeemed")
	}
	if got.RedeemedBy == nil || *got.RedeemedBy != userID {
		t.Error("Expected code to record the redeeming user")
	}

	// And cannot be spent again
	_, err = services.CompleteSignup(db, uuid.NewString(), "bob@example.test", services.SignupInput{
		DisplayName:    "Bob",
		ActivationCode: "LAUNCH-50",
	})
	if err == nil {
		t.Fatal("Expected error redeeming a spent code")
	}
}

func TestCompleteSignupInvalidInputs(t *testing.T) {
	db := setupTestDB(t)

	if _, err := services.CompleteSignup(db, uuid.NewString(), "x@example.test", services.SignupInput{}); err == nil {
		t.Error("Expected error for missing displayName")
	}
	if _, err := services.CompleteSignup(db, uuid.NewString(), "x@example.test", services.SignupInput{
		DisplayName: "X",
		Role:        "superuser",
	}); err == nil {
		t.Error("Expected error for invalid role")
	}
	if _, err := services.CompleteSignup(db, uuid.NewString(), "x@example.test", services.SignupInput{
		DisplayName:    "X",
		ActivationCode: "NO-SUCH-CODE",
	}); err == nil {
		t.Error("Expected error for unknown activation code")
	}
}

func TestCompleteSignupDuplicate(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.NewString()

	if _, err := services.CompleteSignup(db, userID, "ada@example.test", services.SignupInput{DisplayName: "Ada"}); err != nil {
		t.Fatalf("First signup failed: %v", err)
	}

	_, err := services.CompleteSignup(db, userID, "ada@example.test", services.SignupInput{DisplayName: "Ada"})
	if err == nil {
		t.Fatal("Expected conflict for duplicate signup")
	}
	var ce *types.CustomError
	if !errors.As(err, &ce) || ce.Code != 409 {
		t.Errorf("Expected 409 conflict, got %v", err)
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	db := setupTestDB(t)
	profile := createProfile(t, db, "ada", 10)

	newName := "Ada Lovelace"
	resume := "https://example.test/resume.pdf"
	updated, err := services.UpdateProfile(db, profile.ID, services.ProfileUpdate{
		DisplayName: &newName,
		ResumeURL:   &resume,
		Socials:     map[string]string{"x": "https://x.com/ada"},
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	if updated.DisplayName != newName {
		t.Errorf("Expected display name update, got %s", updated.DisplayName)
	}
	if updated.ResumeURL != resume {
		t.Errorf("Expected resume URL update, got %s", updated.ResumeURL)
	}
	if updated.Score != 10 {
		t.Errorf("Expected score untouched at 10, got %d", updated.Score)
	}

	// Untouched fields survive a later partial update
	avatar := "https://example.test/a.png"
	updated, err = services.UpdateProfile(db, profile.ID, services.ProfileUpdate{AvatarURL: &avatar})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.DisplayName != newName {
		t.Errorf("Expected display name preserved, got %s", updated.DisplayName)
	}
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	name := "Ghost"
	_, err := services.UpdateProfile(db, uuid.NewString(), services.ProfileUpdate{DisplayName: &name})
	if err == nil {
		t.Fatal("Expected error for unknown user")
	}
	if !types.IsType(err, types.TypeNotFound) {
		t.Errorf("Expected notFound error, got %v", err)
	}
}

func TestLeaderboard(t *testing.T) {
	db := setupTestDB(t)
	createProfile(t, db, "low", 5)
	createProfile(t, db, "high", 1200)
	createProfile(t, db, "mid", 300)

	entries, err := services.Leaderboard(db, 2)
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].DisplayName != "high" || entries[1].DisplayName != "mid" {
		t.Errorf("Expected descending score order, got %s, %s", entries[0].DisplayName, entries[1].DisplayName)
	}

	// Out-of-range limits fall back to the default
	entries, err = services.Leaderboard(db, -3)
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("Expected all 3 entries under default limit, got %d", len(entries))
	}
}

func TestCreateActivationCodes(t *testing.T) {
	db := setupTestDB(t)

	created, err := services.CreateActivationCodes(db, []services.ActivationCodeInput{
		{Code: "ALPHA"},
		{Code: "BETA", Bonus: 25},
	})
	if err != nil {
		t.Fatalf("CreateActivationCodes failed: %v", err)
	}
	if created != 2 {
		t.Errorf("Expected 2 codes created, got %d", created)
	}

	var alpha models.ActivationCode
	db.First(&alpha, "code = ?", "ALPHA")
	if alpha.Bonus != score.Points(score.ReasonActivationCode) {
		t.Errorf("Expected default bonus %d, got %d", score.Points(score.ReasonActivationCode), alpha.Bonus)
	}

	var beta models.ActivationCode
	db.First(&beta, "code = ?", "BETA")
	if beta.Bonus != 25 {
		t.Errorf("Expected bonus 25, got %d", beta.Bonus)
	}
}
