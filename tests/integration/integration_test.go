package integration_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/momentumafrica/momentum-api/internal/config"
	"github.com/momentumafrica/momentum-api/internal/database"
	"github.com/momentumafrica/momentum-api/internal/logger"
	"github.com/momentumafrica/momentum-api/internal/models"
	"github.com/momentumafrica/momentum-api/internal/score"
	"github.com/momentumafrica/momentum-api/internal/services"
	"github.com/momentumafrica/momentum-api/tests/helpers"
)

// TestWithMariaDB tests the service against a real MariaDB container
func TestWithMariaDB(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	dbImage := os.Getenv("DB_IMAGE")
	if dbImage == "" {
		dbImage = "mariadb:11"
	}

	// Start MariaDB container
	mariadbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        dbImage,
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "rootpass",
				"MYSQL_DATABASE":      "testdb",
				"MYSQL_USER":          "testuser",
				"MYSQL_PASSWORD":      "testpass",
			},
			WaitingFor: wait.ForLog("ready for connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start MariaDB container: %v", err)
	}
	defer func() {
		if err := mariadbContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate MariaDB container: %v", err)
		}
	}()

	// Get container host and port
	host, err := mariadbContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := mariadbContainer.MappedPort(ctx, "3306")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	// Create config
	cfg := &config.Config{
		DBType:            "mysql",
		DBHost:            host,
		DBPort:            port.Port(),
		DBDatabase:        "testdb",
		DBUser:            "testuser",
		DBPassword:        "testpass",
		DBConnectionLimit: 10,
	}

	// Wait for database to be ready
	time.Sleep(5 * time.Second)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run migrations
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	// Run tests
	t.Run("SeedIsIdempotent", func(t *testing.T) {
		testSeedIsIdempotent(t, db)
	})

	t.Run("ConcurrentScoreUpdates", func(t *testing.T) {
		testConcurrentScoreUpdates(t, db)
	})

	t.Run("ConcurrentCollaborationToggles", func(t *testing.T) {
		testConcurrentCollaborationToggles(t, db)
	})

	t.Run("ActivationCodeSingleUse", func(t *testing.T) {
		testActivationCodeSingleUse(t, db)
	})
}

// testSeedIsIdempotent verifies the boot seed fills empty tables exactly once
func testSeedIsIdempotent(t *testing.T, db *gorm.DB) {
	log := logger.NewNop()

	if err := services.Seed(log, db); err != nil {
		t.Fatalf("First seed failed: %v", err)
	}
	var first int64
	db.Model(&models.Community{}).Count(&first)
	if first == 0 {
		t.Fatal("Expected seeded communities")
	}

	if err := services.Seed(log, db); err != nil {
		t.Fatalf("Second seed failed: %v", err)
	}
	var second int64
	db.Model(&models.Community{}).Count(&second)
	if second != first {
		t.Errorf("Expected community count unchanged (%d), got %d", first, second)
	}
}

// testConcurrentScoreUpdates verifies no increments are lost under contention
func testConcurrentScoreUpdates(t *testing.T, db *gorm.DB) {
	profile := helpers.CreateTestProfile(t, db, "concurrent-score", models.RoleStudent, 0)

	const writers = 25
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := services.ApplyScoreDelta(db, profile.ID, score.ReasonAddReply); err != nil {
				t.Errorf("ApplyScoreDelta failed: %v", err)
			}
		}()
	}
	wg.Wait()

	var got models.UserProfile
	if err := db.First(&got, "id = ?", profile.ID).Error; err != nil {
		t.Fatalf("Failed to reload profile: %v", err)
	}
	want := int64(writers) * score.Points(score.ReasonAddReply)
	if got.Score != want {
		t.Errorf("Expected score %d after %d concurrent increments, got %d", want, writers, got.Score)
	}
}

// testConcurrentCollaborationToggles verifies the row lock keeps the counter
// consistent with the membership set
func testConcurrentCollaborationToggles(t *testing.T, db *gorm.DB) {
	author := helpers.CreateTestProfile(t, db, "toggle-author", models.RoleStudent, 0)
	community := helpers.CreateTestCommunity(t, db, "Toggle Arena")
	post := helpers.CreateTestPost(t, db, community.ID, author, "contended idea")

	const members = 12
	var wg sync.WaitGroup
	for i := 0; i < members; i++ {
		member := helpers.CreateTestProfile(t, db, "member", models.RoleStudent, 0)
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			if _, err := services.ToggleCollaboration(db, post.ID, userID); err != nil {
				t.Errorf("Toggle failed: %v", err)
			}
		}(member.ID)
	}
	wg.Wait()

	var got models.Post
	if err := db.First(&got, "id = ?", post.ID).Error; err != nil {
		t.Fatalf("Failed to reload post: %v", err)
	}
	var rows int64
	db.Model(&models.PostCollaborator{}).Where("post_id = ?", post.ID).Count(&rows)

	if got.CollaboratorCount != int64(members) {
		t.Errorf("Expected counter %d, got %d", members, got.CollaboratorCount)
	}
	if rows != int64(members) {
		t.Errorf("Expected %d membership rows, got %d", members, rows)
	}
}

// testActivationCodeSingleUse verifies a code row-locked during signup is
// spent exactly once even when redeemed concurrently
func testActivationCodeSingleUse(t *testing.T, db *gorm.DB) {
	helpers.CreateTestActivationCode(t, db, "RACE-CODE", 50)

	const racers = 8
	var wg sync.WaitGroup
	successes := make(chan struct{}, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := services.CompleteSignup(db, uuid.NewString(), "racer@example.test", services.SignupInput{
				DisplayName:    "Racer",
				ActivationCode: "RACE-CODE",
			})
			if err == nil {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	var wins int
	for range successes {
		wins++
	}
	if wins != 1 {
		t.Errorf("Expected exactly one successful redemption, got %d", wins)
	}
}
