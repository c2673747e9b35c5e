package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func save(t *testing.T, store *Store, gameID, user string, score int) {
	t.Helper()
	if _, err := store.SaveScore(Score{GameID: gameID, Username: user, Score: score, Level: 1 + score/10}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "tower", "alice", 10)
	save(t, store, "tower", "bob", 5)
	save(t, store, "tower", "alice", 20)
	save(t, store, "tower-demo", "alice", 50)

	scores, err := store.TopScores("tower", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{20, 10, 5}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
	}
	if scores[0].Username != "alice" || scores[0].Level != 3 {
		t.Errorf("unexpected top entry %+v", scores[0])
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not parsed")
	}

	demo, err := store.TopScores("tower-demo", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(demo) != 1 {
		t.Errorf("Expected 1 demo score, got %d", len(demo))
	}
}

func TestStoreSaveDefaults(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveScore(Score{GameID: "tower", Username: "  ", Score: 3}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if _, err := store.SaveScore(Score{Score: 3}); err == nil {
		t.Error("expected error for empty game id")
	}

	scores, _ := store.TopScores("tower", 1)
	if len(scores) != 1 {
		t.Fatalf("Expected 1 score, got %d", len(scores))
	}
	e := scores[0]
	if e.Username != AnonymousUser {
		t.Errorf("Expected anonymous user, got %q", e.Username)
	}
	if e.Level != 1 {
		t.Errorf("Expected level 1, got %d", e.Level)
	}
	if _, err := uuid.Parse(e.SessionID); err != nil {
		t.Errorf("Expected generated session uuid, got %q", e.SessionID)
	}
}

func TestStoreSessionScores(t *testing.T) {
	store := openTestStore(t)
	session := uuid.NewString()

	for _, score := range []int{4, 9, 2} {
		if _, err := store.SaveScore(Score{GameID: "tower", Username: "carol", SessionID: session, Score: score}); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	save(t, store, "tower", "carol", 30)

	scores, err := store.SessionScores(session)
	if err != nil {
		t.Fatalf("SessionScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 session scores, got %d", len(scores))
	}
	if scores[0].Score != 4 || scores[2].Score != 2 {
		t.Errorf("session scores not in play order: %v", scores)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		save(t, store, "test", "p", (i+1)*100)
	}

	// Request only top 3
	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScoreAndPersonalBest(t *testing.T) {
	store := openTestStore(t)

	// No scores yet
	high, err := store.HighScore("tower")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	save(t, store, "tower", "alice", 12)
	save(t, store, "tower", "bob", 30)
	save(t, store, "tower", "alice", 17)

	high, err = store.HighScore("tower")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 30 {
		t.Errorf("Expected high score of 30, got %d", high)
	}

	best, err := store.PersonalBest("tower", "alice")
	if err != nil {
		t.Fatalf("PersonalBest() failed: %v", err)
	}
	if best != 17 {
		t.Errorf("Expected alice's best of 17, got %d", best)
	}

	best, _ = store.PersonalBest("tower", "nobody")
	if best != 0 {
		t.Errorf("Expected 0 for unknown player, got %d", best)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "tower", "a", 100)
	save(t, store, "tower", "a", 200)
	save(t, store, "tower-demo", "a", 300)

	if err := store.ClearScores("tower"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	towerScores, _ := store.TopScores("tower", 10)
	if len(towerScores) != 0 {
		t.Errorf("Expected 0 tower scores after clear, got %d", len(towerScores))
	}

	demoScores, _ := store.TopScores("tower-demo", 10)
	if len(demoScores) != 1 {
		t.Errorf("Demo scores should not be affected by clearing tower")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		save(t, store, "test", "p", i*10)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("tower")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	save(t, store, "tower", "alice", 10)
	save(t, store, "tower", "bob", 25)
	save(t, store, "tower", "alice", 4)

	stats, err = store.GetGameStats("tower")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.Players != 2 || stats.HighScore != 25 || stats.BestLevel != 3 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if stats.TotalScore != 39 {
		t.Errorf("Expected total 39, got %d", stats.TotalScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed was not parsed")
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if all["tower"] == nil || all["tower"].GamesCount != 3 {
		t.Errorf("unexpected all-games stats %v", all)
	}
}

func TestStoreMigratesOldSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "old.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("sql.Open failed: %v", err)
	}
	_, err = db.Exec(`
		CREATE TABLE scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		INSERT INTO scores (game_id, score) VALUES ('tower', 7);
	`)
	db.Close()
	if err != nil {
		t.Fatalf("seeding old schema failed: %v", err)
	}

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() on old schema failed: %v", err)
	}
	defer store.Close()

	scores, err := store.TopScores("tower", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Username != AnonymousUser || scores[0].Level != 1 {
		t.Errorf("old row not migrated: %+v", scores)
	}

	save(t, store, "tower", "dave", 9)
	if best, _ := store.PersonalBest("tower", "dave"); best != 9 {
		t.Errorf("Expected 9, got %d", best)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
