package service

import (
	"testing"

	"pokedex/internal/achievements"
	"pokedex/internal/models"
	"pokedex/internal/repository"
)

func newTestCollectionService() *CollectionService {
	store := repository.NewMemoryDocumentStore()
	engine := achievements.NewEngine(achievements.DefaultCatalog(), newSvcStats(), newSvcBadges())
	return NewCollectionService(store, engine)
}

func TestToggleFavorite(t *testing.T) {
	svc := newTestCollectionService()

	entry := models.FavoriteEntry{ID: 25, Name: "pikachu"}

	favorites, _, err := svc.ToggleFavorite("7", entry)
	if err != nil {
		t.Fatalf("ToggleFavorite failed: %v", err)
	}
	if len(favorites) != 1 || favorites[0].ID != 25 {
		t.Fatalf("favorites = %+v, want [pikachu]", favorites)
	}

	// Toggling again removes it
	favorites, _, err = svc.ToggleFavorite("7", entry)
	if err != nil {
		t.Fatalf("second ToggleFavorite failed: %v", err)
	}
	if len(favorites) != 0 {
		t.Errorf("favorites = %+v, want empty", favorites)
	}
}

func TestFavoriteBadgeAtThreshold(t *testing.T) {
	svc := newTestCollectionService()

	var badges []models.Badge
	for i := 1; i <= 3; i++ {
		var err error
		_, badges, err = svc.ToggleFavorite("7", models.FavoriteEntry{ID: i, Name: "mon"})
		if err != nil {
			t.Fatalf("ToggleFavorite %d failed: %v", i, err)
		}
	}

	// Three favorites crosses the first favorites threshold
	if len(badges) != 1 || badges[0].ID != "thunder" {
		t.Errorf("badges = %+v, want [thunder]", badges)
	}
}

func TestCatchAndStorage(t *testing.T) {
	svc := newTestCollectionService()

	pikachu := models.Pokemon{ID: 25, Name: "pikachu", Types: []string{"electric"}}

	first, _, err := svc.Catch("7", pikachu)
	if err != nil {
		t.Fatalf("Catch failed: %v", err)
	}
	if first.CaughtID == "" {
		t.Error("expected a storage id")
	}

	// Duplicates are allowed and get distinct ids
	second, _, err := svc.Catch("7", pikachu)
	if err != nil {
		t.Fatalf("second Catch failed: %v", err)
	}
	if second.CaughtID == first.CaughtID {
		t.Error("each capture should get its own id")
	}

	caught, err := svc.Storage("7")
	if err != nil {
		t.Fatalf("Storage failed: %v", err)
	}
	if len(caught) != 2 {
		t.Fatalf("storage has %d entries, want 2", len(caught))
	}

	stats, err := svc.StorageStats("7")
	if err != nil {
		t.Fatalf("StorageStats failed: %v", err)
	}
	if stats.Total != 2 || stats.UniqueSpecies != 1 {
		t.Errorf("stats = %+v, want total 2, unique 1", stats)
	}
}

func TestReleaseAndReleaseAll(t *testing.T) {
	svc := newTestCollectionService()

	caught, _, err := svc.Catch("7", models.Pokemon{ID: 1, Name: "bulbasaur"})
	if err != nil {
		t.Fatalf("Catch failed: %v", err)
	}
	if _, _, err := svc.Catch("7", models.Pokemon{ID: 4, Name: "charmander"}); err != nil {
		t.Fatalf("Catch failed: %v", err)
	}

	if err := svc.Release("7", caught.CaughtID); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	storage, err := svc.Storage("7")
	if err != nil {
		t.Fatalf("Storage failed: %v", err)
	}
	if len(storage) != 1 || storage[0].Name != "charmander" {
		t.Errorf("storage = %+v, want only charmander", storage)
	}

	if err := svc.ReleaseAll("7"); err != nil {
		t.Fatalf("ReleaseAll failed: %v", err)
	}
	storage, err = svc.Storage("7")
	if err != nil {
		t.Fatalf("Storage failed: %v", err)
	}
	if len(storage) != 0 {
		t.Errorf("storage = %+v, want empty", storage)
	}
}

func TestStorageOwnerIsolation(t *testing.T) {
	svc := newTestCollectionService()

	if _, _, err := svc.Catch("7", models.Pokemon{ID: 25, Name: "pikachu"}); err != nil {
		t.Fatalf("Catch failed: %v", err)
	}

	other, err := svc.Storage("8")
	if err != nil {
		t.Fatalf("Storage failed: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("trainer 8 storage = %+v, want empty", other)
	}
}
