package services

import (
	"strings"
	"testing"

	"moonhem/models"
	"moonhem/utils"
)

func newTestNormalizer() *Normalizer {
	return NewNormalizer(utils.NewLogger(false))
}

func TestNormalizeNumericCoercion(t *testing.T) {
	tests := []struct {
		name string
		raw  models.RawRecord
		want float64
	}{
		{"missing", models.RawRecord{}, 0},
		{"null", models.RawRecord{"price": nil}, 0},
		{"non-numeric", models.RawRecord{"price": "not a price"}, 0},
		{"numeric string", models.RawRecord{"price": "2500000"}, 2500000},
		{"number", models.RawRecord{"price": 1250000.5}, 1250000.5},
		{"negative clamped", models.RawRecord{"price": -100.0}, 0},
		{"bool", models.RawRecord{"price": true}, 0},
	}

	n := newTestNormalizer()
	for _, tt := range tests {
		got := n.Listings([]models.RawRecord{tt.raw})[0]
		if got.Price != tt.want {
			t.Errorf("%s: price = %v, want %v", tt.name, got.Price, tt.want)
		}
	}
}

func TestNormalizeAliasPriority(t *testing.T) {
	n := newTestNormalizer()
	raw := models.RawRecord{
		"price":      1000000.0,
		"list_price": 9999999.0,
		"street":     "Backup street",
		"address":    "Storgatan 1",
	}

	got := n.Listings([]models.RawRecord{raw})[0]
	if got.Price != 1000000 {
		t.Errorf("price = %v, want the earlier alias to win (1000000)", got.Price)
	}
	if got.Address != "Storgatan 1" {
		t.Errorf("address = %q, want %q", got.Address, "Storgatan 1")
	}
}

func TestNormalizeAliasFallbacks(t *testing.T) {
	n := newTestNormalizer()
	raw := models.RawRecord{
		"list_price":    3200000.0,
		"room_count":    "4",
		"boarea":        112.0,
		"plot_area":     540.0,
		"municipality":  "Arvika",
		"title":         "Lakeside Plot",
		"summary":       "Close to water.",
		"type":          "Villa",
		"cover_image_url": "https://img.example/1.jpg",
	}

	got := n.Listings([]models.RawRecord{raw})[0]
	if got.Price != 3200000 || got.Rooms != 4 || got.LivingArea != 112 || got.LotSize != 540 {
		t.Errorf("numeric aliases not resolved: %+v", got)
	}
	if got.City != "Arvika" || got.Address != "Lakeside Plot" {
		t.Errorf("string aliases not resolved: city=%q address=%q", got.City, got.Address)
	}
	if got.Description != "Close to water." || got.PropertyType != "Villa" {
		t.Errorf("description/type not resolved: %+v", got)
	}
	if got.ImageURL != "https://img.example/1.jpg" {
		t.Errorf("image = %q", got.ImageURL)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	n := newTestNormalizer()
	got := n.Listings([]models.RawRecord{{"id": 7.0}})[0]

	if got.ID != "7" {
		t.Errorf("id = %q, want %q", got.ID, "7")
	}
	if got.Address != "Unknown address" {
		t.Errorf("address default = %q", got.Address)
	}
	if got.Description != "No description added yet." {
		t.Errorf("description default = %q", got.Description)
	}
	if got.PropertyType != "home" {
		t.Errorf("property type default = %q", got.PropertyType)
	}
}

func TestNormalizeSyntheticID(t *testing.T) {
	n := newTestNormalizer()
	raw := models.RawRecord{"address": "Sjöhaget", "price": 490000.0}

	first := n.Listings([]models.RawRecord{raw})[0]
	second := n.Listings([]models.RawRecord{raw})[0]

	if !strings.HasPrefix(first.ID, models.SyntheticIDPrefix) {
		t.Errorf("synthetic id %q should carry prefix %q", first.ID, models.SyntheticIDPrefix)
	}
	if !first.HasSyntheticID() {
		t.Error("HasSyntheticID should report true")
	}
	if first.ID != second.ID {
		t.Errorf("same content should hash to the same id: %q vs %q", first.ID, second.ID)
	}

	other := n.Listings([]models.RawRecord{{"address": "Annan gata"}})[0]
	if other.ID == first.ID {
		t.Error("different content should not collide")
	}

	withID := n.Listings([]models.RawRecord{{"id": "srv-1"}})[0]
	if withID.HasSyntheticID() {
		t.Error("server-assigned id should not be marked synthetic")
	}
}

func TestNormalizeImageFallbackRotation(t *testing.T) {
	n := newTestNormalizer()
	batch := make([]models.RawRecord, 5)
	for i := range batch {
		batch[i] = models.RawRecord{"id": float64(i)}
	}

	got := n.Listings(batch)
	for i, l := range got {
		want := fallbackImages[i%len(fallbackImages)]
		if l.ImageURL != want {
			t.Errorf("listing %d: image = %q, want rotation slot %q", i, l.ImageURL, want)
		}
	}
	if got[0].ImageURL != got[4].ImageURL {
		t.Error("rotation should wrap after four placeholders")
	}
}

func TestNormalizeAgents(t *testing.T) {
	n := newTestNormalizer()
	raw := []models.RawRecord{
		{"id": 1.0, "first_name": " Vanessa ", "surname": "Wingstrand", "mail": "v@moonhem.com", "role_id": 2.0},
		{"id": 2.0, "email": "backup@moonhem.com", "company_name": "Moonhem"},
	}

	agents := n.Agents(raw)
	if agents[0].Name != "Vanessa Wingstrand" {
		t.Errorf("name = %q", agents[0].Name)
	}
	if agents[1].Name != "Moonhem Agent" {
		t.Errorf("empty name should default, got %q", agents[1].Name)
	}
	if agents[1].Email != "backup@moonhem.com" {
		t.Errorf("email alias not resolved: %q", agents[1].Email)
	}
	if agents[0].Avatar == agents[1].Avatar {
		t.Error("avatar rotation should differ across positions")
	}
}

func TestFilterRealtors(t *testing.T) {
	agents := []*models.Agent{
		{ID: 1, RoleID: 1},
		{ID: 2, RoleID: 2},
		{ID: 3, Role: "Broker"},
	}

	got := FilterRealtors(agents)
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 3 {
		t.Errorf("realtor filter: got %d entries", len(got))
	}

	none := []*models.Agent{{ID: 4, RoleID: 1}, {ID: 5}}
	if len(FilterRealtors(none)) != 2 {
		t.Error("with no realtors the full set should come back")
	}
}
