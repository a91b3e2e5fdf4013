package catalog

import (
	"roomdesk/pkg/model"
	"testing"
)

func TestLookup_CanonicalNames(t *testing.T) {
	tests := []struct {
		name         string
		wantCategory model.RoomCategory
		wantCapacity int
	}{
		{"Ada Lovelace", model.CategoryClassrooms, 70},
		{"Alan Turing", model.CategoryClassrooms, 24},
		{"Claude Shannon", model.CategoryClassrooms, 32},
		{"Donald Knuth", model.CategoryClassrooms, 24},
		{"Library", model.CategoryClassrooms, 30},
		{"William Shockley", model.CategoryClassrooms, 20},
		{"Darth Vader", model.CategoryMeetingRooms, 9},
		{"Sirius", model.CategoryMeetingRooms, 6},
		{"Proxima", model.CategoryMeetingRooms, 3},
		{"Recording Room", model.CategoryOthers, 2},
		{"Call Room N2", model.CategoryOthers, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, ok := Lookup(tt.name)
			if !ok {
				t.Fatalf("expected %q in catalog", tt.name)
			}
			if info.Category != tt.wantCategory {
				t.Errorf("category = %s, want %s", info.Category, tt.wantCategory)
			}
			if info.MaxCapacity != tt.wantCapacity {
				t.Errorf("max capacity = %d, want %d", info.MaxCapacity, tt.wantCapacity)
			}
		})
	}
}

func TestLookup_Normalization(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ada lovelace", "Ada Lovelace"},
		{"ADA LOVELACE", "Ada Lovelace"},
		{"  ada   lovelace  ", "Ada Lovelace"},
		{"call room n2", "Call Room N2"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			info, ok := Lookup(tt.input)
			if !ok {
				t.Fatalf("expected %q to resolve", tt.input)
			}
			if info.Name != tt.want {
				t.Errorf("resolved %q, want %q", info.Name, tt.want)
			}
		})
	}
}

func TestLookup_UnknownRoom(t *testing.T) {
	for _, name := range []string{"", "Atlantis", "Ada", "Lovelace Ada"} {
		if _, ok := Lookup(name); ok {
			t.Errorf("expected %q to miss the catalog", name)
		}
	}
}

func TestCategoryByName(t *testing.T) {
	tests := []struct {
		input string
		want  model.RoomCategory
	}{
		{"Classrooms", model.CategoryClassrooms},
		{"classrooms", model.CategoryClassrooms},
		{"  meeting   rooms ", model.CategoryMeetingRooms},
		{"OTHERS", model.CategoryOthers},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := CategoryByName(tt.input)
			if !ok {
				t.Fatalf("expected %q to resolve", tt.input)
			}
			if got != tt.want {
				t.Errorf("category = %s, want %s", got, tt.want)
			}
		})
	}

	for _, name := range []string{"", "hallways", "meeting"} {
		if _, ok := CategoryByName(name); ok {
			t.Errorf("expected %q to miss", name)
		}
	}
}

func TestCategoryOf_TotalOverCatalog(t *testing.T) {
	for _, room := range All() {
		category, ok := CategoryOf(room.Name)
		if !ok {
			t.Fatalf("CategoryOf(%q) missed its own catalog entry", room.Name)
		}
		if category != room.Category {
			t.Errorf("CategoryOf(%q) = %s, want %s", room.Name, category, room.Category)
		}
	}
}

func TestAll_IsACopy(t *testing.T) {
	first := All()
	first[0].MaxCapacity = 9999

	again := All()
	if again[0].MaxCapacity == 9999 {
		t.Errorf("All() must not expose the internal table for mutation")
	}
}
