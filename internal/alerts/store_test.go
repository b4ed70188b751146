package alerts

import (
	"testing"
	"time"

	"wardwatch/internal/model"
)

func event(bed int, offset time.Duration) model.AlertEvent {
	return model.AlertEvent{
		Timestamp:   time.Now().UTC().Add(offset),
		Bed:         bed,
		PatientName: "Ana Morales",
		Kind:        model.AlertHighFever,
		Value:       39.1,
		Threshold:   38.5,
	}
}

func TestStoreKeepsNewestWithinLimit(t *testing.T) {
	s := NewStore(3)
	for bed := 1; bed <= 5; bed++ {
		s.Add(event(bed, 0))
	}
	list := s.List(0)
	if len(list) != 3 {
		t.Fatalf("expected 3 retained events, got %d", len(list))
	}
	if list[0].Bed != 3 || list[2].Bed != 5 {
		t.Fatalf("oldest should be evicted first: %v", list)
	}
}

func TestStoreListLimit(t *testing.T) {
	s := NewStore(10)
	for bed := 1; bed <= 6; bed++ {
		s.Add(event(bed, 0))
	}
	list := s.List(2)
	if len(list) != 2 {
		t.Fatalf("expected 2 events, got %d", len(list))
	}
	if list[0].Bed != 5 || list[1].Bed != 6 {
		t.Fatalf("expected the two most recent events, got %v", list)
	}
}

func TestStoreSince(t *testing.T) {
	s := NewStore(10)
	s.Add(event(1, -time.Hour))
	s.Add(event(2, -time.Minute))
	s.Add(event(3, 0))

	list := s.Since(time.Now().UTC().Add(-10 * time.Minute))
	if len(list) != 2 {
		t.Fatalf("expected 2 events since cutoff, got %d", len(list))
	}
}

func TestStoreForBed(t *testing.T) {
	s := NewStore(10)
	s.Add(event(1, 0))
	s.Add(event(2, 0))
	s.Add(event(1, time.Second))

	list := s.ForBed(1)
	if len(list) != 2 {
		t.Fatalf("expected 2 events for bed 1, got %d", len(list))
	}
}

func TestStoreClear(t *testing.T) {
	s := NewStore(10)
	s.Add(event(1, 0))
	s.Clear()
	if len(s.List(0)) != 0 {
		t.Fatalf("expected empty store after clear")
	}
}
