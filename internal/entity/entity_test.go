package entity

import "testing"

func TestRegistryGenerationsDetectStaleIDs(t *testing.T) {
	r := NewRegistry()

	a := r.Create()
	if !r.Alive(a) {
		t.Fatal("fresh ID should be alive")
	}
	if !r.Destroy(a) {
		t.Fatal("destroy of live ID should succeed")
	}
	if r.Alive(a) {
		t.Fatal("destroyed ID should not be alive")
	}
	if r.Destroy(a) {
		t.Fatal("double destroy should report false")
	}

	b := r.Create()
	if b.Index() != a.Index() {
		t.Fatalf("expected slot reuse, got index %d vs %d", b.Index(), a.Index())
	}
	if b == a || b.Generation() == a.Generation() {
		t.Fatalf("reused slot must bump generation: a=%v b=%v", a, b)
	}
	if r.Alive(a) {
		t.Fatal("stale ID must not alias the reused slot")
	}
	if r.Count() != 1 {
		t.Errorf("count=%d, want 1", r.Count())
	}
}

func TestRegistryNilNeverAlive(t *testing.T) {
	r := NewRegistry()
	r.Create()
	if r.Alive(Nil) {
		t.Fatal("nil ID must never be alive")
	}
	if !Nil.IsNil() {
		t.Fatal("Nil.IsNil should be true")
	}
}

func TestRegistryClear(t *testing.T) {
	r := NewRegistry()
	ids := []ID{r.Create(), r.Create(), r.Create()}
	r.Clear()
	for _, id := range ids {
		if r.Alive(id) {
			t.Errorf("%v alive after clear", id)
		}
	}
	if r.Count() != 0 {
		t.Errorf("count=%d after clear", r.Count())
	}
}

func TestStoreSetGetRemove(t *testing.T) {
	r := NewRegistry()
	s := NewStore[int]()
	a, b, c := r.Create(), r.Create(), r.Create()

	s.Set(a, 1)
	s.Set(b, 2)
	s.Set(c, 3)
	s.Set(b, 20)

	if s.Len() != 3 {
		t.Fatalf("len=%d, want 3", s.Len())
	}
	if v, ok := s.Get(b); !ok || *v != 20 {
		t.Fatalf("get b = %v %v, want 20", v, ok)
	}

	p, _ := s.Get(a)
	*p = 10
	if v, _ := s.Get(a); *v != 10 {
		t.Fatalf("pointer writes should persist, got %d", *v)
	}

	if !s.Remove(a) || s.Remove(a) {
		t.Fatal("remove should succeed once")
	}
	if s.Has(a) {
		t.Fatal("removed entity still present")
	}

	ids := s.IDs()
	if len(ids) != 2 {
		t.Fatalf("ids=%v, want 2 entries", ids)
	}
	for _, id := range ids {
		s.Remove(id)
	}
	if s.Len() != 0 {
		t.Errorf("len=%d after removing all", s.Len())
	}
}
